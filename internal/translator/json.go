package translator

// M is a shorthand for the JSON object shape every emit function builds.
type M = map[string]interface{}

// emitElement is Pass B: it turns an Element tree into its final Elasticsearch
// Query DSL JSON body, collapsing single-clause bools and wrapping leaves
// that sit under a nested parent.
func emitElement(e Element, opts *Options) M {
	switch v := e.(type) {
	case *EWord:
		return wrapNested(v.Nested, emitWord(v, opts))
	case *EPhrase:
		return wrapNested(v.Nested, emitPhrase(v))
	case *ERange:
		return wrapNested(v.Nested, emitRange(v))
	case *EFuzzy:
		return wrapNested(v.Nested, emitFuzzy(v))
	case *EProximity:
		return wrapNested(v.Nested, emitProximity(v))
	case *EExists:
		return wrapNested(v.Nested, emitExists(v))
	case *EBoolOperation:
		return withName(emitBool(v, opts), v.Name)
	case *ENested:
		return withName(M{"nested": M{"path": v.Path, "query": emitElement(v.Query, opts)}}, v.Name)
	case *EBoost:
		return withName(M{"function_score": M{
			"query":      emitElement(v.Query, opts),
			"boost":      v.Force,
			"boost_mode": "multiply",
		}}, v.Name)
	default:
		return M{"match_all": M{}}
	}
}

// wrapNested wraps a leaf's own query in {nested: {...}} when the leaf was
// not already absorbed into a sibling ENested by groupNested (a lone nested
// leaf, e.g. the sole operand of an AND/OR, still needs its own wrapper).
func wrapNested(path string, body M) M {
	if path == "" {
		return body
	}
	return M{"nested": M{"path": path, "query": body}}
}

func withName(body M, name string) M {
	if name != "" {
		body["_name"] = name
	}
	return body
}

func withBoost(body M, boost *float64) M {
	if boost != nil {
		body["boost"] = *boost
	}
	return body
}

func emitWord(v *EWord, opts *Options) M {
	if !v.Analyzed {
		return withName(withBoost(M{"term": M{v.Field: v.Value}}, v.Boost), v.Name)
	}
	if v.HasWildcard {
		return withName(withBoost(M{"query_string": M{
			"default_field":          v.Field,
			"query":                  v.Value,
			"analyze_wildcard":       true,
			"allow_leading_wildcard": true,
		}}, v.Boost), v.Name)
	}
	matchType := string(opts.matchTypeFor(v.Field))
	if opts.MatchWordAsPhrase {
		matchType = "match_phrase"
	}
	return withName(withBoost(M{matchType: M{v.Field: v.Value}}, v.Boost), v.Name)
}

func emitPhrase(v *EPhrase) M {
	return withName(withBoost(M{"match_phrase": M{v.Field: v.Value}}, v.Boost), v.Name)
}

func emitRange(v *ERange) M {
	bounds := M{}
	if v.Low != nil {
		if v.InclLow {
			bounds["gte"] = *v.Low
		} else {
			bounds["gt"] = *v.Low
		}
	}
	if v.High != nil {
		if v.InclHigh {
			bounds["lte"] = *v.High
		} else {
			bounds["lt"] = *v.High
		}
	}
	return withName(withBoost(M{"range": M{v.Field: bounds}}, v.Boost), v.Name)
}

func emitFuzzy(v *EFuzzy) M {
	return withName(withBoost(M{"fuzzy": M{v.Field: M{
		"value":     v.Value,
		"fuzziness": v.Degree,
	}}}, v.Boost), v.Name)
}

func emitProximity(v *EProximity) M {
	return withName(withBoost(M{"match_phrase": M{v.Field: M{
		"query": v.Value,
		"slop":  v.Degree,
	}}}, v.Boost), v.Name)
}

func emitExists(v *EExists) M {
	return withName(withBoost(M{"exists": M{"field": v.Field}}, v.Boost), v.Name)
}

func emitBool(v *EBoolOperation, opts *Options) M {
	if len(v.MustNot) == 0 && len(v.Should) == 0 && len(v.Must) == 1 {
		return emitElement(v.Must[0], opts)
	}
	if len(v.MustNot) == 0 && len(v.Must) == 0 && len(v.Should) == 1 {
		return emitElement(v.Should[0], opts)
	}

	boolBody := M{}
	if must := emitList(v.Must, opts); len(must) > 0 {
		boolBody["must"] = must
	}
	if should := emitList(v.Should, opts); len(should) > 0 {
		boolBody["should"] = should
		if _, hasMust := boolBody["must"]; !hasMust {
			boolBody["minimum_should_match"] = 1
		}
	}
	if mustNot := emitList(v.MustNot, opts); len(mustNot) > 0 {
		boolBody["must_not"] = mustNot
	}
	if len(boolBody) == 0 {
		return M{"match_all": M{}}
	}
	return M{"bool": boolBody}
}

func emitList(elems []Element, opts *Options) []M {
	if len(elems) == 0 {
		return nil
	}
	out := make([]M, 0, len(elems))
	for _, e := range elems {
		out = append(out, emitElement(e, opts))
	}
	return out
}
