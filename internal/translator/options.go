package translator

import "github.com/infiniv/luqum/internal/schema"

// MatchType selects which ES leaf query an analyzed-field term becomes.
type MatchType string

const (
	MatchTypeMatch       MatchType = "match"
	MatchTypeMatchPhrase MatchType = "match_phrase"
	MatchTypeMultiMatch  MatchType = "multi_match"
)

// FieldOption is a per-field override consulted before the analyzer-wide
// defaults.
type FieldOption struct {
	MatchType MatchType
}

// Options configures a Translate call. Schema carries the field
// classifications produced by schema.Analyze; the remaining fields are
// translation-time settings layered on top of it.
type Options struct {
	Schema *schema.Options

	// DefaultField is used for a bare term with no field: prefix. Falls
	// back to Schema.DefaultField when empty.
	DefaultField string

	// DefaultOperator resolves a surviving UnknownOperation ("AND" or
	// "OR"); if empty, an UnknownOperation that was not already resolved by
	// query.UnknownOperationResolver is a translation error.
	DefaultOperator string

	// FieldOptions holds per-field overrides, keyed by dotted field path.
	FieldOptions map[string]FieldOption

	// MatchWordAsPhrase makes a single analyzed word translate to
	// match_phrase instead of match.
	MatchWordAsPhrase bool
}

func (o *Options) resolveDefaultField() string {
	if o.DefaultField != "" {
		return o.DefaultField
	}
	if o.Schema != nil {
		return o.Schema.DefaultField
	}
	return ""
}

func (o *Options) matchTypeFor(field string) MatchType {
	if fo, ok := o.FieldOptions[field]; ok && fo.MatchType != "" {
		return fo.MatchType
	}
	return MatchTypeMatch
}
