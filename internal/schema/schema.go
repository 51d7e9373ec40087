// Package schema analyzes an Elasticsearch index mapping (C7) into the bag
// of field classifications the translator (internal/translator) needs:
// which fields are analyzed text vs. exact-match, which sit under a nested
// path, which are plain object nesting, and which multi-fields exist.
package schema

import (
	"errors"
	"fmt"
)

// notAnalyzedTypes are the ES mapping types queried via term/range/exists
// rather than match, per spec §4.7.
var notAnalyzedTypes = map[string]bool{
	"keyword": true, "integer": true, "long": true, "short": true, "byte": true,
	"double": true, "float": true, "half_float": true, "scaled_float": true,
	"date": true, "boolean": true, "ip": true,
}

// Mapping is a raw Elasticsearch index definition: top-level "mappings" (with
// nested "properties") and optional "settings.query.default_field", exactly
// as returned by the `GET /<index>/_mapping` and `_settings` APIs combined
// into one document. Unmarshal index JSON straight into this type.
type Mapping map[string]interface{}

// Options is the bag Analyze produces and the translator consumes.
type Options struct {
	Name string

	// NotAnalyzedFields holds dotted paths whose ES type is exact-match
	// (keyword, numeric, date, boolean, ip).
	NotAnalyzedFields map[string]bool

	// NestedFields maps a dotted parent path (type: nested) to the set of
	// its direct sub-field names.
	NestedFields map[string]map[string]bool

	// ObjectFields holds the dotted paths of fields mapped with type
	// "object" (the object containers themselves, as opposed to "nested");
	// the leaf fields inside such an object are not listed here.
	ObjectFields map[string]bool

	// SubFields maps "parent.child" multi-field paths to their ES type,
	// for fields declared via a mapping's "fields" block.
	SubFields map[string]string

	// DefaultField is read from settings.query.default_field, if present.
	DefaultField string
}

// NewOptions returns an Options with every set initialized empty, ready for
// a caller to populate by hand (e.g. in tests) without going through Analyze.
func NewOptions(name string) *Options {
	return &Options{
		Name:              name,
		NotAnalyzedFields: make(map[string]bool),
		NestedFields:      make(map[string]map[string]bool),
		ObjectFields:      make(map[string]bool),
		SubFields:         make(map[string]string),
	}
}

// IsNested reports whether path sits at or under a declared nested field,
// and if so returns the longest (most specific) such nested field's path.
func (o *Options) IsNested(path string) (nestedPath string, ok bool) {
	for p := range o.NestedFields {
		if path != p && !hasPathPrefix(path, p) {
			continue
		}
		if ok && len(p) < len(nestedPath) {
			continue
		}
		nestedPath, ok = p, true
	}
	return nestedPath, ok
}

func hasPathPrefix(path, prefix string) bool {
	return len(path) > len(prefix) && path[:len(prefix)] == prefix && path[len(prefix)] == '.'
}

// KnownField reports whether path was seen anywhere during Analyze, trying
// path itself and then, if that misses, its snake_case and camelCase
// spellings — queries are written by hand and often drift from the exact
// casing an ES mapping declares a field under.
func (o *Options) KnownField(path string) (resolved string, ok bool) {
	for _, candidate := range []string{path, ToSnakeCase(path), ToCamelCase(path)} {
		if o.NotAnalyzedFields[candidate] || o.ObjectFields[candidate] {
			return candidate, true
		}
		if _, nested := o.NestedFields[candidate]; nested {
			return candidate, true
		}
		if _, sub := o.SubFields[candidate]; sub {
			return candidate, true
		}
	}
	return path, false
}

// Analyze walks an Elasticsearch index mapping and classifies every field it
// finds into the sets Options carries. name is stored on the returned
// Options for Registry bookkeeping; it has no bearing on the analysis.
func Analyze(name string, m Mapping) (*Options, error) {
	if m == nil {
		return nil, errors.New("schema: mapping is nil")
	}
	opts := NewOptions(name)

	mappings, _ := m["mappings"].(map[string]interface{})
	if mappings == nil {
		// tolerate a bare mapping body with no "mappings" wrapper key
		mappings = m
	}
	props, _ := mappings["properties"].(map[string]interface{})
	if err := walkProperties(props, "", opts); err != nil {
		return nil, err
	}

	if settings, ok := m["settings"].(map[string]interface{}); ok {
		if query, ok := settings["query"].(map[string]interface{}); ok {
			if df, ok := query["default_field"].(string); ok {
				opts.DefaultField = df
			}
		}
	}

	return opts, nil
}

func walkProperties(props map[string]interface{}, prefix string, opts *Options) error {
	for fieldName, raw := range props {
		def, ok := raw.(map[string]interface{})
		if !ok {
			return fmt.Errorf("schema: field %q has no object definition", joinPath(prefix, fieldName))
		}
		path := joinPath(prefix, fieldName)
		typ, _ := def["type"].(string)

		switch typ {
		case "nested":
			subProps, _ := def["properties"].(map[string]interface{})
			names := make(map[string]bool, len(subProps))
			for sub := range subProps {
				names[sub] = true
			}
			opts.NestedFields[path] = names
			if err := walkProperties(subProps, path, opts); err != nil {
				return err
			}
		case "object", "":
			subProps, _ := def["properties"].(map[string]interface{})
			if subProps != nil {
				if typ == "object" {
					opts.ObjectFields[path] = true
				}
				if err := walkProperties(subProps, path, opts); err != nil {
					return err
				}
				continue
			}
			if typ == "object" {
				opts.ObjectFields[path] = true
			}
		default:
			if notAnalyzedTypes[typ] {
				opts.NotAnalyzedFields[path] = true
			}
		}

		if fields, ok := def["fields"].(map[string]interface{}); ok {
			for subName, subRaw := range fields {
				subDef, _ := subRaw.(map[string]interface{})
				subType, _ := subDef["type"].(string)
				opts.SubFields[path+"."+subName] = subType
			}
		}
	}
	return nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
