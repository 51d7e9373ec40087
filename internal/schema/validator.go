package schema

import (
	"errors"
	"fmt"
)

// Validate checks an analyzed Options for internal consistency before it is
// registered or handed to the translator.
func Validate(o *Options) error {
	if o == nil {
		return errors.New("schema is nil")
	}
	if o.Name == "" {
		return errors.New("schema name cannot be empty")
	}

	for path := range o.NotAnalyzedFields {
		if o.ObjectFields[path] {
			return fmt.Errorf("field %q classified as both not-analyzed and object", path)
		}
		if _, nested := o.NestedFields[path]; nested {
			return fmt.Errorf("field %q classified as both not-analyzed and nested", path)
		}
	}

	if o.DefaultField != "" {
		if _, isNestedContainer := o.NestedFields[o.DefaultField]; isNestedContainer {
			return fmt.Errorf("default field %q names a nested container, not a leaf field", o.DefaultField)
		}
	}

	return nil
}
