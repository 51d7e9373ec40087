package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_RejectsNilAndEmptyName(t *testing.T) {
	require.Error(t, Validate(nil))
	require.Error(t, Validate(NewOptions("")))
}

func TestValidate_RejectsConflictingClassification(t *testing.T) {
	o := NewOptions("posts")
	o.NotAnalyzedFields["author"] = true
	o.ObjectFields["author"] = true
	require.Error(t, Validate(o))
}

func TestValidate_RejectsDefaultFieldOnNestedContainer(t *testing.T) {
	o := NewOptions("posts")
	o.NestedFields["comments"] = map[string]bool{"body": true}
	o.DefaultField = "comments"
	require.Error(t, Validate(o))
}

func TestValidate_AcceptsWellFormedOptions(t *testing.T) {
	o := NewOptions("posts")
	o.NotAnalyzedFields["status"] = true
	o.DefaultField = "title"
	require.NoError(t, Validate(o))
}
