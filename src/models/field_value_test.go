package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormValues(t *testing.T) {
	t.Run("TestJSONShapesMapToKinds", func(t *testing.T) {
		values, err := ParseFormValues(map[string]json.RawMessage{
			"text":   json.RawMessage(`"hello"`),
			"multi":  json.RawMessage(`["a","b"]`),
			"number": json.RawMessage(`42.5`),
			"none":   json.RawMessage(`null`),
		})
		require.NoError(t, err)

		assert.Equal(t, StringValue("hello"), values["text"])
		assert.Equal(t, ListValue([]string{"a", "b"}), values["multi"])
		assert.Equal(t, NumberValue(42.5), values["number"])
		assert.Equal(t, ValueEmpty, values["none"].Kind)
	})

	t.Run("TestObjectShapeIsRejected", func(t *testing.T) {
		_, err := ParseFormValues(map[string]json.RawMessage{
			"bad": json.RawMessage(`{"nested":true}`),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"bad"`)
	})
}

func TestFieldValueViews(t *testing.T) {
	t.Run("TestAsStringShortestDecimal", func(t *testing.T) {
		assert.Equal(t, "42", NumberValue(42).AsString())
		assert.Equal(t, "1250.75", NumberValue(1250.75).AsString())
	})

	t.Run("TestAsListWrapsScalars", func(t *testing.T) {
		assert.Equal(t, []string{"x"}, StringValue("x").AsList())
		assert.Nil(t, StringValue("").AsList())
		assert.Equal(t, []string{"a", "b"}, ListValue([]string{"a", "b"}).AsList())
	})

	t.Run("TestIsEmpty", func(t *testing.T) {
		assert.True(t, FieldValue{}.IsEmpty())
		assert.True(t, StringValue("").IsEmpty())
		assert.True(t, ListValue(nil).IsEmpty())
		assert.False(t, NumberValue(0).IsEmpty(), "an explicit zero is a value")
		assert.False(t, FileRefValue("report.pdf").IsEmpty())
	})
}

func TestSubmissionExhausted(t *testing.T) {
	assert.False(t, (&Submission{RetryCount: 4}).Exhausted())
	assert.True(t, (&Submission{RetryCount: 5}).Exhausted())
}

func TestFormSortedFields(t *testing.T) {
	form := Form{Fields: []FormField{
		{Identifier: "c", SortOrder: 3},
		{Identifier: "a", SortOrder: 1},
		{Identifier: "b", SortOrder: 2},
	}}

	sorted := form.SortedFields()
	assert.Equal(t, "a", sorted[0].Identifier)
	assert.Equal(t, "b", sorted[1].Identifier)
	assert.Equal(t, "c", sorted[2].Identifier)
	assert.Equal(t, "c", form.Fields[0].Identifier, "the stored slice is never reordered in place")
}
