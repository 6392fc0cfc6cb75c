package fields

import (
	"testing"

	"Backend-Worklink-007/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	t.Run("TestTextSerializesAsPlainString", func(t *testing.T) {
		field := models.FormField{Identifier: "summary", Type: models.FieldText}

		sf := Serialize(field, models.StringValue("hello"))

		require.NotNil(t, sf)
		assert.Equal(t, "summary", sf.Identifier)
		assert.Equal(t, []interface{}{"hello"}, sf.Values)
	})

	t.Run("TestBriefWrapsInTypedObject", func(t *testing.T) {
		field := models.FormField{Identifier: "body", Type: models.FieldBrief}

		sf := Serialize(field, models.StringValue("<p>hi</p>"))

		require.NotNil(t, sf)
		require.Len(t, sf.Values, 1)
		bv, ok := sf.Values[0].(briefValue)
		require.True(t, ok)
		assert.Equal(t, "text_brief", bv.Type)
		assert.Equal(t, "<p>hi</p>", bv.Value)
	})

	t.Run("TestCheckboxResolvesChoiceObjects", func(t *testing.T) {
		field := choiceField(models.FieldCheckbox, false)
		field.Identifier = "tags"

		sf := Serialize(field, models.ListValue([]string{"p2", "gone", "p1"}))

		require.NotNil(t, sf)
		assert.Equal(t, []interface{}{
			choiceRef{ID: "p2", Name: "High"},
			choiceRef{ID: "p1", Name: "Low"},
		}, sf.Values, "unresolvable ids are dropped, order of the rest preserved")
	})

	t.Run("TestSingleChoiceFallsBackToRawString", func(t *testing.T) {
		field := choiceField(models.FieldRadioButton, false)

		sf := Serialize(field, models.StringValue("stale-id"))

		require.NotNil(t, sf)
		assert.Equal(t, []interface{}{"stale-id"}, sf.Values)
	})

	t.Run("TestDateGainsMidnightUTCSuffix", func(t *testing.T) {
		field := models.FormField{Identifier: "due", Type: models.FieldDate}

		sf := Serialize(field, models.StringValue("2026-02-18"))
		require.NotNil(t, sf)
		assert.Equal(t, []interface{}{"2026-02-18T00:00:00Z"}, sf.Values)

		sf = Serialize(field, models.StringValue("2026-02-18T09:30:00Z"))
		require.NotNil(t, sf)
		assert.Equal(t, []interface{}{"2026-02-18T09:30:00Z"}, sf.Values, "timestamps pass through unchanged")
	})

	t.Run("TestNumbersSerializeAsDecimalStrings", func(t *testing.T) {
		pct := models.FormField{Identifier: "done", Type: models.FieldPercentageNumber}
		cur := models.FormField{Identifier: "budget", Type: models.FieldCurrencyNumber}

		sf := Serialize(pct, models.NumberValue(42))
		require.NotNil(t, sf)
		assert.Equal(t, []interface{}{"42"}, sf.Values)

		sf = Serialize(cur, models.NumberValue(1250.75))
		require.NotNil(t, sf)
		assert.Equal(t, []interface{}{"1250.75"}, sf.Values)

		sf = Serialize(cur, models.FieldValue{})
		require.NotNil(t, sf)
		assert.Equal(t, []interface{}{"0"}, sf.Values)
	})

	t.Run("TestNonPayloadKindsReturnNil", func(t *testing.T) {
		for _, kind := range []string{models.FieldFile, models.FieldInstruction, models.FieldSection, "hologram"} {
			field := models.FormField{Identifier: "x", Type: kind}
			assert.Nil(t, Serialize(field, models.StringValue("v")), "kind %s", kind)
		}
	})
}

func TestSerializeForm(t *testing.T) {
	list := []models.FormField{
		{Identifier: "a", Type: models.FieldText, SortOrder: 1},
		{Identifier: "sep", Type: models.FieldSection, SortOrder: 2},
		{Identifier: "b", Type: models.FieldText, SortOrder: 3},
		{Identifier: "hidden", Type: models.FieldText, SortOrder: 4},
	}
	values := models.FormValues{
		"a":      models.StringValue("one"),
		"b":      models.StringValue("two"),
		"hidden": models.StringValue("never"),
	}
	visible := map[string]bool{"a": true, "sep": true, "b": true}

	out := SerializeForm(list, values, visible)

	require.Len(t, out, 2, "section is skipped, hidden field is skipped")
	assert.Equal(t, "a", out[0].Identifier)
	assert.Equal(t, "b", out[1].Identifier)
}
