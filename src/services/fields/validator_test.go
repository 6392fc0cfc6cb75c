package fields

import (
	"testing"

	"Backend-Worklink-007/src/models"

	"github.com/stretchr/testify/assert"
)

func choiceField(kind string, required bool) models.FormField {
	return models.FormField{
		Identifier: "f1",
		Label:      "Priority",
		Type:       kind,
		Required:   required,
		TypeMeta: models.TypeMeta{Choices: []models.Choice{
			{ID: "p1", Name: "Low"},
			{ID: "p2", Name: "High"},
		}},
	}
}

func TestValidate(t *testing.T) {
	t.Run("TestOptionalEmptyIsAcceptedForEveryKind", func(t *testing.T) {
		kinds := []string{
			models.FieldText, models.FieldTextArea, models.FieldRichText,
			models.FieldBrief, models.FieldCheckbox, models.FieldRadioButton,
			models.FieldDropdown, models.FieldLabel, models.FieldDate,
			models.FieldFile, models.FieldInstruction, models.FieldSection,
			models.FieldPercentageNumber, models.FieldCurrencyNumber,
		}
		for _, kind := range kinds {
			field := models.FormField{Identifier: "f1", Label: "F", Type: kind, Required: false}
			assert.Empty(t, Validate(field, models.FieldValue{}), "kind %s", kind)
		}
	})

	t.Run("TestRequiredTextRejectsWhitespace", func(t *testing.T) {
		field := models.FormField{Identifier: "f1", Label: "Summary", Type: models.FieldText, Required: true}

		assert.NotEmpty(t, Validate(field, models.StringValue("   ")))
		assert.Empty(t, Validate(field, models.StringValue("hello")))
	})

	t.Run("TestRequiredRichTextRejectsMarkupOnly", func(t *testing.T) {
		field := models.FormField{Identifier: "f1", Label: "Body", Type: models.FieldRichText, Required: true}

		assert.NotEmpty(t, Validate(field, models.StringValue("<p><br></p>")))
		assert.Empty(t, Validate(field, models.StringValue("<p>content</p>")))
	})

	t.Run("TestChoiceRejectsUnknownIDEvenWhenOptional", func(t *testing.T) {
		field := choiceField(models.FieldRadioButton, false)

		assert.NotEmpty(t, Validate(field, models.StringValue("nope")))
		assert.Empty(t, Validate(field, models.StringValue("p1")))
	})

	t.Run("TestCheckboxRejectsUnknownIDInList", func(t *testing.T) {
		field := choiceField(models.FieldCheckbox, false)

		assert.NotEmpty(t, Validate(field, models.ListValue([]string{"p1", "bogus"})))
		assert.Empty(t, Validate(field, models.ListValue([]string{"p1", "p2"})))
	})

	t.Run("TestRequiredCheckboxNeedsASelection", func(t *testing.T) {
		field := choiceField(models.FieldCheckbox, true)

		assert.NotEmpty(t, Validate(field, models.ListValue(nil)))
		assert.Empty(t, Validate(field, models.ListValue([]string{"p2"})))
	})

	t.Run("TestMultiSelectDropdownValidatesAsList", func(t *testing.T) {
		field := choiceField(models.FieldDropdown, true)
		field.TypeMeta.IsMultiSelect = true

		assert.Empty(t, Validate(field, models.ListValue([]string{"p1", "p2"})))
		assert.NotEmpty(t, Validate(field, models.ListValue([]string{"x"})))
	})

	t.Run("TestDateFormats", func(t *testing.T) {
		field := models.FormField{Identifier: "f1", Label: "Due", Type: models.FieldDate, Required: false}

		assert.Empty(t, Validate(field, models.StringValue("2026-02-18")))
		assert.Empty(t, Validate(field, models.StringValue("2026-02-18T09:30:00Z")))
		assert.NotEmpty(t, Validate(field, models.StringValue("18/02/2026")))
	})

	t.Run("TestPercentageBounds", func(t *testing.T) {
		field := models.FormField{Identifier: "f1", Label: "Done", Type: models.FieldPercentageNumber, Required: false}

		assert.Empty(t, Validate(field, models.NumberValue(0)))
		assert.Empty(t, Validate(field, models.NumberValue(100)))
		assert.NotEmpty(t, Validate(field, models.NumberValue(-1)), "bounds apply even when optional")
		assert.NotEmpty(t, Validate(field, models.NumberValue(100.5)))
		assert.NotEmpty(t, Validate(field, models.StringValue("forty")))
	})

	t.Run("TestCurrencyRejectsNegative", func(t *testing.T) {
		field := models.FormField{Identifier: "f1", Label: "Budget", Type: models.FieldCurrencyNumber, Required: false}

		assert.Empty(t, Validate(field, models.NumberValue(1250.75)))
		assert.NotEmpty(t, Validate(field, models.NumberValue(-0.01)))
	})

	t.Run("TestDisplayOnlyAndUnknownKindsNeverError", func(t *testing.T) {
		instruction := models.FormField{Identifier: "f1", Label: "Read me", Type: models.FieldInstruction, Required: true}
		unknown := models.FormField{Identifier: "f2", Label: "New thing", Type: "hologram", Required: true}

		assert.Empty(t, Validate(instruction, models.FieldValue{}))
		assert.Empty(t, Validate(unknown, models.FieldValue{}))
	})
}

func TestValidateAll(t *testing.T) {
	list := []models.FormField{
		{Identifier: "a", Label: "A", Type: models.FieldText, Required: true, SortOrder: 1},
		{Identifier: "b", Label: "B", Type: models.FieldText, Required: true, SortOrder: 2},
	}
	values := models.FormValues{"a": models.StringValue("filled")}

	t.Run("TestInvisibleFieldsAreSkipped", func(t *testing.T) {
		errs := ValidateAll(list, values, map[string]bool{"a": true})
		assert.Empty(t, errs)
	})

	t.Run("TestVisibleRequiredFieldIsReported", func(t *testing.T) {
		errs := ValidateAll(list, values, map[string]bool{"a": true, "b": true})
		assert.Len(t, errs, 1)
		assert.Contains(t, errs["b"], "required")
	})
}
