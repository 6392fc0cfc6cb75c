package fields

import (
	"Backend-Worklink-007/src/models"
)

// KindInfo is the registry entry for one field kind.
type KindInfo struct {
	Known       bool
	DisplayOnly bool // never validated, never serialized (instruction, section)
	ChoiceBased bool // value must resolve against typeMeta.choices
	Numeric     bool
	HTML        bool // value is markup (richtext, brief)
	FileBased   bool
}

var kindRegistry = map[string]KindInfo{
	models.FieldText:             {Known: true},
	models.FieldTextArea:         {Known: true},
	models.FieldRichText:         {Known: true, HTML: true},
	models.FieldBrief:            {Known: true, HTML: true},
	models.FieldCheckbox:         {Known: true, ChoiceBased: true},
	models.FieldRadioButton:      {Known: true, ChoiceBased: true},
	models.FieldDropdown:         {Known: true, ChoiceBased: true},
	models.FieldLabel:            {Known: true, ChoiceBased: true},
	models.FieldDate:             {Known: true},
	models.FieldFile:             {Known: true, FileBased: true},
	models.FieldInstruction:      {Known: true, DisplayOnly: true},
	models.FieldSection:          {Known: true, DisplayOnly: true},
	models.FieldPercentageNumber: {Known: true, Numeric: true},
	models.FieldCurrencyNumber:   {Known: true, Numeric: true},
}

// Kind looks up a field kind. Unknown kinds are not an error: callers must
// skip the field in rendering, validation and the API payload instead of
// failing the whole form.
func Kind(fieldType string) KindInfo {
	return kindRegistry[fieldType]
}

// IsMultiSelect reports whether the field accepts multiple choice ids.
// checkbox always does; dropdown and label only when typeMeta says so.
func IsMultiSelect(field models.FormField) bool {
	if field.Type == models.FieldCheckbox {
		return true
	}
	if field.Type == models.FieldDropdown || field.Type == models.FieldLabel {
		return field.TypeMeta.IsMultiSelect
	}
	return false
}

// DefaultValue returns the type-appropriate empty value for a field.
func DefaultValue(field models.FormField) models.FieldValue {
	if IsMultiSelect(field) {
		return models.ListValue(nil)
	}
	return models.StringValue("")
}

// FindChoice resolves a choice id against the field's declared choice list.
func FindChoice(field models.FormField, id string) (models.Choice, bool) {
	for _, c := range field.TypeMeta.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return models.Choice{}, false
}
