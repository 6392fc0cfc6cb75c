package fields

import (
	"regexp"
	"strings"
	"time"

	"Backend-Worklink-007/src/models"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// date layouts accepted from guests: plain calendar dates and full RFC3339.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Validate checks a single field's value. A nil-equivalent empty string
// result means the value is acceptable.
func Validate(field models.FormField, value models.FieldValue) string {
	info := Kind(field.Type)
	if !info.Known || info.DisplayOnly {
		return ""
	}

	switch field.Type {
	case models.FieldText, models.FieldTextArea:
		if field.Required && strings.TrimSpace(value.AsString()) == "" {
			return field.Label + " is required"
		}

	case models.FieldRichText, models.FieldBrief:
		// markup-only content counts as empty
		stripped := strings.TrimSpace(htmlTagPattern.ReplaceAllString(value.AsString(), ""))
		if field.Required && stripped == "" {
			return field.Label + " is required"
		}

	case models.FieldCheckbox:
		return validateMultiChoice(field, value)

	case models.FieldRadioButton:
		return validateSingleChoice(field, value)

	case models.FieldDropdown, models.FieldLabel:
		if IsMultiSelect(field) {
			return validateMultiChoice(field, value)
		}
		return validateSingleChoice(field, value)

	case models.FieldDate:
		raw := strings.TrimSpace(value.AsString())
		if raw == "" {
			if field.Required {
				return field.Label + " is required"
			}
			return ""
		}
		if !parsesAsDate(raw) {
			return field.Label + " must be a valid date"
		}

	case models.FieldFile:
		if field.Required && value.IsEmpty() {
			return field.Label + " is required"
		}

	case models.FieldPercentageNumber:
		if value.IsEmpty() {
			if field.Required {
				return field.Label + " is required"
			}
			return ""
		}
		if value.Kind != models.ValueNumber {
			return field.Label + " must be a number"
		}
		if value.Num < 0 || value.Num > 100 {
			return field.Label + " must be between 0 and 100"
		}

	case models.FieldCurrencyNumber:
		if value.IsEmpty() {
			if field.Required {
				return field.Label + " is required"
			}
			return ""
		}
		if value.Kind != models.ValueNumber {
			return field.Label + " must be a number"
		}
		if value.Num < 0 {
			return field.Label + " must not be negative"
		}
	}
	return ""
}

// ValidateAll validates every field whose identifier is in visible.
// Invisible fields are never validated, required or not.
func ValidateAll(fieldList []models.FormField, values models.FormValues, visible map[string]bool) map[string]string {
	errs := map[string]string{}
	for _, field := range fieldList {
		if !visible[field.Identifier] {
			continue
		}
		if msg := Validate(field, values[field.Identifier]); msg != "" {
			errs[field.Identifier] = msg
		}
	}
	return errs
}

func validateSingleChoice(field models.FormField, value models.FieldValue) string {
	raw := value.AsString()
	if raw == "" {
		if field.Required {
			return field.Label + " is required"
		}
		return ""
	}
	if _, ok := FindChoice(field, raw); !ok {
		return field.Label + ": invalid selection"
	}
	return ""
}

// validateMultiChoice checks the selected-id list. Unknown ids are rejected
// even when the field is not required.
func validateMultiChoice(field models.FormField, value models.FieldValue) string {
	selected := value.AsList()
	if field.Required && len(selected) == 0 {
		return field.Label + " is required"
	}
	for _, id := range selected {
		if _, ok := FindChoice(field, id); !ok {
			return field.Label + ": invalid selection"
		}
	}
	return ""
}

func parsesAsDate(raw string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return true
		}
	}
	return false
}
