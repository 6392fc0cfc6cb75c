package fields

import (
	"strconv"
	"strings"

	"Backend-Worklink-007/src/models"
)

// SerializedField is one entry of the CMP create-request form_fields array.
// Values holds strings or {id,name} / {type,value} objects depending on the
// field kind, matching the wire format CMP expects.
type SerializedField struct {
	Identifier string        `json:"identifier"`
	Type       string        `json:"type"`
	Values     []interface{} `json:"values"`
}

type choiceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type briefValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Serialize converts one field's value into its wire form. It returns nil
// for kinds that are never embedded in the create-request body (file,
// instruction, section) and for unknown kinds.
func Serialize(field models.FormField, value models.FieldValue) *SerializedField {
	info := Kind(field.Type)
	if !info.Known || info.DisplayOnly || info.FileBased {
		return nil
	}

	out := &SerializedField{Identifier: field.Identifier, Type: field.Type}

	switch field.Type {
	case models.FieldText, models.FieldTextArea:
		out.Values = []interface{}{value.AsString()}

	case models.FieldRichText, models.FieldBrief:
		out.Values = []interface{}{briefValue{Type: "text_brief", Value: value.AsString()}}

	case models.FieldCheckbox:
		out.Values = resolveChoices(field, value.AsList())

	case models.FieldDropdown, models.FieldLabel:
		if IsMultiSelect(field) {
			out.Values = resolveChoices(field, value.AsList())
			break
		}
		out.Values = singleChoiceValues(field, value.AsString())

	case models.FieldRadioButton:
		out.Values = singleChoiceValues(field, value.AsString())

	case models.FieldDate:
		raw := strings.TrimSpace(value.AsString())
		if raw != "" && !strings.Contains(raw, "T") {
			raw += "T00:00:00Z"
		}
		out.Values = []interface{}{raw}

	case models.FieldPercentageNumber, models.FieldCurrencyNumber:
		// always a decimal string on the wire, never a JSON number
		if value.Kind != models.ValueNumber {
			out.Values = []interface{}{"0"}
			break
		}
		out.Values = []interface{}{strconv.FormatFloat(value.Num, 'f', -1, 64)}
	}
	return out
}

// SerializeForm serializes every visible field in sort order, dropping nil
// results.
func SerializeForm(fieldList []models.FormField, values models.FormValues, visible map[string]bool) []SerializedField {
	var out []SerializedField
	for _, field := range fieldList {
		if !visible[field.Identifier] {
			continue
		}
		if sf := Serialize(field, values[field.Identifier]); sf != nil {
			out = append(out, *sf)
		}
	}
	return out
}

// resolveChoices maps selected ids to {id,name} objects, silently dropping
// ids that no longer resolve against the snapshot's choice list.
func resolveChoices(field models.FormField, selected []string) []interface{} {
	out := []interface{}{}
	for _, id := range selected {
		if c, ok := FindChoice(field, id); ok {
			out = append(out, choiceRef{ID: c.ID, Name: c.Name})
		}
	}
	return out
}

// singleChoiceValues resolves a single selection, falling back to the raw
// string when the id is not a known choice.
func singleChoiceValues(field models.FormField, raw string) []interface{} {
	if c, ok := FindChoice(field, raw); ok {
		return []interface{}{choiceRef{ID: c.ID, Name: c.Name}}
	}
	return []interface{}{raw}
}
