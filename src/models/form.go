package models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field kinds supported by the CMP work-request templates.
// Unknown kinds coming from newer CMP versions are kept as-is and skipped
// by the validator/serializer.
const (
	FieldText             = "text"
	FieldTextArea         = "text_area"
	FieldRichText         = "richtext"
	FieldCheckbox         = "checkbox"
	FieldRadioButton      = "radio_button"
	FieldDropdown         = "dropdown"
	FieldLabel            = "label"
	FieldDate             = "date"
	FieldFile             = "file"
	FieldBrief            = "brief"
	FieldInstruction      = "instruction"
	FieldSection          = "section"
	FieldPercentageNumber = "percentage_number"
	FieldCurrencyNumber   = "currency_number"
)

// LogicRule actions.
const (
	LogicJumpTo     = "jump_to"
	LogicShowValues = "show_values"
)

// --- Form ---
// Form is a snapshot of a CMP work-request template published as a guest form.
type Form struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	TemplateID   string             `bson:"templateId" json:"templateId"`
	WorkflowID   string             `bson:"workflowId,omitempty" json:"workflowId,omitempty"`
	CredentialID primitive.ObjectID `bson:"credentialId,omitempty" json:"credentialId,omitempty"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	Fields       []FormField        `bson:"fields" json:"fields"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// --- FormField ---
// FormField is one field of the snapshot. Immutable once embedded in a form.
type FormField struct {
	Identifier string      `bson:"identifier" json:"identifier"`
	Label      string      `bson:"label" json:"label"`
	Type       string      `bson:"type" json:"type"`
	Required   bool        `bson:"required" json:"required"`
	HelperText string      `bson:"helperText,omitempty" json:"helperText,omitempty"`
	SortOrder  int         `bson:"sortOrder" json:"sortOrder"`
	TypeMeta   TypeMeta    `bson:"typeMeta,omitempty" json:"typeMeta,omitempty"`
	LogicRules []LogicRule `bson:"logicRules,omitempty" json:"logicRules,omitempty"`
}

// TypeMeta carries the kind-specific settings.
type TypeMeta struct {
	Choices       []Choice `bson:"choices,omitempty" json:"choices,omitempty"`
	IsMultiSelect bool     `bson:"isMultiSelect,omitempty" json:"isMultiSelect,omitempty"`
	DecimalPlaces int      `bson:"decimalPlaces,omitempty" json:"decimalPlaces,omitempty"`
	CurrencyCode  string   `bson:"currencyCode,omitempty" json:"currencyCode,omitempty"`
}

// Choice is one selectable option of a choice-based field.
type Choice struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Color string `bson:"color,omitempty" json:"color,omitempty"`
}

// LogicRule fires when all of its conditions hold.
type LogicRule struct {
	Action           string           `bson:"action" json:"action"`
	TargetIdentifier string           `bson:"targetIdentifier" json:"targetIdentifier"`
	Conditions       []LogicCondition `bson:"conditions" json:"conditions"`
}

// LogicCondition compares a field's current value against literal values.
// The only supported operator is "equal".
type LogicCondition struct {
	FieldIdentifier string   `bson:"fieldIdentifier" json:"fieldIdentifier"`
	Operator        string   `bson:"operator" json:"operator"`
	Values          []string `bson:"values" json:"values"`
}

// SortedFields returns the form's fields ordered by SortOrder. The stored
// order is not trusted because snapshots can be patched by the admin panel.
func (f *Form) SortedFields() []FormField {
	out := make([]FormField, len(f.Fields))
	copy(out, f.Fields)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}
