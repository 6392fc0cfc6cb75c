package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldValueKind tags the variant held by a FieldValue.
type FieldValueKind int

const (
	ValueEmpty FieldValueKind = iota
	ValueString
	ValueStringList
	ValueNumber
	ValueFileRef
)

// FieldValue is the tagged union for a single field's submitted value.
// Guest payloads arrive as untyped JSON; everything downstream (validator,
// serializer) works with this instead of interface{} switches.
type FieldValue struct {
	Kind    FieldValueKind `bson:"kind" json:"kind"`
	Str     string         `bson:"str,omitempty" json:"str,omitempty"`
	List    []string       `bson:"list,omitempty" json:"list,omitempty"`
	Num     float64        `bson:"num,omitempty" json:"num,omitempty"`
	FileRef string         `bson:"fileRef,omitempty" json:"fileRef,omitempty"`
}

// FormValues maps field identifiers to submitted values. Absent keys mean
// the field's type-appropriate empty default.
type FormValues map[string]FieldValue

func StringValue(s string) FieldValue    { return FieldValue{Kind: ValueString, Str: s} }
func ListValue(v []string) FieldValue    { return FieldValue{Kind: ValueStringList, List: v} }
func NumberValue(n float64) FieldValue   { return FieldValue{Kind: ValueNumber, Num: n} }
func FileRefValue(ref string) FieldValue { return FieldValue{Kind: ValueFileRef, FileRef: ref} }

// IsEmpty reports whether the value carries nothing submittable.
func (v FieldValue) IsEmpty() bool {
	switch v.Kind {
	case ValueEmpty:
		return true
	case ValueString:
		return v.Str == ""
	case ValueStringList:
		return len(v.List) == 0
	case ValueFileRef:
		return v.FileRef == ""
	default:
		return false
	}
}

// AsString returns a single string view of the value. Numbers use their
// shortest decimal form, lists return their first element.
func (v FieldValue) AsString() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueFileRef:
		return v.FileRef
	case ValueStringList:
		if len(v.List) > 0 {
			return v.List[0]
		}
	}
	return ""
}

// AsList returns every string the value represents.
func (v FieldValue) AsList() []string {
	switch v.Kind {
	case ValueStringList:
		return v.List
	case ValueString:
		if v.Str == "" {
			return nil
		}
		return []string{v.Str}
	case ValueNumber:
		return []string{v.AsString()}
	case ValueFileRef:
		if v.FileRef == "" {
			return nil
		}
		return []string{v.FileRef}
	}
	return nil
}

// ParseFormValues decodes the raw guest payload (field identifier -> JSON
// value) into typed FieldValues. Unsupported JSON shapes are rejected so
// they never reach the validator as silent zero values.
func ParseFormValues(raw map[string]json.RawMessage) (FormValues, error) {
	values := make(FormValues, len(raw))
	for identifier, msg := range raw {
		fv, err := parseFieldValue(msg)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", identifier, err)
		}
		values[identifier] = fv
	}
	return values, nil
}

func parseFieldValue(msg json.RawMessage) (FieldValue, error) {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return StringValue(s), nil
	}
	var list []string
	if err := json.Unmarshal(msg, &list); err == nil {
		return ListValue(list), nil
	}
	var n float64
	if err := json.Unmarshal(msg, &n); err == nil {
		return NumberValue(n), nil
	}
	var null interface{}
	if err := json.Unmarshal(msg, &null); err == nil && null == nil {
		return FieldValue{}, nil
	}
	return FieldValue{}, fmt.Errorf("unsupported value shape")
}
