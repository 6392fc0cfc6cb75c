package fields

import (
	"testing"

	"Backend-Worklink-007/src/models"

	"github.com/stretchr/testify/assert"
)

func testFieldList() []models.FormField {
	return []models.FormField{
		{
			Identifier: "reason",
			Label:      "Reason",
			Type:       models.FieldRadioButton,
			SortOrder:  1,
			TypeMeta: models.TypeMeta{Choices: []models.Choice{
				{ID: "c1", Name: "Bug"},
				{ID: "c2", Name: "Feature"},
			}},
			LogicRules: []models.LogicRule{
				{
					Action:           models.LogicJumpTo,
					TargetIdentifier: "deadline",
					Conditions: []models.LogicCondition{
						{FieldIdentifier: "reason", Operator: "equal", Values: []string{"c2"}},
					},
				},
			},
		},
		{Identifier: "details", Label: "Details", Type: models.FieldTextArea, SortOrder: 2},
		{Identifier: "deadline", Label: "Deadline", Type: models.FieldDate, SortOrder: 3},
	}
}

func TestEvaluateVisibility(t *testing.T) {
	t.Run("TestAllVisibleWhenNoRuleFires", func(t *testing.T) {
		list := testFieldList()
		values := models.FormValues{"reason": models.StringValue("c1")}

		state := EvaluateVisibility(list, values)

		assert.True(t, state.Visible["reason"])
		assert.True(t, state.Visible["details"])
		assert.True(t, state.Visible["deadline"])
	})

	t.Run("TestJumpToHidesInBetweenFields", func(t *testing.T) {
		list := testFieldList()
		values := models.FormValues{"reason": models.StringValue("c2")}

		state := EvaluateVisibility(list, values)

		assert.True(t, state.Visible["reason"])
		assert.False(t, state.Visible["details"], "field between source and jump target must be hidden")
		assert.True(t, state.Visible["deadline"], "jump target itself stays visible")
	})

	t.Run("TestUnknownTargetIsNoOp", func(t *testing.T) {
		list := testFieldList()
		list[0].LogicRules[0].TargetIdentifier = "nope"
		values := models.FormValues{"reason": models.StringValue("c2")}

		state := EvaluateVisibility(list, values)

		assert.True(t, state.Visible["details"])
		assert.True(t, state.Visible["deadline"])
	})

	t.Run("TestBackwardTargetIsNoOp", func(t *testing.T) {
		list := testFieldList()
		// move the rule onto the last field, pointing back at the first
		list[2].LogicRules = []models.LogicRule{{
			Action:           models.LogicJumpTo,
			TargetIdentifier: "reason",
			Conditions: []models.LogicCondition{
				{FieldIdentifier: "reason", Operator: "equal", Values: []string{"c2"}},
			},
		}}
		list[0].LogicRules = nil
		values := models.FormValues{"reason": models.StringValue("c2")}

		state := EvaluateVisibility(list, values)

		assert.True(t, state.Visible["reason"])
		assert.True(t, state.Visible["details"])
	})

	t.Run("TestRuleNeedsAllConditions", func(t *testing.T) {
		list := testFieldList()
		list[0].LogicRules[0].Conditions = append(list[0].LogicRules[0].Conditions,
			models.LogicCondition{FieldIdentifier: "details", Operator: "equal", Values: []string{"yes"}})
		values := models.FormValues{"reason": models.StringValue("c2")}

		state := EvaluateVisibility(list, values)
		assert.True(t, state.Visible["details"], "rule with one unmet condition must not fire")

		values["details"] = models.StringValue("yes")
		state = EvaluateVisibility(list, values)
		assert.False(t, state.Visible["details"])
	})

	t.Run("TestMultiValueConditionMatchesAnyElement", func(t *testing.T) {
		list := testFieldList()
		list[0].Type = models.FieldCheckbox
		values := models.FormValues{"reason": models.ListValue([]string{"c1", "c2"})}

		state := EvaluateVisibility(list, values)

		assert.False(t, state.Visible["details"])
	})

	t.Run("TestShowValuesUnionsAcrossRules", func(t *testing.T) {
		list := testFieldList()
		list[0].LogicRules = []models.LogicRule{
			{
				Action:           models.LogicShowValues,
				TargetIdentifier: "details",
				Conditions: []models.LogicCondition{
					{FieldIdentifier: "reason", Operator: "equal", Values: []string{"c1"}},
				},
			},
			{
				Action:           models.LogicShowValues,
				TargetIdentifier: "details",
				Conditions: []models.LogicCondition{
					{FieldIdentifier: "reason", Operator: "equal", Values: []string{"c1", "c3"}},
				},
			},
		}
		values := models.FormValues{"reason": models.StringValue("c1")}

		state := EvaluateVisibility(list, values)

		allowed := state.ChoiceFilters["details"]
		assert.ElementsMatch(t, []string{"c1", "c3"}, allowed, "filters union across rules without duplicates")
	})
}

func TestVisibilityStateEqual(t *testing.T) {
	t.Run("TestEqualByValue", func(t *testing.T) {
		a := VisibilityState{
			Visible:       map[string]bool{"x": true, "y": false},
			ChoiceFilters: map[string][]string{"x": {"a", "b"}},
		}
		b := VisibilityState{
			Visible:       map[string]bool{"x": true},
			ChoiceFilters: map[string][]string{"x": {"b", "a"}},
		}
		assert.True(t, a.Equal(b), "hidden entries and filter ordering must not affect equality")
	})

	t.Run("TestNotEqualOnFilterChange", func(t *testing.T) {
		a := VisibilityState{Visible: map[string]bool{"x": true}, ChoiceFilters: map[string][]string{"x": {"a"}}}
		b := VisibilityState{Visible: map[string]bool{"x": true}, ChoiceFilters: map[string][]string{"x": {"a", "b"}}}
		assert.False(t, a.Equal(b))
	})
}

func TestVisibleSet(t *testing.T) {
	state := VisibilityState{Visible: map[string]bool{"a": true, "b": false, "c": true}}
	set := state.VisibleSet()

	assert.True(t, set["a"])
	assert.True(t, set["c"])
	_, present := set["b"]
	assert.False(t, present, "hidden fields are omitted, not set to false")
}
