package fields

import (
	"sort"

	"Backend-Worklink-007/src/models"
)

// VisibilityState is the derived visibility for one set of form values.
// Visible holds the identifiers currently shown; ChoiceFilters maps a field
// identifier to the allow-listed choice ids (absent key = all allowed).
type VisibilityState struct {
	Visible       map[string]bool
	ChoiceFilters map[string][]string
}

// AllVisible builds the state the authoritative server-side path uses: every
// field visible, no choice filters. A client-reported visibility set is
// never trusted for validation.
func AllVisible(fieldList []models.FormField) VisibilityState {
	state := VisibilityState{
		Visible:       make(map[string]bool, len(fieldList)),
		ChoiceFilters: map[string][]string{},
	}
	for _, f := range fieldList {
		state.Visible[f.Identifier] = true
	}
	return state
}

// EvaluateVisibility recomputes visibility from scratch for the given sorted
// field list and current values. The recomputation is total: callers discard
// the previous state entirely after any value change. Visibility is
// monotonic within one pass — once a rule hides a field, no later rule can
// show it again.
func EvaluateVisibility(fieldList []models.FormField, values models.FormValues) VisibilityState {
	state := AllVisible(fieldList)

	indexOf := make(map[string]int, len(fieldList))
	for i, f := range fieldList {
		indexOf[f.Identifier] = i
	}

	for sourceIdx, field := range fieldList {
		for _, rule := range field.LogicRules {
			if !ruleFires(rule, values) {
				continue
			}
			switch rule.Action {
			case models.LogicJumpTo:
				targetIdx, ok := indexOf[rule.TargetIdentifier]
				if !ok || targetIdx <= sourceIdx {
					continue // unknown or backward target is a no-op
				}
				for i := sourceIdx + 1; i < targetIdx; i++ {
					state.Visible[fieldList[i].Identifier] = false
				}
			case models.LogicShowValues:
				allowed := state.ChoiceFilters[rule.TargetIdentifier]
				for _, cond := range rule.Conditions {
					for _, v := range cond.Values {
						if !containsString(allowed, v) {
							allowed = append(allowed, v)
						}
					}
				}
				state.ChoiceFilters[rule.TargetIdentifier] = allowed
			}
		}
	}
	return state
}

// ruleFires reports whether every condition of the rule holds. A condition
// holds when the referenced field's current value equals one of the literal
// values; multi-valued fields match if any element does.
func ruleFires(rule models.LogicRule, values models.FormValues) bool {
	if len(rule.Conditions) == 0 {
		return false
	}
	for _, cond := range rule.Conditions {
		if !conditionHolds(cond, values) {
			return false
		}
	}
	return true
}

func conditionHolds(cond models.LogicCondition, values models.FormValues) bool {
	current := values[cond.FieldIdentifier]
	for _, candidate := range current.AsList() {
		if containsString(cond.Values, candidate) {
			return true
		}
	}
	return false
}

// VisibleSet returns the visible identifiers as a plain set for the
// validator/serializer entry points.
func (s VisibilityState) VisibleSet() map[string]bool {
	out := make(map[string]bool, len(s.Visible))
	for id, visible := range s.Visible {
		if visible {
			out[id] = true
		}
	}
	return out
}

// Equal compares two states by value. Interactive clients use this to diff
// the previous and recomputed state, so the comparison must be set/array
// based, never reference based.
func (s VisibilityState) Equal(other VisibilityState) bool {
	if len(s.visibleIDs()) != len(other.visibleIDs()) {
		return false
	}
	for _, id := range s.visibleIDs() {
		if !other.Visible[id] {
			return false
		}
	}
	if len(s.ChoiceFilters) != len(other.ChoiceFilters) {
		return false
	}
	for id, allowed := range s.ChoiceFilters {
		otherAllowed, ok := other.ChoiceFilters[id]
		if !ok || !sameStringSet(allowed, otherAllowed) {
			return false
		}
	}
	return true
}

func (s VisibilityState) visibleIDs() []string {
	ids := make([]string, 0, len(s.Visible))
	for id, visible := range s.Visible {
		if visible {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
