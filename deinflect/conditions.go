package deinflect

import (
	"errors"
	"fmt"
)

// ConditionDefinition declares one named grammatical state. A definition with
// SubConditions is a composite: its flags are the union of the named
// sub-conditions. A definition without SubConditions gets its own bit.
type ConditionDefinition struct {
	SubConditions []string `json:"subConditions"`
}

var (
	errMaxConditions  = errors.New("maximum number of conditions exceeded")
	errConditionCycle = errors.New("cycle detected in condition definitions")
)

// buildConditionFlags resolves condition names to bit flags by fixed-point
// iteration. Leaf conditions are assigned single bits in deterministic name
// order; composites resolve once all of their sub-conditions have flags. A
// sweep that makes no progress means the composites reference each other in a
// cycle.
func buildConditionFlags(conditions map[string]ConditionDefinition, order []string) (map[string]uint32, error) {
	flagsMap := make(map[string]uint32, len(conditions))
	nextFlagIndex := 0

	targets := make([]string, 0, len(conditions))
	targets = append(targets, order...)

	for len(targets) > 0 {
		var nextTargets []string

		for _, name := range targets {
			condition := conditions[name]
			if condition.SubConditions == nil {
				if nextFlagIndex >= 32 {
					return nil, errMaxConditions
				}
				flagsMap[name] = 1 << nextFlagIndex
				nextFlagIndex++
				continue
			}

			flags, ok := conditionFlagsStrict(flagsMap, condition.SubConditions)
			if !ok {
				nextTargets = append(nextTargets, name)
				continue
			}
			flagsMap[name] = flags
		}

		if len(nextTargets) == len(targets) {
			return nil, errConditionCycle
		}
		targets = nextTargets
	}

	return flagsMap, nil
}

// conditionFlagsStrict ORs the flags of the named conditions, reporting false
// if any name is still unresolved.
func conditionFlagsStrict(flagsMap map[string]uint32, names []string) (uint32, bool) {
	var flags uint32
	for _, name := range names {
		flag, ok := flagsMap[name]
		if !ok {
			return 0, false
		}
		flags |= flag
	}
	return flags, true
}

// conditionsMatch reports whether a rule with conditionsIn == next may fire on
// a worklist item whose state is current. Zero current state is the wildcard:
// nothing is known about the text yet, so every rule is a candidate.
func conditionsMatch(current, next uint32) bool {
	return current == 0 || current&next != 0
}

func conditionError(transformID string, ruleIndex int, field string, names []string) error {
	return fmt.Errorf("invalid %s for transform %q rule %d: unknown condition in %v",
		field, transformID, ruleIndex, names)
}
