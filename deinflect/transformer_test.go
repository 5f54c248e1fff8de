package deinflect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func mustTransformer(t *testing.T, descriptor *Descriptor) *LanguageTransformer {
	t.Helper()
	lt, err := NewLanguageTransformer(descriptor)
	require.NoError(t, err)
	return lt
}

func TestTransformSourceAlwaysFirst(t *testing.T) {
	lt := mustTransformer(t, &Descriptor{})
	results := lt.Transform("walked")
	require.Len(t, results, 1)
	require.Equal(t, "walked", results[0].Text)
	require.Equal(t, uint32(0), results[0].Conditions)
}

func TestConditionFlagsComposite(t *testing.T) {
	lt := mustTransformer(t, &Descriptor{
		Conditions: map[string]ConditionDefinition{
			"v1": {},
			"v5": {},
			"v":  {SubConditions: []string{"v1", "v5"}},
		},
	})
	v1, ok := lt.ConditionFlagsForType("v1")
	require.True(t, ok)
	v5, ok := lt.ConditionFlagsForType("v5")
	require.True(t, ok)
	v, ok := lt.ConditionFlagsForType("v")
	require.True(t, ok)

	require.NotZero(t, v1&^v5)
	require.NotZero(t, v5&^v1)
	require.Equal(t, v1|v5, v)
}

func TestConditionCycleDetected(t *testing.T) {
	_, err := NewLanguageTransformer(&Descriptor{
		Conditions: map[string]ConditionDefinition{
			"a": {SubConditions: []string{"b"}},
			"b": {SubConditions: []string{"a"}},
		},
	})
	require.ErrorIs(t, err, errConditionCycle)
}

func TestConditionLimitExceeded(t *testing.T) {
	conditions := make(map[string]ConditionDefinition, 33)
	for i := 0; i < 33; i++ {
		conditions[string(rune('a'+i/26))+string(rune('a'+i%26))] = ConditionDefinition{}
	}
	_, err := NewLanguageTransformer(&Descriptor{Conditions: conditions})
	require.ErrorIs(t, err, errMaxConditions)
}

func TestUnknownConditionRejected(t *testing.T) {
	_, err := NewLanguageTransformer(&Descriptor{
		Conditions: map[string]ConditionDefinition{"v1": {}},
		Transforms: []TransformDefinition{{
			ID: "bad",
			Rules: []RuleDefinition{{
				Type:          ruleTypeSuffix,
				Inflected:     "x",
				ConditionsOut: []string{"missing"},
			}},
		}},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}

func TestConditionsMatchWildcard(t *testing.T) {
	require.True(t, ConditionsMatch(0, 0))
	require.True(t, ConditionsMatch(0, 1))
	require.True(t, ConditionsMatch(3, 1))
	require.False(t, ConditionsMatch(2, 1))
	require.False(t, ConditionsMatch(2, 0))
}

// Two rules that undo each other would ping-pong forever without the
// applied-rule guard refusing a second application to the same text.
func TestMutuallyInverseRulesTerminate(t *testing.T) {
	lt := mustTransformer(t, &Descriptor{
		Transforms: []TransformDefinition{
			{ID: "ab", Rules: []RuleDefinition{{Type: ruleTypeSuffix, Inflected: "a", Deinflected: "b"}}},
			{ID: "ba", Rules: []RuleDefinition{{Type: ruleTypeSuffix, Inflected: "b", Deinflected: "a"}}},
		},
	})
	results := lt.Transform("xa")
	texts := make([]string, len(results))
	for i, result := range results {
		texts[i] = result.Text
	}
	require.Equal(t, []string{"xa", "xb", "xa"}, texts)
}

func TestRuleKinds(t *testing.T) {
	lt := mustTransformer(t, &Descriptor{
		Transforms: []TransformDefinition{
			{ID: "suffix", Rules: []RuleDefinition{{Type: ruleTypeSuffix, Inflected: "ed", Deinflected: "e"}}},
			{ID: "prefix", Rules: []RuleDefinition{{Type: ruleTypePrefix, Inflected: "un", Deinflected: ""}}},
			{ID: "whole", Rules: []RuleDefinition{{Type: ruleTypeWholeWord, Inflected: "went", Deinflected: "go"}}},
		},
	})

	require.Contains(t, lt.DeinflectTerms("baked"), "bake")
	require.Contains(t, lt.DeinflectTerms("undo"), "do")
	require.Contains(t, lt.DeinflectTerms("went"), "go")
	require.Equal(t, []string{"gone"}, lt.DeinflectTerms("gone"))
}

func TestAffixGuards(t *testing.T) {
	lt := mustTransformer(t, &Descriptor{
		Transforms: []TransformDefinition{{
			ID: "affix",
			Rules: []RuleDefinition{{
				Type:              ruleTypeAffix,
				InflectedPrefix:   "ge",
				InflectedSuffix:   "t",
				DeinflectedSuffix: "en",
				InitialDisallow:   "x",
			}},
		}},
	})

	require.Contains(t, lt.DeinflectTerms("gemacht"), "machen")
	// Stem starting with the disallowed rune never matches.
	require.Equal(t, []string{"gexact"}, lt.DeinflectTerms("gexact"))
}

func TestTraceNewestFirst(t *testing.T) {
	lt := mustTransformer(t, &Descriptor{
		Transforms: []TransformDefinition{
			{ID: "first", Rules: []RuleDefinition{{Type: ruleTypeSuffix, Inflected: "c", Deinflected: "b"}}},
			{ID: "second", Rules: []RuleDefinition{{Type: ruleTypeSuffix, Inflected: "b", Deinflected: "a"}}},
		},
	})

	results := lt.TransformWithTrace("xc")
	var chained *TransformedTextTrace
	for i := range results {
		if results[i].Text == "xa" {
			chained = &results[i]
			break
		}
	}
	require.NotNil(t, chained)
	want := []TraceFrame{{TransformID: "second"}, {TransformID: "first"}}
	if diff := cmp.Diff(want, chained.Trace); diff != "" {
		t.Errorf("unexpected trace (-want +got):\n%s", diff)
	}
}
