package deinflect

import (
	"fmt"
	"sort"
)

// Rule is one compiled inflection pattern. conditionsIn is the state mask the
// current worklist item must intersect (zero item state is the wildcard);
// conditionsOut is the state assigned after the rule fires. transformID and
// ruleIndex identify the rule for the loop guard.
type Rule struct {
	transformID   string
	ruleIndex     int
	conditionsIn  uint32
	conditionsOut uint32
	kind          ruleKind
}

// Transform is a named, ordered group of rules. The grouping is
// organizational; matching iterates every rule of every transform.
type Transform struct {
	id    string
	rules []Rule
}

// LanguageTransformer is the compiled, immutable rule set for one language.
// It is built once at startup and is safe for any number of concurrent
// readers.
type LanguageTransformer struct {
	transforms     []Transform
	conditionFlags map[string]uint32
}

// TransformedText is one deinflection candidate: the ancestor text and the
// grammatical state the producing rule left it in.
type TransformedText struct {
	Text       string
	Conditions uint32
}

// TraceFrame records one fired rule by its owning transform.
type TraceFrame struct {
	TransformID string
}

// TransformedTextTrace extends TransformedText with the fired rules, most
// recently applied first.
type TransformedTextTrace struct {
	Text       string
	Conditions uint32
	Trace      []TraceFrame
}

func NewLanguageTransformer(descriptor *Descriptor) (*LanguageTransformer, error) {
	names := make([]string, 0, len(descriptor.Conditions))
	for name := range descriptor.Conditions {
		names = append(names, name)
	}
	sort.Strings(names)

	conditionFlags, err := buildConditionFlags(descriptor.Conditions, names)
	if err != nil {
		return nil, err
	}

	transforms := make([]Transform, 0, len(descriptor.Transforms))
	for _, transformDef := range descriptor.Transforms {
		rules := make([]Rule, 0, len(transformDef.Rules))
		for ruleIndex, ruleDef := range transformDef.Rules {
			conditionsIn, ok := conditionFlagsStrict(conditionFlags, ruleDef.ConditionsIn)
			if !ok {
				return nil, conditionError(transformDef.ID, ruleIndex, "conditionsIn", ruleDef.ConditionsIn)
			}
			conditionsOut, ok := conditionFlagsStrict(conditionFlags, ruleDef.ConditionsOut)
			if !ok {
				return nil, conditionError(transformDef.ID, ruleIndex, "conditionsOut", ruleDef.ConditionsOut)
			}
			kind, err := compileKind(ruleDef)
			if err != nil {
				return nil, fmt.Errorf("transform %q rule %d: %w", transformDef.ID, ruleIndex, err)
			}
			rules = append(rules, Rule{
				transformID:   transformDef.ID,
				ruleIndex:     ruleIndex,
				conditionsIn:  conditionsIn,
				conditionsOut: conditionsOut,
				kind:          kind,
			})
		}
		transforms = append(transforms, Transform{id: transformDef.ID, rules: rules})
	}

	return &LanguageTransformer{
		transforms:     transforms,
		conditionFlags: conditionFlags,
	}, nil
}

func FromJSON(data []byte) (*LanguageTransformer, error) {
	descriptor, err := parseDescriptor(data)
	if err != nil {
		return nil, err
	}
	return NewLanguageTransformer(descriptor)
}

// traceNode is one arena entry of the worklist. Traces are reconstructed by
// walking parent links instead of cloning frame vectors per step.
type traceNode struct {
	text       string
	conditions uint32
	parent     int
	rule       *Rule
}

// TransformWithTrace explores every sequence of rule applications that could
// have produced sourceText from a dictionary-form ancestor. The worklist only
// grows; termination relies on the loop guard, which refuses to apply the
// same rule to the same text twice within one derivation.
func (lt *LanguageTransformer) TransformWithTrace(sourceText string) []TransformedTextTrace {
	nodes := make([]traceNode, 1, 8)
	nodes[0] = traceNode{text: sourceText, conditions: 0, parent: -1}

	for i := 0; i < len(nodes); i++ {
		current := nodes[i]

		for ti := range lt.transforms {
			transform := &lt.transforms[ti]
			for ri := range transform.rules {
				rule := &transform.rules[ri]
				if !conditionsMatch(current.conditions, rule.conditionsIn) {
					continue
				}
				if !rule.kind.isInflected(current.text) {
					continue
				}
				if ruleAlreadyApplied(nodes, i, rule, current.text) {
					continue
				}
				deinflected, ok := rule.kind.deinflect(current.text)
				if !ok {
					continue
				}
				nodes = append(nodes, traceNode{
					text:       deinflected,
					conditions: rule.conditionsOut,
					parent:     i,
					rule:       rule,
				})
			}
		}
	}

	results := make([]TransformedTextTrace, len(nodes))
	for i, node := range nodes {
		results[i] = TransformedTextTrace{
			Text:       node.text,
			Conditions: node.conditions,
			Trace:      collectTrace(nodes, i),
		}
	}
	return results
}

func (lt *LanguageTransformer) Transform(sourceText string) []TransformedText {
	traced := lt.TransformWithTrace(sourceText)
	results := make([]TransformedText, len(traced))
	for i, item := range traced {
		results[i] = TransformedText{Text: item.Text, Conditions: item.Conditions}
	}
	return results
}

// DeinflectTerms returns the distinct surface forms of Transform, first-seen
// order preserved.
func (lt *LanguageTransformer) DeinflectTerms(sourceText string) []string {
	seen := make(map[string]bool)
	var results []string
	for _, item := range lt.Transform(sourceText) {
		if seen[item.Text] {
			continue
		}
		seen[item.Text] = true
		results = append(results, item.Text)
	}
	return results
}

// ConditionFlagsForType resolves one condition name to its flags.
func (lt *LanguageTransformer) ConditionFlagsForType(conditionType string) (uint32, bool) {
	flags, ok := lt.conditionFlags[conditionType]
	return flags, ok
}

// ConditionFlagsForTypes ORs the flags of the named conditions, ignoring
// unknown names.
func (lt *LanguageTransformer) ConditionFlagsForTypes(conditionTypes []string) uint32 {
	var flags uint32
	for _, conditionType := range conditionTypes {
		flags |= lt.conditionFlags[conditionType]
	}
	return flags
}

// ConditionsMatch exposes the wildcard-aware mask intersection for callers
// asserting on engine output.
func ConditionsMatch(current, next uint32) bool {
	return conditionsMatch(current, next)
}

// ruleAlreadyApplied walks the derivation of nodes[idx] checking whether rule
// already fired on text anywhere along it. Each step from a node to its
// parent represents applying node.rule to the parent's text.
func ruleAlreadyApplied(nodes []traceNode, idx int, rule *Rule, text string) bool {
	for i := idx; nodes[i].parent >= 0; i = nodes[i].parent {
		applied := nodes[i].rule
		appliedTo := nodes[nodes[i].parent].text
		if applied.transformID == rule.transformID &&
			applied.ruleIndex == rule.ruleIndex &&
			appliedTo == text {
			return true
		}
	}
	return false
}

func collectTrace(nodes []traceNode, idx int) []TraceFrame {
	if nodes[idx].parent < 0 {
		return nil
	}
	var frames []TraceFrame
	for i := idx; nodes[i].parent >= 0; i = nodes[i].parent {
		frames = append(frames, TraceFrame{TransformID: nodes[i].rule.transformID})
	}
	return frames
}
