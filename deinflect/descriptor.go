package deinflect

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Descriptor is the declarative rule data one language ships with. Descriptors
// are static application data; they are compiled once at startup and never
// re-read per request.
type Descriptor struct {
	Conditions map[string]ConditionDefinition `json:"conditions"`
	Transforms []TransformDefinition          `json:"transforms"`
}

type TransformDefinition struct {
	ID    string           `json:"id"`
	Rules []RuleDefinition `json:"rules"`
}

// RuleDefinition is the raw JSON shape of one rule. Which literal fields are
// required depends on Type; compileKind validates per kind.
type RuleDefinition struct {
	Type                 string   `json:"type"`
	Inflected            string   `json:"inflected"`
	Deinflected          string   `json:"deinflected"`
	InflectedPrefix      string   `json:"inflectedPrefix"`
	DeinflectedPrefix    string   `json:"deinflectedPrefix"`
	InflectedSuffix      string   `json:"inflectedSuffix"`
	DeinflectedSuffix    string   `json:"deinflectedSuffix"`
	InitialDisallow      string   `json:"initialDisallow"`
	FinalDisallow        string   `json:"finalDisallow"`
	RequireArabicLetters bool     `json:"requireArabicLetters"`
	ConditionsIn         []string `json:"conditionsIn"`
	ConditionsOut        []string `json:"conditionsOut"`
}

const (
	ruleTypeSuffix            = "suffix"
	ruleTypePrefix            = "prefix"
	ruleTypeWholeWord         = "wholeWord"
	ruleTypeAffix             = "affix"
	ruleTypePhrasalSuffix     = "englishPhrasalSuffix"
	ruleTypePhrasalInterposed = "englishPhrasalInterposedObject"
)

func parseDescriptor(data []byte) (*Descriptor, error) {
	var descriptor Descriptor
	if err := json.Unmarshal(data, &descriptor); err != nil {
		return nil, fmt.Errorf("could not parse transform descriptor: %w", err)
	}
	return &descriptor, nil
}

// compileKind turns one rule declaration into its matcher. All literal and
// guard validation happens here, at compile time; request-time matching never
// fails on malformed input text.
func compileKind(def RuleDefinition) (ruleKind, error) {
	switch def.Type {
	case ruleTypeSuffix:
		if def.Inflected == "" {
			return nil, fmt.Errorf("missing inflected for %s rule", def.Type)
		}
		return suffixKind{inflected: def.Inflected, deinflected: def.Deinflected}, nil
	case ruleTypePrefix:
		if def.Inflected == "" {
			return nil, fmt.Errorf("missing inflected for %s rule", def.Type)
		}
		return prefixKind{inflected: def.Inflected, deinflected: def.Deinflected}, nil
	case ruleTypeWholeWord:
		if def.Inflected == "" {
			return nil, fmt.Errorf("missing inflected for %s rule", def.Type)
		}
		return wholeWordKind{inflected: def.Inflected, deinflected: def.Deinflected}, nil
	case ruleTypeAffix:
		initialDisallow, err := parseGuardChar(def.InitialDisallow)
		if err != nil {
			return nil, err
		}
		finalDisallow, err := parseGuardChar(def.FinalDisallow)
		if err != nil {
			return nil, err
		}
		return affixKind{
			inflectedPrefix:      def.InflectedPrefix,
			deinflectedPrefix:    def.DeinflectedPrefix,
			inflectedSuffix:      def.InflectedSuffix,
			deinflectedSuffix:    def.DeinflectedSuffix,
			initialDisallow:      initialDisallow,
			finalDisallow:        finalDisallow,
			requireArabicLetters: def.RequireArabicLetters,
		}, nil
	case ruleTypePhrasalSuffix:
		if def.Inflected == "" {
			return nil, fmt.Errorf("missing inflected for %s rule", def.Type)
		}
		return phrasalSuffixKind{inflected: def.Inflected, deinflected: def.Deinflected}, nil
	case ruleTypePhrasalInterposed:
		return phrasalInterposedKind{}, nil
	default:
		return nil, fmt.Errorf("unsupported rule type: %s", def.Type)
	}
}

// parseGuardChar parses an optional single-character disallow guard. Zero
// means "no guard".
func parseGuardChar(value string) (rune, error) {
	if value == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(value)
	if size != len(value) {
		return 0, fmt.Errorf("expected single character, got %q", value)
	}
	return r, nil
}
