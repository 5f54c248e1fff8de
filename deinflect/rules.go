package deinflect

import (
	"strings"

	"mangatan.com/yomitan/utils"
)

// ruleKind is the matching/deinflection behavior of one inflection pattern.
// isInflected reports whether text could have been produced by this pattern;
// deinflect computes the ancestor form.
type ruleKind interface {
	isInflected(text string) bool
	deinflect(text string) (string, bool)
}

type suffixKind struct {
	inflected   string
	deinflected string
}

func (k suffixKind) isInflected(text string) bool {
	return strings.HasSuffix(text, k.inflected)
}

func (k suffixKind) deinflect(text string) (string, bool) {
	if !strings.HasSuffix(text, k.inflected) {
		return "", false
	}
	return text[:len(text)-len(k.inflected)] + k.deinflected, true
}

type prefixKind struct {
	inflected   string
	deinflected string
}

func (k prefixKind) isInflected(text string) bool {
	return strings.HasPrefix(text, k.inflected)
}

func (k prefixKind) deinflect(text string) (string, bool) {
	if !strings.HasPrefix(text, k.inflected) {
		return "", false
	}
	return k.deinflected + text[len(k.inflected):], true
}

type wholeWordKind struct {
	inflected   string
	deinflected string
}

func (k wholeWordKind) isInflected(text string) bool {
	return text == k.inflected
}

func (k wholeWordKind) deinflect(text string) (string, bool) {
	if text != k.inflected {
		return "", false
	}
	return k.deinflected, true
}

// affixKind matches a prefix/suffix pair around a stem. The stem may be
// guarded: requireArabicLetters demands a non-empty all-Arabic-script stem,
// and the disallow runes block specific characters adjacent to the affixes.
type affixKind struct {
	inflectedPrefix      string
	deinflectedPrefix    string
	inflectedSuffix      string
	deinflectedSuffix    string
	initialDisallow      rune
	finalDisallow        rune
	requireArabicLetters bool
}

func (k affixKind) isInflected(text string) bool {
	middle, ok := k.stem(text)
	if !ok {
		return false
	}
	if k.requireArabicLetters {
		if middle == "" {
			return false
		}
		for _, c := range middle {
			if !isArabicLetter(c) {
				return false
			}
		}
	}
	if k.initialDisallow != 0 {
		if first, ok := utils.FirstRune(middle); ok && first == k.initialDisallow {
			return false
		}
	}
	if k.finalDisallow != 0 {
		if last, ok := utils.LastRune(middle); ok && last == k.finalDisallow {
			return false
		}
	}
	return true
}

func (k affixKind) deinflect(text string) (string, bool) {
	middle, ok := k.stem(text)
	if !ok {
		return "", false
	}
	return k.deinflectedPrefix + middle + k.deinflectedSuffix, true
}

func (k affixKind) stem(text string) (string, bool) {
	if !strings.HasPrefix(text, k.inflectedPrefix) {
		return "", false
	}
	stripped := text[len(k.inflectedPrefix):]
	if !strings.HasSuffix(stripped, k.inflectedSuffix) {
		return "", false
	}
	return stripped[:len(stripped)-len(k.inflectedSuffix)], true
}

func isArabicLetter(c rune) bool {
	u := uint32(c)
	return (u >= 0x0620 && u <= 0x065F) ||
		(u >= 0x066E && u <= 0x06D3) ||
		u == 0x06D5 ||
		(u >= 0x06EE && u <= 0x06EF) ||
		(u >= 0x06FA && u <= 0x06FC) ||
		u == 0x06FF
}
