package deinflect

import "strings"

// Arabic text is frequently written with optional diacritics that dictionary
// keys omit. They are stripped before deinflection.
var arabicOptionalDiacritics = [...]rune{
	'ؘ', 'ؙ', 'ؚ', 'ً', 'ٌ', 'ٍ', 'َ',
	'ُ', 'ِ', 'ّ', 'ْ', 'ٓ', 'ٔ', 'ٕ',
	'ٖ', 'ٰ',
}

func StripArabicDiacritics(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		if isArabicDiacritic(c) {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func isArabicDiacritic(c rune) bool {
	for _, mark := range arabicOptionalDiacritics {
		if c == mark {
			return true
		}
	}
	return false
}
