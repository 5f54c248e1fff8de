package deinflect

import "strings"

// Korean conjugation happens at the jamo level, so the Korean rule data is
// written against disassembled text: Hangul syllable blocks are split into
// compatibility jamo before the engine runs and reassembled afterwards.

const (
	hangulBase = 0xAC00
	hangulLast = 0xD7A3

	vowelCount    = 21
	trailingCount = 28
)

var hangulLeading = []rune("ㄱㄲㄴㄷㄸㄹㅁㅂㅃㅅㅆㅇㅈㅉㅊㅋㅌㅍㅎ")

var hangulVowels = []rune("ㅏㅐㅑㅒㅓㅔㅕㅖㅗㅘㅙㅚㅛㅜㅝㅞㅟㅠㅡㅢㅣ")

// Index 0 is the empty trailing slot.
var hangulTrailing = []rune{0,
	'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ', 'ㄼ', 'ㄽ',
	'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ',
	'ㅌ', 'ㅍ', 'ㅎ',
}

// Compound vowels split into their component vowels when disassembling.
var hangulVowelParts = map[rune]string{
	'ㅘ': "ㅗㅏ", 'ㅙ': "ㅗㅐ", 'ㅚ': "ㅗㅣ",
	'ㅝ': "ㅜㅓ", 'ㅞ': "ㅜㅔ", 'ㅟ': "ㅜㅣ",
	'ㅢ': "ㅡㅣ",
}

// Trailing consonant clusters split into their component consonants.
var hangulTrailingParts = map[rune]string{
	'ㄳ': "ㄱㅅ", 'ㄵ': "ㄴㅈ", 'ㄶ': "ㄴㅎ",
	'ㄺ': "ㄹㄱ", 'ㄻ': "ㄹㅁ", 'ㄼ': "ㄹㅂ", 'ㄽ': "ㄹㅅ",
	'ㄾ': "ㄹㅌ", 'ㄿ': "ㄹㅍ", 'ㅀ': "ㄹㅎ",
	'ㅄ': "ㅂㅅ",
}

var (
	hangulLeadingIndex  = indexJamo(hangulLeading)
	hangulVowelIndex    = indexJamo(hangulVowels)
	hangulTrailingIndex = indexJamo(hangulTrailing)

	hangulVowelCombine    = combineJamo(hangulVowelParts)
	hangulTrailingCombine = combineJamo(hangulTrailingParts)
)

func indexJamo(jamo []rune) map[rune]int {
	index := make(map[rune]int, len(jamo))
	for i, r := range jamo {
		if r == 0 {
			continue
		}
		index[r] = i
	}
	return index
}

func combineJamo(parts map[rune]string) map[[2]rune]rune {
	combine := make(map[[2]rune]rune, len(parts))
	for whole, split := range parts {
		pair := []rune(split)
		combine[[2]rune{pair[0], pair[1]}] = whole
	}
	return combine
}

// DisassembleHangul splits every syllable block into its leading consonant,
// vowel, and trailing consonant jamo. Characters outside the syllable range
// pass through unchanged.
func DisassembleHangul(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		if c < hangulBase || c > hangulLast {
			b.WriteRune(c)
			continue
		}
		idx := int(c) - hangulBase
		trailing := idx % trailingCount
		vowel := (idx / trailingCount) % vowelCount
		leading := idx / trailingCount / vowelCount

		b.WriteRune(hangulLeading[leading])
		writeVowelJamo(&b, hangulVowels[vowel])
		if trailing > 0 {
			writeTrailingJamo(&b, hangulTrailing[trailing])
		}
	}
	return b.String()
}

func writeVowelJamo(b *strings.Builder, vowel rune) {
	if parts, ok := hangulVowelParts[vowel]; ok {
		b.WriteString(parts)
		return
	}
	b.WriteRune(vowel)
}

func writeTrailingJamo(b *strings.Builder, trailing rune) {
	if parts, ok := hangulTrailingParts[trailing]; ok {
		b.WriteString(parts)
		return
	}
	b.WriteRune(trailing)
}

// AssembleHangul recomposes a jamo stream into syllable blocks. A consonant
// only becomes a trailing jamo (or joins a trailing cluster) when the jamo
// after it is not a vowel; otherwise it is the next syllable's leading
// consonant.
func AssembleHangul(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(runes) {
		leading, isLeading := hangulLeadingIndex[runes[i]]
		if !isLeading || i+1 >= len(runes) || !isVowelJamo(runes[i+1]) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		vowelRune := runes[i+1]
		i += 2
		if i < len(runes) && isVowelJamo(runes[i]) {
			if whole, ok := hangulVowelCombine[[2]rune{vowelRune, runes[i]}]; ok {
				vowelRune = whole
				i++
			}
		}
		vowel := hangulVowelIndex[vowelRune]

		trailing := 0
		if i < len(runes) && isTrailingStart(runes, i) {
			trailingRune := runes[i]
			i++
			if i < len(runes) && isTrailingStart(runes, i) {
				if whole, ok := hangulTrailingCombine[[2]rune{trailingRune, runes[i]}]; ok {
					trailingRune = whole
					i++
				}
			}
			trailing = hangulTrailingIndex[trailingRune]
		}

		syllable := hangulBase + (leading*vowelCount+vowel)*trailingCount + trailing
		b.WriteRune(rune(syllable))
	}

	return b.String()
}

func isVowelJamo(r rune) bool {
	_, ok := hangulVowelIndex[r]
	return ok
}

// isTrailingStart reports whether runes[i] can attach to the current syllable
// as (part of) its trailing consonant. A consonant followed by a vowel
// belongs to the next syllable instead.
func isTrailingStart(runes []rune, i int) bool {
	if _, ok := hangulTrailingIndex[runes[i]]; !ok {
		return false
	}
	return i+1 >= len(runes) || !isVowelJamo(runes[i+1])
}

// deinflectKorean runs the engine over disassembled text and reassembles the
// resulting jamo forms, deduplicating by assembled surface form.
func deinflectKorean(lt *LanguageTransformer, text string) []string {
	disassembled := DisassembleHangul(text)
	seen := make(map[string]bool)
	var results []string
	for _, term := range lt.DeinflectTerms(disassembled) {
		assembled := AssembleHangul(term)
		if seen[assembled] {
			continue
		}
		seen[assembled] = true
		results = append(results, assembled)
	}
	return results
}
