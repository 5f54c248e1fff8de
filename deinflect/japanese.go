package deinflect

import "strings"

// KatakanaToHiragana remaps the katakana block (U+30A1..U+30F6) onto the
// hiragana block so dictionary keys stored in hiragana match katakana text.
func KatakanaToHiragana(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		if c >= 0x30A1 && c <= 0x30F6 {
			c -= 0x60
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Kana grouped by vowel row. The prolonged sound mark repeats the vowel of
// the preceding kana, so each row maps to the vowel it implies.
const (
	kanaRowA = "ぁあかがさざただなはばぱまやゃらわゎ"
	kanaRowI = "ぃいきぎしじちぢにひびぴみりゐ"
	kanaRowU = "ぅうくぐすずつづぬふぶぷむゆゅる"
	kanaRowE = "ぇえけげせぜてでねへべぺめれゑ"
	kanaRowO = "ぉおこごそぞとどのほぼぽもよょろを"
)

// ReplaceProlongedSoundMark expands ー into the vowel implied by the
// preceding kana. The substituted vowel becomes the new "previous" character,
// so runs of ー keep expanding to the same vowel.
func ReplaceProlongedSoundMark(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	var previous rune

	for _, c := range text {
		if c == 'ー' && previous != 0 {
			if vowel, ok := prolongedVowel(previous); ok {
				b.WriteRune(vowel)
				previous = vowel
				continue
			}
		}
		b.WriteRune(c)
		previous = c
	}

	return b.String()
}

func prolongedVowel(kana rune) (rune, bool) {
	switch {
	case strings.ContainsRune(kanaRowA, kana):
		return 'あ', true
	case strings.ContainsRune(kanaRowI, kana):
		return 'い', true
	case strings.ContainsRune(kanaRowU, kana):
		return 'う', true
	case strings.ContainsRune(kanaRowE, kana):
		return 'え', true
	case strings.ContainsRune(kanaRowO, kana):
		// Long o is written with う in kana orthography.
		return 'う', true
	}
	return 0, false
}
