package utils

import (
	"unicode/utf8"
)

// MakeRuneByteSlices splits txt into its runes and the byte offset each rune
// starts at. The two slices are index-aligned.
func MakeRuneByteSlices(txt string) ([]rune, []int) {
	runesCount := utf8.RuneCountInString(txt)
	runes := make([]rune, runesCount)
	bytes := make([]int, runesCount)

	bytesOffset := 0
	l := len(txt)
	for i := 0; i < runesCount && bytesOffset < l; i++ {
		ch, chSize := utf8.DecodeRuneInString(txt[bytesOffset:])
		runes[i] = ch
		bytes[i] = bytesOffset
		bytesOffset += chSize

	}
	return runes, bytes
}

func FirstRune(s string) (rune, bool) {
	if len(s) == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

func LastRune(s string) (rune, bool) {
	if len(s) == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r, true
}
