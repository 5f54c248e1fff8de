package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashString(t *testing.T) {
	require.Equal(t, HashString("食べる"), HashString("食べる"))
	require.NotEqual(t, HashString("食べる"), HashString("食べた"))
}

func TestMakeRuneByteSlices(t *testing.T) {
	runes, offsets := MakeRuneByteSlices("a食b")
	require.Equal(t, []rune{'a', '食', 'b'}, runes)
	require.Equal(t, []int{0, 1, 4}, offsets)

	runes, offsets = MakeRuneByteSlices("")
	require.Empty(t, runes)
	require.Empty(t, offsets)
}

func TestFirstLastRune(t *testing.T) {
	first, ok := FirstRune("漢字")
	require.True(t, ok)
	require.Equal(t, '漢', first)

	last, ok := LastRune("漢字")
	require.True(t, ok)
	require.Equal(t, '字', last)

	_, ok = FirstRune("")
	require.False(t, ok)
	_, ok = LastRune("")
	require.False(t, ok)
}
