package deinflect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestKatakanaToHiragana(t *testing.T) {
	require.Equal(t, "たべる", KatakanaToHiragana("タベル"))
	require.Equal(t, "ひらがな", KatakanaToHiragana("ひらがな"))
	// The prolonged sound mark sits outside the remapped block.
	require.Equal(t, "らーめん", KatakanaToHiragana("ラーメン"))
	require.Equal(t, "abc 漢字", KatakanaToHiragana("abc 漢字"))
}

func TestReplaceProlongedSoundMark(t *testing.T) {
	require.Equal(t, "らあめん", ReplaceProlongedSoundMark("らーめん"))
	// O-row kana lengthen with う.
	require.Equal(t, "そうだ", ReplaceProlongedSoundMark("そーだ"))
	// A substituted vowel feeds the next mark.
	require.Equal(t, "かああ", ReplaceProlongedSoundMark("かーー"))
	// A leading mark has no preceding kana and stays.
	require.Equal(t, "ーす", ReplaceProlongedSoundMark("ーす"))
}

func TestJapaneseDeinflection(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	terms := d.Deinflect(LanguageJapanese, "食べました")
	require.Equal(t, "食べました", terms[0])
	require.Contains(t, terms, "食べる")

	require.Contains(t, d.Deinflect(LanguageJapanese, "食べない"), "食べる")
	require.Contains(t, d.Deinflect(LanguageJapanese, "食べている"), "食べる")
	require.Contains(t, d.Deinflect(LanguageJapanese, "高かった"), "高い")
	require.Contains(t, d.Deinflect(LanguageJapanese, "書いた"), "書く")
}

func TestJapaneseTrace(t *testing.T) {
	d, err := New()
	require.NoError(t, err)
	lt, ok := d.Transformer(LanguageJapanese)
	require.True(t, ok)

	results := lt.TransformWithTrace("食べました")
	var traced *TransformedTextTrace
	for i := range results {
		if results[i].Text == "食べる" {
			traced = &results[i]
			break
		}
	}
	require.NotNil(t, traced)
	want := []TraceFrame{{TransformID: "-masu"}}
	if diff := cmp.Diff(want, traced.Trace); diff != "" {
		t.Errorf("unexpected trace (-want +got):\n%s", diff)
	}

	v1, ok := lt.ConditionFlagsForType("v1")
	require.True(t, ok)
	require.Equal(t, v1, traced.Conditions)
}
