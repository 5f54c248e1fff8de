package deinflect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripArabicDiacritics(t *testing.T) {
	// كَتَبَ with fatha marks reduces to كتب.
	require.Equal(t, "كتب", StripArabicDiacritics("كَتَبَ"))
	require.Equal(t, "plain", StripArabicDiacritics("plain"))
}

func TestArabicDeinflection(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	// Definite article strips.
	require.Contains(t, d.Deinflect(LanguageArabic, "الكتاب"), "كتاب")
	// Imperfect prefix strips only when the remaining stem is all Arabic
	// letters.
	require.Contains(t, d.Deinflect(LanguageArabic, "يكتب"), "كتب")
	require.NotContains(t, d.Deinflect(LanguageArabic, "يabc"), "abc")
}

func TestLanguageProperties(t *testing.T) {
	require.True(t, LatinScriptLanguage(LanguageEnglish))
	require.True(t, LatinScriptLanguage(LanguageGerman))
	require.False(t, LatinScriptLanguage(LanguageJapanese))
	require.False(t, LatinScriptLanguage(LanguageArabic))

	require.True(t, IdeographicLanguage(LanguageJapanese))
	require.True(t, IdeographicLanguage(LanguageChinese))
	require.False(t, IdeographicLanguage(LanguageKorean))
}

func TestDeinflectorCoversAllLanguages(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	for _, entry := range languagesWithRules {
		_, ok := d.Transformer(entry.language)
		require.True(t, ok, "missing transformer for %s", entry.language)
	}
	for _, language := range languagesWithoutRules {
		_, ok := d.Transformer(language)
		require.True(t, ok, "missing transformer for %s", language)
		require.Equal(t, []string{"слово"}, d.Deinflect(language, "слово"))
	}

	// Unknown languages fall back to the unmodified input.
	require.Equal(t, []string{"word"}, d.Deinflect(Language("xx"), "word"))
}
