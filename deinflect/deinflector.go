package deinflect

import "fmt"

// Language selects a compiled rule set. Values are BCP-47-ish primary tags,
// matching what the reader front end sends.
type Language string

const (
	LanguageJapanese   Language = "ja"
	LanguageEnglish    Language = "en"
	LanguageKorean     Language = "ko"
	LanguageChinese    Language = "zh"
	LanguageCantonese  Language = "yue"
	LanguageArabic     Language = "ar"
	LanguageSpanish    Language = "es"
	LanguageFrench     Language = "fr"
	LanguageGerman     Language = "de"
	LanguagePortuguese Language = "pt"
	LanguageLatin      Language = "la"
	LanguageTagalog    Language = "tl"
	LanguageBulgarian  Language = "bg"
	LanguageCzech      Language = "cs"
	LanguageDanish     Language = "da"
	LanguageGreek      Language = "el"
	LanguageEstonian   Language = "et"
	LanguagePersian    Language = "fa"
	LanguageFinnish    Language = "fi"
	LanguageHebrew     Language = "he"
	LanguageHindi      Language = "hi"
	LanguageHungarian  Language = "hu"
	LanguageIndonesian Language = "id"
	LanguageItalian    Language = "it"
	LanguageLao        Language = "lo"
	LanguageLatvian    Language = "lv"
	LanguageGeorgian   Language = "ka"
	LanguageKannada    Language = "kn"
	LanguageKhmer      Language = "km"
	LanguageMongolian  Language = "mn"
	LanguageMaltese    Language = "mt"
	LanguageDutch      Language = "nl"
	LanguageNorwegian  Language = "no"
	LanguagePolish     Language = "pl"
	LanguageRomanian   Language = "ro"
	LanguageRussian    Language = "ru"
	LanguageSwedish    Language = "sv"
	LanguageThai       Language = "th"
	LanguageTurkish    Language = "tr"
	LanguageUkrainian  Language = "uk"
	LanguageVietnamese Language = "vi"
	LanguageWelsh      Language = "cy"
)

// languagesWithRules maps each language with its own rule data to the
// embedded descriptor. Every other supported language shares the empty
// descriptor and only ever yields the unmodified input.
var languagesWithRules = []struct {
	language Language
	data     []byte
}{
	{LanguageJapanese, japaneseTransforms},
	{LanguageEnglish, englishTransforms},
	{LanguageKorean, koreanTransforms},
	{LanguageChinese, chineseTransforms},
	{LanguageArabic, arabicTransforms},
	{LanguageSpanish, spanishTransforms},
	{LanguageFrench, frenchTransforms},
	{LanguageGerman, germanTransforms},
	{LanguagePortuguese, portugueseTransforms},
	{LanguageLatin, latinTransforms},
	{LanguageTagalog, tagalogTransforms},
}

var languagesWithoutRules = []Language{
	LanguageCantonese, LanguageBulgarian, LanguageCzech, LanguageDanish,
	LanguageGreek, LanguageEstonian, LanguagePersian, LanguageFinnish,
	LanguageHebrew, LanguageHindi, LanguageHungarian, LanguageIndonesian,
	LanguageItalian, LanguageLao, LanguageLatvian, LanguageGeorgian,
	LanguageKannada, LanguageKhmer, LanguageMongolian, LanguageMaltese,
	LanguageDutch, LanguageNorwegian, LanguagePolish, LanguageRomanian,
	LanguageRussian, LanguageSwedish, LanguageThai, LanguageTurkish,
	LanguageUkrainian, LanguageVietnamese, LanguageWelsh,
}

// Deinflector holds one compiled transformer per supported language. Built
// once at startup; construction fails if any rule descriptor is malformed, so
// a process never serves a partially-built language.
type Deinflector struct {
	transformers map[Language]*LanguageTransformer
}

func New() (*Deinflector, error) {
	transformers := make(map[Language]*LanguageTransformer,
		len(languagesWithRules)+len(languagesWithoutRules))

	for _, entry := range languagesWithRules {
		lt, err := FromJSON(entry.data)
		if err != nil {
			return nil, fmt.Errorf("compiling %s transforms: %w", entry.language, err)
		}
		transformers[entry.language] = lt
	}

	empty, err := FromJSON(emptyTransforms)
	if err != nil {
		return nil, fmt.Errorf("compiling empty transforms: %w", err)
	}
	for _, language := range languagesWithoutRules {
		transformers[language] = empty
	}

	return &Deinflector{transformers: transformers}, nil
}

// Transformer returns the compiled rule set for language.
func (d *Deinflector) Transformer(language Language) (*LanguageTransformer, bool) {
	lt, ok := d.transformers[language]
	return lt, ok
}

// Deinflect returns the distinct dictionary-form candidates for text,
// first-seen order preserved, the unmodified text first. Korean routes
// through jamo disassembly.
func (d *Deinflector) Deinflect(language Language, text string) []string {
	lt, ok := d.transformers[language]
	if !ok {
		return []string{text}
	}
	if language == LanguageKorean {
		return deinflectKorean(lt, text)
	}
	return lt.DeinflectTerms(text)
}

// LatinScriptLanguage reports whether text in language should be lowercase
// folded before lookup. These languages also skip single-character
// substrings during search.
func LatinScriptLanguage(language Language) bool {
	switch language {
	case LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman,
		LanguagePortuguese, LanguageItalian, LanguageDutch, LanguageNorwegian,
		LanguageSwedish, LanguageDanish, LanguageFinnish, LanguageEstonian,
		LanguageLatvian, LanguageRomanian, LanguagePolish, LanguageCzech,
		LanguageHungarian, LanguageTurkish, LanguageIndonesian,
		LanguageVietnamese, LanguageTagalog, LanguageMaltese, LanguageWelsh,
		LanguageBulgarian, LanguageRussian, LanguageUkrainian, LanguageGreek,
		LanguageLatin, LanguageMongolian:
		return true
	}
	return false
}

// IdeographicLanguage reports whether candidates in language are subject to
// the ideograph-overlap validity check.
func IdeographicLanguage(language Language) bool {
	return language == LanguageJapanese || language == LanguageChinese
}
