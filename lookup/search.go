package lookup

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"mangatan.com/yomitan/deinflect"
	"mangatan.com/yomitan/logger"
	"mangatan.com/yomitan/store"
	"mangatan.com/yomitan/types"
	"mangatan.com/yomitan/utils"
)

// maxScanChars bounds the text window inspected after the cursor. No
// dictionary headword approaches this length, so longer substrings only waste
// queries.
const maxScanChars = 24

// TermIndex is the read side of the term store consumed by a search.
type TermIndex interface {
	LookupExact(ctx context.Context, term string) ([]types.TermRow, error)
}

// Service runs text lookups. It is stateless apart from the shared compiled
// rule sets, so one instance serves every concurrent request.
type Service struct {
	deinflector *deinflect.Deinflector
	logger      zerolog.Logger
}

func NewService(deinflector *deinflect.Deinflector) *Service {
	return &Service{
		deinflector: deinflector,
		logger:      logger.NewLogger("Lookup"),
	}
}

// Search finds every dictionary entry matching text at cursorOffset. The
// cursor is a byte offset into text; it is snapped back to the nearest
// character boundary. Substrings starting at the cursor are tried longest
// first, each one deinflected into candidate dictionary forms, and every
// candidate is looked up exactly once across the whole search. Results are
// ranked by matched length, then dictionary priority, then record frequency.
func (s *Service) Search(
	ctx context.Context,
	index TermIndex,
	dicts map[types.DictionaryID]types.DictionaryState,
	text string,
	cursorOffset int,
	language deinflect.Language,
) ([]types.RecordEntry, error) {
	runes, offsets := utils.MakeRuneByteSlices(text)

	start, ok := snapCursor(offsets, len(text), cursorOffset)
	if !ok {
		return nil, nil
	}

	window := len(runes) - start
	if window > maxScanChars {
		window = maxScanChars
	}

	latin := deinflect.LatinScriptLanguage(language)
	ideographic := deinflect.IdeographicLanguage(language)

	var entries []types.RecordEntry
	seenWords := make(map[uint64]bool)

	for length := window; length >= 1; length-- {
		if length == 1 && latin && !isStandaloneLatinChar(runes[start]) {
			continue
		}

		substring := string(runes[start : start+length])

		for _, candidate := range s.candidates(substring, language) {
			if ideographic && !ideographsCovered(candidate, substring) {
				continue
			}
			key := utils.HashString(candidate)
			if seenWords[key] {
				continue
			}
			seenWords[key] = true

			rows, err := index.LookupExact(ctx, candidate)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("term", candidate).
					Msg("skipping candidate after term query failure")
				continue
			}

			for _, row := range rows {
				state, configured := dicts[row.DictionaryID]
				if configured && !state.Enabled {
					continue
				}
				record, err := store.DecodeRecord(row.Blob)
				if err != nil {
					s.logger.Warn().
						Err(err).
						Int64("dictionaryId", int64(row.DictionaryID)).
						Msg("skipping undecodable record")
					continue
				}
				entries = append(entries, buildEntry(&record, row.DictionaryID, candidate, length))
			}
		}
	}

	rankEntries(entries, dicts)
	return entries, nil
}

// snapCursor converts a byte offset into the index of the rune containing it.
func snapCursor(offsets []int, textLen, cursorOffset int) (int, bool) {
	if cursorOffset < 0 || cursorOffset >= textLen {
		return 0, false
	}
	start := 0
	for i, offset := range offsets {
		if offset > cursorOffset {
			break
		}
		start = i
	}
	return start, true
}

// candidates produces the deinflected dictionary-form candidates of substring,
// running each script normalization variant through the rule engine. Order is
// deterministic: the raw substring's candidates come first.
func (s *Service) candidates(substring string, language deinflect.Language) []string {
	variants := []string{substring}
	appendVariant := func(variant string) {
		for _, existing := range variants {
			if existing == variant {
				return
			}
		}
		variants = append(variants, variant)
	}

	switch {
	case language == deinflect.LanguageJapanese:
		hiragana := deinflect.KatakanaToHiragana(substring)
		appendVariant(hiragana)
		appendVariant(deinflect.ReplaceProlongedSoundMark(hiragana))
	case language == deinflect.LanguageArabic:
		appendVariant(deinflect.StripArabicDiacritics(substring))
	case deinflect.LatinScriptLanguage(language):
		appendVariant(strings.ToLower(substring))
	}

	var candidates []string
	seen := make(map[string]bool)
	for _, variant := range variants {
		for _, candidate := range s.deinflector.Deinflect(language, variant) {
			if candidate == "" || seen[candidate] {
				continue
			}
			seen[candidate] = true
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

func buildEntry(record *types.StoredRecord, source types.DictionaryID, candidate string, spanChars int) types.RecordEntry {
	// Records without a headword fall back to the matched candidate word.
	term := types.Term{Headword: candidate}
	if record.Headword != nil {
		term.Headword = *record.Headword
	}
	if record.Reading != nil {
		term.Reading = *record.Reading
	}
	return types.RecordEntry{
		SpanBytes:        types.Span{Start: 0, End: uint64(len(candidate))},
		SpanChars:        types.Span{Start: 0, End: uint64(spanChars)},
		Source:           source,
		Term:             term,
		TermTags:         record.TermTags,
		Record:           record.Record,
		SortingFrequency: record.SortingFrequency(),
	}
}

// isStandaloneLatinChar reports whether a single character is worth looking up
// in a Latin-script language. Only "a" and "I" are words on their own.
func isStandaloneLatinChar(r rune) bool {
	return r == 'a' || r == 'A' || r == 'i' || r == 'I'
}

// ideographsCovered rejects deinflection candidates that introduce ideographs
// the matched text never contained. Rules operating on kana can otherwise
// fabricate forms whose kanji the reader never selected.
func ideographsCovered(candidate, source string) bool {
	for _, c := range candidate {
		if !isIdeograph(c) {
			continue
		}
		found := false
		for _, s := range source {
			if s == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func isIdeograph(c rune) bool {
	return (c >= 0x4E00 && c <= 0x9FFF) ||
		(c >= 0x3400 && c <= 0x4DBF) ||
		(c >= 0xF900 && c <= 0xFAFF)
}

