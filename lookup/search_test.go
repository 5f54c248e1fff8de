package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"mangatan.com/yomitan/deinflect"
	"mangatan.com/yomitan/store"
	"mangatan.com/yomitan/types"
)

type fakeIndex struct {
	rows    map[string][]types.TermRow
	failing map[string]bool
	queries []string
}

func (f *fakeIndex) LookupExact(_ context.Context, term string) ([]types.TermRow, error) {
	f.queries = append(f.queries, term)
	if f.failing[term] {
		return nil, errors.New("fake index: query failed")
	}
	return f.rows[term], nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	deinflector, err := deinflect.New()
	require.NoError(t, err)
	return NewService(deinflector)
}

func encodeRecord(t *testing.T, id types.DictionaryID, headword string, frequency int64) types.TermRow {
	t.Helper()
	blob, err := store.EncodeRecord(&types.StoredRecord{
		DictionaryID: id,
		Headword:     &headword,
		Record:       json.RawMessage(fmt.Sprintf(`{"popularity":%d}`, frequency)),
	})
	require.NoError(t, err)
	return types.TermRow{DictionaryID: id, Blob: blob}
}

func TestSearchRanking(t *testing.T) {
	service := newTestService(t)
	index := &fakeIndex{rows: map[string][]types.TermRow{
		"abc": {
			encodeRecord(t, 1, "abc", 9),
			encodeRecord(t, 2, "abc", 0),
		},
		"ab": {
			encodeRecord(t, 3, "ab", 0),
		},
	}}
	dicts := map[types.DictionaryID]types.DictionaryState{
		1: {Enabled: true, Priority: 5},
		2: {Enabled: true, Priority: 1},
	}

	entries, err := service.Search(context.Background(), index, dicts, "abc", 0, "xx")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Longest match first; within a length, lower priority number first.
	// Dictionary 3 is unconfigured and sorts with the default priority.
	require.Equal(t, types.DictionaryID(2), entries[0].Source)
	require.Equal(t, types.DictionaryID(1), entries[1].Source)
	require.Equal(t, types.DictionaryID(3), entries[2].Source)
	require.Equal(t, uint64(3), entries[0].SpanChars.End)
	require.Equal(t, uint64(2), entries[2].SpanChars.End)
}

func TestSearchFrequencyBreaksTies(t *testing.T) {
	service := newTestService(t)
	index := &fakeIndex{rows: map[string][]types.TermRow{
		"ab": {
			encodeRecord(t, 1, "ab", 3),
			encodeRecord(t, 1, "ab", 70),
		},
	}}
	dicts := map[types.DictionaryID]types.DictionaryState{1: {Enabled: true, Priority: 1}}

	entries, err := service.Search(context.Background(), index, dicts, "ab", 0, "xx")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, int64(70), entries[0].SortingFrequency)
	require.Equal(t, int64(3), entries[1].SortingFrequency)
}

func TestSearchDeterministic(t *testing.T) {
	service := newTestService(t)
	rows := map[string][]types.TermRow{
		"abc": {encodeRecord(t, 1, "abc", 1), encodeRecord(t, 2, "abc", 1)},
		"ab":  {encodeRecord(t, 3, "ab", 1)},
	}
	dicts := map[types.DictionaryID]types.DictionaryState{
		1: {Enabled: true, Priority: 1},
		2: {Enabled: true, Priority: 1},
		3: {Enabled: true, Priority: 1},
	}

	first, err := service.Search(context.Background(), &fakeIndex{rows: rows}, dicts, "abc", 0, "xx")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := service.Search(context.Background(), &fakeIndex{rows: rows}, dicts, "abc", 0, "xx")
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestSearchSkipsSingleLatinChars(t *testing.T) {
	service := newTestService(t)
	index := &fakeIndex{rows: map[string][]types.TermRow{
		"x": {encodeRecord(t, 1, "x", 0)},
	}}

	entries, err := service.Search(context.Background(), index, nil, "x", 0, deinflect.LanguageEnglish)
	require.NoError(t, err)
	require.Empty(t, entries)
	require.Empty(t, index.queries)

	// "a" and "I" are real words and stay in.
	index = &fakeIndex{rows: map[string][]types.TermRow{
		"a": {encodeRecord(t, 1, "a", 0)},
	}}
	entries, err = service.Search(context.Background(), index, nil, "a", 0, deinflect.LanguageEnglish)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSearchQueriesEachWordOnce(t *testing.T) {
	service := newTestService(t)
	index := &fakeIndex{rows: map[string][]types.TermRow{
		"dog": {encodeRecord(t, 1, "dog", 0)},
	}}

	entries, err := service.Search(context.Background(), index, nil, "dogs", 0, deinflect.LanguageEnglish)
	require.NoError(t, err)

	queried := make(map[string]int)
	for _, term := range index.queries {
		queried[term]++
	}
	require.Equal(t, 1, queried["dog"], "queries: %v", index.queries)

	// The char span covers the substring that produced the candidate; the
	// byte span is the matched word itself.
	require.Len(t, entries, 1)
	require.Equal(t, uint64(4), entries[0].SpanChars.End)
	require.Equal(t, uint64(3), entries[0].SpanBytes.End)
}

func TestSearchContinuesPastQueryErrors(t *testing.T) {
	service := newTestService(t)
	index := &fakeIndex{
		rows: map[string][]types.TermRow{
			"ab": {encodeRecord(t, 1, "ab", 0)},
		},
		failing: map[string]bool{"abc": true},
	}

	entries, err := service.Search(context.Background(), index, nil, "abc", 0, "xx")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, types.DictionaryID(1), entries[0].Source)
}

func TestSearchHeadwordFallback(t *testing.T) {
	service := newTestService(t)
	blob, err := store.EncodeRecord(&types.StoredRecord{DictionaryID: 1})
	require.NoError(t, err)
	index := &fakeIndex{rows: map[string][]types.TermRow{
		"ab": {{DictionaryID: 1, Blob: blob}},
	}}

	entries, err := service.Search(context.Background(), index, nil, "ab", 0, "xx")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "ab", entries[0].Term.Headword)
}

func TestSearchCursorSnapping(t *testing.T) {
	service := newTestService(t)
	index := &fakeIndex{rows: map[string][]types.TermRow{
		"食べる": {encodeRecord(t, 1, "食べる", 0)},
	}}

	// Byte offset 1 lands inside the first rune and snaps back to it.
	entries, err := service.Search(context.Background(), index, nil, "食べる", 1, deinflect.LanguageJapanese)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, uint64(3), entries[0].SpanChars.End)

	// Out of range yields nothing.
	entries, err = service.Search(context.Background(), index, nil, "食べる", 100, deinflect.LanguageJapanese)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSearchDisabledDictionary(t *testing.T) {
	service := newTestService(t)
	index := &fakeIndex{rows: map[string][]types.TermRow{
		"ab": {
			encodeRecord(t, 1, "ab", 0),
			encodeRecord(t, 2, "ab", 0),
		},
	}}
	dicts := map[types.DictionaryID]types.DictionaryState{
		1: {Enabled: false, Priority: 1},
		2: {Enabled: true, Priority: 1},
	}

	entries, err := service.Search(context.Background(), index, dicts, "ab", 0, "xx")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, types.DictionaryID(2), entries[0].Source)
}

func TestSearchSkipsCorruptRecords(t *testing.T) {
	service := newTestService(t)
	index := &fakeIndex{rows: map[string][]types.TermRow{
		"ab": {
			{DictionaryID: 1, Blob: []byte("not snappy")},
			encodeRecord(t, 2, "ab", 0),
		},
	}}

	entries, err := service.Search(context.Background(), index, nil, "ab", 0, "xx")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, types.DictionaryID(2), entries[0].Source)
}

func TestIdeographsCovered(t *testing.T) {
	require.True(t, ideographsCovered("食べる", "食べました"))
	require.True(t, ideographsCovered("たべる", "たべました"))
	require.False(t, ideographsCovered("高い", "たかい"))
	require.False(t, ideographsCovered("書き込む", "書きこむ"))
}
