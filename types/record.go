package types

import "encoding/json"

// DictionaryID identifies one imported dictionary inside the term store.
type DictionaryID int64

// Span is a half-open [Start, End) range, in bytes or characters depending on
// the field it is stored in.
type Span struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

// Term is the canonical headword/reading pair a record is filed under.
type Term struct {
	Headword string `json:"headword"`
	Reading  string `json:"reading,omitempty"`
}

// TermRow is one raw row returned by the term store: the owning dictionary and
// the compressed, serialized record blob.
type TermRow struct {
	DictionaryID DictionaryID
	Blob         []byte
}

// StoredRecord is the decoded shape of a term store blob. The record payload
// itself stays opaque; the import subsystem owns its schema.
type StoredRecord struct {
	DictionaryID DictionaryID    `json:"dictionary_id"`
	Headword     *string         `json:"headword"`
	Reading      *string         `json:"reading"`
	TermTags     []string        `json:"term_tags,omitempty"`
	Record       json.RawMessage `json:"record"`
}

// SortingFrequency extracts the record's popularity rank, defaulting to 0 when
// the payload carries none.
func (rec *StoredRecord) SortingFrequency() int64 {
	if len(rec.Record) == 0 {
		return 0
	}
	var probe struct {
		Popularity int64 `json:"popularity"`
	}
	if err := json.Unmarshal(rec.Record, &probe); err != nil {
		return 0
	}
	return probe.Popularity
}

// RecordEntry is a single ranked match returned to the caller. SpanBytes.End
// is the byte length of the matched dictionary word; SpanChars.End reports how
// many characters of the original text the match consumed, which may differ
// from the matched word's own length after deinflection.
type RecordEntry struct {
	SpanBytes        Span            `json:"span_bytes"`
	SpanChars        Span            `json:"span_chars"`
	Source           DictionaryID    `json:"source"`
	Term             Term            `json:"term"`
	TermTags         []string        `json:"term_tags,omitempty"`
	Record           json.RawMessage `json:"record"`
	SortingFrequency int64           `json:"source_sorting_frequency"`
}

// DictionaryState is the live per-dictionary configuration consumed during a
// search. Dictionaries without a state entry are included and sort last.
type DictionaryState struct {
	Enabled  bool  `json:"enabled"`
	Priority int64 `json:"priority"`
}

// DefaultPriority sorts unconfigured dictionaries after every configured one.
const DefaultPriority int64 = 999
