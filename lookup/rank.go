package lookup

import (
	"sort"

	"mangatan.com/yomitan/types"
)

// rankEntries orders a result set for display: longest match first, then the
// owning dictionary's priority (lower sorts first, unconfigured dictionaries
// last), then record frequency descending. The sort is stable, so entries tied
// on every key keep their discovery order.
func rankEntries(entries []types.RecordEntry, dicts map[types.DictionaryID]types.DictionaryState) {
	priority := func(id types.DictionaryID) int64 {
		if state, ok := dicts[id]; ok {
			return state.Priority
		}
		return types.DefaultPriority
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		if a.SpanChars.End != b.SpanChars.End {
			return a.SpanChars.End > b.SpanChars.End
		}
		if pa, pb := priority(a.Source), priority(b.Source); pa != pb {
			return pa < pb
		}
		return a.SortingFrequency > b.SortingFrequency
	})
}
