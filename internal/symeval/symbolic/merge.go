package symbolic

import "github.com/symexlang/symex/internal/symexpr"

// mergeLists combines two guarded-list groups under guard into one: a
// row present in both groups is re-guarded by If(guard, thenGuard,
// elsGuard) and merged value by value; a row only one group can reach
// (its length exceeds the other group's maximum) is gated by guard
// (or its negation) alone, since the other branch structurally cannot
// produce a competing value at that length.
func mergeLists(b *symexpr.Builder, guard Node, then, els *GuardedListGroup) (*GuardedListGroup, error) {
	notGuard, err := b.Not(guard)
	if err != nil {
		return nil, err
	}
	maxLen := then.maxLen()
	if els.maxLen() > maxLen {
		maxLen = els.maxLen()
	}
	out := &GuardedListGroup{Elem: then.Elem, Entries: make([]ListEntry, maxLen+1)}
	for i := 0; i <= maxLen; i++ {
		hasThen, hasEls := i <= then.maxLen(), i <= els.maxLen()
		switch {
		case hasThen && hasEls:
			tEntry, eEntry := then.Entries[i], els.Entries[i]
			rowGuard, err := b.If(guard, tEntry.Guard, eEntry.Guard)
			if err != nil {
				return nil, err
			}
			values := make([]Node, i)
			for j := 0; j < i; j++ {
				v, err := b.If(guard, tEntry.Values[j], eEntry.Values[j])
				if err != nil {
					return nil, err
				}
				values[j] = v
			}
			out.Entries[i] = ListEntry{Guard: rowGuard, Values: values}
		case hasThen:
			rowGuard, err := b.And(guard, then.Entries[i].Guard)
			if err != nil {
				return nil, err
			}
			out.Entries[i] = ListEntry{Guard: rowGuard, Values: then.Entries[i].Values}
		case hasEls:
			rowGuard, err := b.And(notGuard, els.Entries[i].Guard)
			if err != nil {
				return nil, err
			}
			out.Entries[i] = ListEntry{Guard: rowGuard, Values: els.Entries[i].Values}
		default:
			out.Entries[i] = ListEntry{Guard: b.Bool(false)}
		}
	}
	return out, nil
}
