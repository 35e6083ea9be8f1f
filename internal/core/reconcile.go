package core

// VisibleIDs maps a filter window to the set of row ids it displayed. The
// reconcile protocol deletes by omission, so this mapping must stay exact:
// an id wrongly included here makes Reconcile drop a row the user never saw.
// Rows without an id are never part of the set.
func VisibleIDs(l Ledger, p Period) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, t := range l.Filter(p) {
		if t.ID != "" {
			ids[t.ID] = struct{}{}
		}
	}
	return ids
}

// Reconcile merges an edited subset back into the full ledger.
//
// shown is the id set of the rows originally displayed to the editor; edited
// is whatever that view contains now. Rows of the full ledger outside shown
// are carried over untouched. Rows inside shown are replaced wholesale by the
// edited subset, which is how deletion works: a shown row omitted from edited
// does not survive. Edited rows without an id are newly added and receive a
// fresh one. The result is re-sorted most recent first; inputs are not
// mutated.
func Reconcile(full Ledger, shown map[string]struct{}, edited Ledger) Ledger {
	merged := make(Ledger, 0, len(full)+len(edited))
	for _, t := range full {
		if _, ok := shown[t.ID]; ok {
			continue
		}
		merged = append(merged, t)
	}
	for _, t := range edited {
		if t.ID == "" {
			t.ID = NewID()
		}
		merged = append(merged, t)
	}
	return merged.SortedByDateDesc()
}
