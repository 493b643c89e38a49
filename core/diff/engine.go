package diff

import (
	"sort"

	"gamedata-wiki/core/utils"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// equalOpts treats empty and nil containers as equal, matching how decoded
// JSON is usually compared.
var equalOpts = []cmp.Option{cmpopts.EquateEmpty()}

// index maps normalised ids to records in first-occurrence order.
type index struct {
	order   []string
	records map[string]map[string]any
}

func buildIndex(records []map[string]any, idField string) *index {
	idx := &index{records: make(map[string]map[string]any, len(records))}
	for _, rec := range records {
		id, ok := utils.Key(rec[idField])
		if !ok {
			continue
		}
		if _, seen := idx.records[id]; !seen {
			idx.order = append(idx.order, id)
		}
		idx.records[id] = rec
	}
	return idx
}

// Compare classifies the records of a (older) and b (newer) by idField.
func Compare(a, b []map[string]any, idField string) *Result {
	older := buildIndex(a, idField)
	newer := buildIndex(b, idField)

	res := &Result{
		Added:    []map[string]any{},
		Removed:  []map[string]any{},
		Modified: []Modified{},
	}

	for _, id := range newer.order {
		after := newer.records[id]
		before, ok := older.records[id]
		if !ok {
			res.Added = append(res.Added, after)
			continue
		}
		if Equal(before, after) {
			continue
		}
		res.Modified = append(res.Modified, Modified{
			ID:      id,
			Before:  before,
			After:   after,
			Changes: Fields(before, after),
		})
	}

	for _, id := range older.order {
		if _, ok := newer.records[id]; !ok {
			res.Removed = append(res.Removed, older.records[id])
		}
	}

	return res
}

// Equal reports deep structural equality of two values.
func Equal(x, y any) bool {
	return cmp.Equal(x, y, equalOpts...)
}

// Fields compares two records over the union of their keys.
func Fields(before, after map[string]any) map[string]Change {
	changes := make(map[string]Change)
	for _, key := range unionKeys(before, after) {
		oldVal, inOld := before[key]
		newVal, inNew := after[key]
		switch {
		case !inOld:
			changes[key] = Change{New: newVal, Kind: FieldAdded}
		case !inNew:
			changes[key] = Change{Old: oldVal, Kind: FieldRemoved}
		case !Equal(oldVal, newVal):
			changes[key] = Change{Old: oldVal, New: newVal, Kind: FieldChanged}
		}
	}
	return changes
}

// ChangedFields returns the sorted names of the changed fields.
func (m Modified) ChangedFields() []string {
	names := make([]string, 0, len(m.Changes))
	for name := range m.Changes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unionKeys(a, b map[string]any) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	for _, m := range []map[string]any{a, b} {
		for k := range m {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
