package diff

// ChangeKind tells how a single field differs between two records.
type ChangeKind string

const (
	// FieldChanged means the field exists on both sides with different values.
	FieldChanged ChangeKind = "changed"
	// FieldAdded means the field only exists in the newer record.
	FieldAdded ChangeKind = "added"
	// FieldRemoved means the field only exists in the older record.
	FieldRemoved ChangeKind = "removed"
)

// Change is the old and new value of one field. The absent side is nil.
type Change struct {
	Old  any        `json:"old"`
	New  any        `json:"new"`
	Kind ChangeKind `json:"kind"`
}

// Modified is a record present in both snapshots whose content differs.
type Modified struct {
	ID      string            `json:"id"`
	Before  map[string]any    `json:"before"`
	After   map[string]any    `json:"after"`
	Changes map[string]Change `json:"changes"`
}

// Result classifies the records of two snapshots.
type Result struct {
	Added    []map[string]any `json:"added"`
	Removed  []map[string]any `json:"removed"`
	Modified []Modified       `json:"modified"`
}

// Empty reports whether both snapshots hold the same records.
func (r *Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0
}

// Summary counts the entries of each class.
type Summary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// Summary returns the per-class counts of r.
func (r *Result) Summary() Summary {
	return Summary{Added: len(r.Added), Removed: len(r.Removed), Modified: len(r.Modified)}
}
