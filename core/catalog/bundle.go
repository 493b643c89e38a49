package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Dataset names of a release bundle.
const (
	ItemBase          = "item_base"
	CarpentryFormulas = "CARPENTRY_FORMULAS"
	ForgeFormulas     = "FORGE_FORMULAS"
	NpcBase           = "npc_base"
	Pets              = "pets"
	SkillQuest        = "SkillQuest"
	ObjectBase        = "object_base"
	Forge             = "Forge"
	ImageSheet        = "IMAGE_SHEET"
)

// Required lists the datasets every bundle must contain.
var Required = []string{
	ItemBase,
	CarpentryFormulas,
	ForgeFormulas,
	NpcBase,
	Pets,
	SkillQuest,
	ObjectBase,
	Forge,
	ImageSheet,
}

var (
	// ErrDatasetMissing is returned when a bundle lacks a required dataset.
	ErrDatasetMissing = errors.New("dataset missing")
	// ErrInvalidBundle is returned when a bundle is not valid JSON.
	ErrInvalidBundle = errors.New("invalid bundle")
)

// MissingError names every required dataset absent from a bundle.
type MissingError struct {
	Version  string
	Datasets []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("release %s: %s: %s", e.Version, ErrDatasetMissing, strings.Join(e.Datasets, ", "))
}

// Is reports ErrDatasetMissing.
func (e *MissingError) Is(target error) bool {
	return target == ErrDatasetMissing
}

// Paths maps a dataset name to its gjson path inside the bundle. Datasets
// without an entry are read from the top-level key of the same name.
type Paths map[string]string

func (p Paths) path(name string) string {
	if path, ok := p[name]; ok && path != "" {
		return path
	}
	return gjsonEscape(name)
}

// Bundle holds the decoded datasets of one release.
// A Bundle is read-only after Parse returns.
type Bundle struct {
	Version  string
	datasets map[string]any
}

// NewBundle builds a bundle from already decoded datasets.
func NewBundle(version string, datasets map[string]any) *Bundle {
	b := &Bundle{Version: version, datasets: make(map[string]any, len(datasets))}
	for k, v := range datasets {
		b.datasets[k] = v
	}
	return b
}

// Parse extracts the required datasets from a bundle document.
func Parse(version string, data []byte, paths Paths) (*Bundle, error) {
	return ParseDatasets(version, data, paths, Required)
}

// ParseDatasets extracts the named datasets from a bundle document.
func ParseDatasets(version string, data []byte, paths Paths, names []string) (*Bundle, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("release %s: %w", version, ErrInvalidBundle)
	}

	results := gjson.GetManyBytes(data, pathsOf(paths, names)...)

	b := &Bundle{Version: version, datasets: make(map[string]any, len(names))}
	var missing []string
	for i, name := range names {
		r := results[i]
		if !r.Exists() || r.Type == gjson.Null {
			missing = append(missing, name)
			continue
		}
		b.datasets[name] = r.Value()
	}

	if len(missing) > 0 {
		return nil, &MissingError{Version: version, Datasets: missing}
	}
	return b, nil
}

func pathsOf(paths Paths, names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = paths.path(name)
	}
	return out
}

// gjsonEscape escapes the characters gjson treats as path syntax.
func gjsonEscape(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Names returns the dataset names held by the bundle.
func (b *Bundle) Names() []string {
	names := make([]string, 0, len(b.datasets))
	for name := range b.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Raw returns the decoded dataset as is.
func (b *Bundle) Raw(name string) (any, bool) {
	v, ok := b.datasets[name]
	return v, ok
}

// Records returns an array dataset as records. Non-object elements are skipped.
func (b *Bundle) Records(name string) ([]map[string]any, bool) {
	v, ok := b.datasets[name]
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	return ToRecords(list), true
}

// Object returns an object dataset.
func (b *Bundle) Object(name string) (map[string]any, bool) {
	v, ok := b.datasets[name]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// ToRecords keeps the object elements of list.
func ToRecords(list []any) []map[string]any {
	records := make([]map[string]any, 0, len(list))
	for _, e := range list {
		if m, ok := e.(map[string]any); ok {
			records = append(records, m)
		}
	}
	return records
}
