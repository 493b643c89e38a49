package table

import "golang.org/x/text/message"

// Record is one decoded game-data entry.
type Record = map[string]any

// DisplayType selects how the Cell Formatter renders a resolved value.
type DisplayType string

const (
	TypeText    DisplayType = "text"
	TypeNumber  DisplayType = "number"
	TypeBoolean DisplayType = "boolean"
	TypeImage   DisplayType = "image"
)

// Kind selects the value handler of a field. An empty kind is KindPath.
type Kind string

const (
	// KindPath resolves the key path generically.
	KindPath Kind = "path"
	// KindTranslated translates the string found at the key path.
	KindTranslated Kind = "translated"
	// KindItem renders a single id through the item name map.
	KindItem Kind = "item"
	// KindMaterials renders a list of {id, count} as "name*count".
	KindMaterials Kind = "materials"
	// KindDrops renders a list of {id, chance} as "name (p%)".
	KindDrops Kind = "drops"
	// KindEats renders an {id: value} object as "name(value)".
	KindEats Kind = "eats"
	// KindList joins a plain array.
	KindList Kind = "list"
	// KindLikes renders a list of {pet_id, xp} through the pet name map.
	KindLikes Kind = "likes"
	// KindRewards renders an id list through the item name map.
	KindRewards Kind = "rewards"
	// KindLevel picks the first present level attribute.
	KindLevel Kind = "level"
	// KindPattern counts the ids of a 2-D forge grid.
	KindPattern Kind = "pattern"
	// KindPrecomputed passes a value computed upstream.
	KindPrecomputed Kind = "precomputed"
)

// Display controls whether and how a field shows up as a column.
type Display struct {
	Type    DisplayType `yaml:"type" json:"type"`
	Order   int         `yaml:"order" json:"order"`
	InTable bool        `yaml:"inTable" json:"inTable"`
}

// Field describes how one column is extracted, labeled, ordered and formatted.
type Field struct {
	KeyPath string  `yaml:"keyPath" json:"keyPath"`
	Label   string  `yaml:"label" json:"label"`
	Kind    Kind    `yaml:"kind,omitempty" json:"kind,omitempty"`
	Display Display `yaml:"display" json:"display"`
	// Sources lists alternative attributes for KindLevel, in priority order.
	Sources []string `yaml:"sources,omitempty" json:"sources,omitempty"`
}

// Config is the table configuration of one dataset type.
type Config struct {
	Dataset string  `yaml:"dataset" json:"dataset"`
	Title   string  `yaml:"title" json:"title"`
	IDField string  `yaml:"idField" json:"idField"`
	Fields  []Field `yaml:"fields" json:"fields"`
}

// Translator translates a key with positional arguments.
type Translator interface {
	Translate(key string, args ...any) string
}

// Localizer is a Translator that also formats numbers for its locale.
type Localizer interface {
	Translator
	Printer() *message.Printer
}

// NameMap maps a normalised id to its translated name.
type NameMap map[string]string

// Name map slots used by the built-in handlers.
const (
	NamesItems = "items"
	NamesPets  = "pets"
)

// NameMaps holds the independent name maps of one render pass.
type NameMaps map[string]NameMap

// Cell is a formatted table cell. Raw cells already hold markup.
type Cell struct {
	Text string
	Raw  bool
}

// Table is the output of the generator: header labels and formatted rows.
type Table struct {
	Headers []string
	Rows    [][]Cell
}
