package table

import (
	"fmt"
	"sort"
)

// Generator turns a table configuration and a record list into a Table.
type Generator struct {
	handlers  map[Kind]Handler
	separator string
	onError   func(dataset string, field Field, err error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeparator overrides the separator used to join array values.
func WithSeparator(sep string) Option {
	return func(g *Generator) {
		g.separator = sep
	}
}

// WithErrorHook is called whenever a cell fails and degrades to a placeholder.
func WithErrorHook(fn func(dataset string, field Field, err error)) Option {
	return func(g *Generator) {
		g.onError = fn
	}
}

// NewGenerator creates a Generator with every built-in kind registered.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		handlers: map[Kind]Handler{
			KindPath:        handlePath,
			KindTranslated:  handleTranslated,
			KindItem:        handleItem,
			KindMaterials:   handleMaterials,
			KindDrops:       handleDrops,
			KindEats:        handleEats,
			KindList:        handleList,
			KindLikes:       handleLikes,
			KindRewards:     handleRewards,
			KindLevel:       handleLevel,
			KindPattern:     handlePattern,
			KindPrecomputed: handlePrecomputed,
		},
		separator: DefaultSeparator,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register adds or replaces the handler of a kind.
func (g *Generator) Register(kind Kind, h Handler) {
	g.handlers[kind] = h
}

// Kinds lists the registered kinds.
func (g *Generator) Kinds() []Kind {
	kinds := make([]Kind, 0, len(g.handlers))
	for k := range g.handlers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// VisibleFields returns the in-table fields stable-sorted by display order.
func VisibleFields(cfg Config) []Field {
	fields := make([]Field, 0, len(cfg.Fields))
	for _, f := range cfg.Fields {
		if f.Display.InTable {
			fields = append(fields, f)
		}
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Display.Order < fields[j].Display.Order
	})
	return fields
}

// Headers returns the translated labels of the visible fields.
func Headers(fields []Field, tr Translator) []string {
	headers := make([]string, len(fields))
	for i, f := range fields {
		h := tr.Translate(f.Label)
		if h == "" {
			h = f.Label
		}
		headers[i] = h
	}
	return headers
}

// Render produces one row per record, in input order.
func (g *Generator) Render(cfg Config, records []Record, names NameMaps, loc Localizer) Table {
	fields := VisibleFields(cfg)
	t := Table{
		Headers: Headers(fields, loc),
		Rows:    make([][]Cell, 0, len(records)),
	}

	for _, rec := range records {
		row := make([]Cell, len(fields))
		for i, f := range fields {
			row[i] = g.cell(cfg.Dataset, &Context{
				Record:    rec,
				Field:     f,
				Names:     names,
				Loc:       loc,
				Separator: g.separator,
			})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (g *Generator) cell(dataset string, c *Context) (cell Cell) {
	defer func() {
		if r := recover(); r != nil {
			g.fail(dataset, c.Field, fmt.Errorf("render %q: %v", c.Field.KeyPath, r))
			cell = Cell{Text: KeyNotAvailable}
		}
	}()

	kind := c.Field.Kind
	if kind == "" {
		kind = KindPath
	}
	h, ok := g.handlers[kind]
	if !ok {
		g.fail(dataset, c.Field, fmt.Errorf("unknown field kind %q", kind))
		h = handlePath
	}
	return Format(h(c), c.Field.Display.Type, c.Loc)
}

func (g *Generator) fail(dataset string, f Field, err error) {
	if g.onError != nil {
		g.onError(dataset, f, err)
	}
}
