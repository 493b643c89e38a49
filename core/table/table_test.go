package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// testLocalizer translates through a fixed map and returns the key otherwise.
type testLocalizer struct {
	messages map[string]string
}

func (l testLocalizer) Translate(key string, args ...any) string {
	s, ok := l.messages[key]
	if !ok {
		return key
	}
	for i, a := range args {
		s = strings.ReplaceAll(s, "{"+string(rune('0'+i))+"}", a.(string))
	}
	return s
}

func (l testLocalizer) Printer() *message.Printer {
	return message.NewPrinter(language.English)
}

var en = testLocalizer{}

func TestResolve(t *testing.T) {
	rec := Record{
		"a": map[string]any{
			"b":    5.0,
			"list": []any{1.0, 2.0},
			"nil":  nil,
		},
		"s": "text",
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{"nested value", "a.b", 5.0},
		{"missing terminal", "a.c", ""},
		{"missing intermediate", "x.b", ""},
		{"through scalar", "s.b", ""},
		{"nil value", "a.nil", ""},
		{"joined array", "a.list[]", "1, 2"},
		{"raw array", "a.list", []any{1.0, 2.0}},
		{"empty path", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(rec, tt.path))
		})
	}

	assert.Equal(t, "1|2", ResolveSep(rec, "a.list[]", "|"))
	assert.Equal(t, "", Resolve(nil, "a"))
}

func TestFormat(t *testing.T) {
	loc := testLocalizer{messages: map[string]string{"yes": "oui", "no": "non"}}

	tests := []struct {
		name  string
		value any
		typ   DisplayType
		want  Cell
	}{
		{"boolean true", true, TypeBoolean, Cell{Text: "oui"}},
		{"boolean zero", 0.0, TypeBoolean, Cell{Text: "non"}},
		{"boolean string", "x", TypeBoolean, Cell{Text: "oui"}},
		{"empty number", "", TypeNumber, Cell{}},
		{"empty boolean", "", TypeBoolean, Cell{}},
		{"nil", nil, TypeText, Cell{}},
		{"grouped number", 1234567.0, TypeNumber, Cell{Text: "1,234,567"}},
		{"non numeric number", "abc", TypeNumber, Cell{Text: "abc"}},
		{"text", 12.0, TypeText, Cell{Text: "12"}},
		{"unspecified", "plain", "", Cell{Text: "plain"}},
		{
			"image",
			"icons/a&b.png",
			TypeImage,
			Cell{Text: `<img src="icons/a&amp;b.png" alt="Icon" style="width: 32px; height: 32px;">`, Raw: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.value, tt.typ, loc))
		})
	}
}

func TestBuildNameMap(t *testing.T) {
	base := []Record{
		{"b_i": 1.0, "name": "foo"},
		{"b_i": 2.0},
		{"name": "orphan"},
	}

	names := BuildNameMap(base, DefaultIDField, DefaultNameField, en)
	assert.Equal(t, NameMap{"1": "foo"}, names)

	name, ok := names.Lookup("1")
	assert.True(t, ok)
	assert.Equal(t, "foo", name)

	_, ok = names.Lookup(2)
	assert.False(t, ok)

	fr := testLocalizer{messages: map[string]string{"foo": "truc"}}
	assert.Equal(t, NameMap{"1": "truc"}, BuildNameMap(base, DefaultIDField, DefaultNameField, fr))
}

func itemConfig() Config {
	return Config{
		Dataset: "items",
		IDField: "b_i",
		Fields: []Field{
			{KeyPath: "name", Label: "Name", Display: Display{Type: TypeText, Order: 2, InTable: true}},
			{KeyPath: "b_i", Label: "ID", Display: Display{Type: TypeNumber, Order: 1, InTable: true}},
			{KeyPath: "hidden", Label: "Hidden", Display: Display{Type: TypeText, Order: 0}},
			{KeyPath: "params.price", Label: "Price", Display: Display{Type: TypeNumber, Order: 2, InTable: true}},
			{KeyPath: "tradeable", Label: "Tradeable", Display: Display{Type: TypeBoolean, Order: 3, InTable: true}},
		},
	}
}

func TestGenerator_Render(t *testing.T) {
	records := []Record{
		{"b_i": 1.0, "name": "Sword", "params": map[string]any{"price": 12000.0}, "tradeable": true},
		{"b_i": 2.0, "name": "Shield", "tradeable": 0.0},
		{},
	}

	gen := NewGenerator()
	tbl := gen.Render(itemConfig(), records, nil, en)

	assert.Equal(t, []string{"ID", "Name", "Price", "Tradeable"}, tbl.Headers)
	require.Len(t, tbl.Rows, len(records))
	for _, row := range tbl.Rows {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, [][]string{
		{"1", "Sword", "12,000", "yes"},
		{"2", "Shield", "", "no"},
		{"", "", "", ""},
	}, tbl.Strings())

	again := gen.Render(itemConfig(), records, nil, en)
	assert.Equal(t, tbl, again)
	assert.Equal(t, tbl.Markup(), again.Markup())
}

func TestGenerator_TranslatedHeaders(t *testing.T) {
	loc := testLocalizer{messages: map[string]string{"Name": "Nom", "ID": ""}}
	tbl := NewGenerator().Render(itemConfig(), nil, nil, loc)

	assert.Equal(t, []string{"ID", "Nom", "Price", "Tradeable"}, tbl.Headers)
	assert.Empty(t, tbl.Rows)
}

func TestGenerator_Handlers(t *testing.T) {
	loc := testLocalizer{messages: map[string]string{
		"unknown_item":     "Unknown item {0}",
		"unknown_material": "Unknown material",
		"none":             "None",
	}}
	names := NameMaps{
		NamesItems: NameMap{"1": "Wood", "2": "Iron", "10": "Gem"},
		NamesPets:  NameMap{"7": "Cat"},
	}

	tests := []struct {
		name  string
		field Field
		rec   Record
		want  string
	}{
		{
			name:  "item",
			field: Field{KeyPath: "item_id", Kind: KindItem},
			rec:   Record{"item_id": 2.0},
			want:  "Iron",
		},
		{
			name:  "unknown item",
			field: Field{KeyPath: "item_id", Kind: KindItem},
			rec:   Record{"item_id": 3.0},
			want:  "Unknown item 3",
		},
		{
			name:  "item absent",
			field: Field{KeyPath: "item_id", Kind: KindItem},
			rec:   Record{},
			want:  "",
		},
		{
			name:  "materials",
			field: Field{KeyPath: "materials", Kind: KindMaterials},
			rec:   Record{"materials": []any{map[string]any{"id": 1.0, "count": 3.0}, map[string]any{"id": 99.0, "count": 1.0}}},
			want:  "Wood*3, Unknown material (99)*1",
		},
		{
			name:  "drops",
			field: Field{KeyPath: "drops", Kind: KindDrops},
			rec:   Record{"drops": []any{map[string]any{"id": 2.0, "chance": 0.125}, map[string]any{"id": 5.0, "chance": 1.0}}},
			want:  "Iron (12.5%), Unknown item 5 (100%)",
		},
		{
			name:  "drops absent",
			field: Field{KeyPath: "drops", Kind: KindDrops},
			rec:   Record{},
			want:  "None",
		},
		{
			name:  "eats sorted numerically",
			field: Field{KeyPath: "eats", Kind: KindEats},
			rec:   Record{"eats": map[string]any{"10": 5.0, "2": 1.0}},
			want:  "Iron(1), Gem(5)",
		},
		{
			name:  "list",
			field: Field{KeyPath: "tags", Kind: KindList},
			rec:   Record{"tags": []any{"a", "b"}},
			want:  "a, b",
		},
		{
			name:  "likes",
			field: Field{KeyPath: "likes", Kind: KindLikes},
			rec:   Record{"likes": []any{map[string]any{"pet_id": 7.0, "xp": 20.0}, map[string]any{"pet_id": 8.0, "xp": 1.0}}},
			want:  "Cat (XP: 20), unknown_pet (8) (XP: 1)",
		},
		{
			name:  "rewards",
			field: Field{KeyPath: "rewards", Kind: KindRewards},
			rec:   Record{"rewards": []any{1.0, 42.0}},
			want:  "Wood, 42",
		},
		{
			name:  "level priority",
			field: Field{KeyPath: "level", Kind: KindLevel},
			rec:   Record{"fletching_level": 4.0, "wizardry_level": 9.0},
			want:  "4",
		},
		{
			name:  "level custom sources",
			field: Field{KeyPath: "lvl", Kind: KindLevel, Sources: []string{"wizardry_level"}},
			rec:   Record{"fletching_level": 4.0, "wizardry_level": 9.0},
			want:  "9",
		},
		{
			name:  "pattern",
			field: Field{KeyPath: "pattern", Kind: KindPattern},
			rec:   Record{"pattern": []any{[]any{2.0, -1.0, 1.0}, []any{2.0, 1.0, 2.0}, []any{-1.0, 77.0, -1.0}}},
			want:  "Wood*2, Iron*3, Unknown item 77*1",
		},
		{
			name:  "translated",
			field: Field{KeyPath: "kind", Kind: KindTranslated},
			rec:   Record{"kind": "none"},
			want:  "None",
		},
		{
			name:  "precomputed",
			field: Field{KeyPath: "successRate", Kind: KindPrecomputed},
			rec:   Record{"successRate": "12.50%"},
			want:  "12.50%",
		},
	}

	gen := NewGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.field.Display = Display{Type: TypeText, InTable: true}
			cfg := Config{Fields: []Field{tt.field}}
			tbl := gen.Render(cfg, []Record{tt.rec}, names, loc)
			require.Len(t, tbl.Rows, 1)
			assert.Equal(t, tt.want, tbl.Rows[0][0].Text)
		})
	}
}

func TestUnknown_AlwaysContainsID(t *testing.T) {
	for _, tr := range []Translator{
		en,
		testLocalizer{messages: map[string]string{"unknown_item": "?"}},
		testLocalizer{messages: map[string]string{"unknown_item": "Item #{0}"}},
	} {
		assert.Contains(t, Unknown(tr, KeyUnknownItem, 1234.0), "1234")
	}
}

func TestGenerator_FailingHandlerDegrades(t *testing.T) {
	var failures []string
	gen := NewGenerator(WithErrorHook(func(dataset string, f Field, err error) {
		failures = append(failures, dataset+":"+f.KeyPath)
	}))
	gen.Register("boom", func(c *Context) any {
		panic("broken record")
	})

	cfg := Config{
		Dataset: "items",
		Fields: []Field{
			{KeyPath: "x", Kind: "boom", Display: Display{InTable: true}},
			{KeyPath: "name", Display: Display{InTable: true, Order: 1}},
			{KeyPath: "name", Kind: "missing", Display: Display{InTable: true, Order: 2}},
		},
	}
	tbl := gen.Render(cfg, []Record{{"name": "a"}, {"name": "b"}}, nil, en)

	assert.Equal(t, [][]string{{"N/A", "a", "a"}, {"N/A", "b", "b"}}, tbl.Strings())
	assert.Equal(t, []string{"items:x", "items:name", "items:x", "items:name"}, failures)
	assert.Contains(t, gen.Kinds(), Kind("boom"))
}

func TestVisibleFields_StableOrder(t *testing.T) {
	cfg := Config{Fields: []Field{
		{Label: "c", Display: Display{Order: 1, InTable: true}},
		{Label: "a", Display: Display{Order: 0, InTable: true}},
		{Label: "d", Display: Display{Order: 1, InTable: true}},
		{Label: "b", Display: Display{Order: 0, InTable: false}},
	}}

	fields := VisibleFields(cfg)
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.Label
	}
	assert.Equal(t, []string{"a", "c", "d"}, labels)
}

func TestFormatChance(t *testing.T) {
	assert.Equal(t, "12.5%", FormatChance(0.125))
	assert.Equal(t, "100%", FormatChance(1.0))
	assert.Equal(t, "0.0001%", FormatChance(0.000001))
	assert.Equal(t, "N/A", FormatChance("x"))
}

func TestToMarkup(t *testing.T) {
	headers := []string{"Name", "<Icon>"}
	rows := [][]Cell{
		{{Text: "Fish & Chips"}, {Text: `<img src="a.png">`, Raw: true}},
	}

	got := ToMarkup(headers, rows)
	assert.Equal(t,
		"<table><thead><tr><th>Name</th><th>&lt;Icon&gt;</th></tr></thead>"+
			"<tbody><tr><td>Fish &amp; Chips</td><td><img src=\"a.png\"></td></tr></tbody></table>",
		got)

	assert.Equal(t, "<table><thead><tr></tr></thead><tbody></tbody></table>", ToMarkup(nil, nil))
}
