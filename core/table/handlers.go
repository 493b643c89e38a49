package table

import (
	"sort"
	"strconv"
	"strings"

	"gamedata-wiki/core/utils"
)

// Placeholder keys rendered by the handlers.
const (
	KeyNone            = "none"
	KeyNotAvailable    = "N/A"
	KeyUnknownItem     = "unknown_item"
	KeyUnknownMaterial = "unknown_material"
	KeyUnknownPet      = "unknown_pet"
)

// defaultLevelSources is the priority order of KindLevel.
var defaultLevelSources = []string{"level", "fletching_level", "wizardry_level"}

// Context carries everything a handler may read for one cell.
type Context struct {
	Record    Record
	Field     Field
	Names     NameMaps
	Loc       Localizer
	Separator string
}

// Handler resolves the raw value of one cell.
type Handler func(c *Context) any

// Unknown renders the placeholder for an id missing from a name map.
// The result always contains the raw id.
func Unknown(tr Translator, key string, id any) string {
	raw := utils.ToString(id)
	s := tr.Translate(key, raw)
	if !strings.Contains(s, raw) {
		s += " (" + raw + ")"
	}
	return s
}

func (c *Context) name(slot string, id any, unknownKey string) string {
	if name, ok := c.Names[slot].Lookup(id); ok {
		return name
	}
	return Unknown(c.Loc, unknownKey, id)
}

func (c *Context) none() string {
	return c.Loc.Translate(KeyNone)
}

func handlePath(c *Context) any {
	return ResolveSep(c.Record, c.Field.KeyPath, c.Separator)
}

func handleTranslated(c *Context) any {
	v := handlePath(c)
	s := utils.ToString(v)
	if s == "" {
		return ""
	}
	return c.Loc.Translate(s)
}

func handlePrecomputed(c *Context) any {
	v, ok := lookup(c.Record, c.Field.KeyPath)
	if !ok {
		return ""
	}
	return v
}

func handleItem(c *Context) any {
	v, ok := lookup(c.Record, c.Field.KeyPath)
	if !ok {
		return ""
	}
	return c.name(NamesItems, v, KeyUnknownItem)
}

func handleMaterials(c *Context) any {
	v, _ := lookup(c.Record, c.Field.KeyPath)
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return ""
	}

	parts := make([]string, 0, len(list))
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name := c.name(NamesItems, m["id"], KeyUnknownMaterial)
		parts = append(parts, name+"*"+utils.ToString(m["count"]))
	}
	return strings.Join(parts, c.Separator)
}

func handleDrops(c *Context) any {
	v, _ := lookup(c.Record, c.Field.KeyPath)
	list, ok := v.([]any)
	if !ok {
		return c.none()
	}

	parts := make([]string, 0, len(list))
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name := c.name(NamesItems, m["id"], KeyUnknownItem)
		parts = append(parts, name+" ("+FormatChance(m["chance"])+")")
	}
	return strings.Join(parts, c.Separator)
}

// FormatChance renders a 0..1 probability as a percentage with six decimal
// places and trailing zeros trimmed.
func FormatChance(chance any) string {
	f, ok := utils.ToFloat(chance)
	if !ok {
		return KeyNotAvailable
	}
	s := strconv.FormatFloat(f*100, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s + "%"
}

func handleEats(c *Context) any {
	v, _ := lookup(c.Record, c.Field.KeyPath)
	m, ok := v.(map[string]any)
	if !ok {
		return c.none()
	}

	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sortIDs(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		name := c.name(NamesItems, id, KeyUnknownItem)
		parts = append(parts, name+"("+utils.ToString(m[id])+")")
	}
	return strings.Join(parts, c.Separator)
}

func handleList(c *Context) any {
	v, _ := lookup(c.Record, c.Field.KeyPath)
	list, ok := v.([]any)
	if !ok {
		return c.none()
	}
	return joinValues(list, c.Separator)
}

func handleLikes(c *Context) any {
	v, _ := lookup(c.Record, c.Field.KeyPath)
	list, ok := v.([]any)
	if !ok {
		return c.none()
	}

	parts := make([]string, 0, len(list))
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name := c.name(NamesPets, m["pet_id"], KeyUnknownPet)
		parts = append(parts, name+" (XP: "+utils.ToString(m["xp"])+")")
	}
	return strings.Join(parts, c.Separator)
}

func handleRewards(c *Context) any {
	v, _ := lookup(c.Record, c.Field.KeyPath)
	list, ok := v.([]any)
	if !ok {
		return c.none()
	}

	parts := make([]string, len(list))
	for i, id := range list {
		if name, ok := c.Names[NamesItems].Lookup(id); ok {
			parts[i] = name
			continue
		}
		parts[i] = utils.ToString(id)
	}
	return strings.Join(parts, c.Separator)
}

func handleLevel(c *Context) any {
	sources := c.Field.Sources
	if len(sources) == 0 {
		sources = defaultLevelSources
	}
	for _, attr := range sources {
		if v, ok := c.Record[attr]; ok && v != nil {
			return v
		}
	}
	return handlePath(c)
}

func handlePattern(c *Context) any {
	v, _ := lookup(c.Record, c.Field.KeyPath)
	grid, ok := v.([]any)
	if !ok {
		return ""
	}

	counts := make(map[string]int)
	var ids []string
	count := func(cell any) {
		id, ok := utils.Key(cell)
		if !ok || id == "-1" {
			return
		}
		if _, seen := counts[id]; !seen {
			ids = append(ids, id)
		}
		counts[id]++
	}
	for _, row := range grid {
		if cells, ok := row.([]any); ok {
			for _, cell := range cells {
				count(cell)
			}
			continue
		}
		count(row)
	}
	sortIDs(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = c.name(NamesItems, id, KeyUnknownItem) + "*" + strconv.Itoa(counts[id])
	}
	return strings.Join(parts, c.Separator)
}

// sortIDs orders numeric ids ascending, then the remaining ids lexically.
func sortIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, aErr := strconv.ParseFloat(ids[i], 64)
		b, bErr := strconv.ParseFloat(ids[j], 64)
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
}
