package tables

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/table"
	"gamedata-wiki/core/utils"
)

// Table names, in page order.
const (
	Items      = "items"
	Carpentry  = "carpentry"
	Forge      = "forge"
	Npc        = "npc"
	Pets       = "pets"
	Quests     = "quests"
	Objects    = "objects"
	Enchanting = "enchanting"
	ImageSheet = "imagesheet"
)

// Order is the page order of the tables.
var Order = []string{Items, Carpentry, Forge, Npc, Pets, Quests, Objects, Enchanting, ImageSheet}

// KeyCalculationFailed marks an enchanting rate that could not be evaluated.
const KeyCalculationFailed = "calculation_failed"

// MaterialLevels are the material levels enchanting rates are shown for.
var MaterialLevels = []int{1, 20, 50, 100}

// Builder turns the datasets of a bundle into the records of one table.
type Builder func(b *catalog.Bundle, tr table.Translator) ([]table.Record, error)

// Builders returns the builder of every table.
func Builders() map[string]Builder {
	return map[string]Builder{
		Items:      recordsOf(catalog.ItemBase),
		Carpentry:  buildCarpentry,
		Forge:      buildForge,
		Npc:        recordsOf(catalog.NpcBase),
		Pets:       recordsOf(catalog.Pets),
		Quests:     buildQuests,
		Objects:    recordsOf(catalog.ObjectBase),
		Enchanting: buildEnchanting,
		ImageSheet: buildImageSheet,
	}
}

func missing(name string) error {
	return fmt.Errorf("%w: %s", catalog.ErrDatasetMissing, name)
}

func recordsOf(name string) Builder {
	return func(b *catalog.Bundle, _ table.Translator) ([]table.Record, error) {
		records, ok := b.Records(name)
		if !ok {
			return nil, missing(name)
		}
		return records, nil
	}
}

func buildCarpentry(b *catalog.Bundle, _ table.Translator) ([]table.Record, error) {
	formulas, ok := b.Object(catalog.CarpentryFormulas)
	if !ok {
		return nil, missing(catalog.CarpentryFormulas)
	}

	var records []table.Record
	for _, group := range []string{"floors", "furniture", "walls"} {
		if list, ok := formulas[group].([]any); ok {
			records = append(records, catalog.ToRecords(list)...)
		}
	}
	return records, nil
}

// buildForge flattens the formulas keyed by id, newest (highest) id first.
func buildForge(b *catalog.Bundle, _ table.Translator) ([]table.Record, error) {
	formulas, ok := b.Object(catalog.ForgeFormulas)
	if !ok {
		return nil, missing(catalog.ForgeFormulas)
	}

	records := make([]table.Record, 0, len(formulas))
	for id, v := range formulas {
		formula, ok := v.(map[string]any)
		if !ok {
			continue
		}
		rec := make(table.Record, len(formula)+1)
		for k, val := range formula {
			rec[k] = val
		}
		if n, err := strconv.ParseFloat(id, 64); err == nil {
			rec["id"] = n
		} else {
			rec["id"] = id
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return compareIDs(records[i]["id"], records[j]["id"]) > 0
	})
	return records, nil
}

func buildQuests(b *catalog.Bundle, _ table.Translator) ([]table.Record, error) {
	quests, ok := b.Object(catalog.SkillQuest)
	if !ok {
		return nil, missing(catalog.SkillQuest)
	}
	list, ok := quests["quests"].([]any)
	if !ok {
		return nil, missing(catalog.SkillQuest + ".quests")
	}
	return catalog.ToRecords(list), nil
}

// RateFormula is a linear enchanting success rate over the material level,
// clamped to [0, Max].
type RateFormula struct {
	Base     float64
	PerLevel float64
	Max      float64
}

// ParseRateFormula reads a {base, per_level, max} object. Max defaults to 1.
func ParseRateFormula(v any) (RateFormula, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return RateFormula{}, false
	}
	base, ok := utils.ToFloat(m["base"])
	if !ok {
		return RateFormula{}, false
	}
	perLevel, ok := utils.ToFloat(m["per_level"])
	if !ok {
		return RateFormula{}, false
	}
	max := 1.0
	if raw, present := m["max"]; present {
		if max, ok = utils.ToFloat(raw); !ok {
			return RateFormula{}, false
		}
	}
	return RateFormula{Base: base, PerLevel: perLevel, Max: max}, true
}

// At evaluates the rate at a material level.
func (f RateFormula) At(level int) float64 {
	rate := f.Base + f.PerLevel*float64(level)
	if rate < 0 {
		return 0
	}
	if rate > f.Max {
		return f.Max
	}
	return rate
}

const enchantingPrefix = "enchantingChances"

func buildEnchanting(b *catalog.Bundle, tr table.Translator) ([]table.Record, error) {
	forge, ok := b.Object(catalog.Forge)
	if !ok {
		return nil, missing(catalog.Forge)
	}

	var keys []string
	for key := range forge {
		if strings.HasPrefix(key, enchantingPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var records []table.Record
	for _, key := range keys {
		chances, ok := forge[key].(map[string]any)
		if !ok {
			continue
		}
		typ := strings.TrimPrefix(key, enchantingPrefix)

		ids := make([]string, 0, len(chances))
		for id := range chances {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return compareIDs(ids[i], ids[j]) < 0 })

		for _, id := range ids {
			formula, valid := ParseRateFormula(chances[id])
			for _, level := range MaterialLevels {
				rate := translate(tr, KeyCalculationFailed, KeyCalculationFailed)
				if valid {
					rate = fmt.Sprintf("%.2f%%", formula.At(level)*100)
				}
				records = append(records, table.Record{
					"type":        typ,
					"itemId":      id,
					"level":       float64(level),
					"successRate": rate,
				})
			}
		}
	}
	return records, nil
}

const notAvailable = "N/A"

// buildImageSheet lists every sheet entry with its alias chain resolved.
func buildImageSheet(b *catalog.Bundle, _ table.Translator) ([]table.Record, error) {
	sheet, ok := b.Object(catalog.ImageSheet)
	if !ok {
		return nil, missing(catalog.ImageSheet)
	}

	keys := make([]string, 0, len(sheet))
	for key := range sheet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	records := make([]table.Record, 0, len(keys))
	for _, key := range keys {
		switch v := ResolveAlias(sheet, key).(type) {
		case map[string]any:
			url := utils.ToString(v["url"])
			if url == "" {
				continue
			}
			records = append(records, table.Record{
				"imageName":   key,
				"url":         url,
				"tile_width":  orNotAvailable(v["tile_width"]),
				"tile_height": orNotAvailable(v["tile_height"]),
			})
		case string:
			records = append(records, table.Record{
				"imageName":   key,
				"url":         v,
				"tile_width":  notAvailable,
				"tile_height": notAvailable,
			})
		}
	}
	return records, nil
}

// ResolveAlias follows string values naming other entries of the sheet.
// A string naming no entry is the value itself. Looping chains resolve to nil.
func ResolveAlias(sheet map[string]any, key string) any {
	seen := map[string]bool{key: true}
	value := sheet[key]
	for {
		alias, ok := value.(string)
		if !ok {
			return value
		}
		if seen[alias] {
			return nil
		}
		next, exists := sheet[alias]
		if !exists {
			return value
		}
		seen[alias] = true
		value = next
	}
}

func orNotAvailable(v any) any {
	if !utils.Truthy(v) {
		return notAvailable
	}
	return v
}

// compareIDs orders numeric ids numerically and before non-numeric ones.
func compareIDs(a, b any) int {
	fa, aNum := numeric(a)
	fb, bNum := numeric(b)
	switch {
	case aNum && bNum:
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(utils.ToString(a), utils.ToString(b))
}

func numeric(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		return utils.ParseNumber(s)
	}
	return utils.ToFloat(v)
}
