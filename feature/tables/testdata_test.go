package tables

import (
	"gamedata-wiki/core/catalog"
)

// testBundle returns a small release covering every table.
func testBundle() *catalog.Bundle {
	return catalog.NewBundle("2024.01", map[string]any{
		catalog.ItemBase: []any{
			map[string]any{"b_i": 1.0, "name": "Wood", "params": map[string]any{"price": 10.0}},
			map[string]any{"b_i": 2.0, "name": "Stone", "params": map[string]any{"price": 1500.0}},
		},
		catalog.CarpentryFormulas: map[string]any{
			"floors":    []any{map[string]any{"item_id": 1.0, "level": 1.0}},
			"furniture": []any{map[string]any{"item_id": 2.0, "level": 5.0}},
			"walls":     []any{map[string]any{"item_id": 1.0, "level": 9.0}, "junk"},
		},
		catalog.ForgeFormulas: map[string]any{
			"2":  map[string]any{"item_id": 1.0, "level": 5.0, "pattern": []any{[]any{1.0, -1.0}, []any{1.0, 2.0}}},
			"10": map[string]any{"item_id": 2.0, "fletching_level": 3.0},
		},
		catalog.NpcBase: []any{
			map[string]any{"b_i": 100.0, "name": "Goblin", "params": map[string]any{
				"drops": []any{map[string]any{"id": 1.0, "chance": 0.5}},
			}},
		},
		catalog.Pets: []any{
			map[string]any{"b_i": 50.0, "name": "Dog", "params": map[string]any{
				"likes": []any{map[string]any{"pet_id": 50.0, "xp": 3.0}},
			}},
		},
		catalog.SkillQuest: map[string]any{
			"quests": []any{map[string]any{"id": 1.0, "skill": "fishing", "item_id": 1.0, "reward": []any{2.0, 99.0}}},
		},
		catalog.ObjectBase: []any{
			map[string]any{"b_i": 7.0, "name": "Tree"},
		},
		catalog.Forge: map[string]any{
			"enchantingChancesWeapon": map[string]any{
				"2": "bad",
				"1": map[string]any{"base": 0.1, "per_level": 0.01, "max": 0.9},
			},
			"other": 1.0,
		},
		catalog.ImageSheet: map[string]any{
			"a": map[string]any{"url": "http://cdn/a.png", "tile_width": 32.0},
			"b": "a",
			"c": "http://cdn/c.png",
			"d": "e",
			"e": "d",
		},
	})
}
