package table

import "gamedata-wiki/core/utils"

// Default base-record attributes of the item and pet catalogs.
const (
	DefaultIDField   = "b_i"
	DefaultNameField = "name"
)

// BuildNameMap maps every record that has both an id and a name to the
// translated name. Records missing either field are skipped.
func BuildNameMap(base []Record, idField, nameField string, tr Translator) NameMap {
	names := make(NameMap, len(base))
	for _, rec := range base {
		id, ok := utils.Key(rec[idField])
		if !ok {
			continue
		}
		raw, ok := rec[nameField]
		if !ok || raw == nil {
			continue
		}
		names[id] = tr.Translate(utils.ToString(raw))
	}
	return names
}

// Lookup returns the name stored for id.
func (m NameMap) Lookup(id any) (string, bool) {
	key, ok := utils.Key(id)
	if !ok {
		return "", false
	}
	name, ok := m[key]
	return name, ok
}
