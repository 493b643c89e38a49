package compare

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"gamedata-wiki/core/diff"
	"gamedata-wiki/core/i18n"
	"gamedata-wiki/core/table"
	"gamedata-wiki/core/utils"

	"github.com/a-h/templ"
)

// View message keys.
const (
	KeyAddedItems    = "added_items"
	KeyRemovedItems  = "removed_items"
	KeyModifiedItems = "modified_items"
	KeyNoDifferences = "no_differences_found"
)

var fallbacks = map[string]string{
	KeyAddedItems:    "Added items",
	KeyRemovedItems:  "Removed items",
	KeyModifiedItems: "Modified items",
	KeyNoDifferences: "No differences found",
}

func label(loc table.Translator, key string) string {
	if s := loc.Translate(key); s != key {
		return s
	}
	if s, ok := fallbacks[key]; ok {
		return s
	}
	return key
}

// View renders a report as an HTML fragment in the language of loc.
func View(r *Report, loc *i18n.Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Markup(r, loc))
		return err
	})
}

// Markup returns the HTML of a report.
func Markup(r *Report, loc *i18n.Localizer) string {
	var b strings.Builder
	b.WriteString(`<div class="compare"><h2>`)
	b.WriteString(templ.EscapeString(r.VersionA + " → " + r.VersionB))
	b.WriteString(`</h2>`)

	if r.Result.Empty() {
		b.WriteString(`<p>` + templ.EscapeString(label(loc, KeyNoDifferences)) + `</p></div>`)
		return b.String()
	}

	list := func(key string, records []map[string]any) {
		if len(records) == 0 {
			return
		}
		b.WriteString(`<h3>` + templ.EscapeString(label(loc, key)) + ` (` + utils.ToString(len(records)) + `)</h3><ul>`)
		for _, rec := range records {
			id, _ := utils.Key(rec[IDField])
			b.WriteString(`<li>` + templ.EscapeString(itemTitle(r, loc, id)) + `</li>`)
		}
		b.WriteString(`</ul>`)
	}
	list(KeyAddedItems, r.Result.Added)
	list(KeyRemovedItems, r.Result.Removed)

	if len(r.Result.Modified) > 0 {
		b.WriteString(`<h3>` + templ.EscapeString(label(loc, KeyModifiedItems)) + ` (` + utils.ToString(len(r.Result.Modified)) + `)</h3>`)
		for _, m := range r.Result.Modified {
			b.WriteString(`<h4>` + templ.EscapeString(itemTitle(r, loc, m.ID)) + `</h4><ul>`)
			for _, field := range m.ChangedFields() {
				ch := m.Changes[field]
				b.WriteString(`<li><strong>` + templ.EscapeString(loc.Translate(field)) + `</strong>: `)
				b.WriteString(templ.EscapeString(value(ch.Old, ch.Kind == diff.FieldAdded, loc)))
				b.WriteString(` → `)
				b.WriteString(templ.EscapeString(value(ch.New, ch.Kind == diff.FieldRemoved, loc)))
				b.WriteString(`</li>`)
			}
			b.WriteString(`</ul>`)
		}
	}
	b.WriteString(`</div>`)
	return b.String()
}

func itemTitle(r *Report, loc table.Translator, id string) string {
	name, ok := r.Names[id]
	if !ok {
		return id
	}
	return loc.Translate(name) + " (" + id + ")"
}

// value renders one side of a change as JSON. Absent sides show the
// translated none placeholder.
func value(v any, absent bool, loc table.Translator) string {
	if absent {
		return loc.Translate(table.KeyNone)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return utils.ToString(v)
	}
	return string(data)
}
