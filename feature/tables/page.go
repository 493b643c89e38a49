package tables

import (
	"context"
	"io"

	"gamedata-wiki/core/i18n"

	"github.com/a-h/templ"
)

// PageData is the content of the wiki page.
type PageData struct {
	Lang      string
	Version   string
	Languages []i18n.Language
	Tables    []*Rendered
	Loc       *i18n.Localizer
}

// Page renders the full wiki page.
func Page(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.write(`<!DOCTYPE html><html lang="`, templ.EscapeString(d.Lang), `"><head><meta charset="utf-8">`)
		ew.write(`<title>`, templ.EscapeString(translate(d.Loc, "wiki_title", "wiki_title")), ` `, templ.EscapeString(d.Version), `</title>`)
		ew.write(`<style>table{border-collapse:collapse}th,td{border:1px solid #ccc;padding:4px}</style></head><body>`)

		ew.write(`<form method="get"><select name="lang" onchange="this.form.submit()">`)
		for _, l := range d.Languages {
			selected := ""
			if l.Code == d.Lang {
				selected = " selected"
			}
			name := d.Loc.LanguageName(l.Code)
			if name == l.Code && l.Name != "" {
				name = l.Name
			}
			ew.write(`<option value="`, templ.EscapeString(l.Code), `"`, selected, `>`, templ.EscapeString(name), `</option>`)
		}
		ew.write(`</select></form>`)

		ew.write(`<nav><ul>`)
		for _, t := range d.Tables {
			ew.write(`<li><a href="#`, templ.EscapeString(t.Name), `">`, templ.EscapeString(t.Title), `</a></li>`)
		}
		ew.write(`</ul></nav>`)

		for _, t := range d.Tables {
			ew.write(`<section id="`, templ.EscapeString(t.Name), `"><h2>`, templ.EscapeString(t.Title), `</h2>`)
			if ew.err == nil {
				ew.err = templ.Raw(t.HTML).Render(ctx, w)
			}
			ew.write(`</section>`)
		}
		ew.write(`</body></html>`)
		return ew.err
	})
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) write(parts ...string) {
	for _, p := range parts {
		if e.err != nil {
			return
		}
		_, e.err = io.WriteString(e.w, p)
	}
}
