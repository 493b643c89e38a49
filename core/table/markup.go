package table

import (
	"html"
	"strings"
)

// ToMarkup renders a table as an HTML table. Headers and text cells are
// escaped; raw cells are written as is.
func ToMarkup(headers []string, rows [][]Cell) string {
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, h := range headers {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(h))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, c := range row {
			b.WriteString("<td>")
			if c.Raw {
				b.WriteString(c.Text)
			} else {
				b.WriteString(html.EscapeString(c.Text))
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// Markup is ToMarkup applied to t.
func (t Table) Markup() string {
	return ToMarkup(t.Headers, t.Rows)
}

// Strings returns the rows as plain text.
func (t Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.Text
		}
	}
	return out
}
