package market

import (
	"errors"
	"html"
	"strconv"
	"strings"

	"gamedata-wiki/core/table"
	"gamedata-wiki/core/utils"
)

// Row error keys.
const (
	KeyInvalidRowFormat   = "invalid_row_format"
	KeyInvalidNumberInRow = "invalid_number_in_row"
)

// Column indexes of the price table.
const (
	ColItemID = iota
	ColItemName
	ColWikiPrice
	ColMarketBuy
	ColMarketSell
)

// Headers are the message keys of the columns.
var Headers = []string{"item_id", "item_name", "wiki_price", "market_buy", "market_sell"}

var (
	// ErrInvalidRow is returned for rows without three cells or with
	// non-numeric prices.
	ErrInvalidRow = errors.New("invalid row")
	// ErrInvalidNumber is returned when an edit is not a number.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrNotEditable is returned when editing a column other than the prices.
	ErrNotEditable = errors.New("column is not editable")
	// ErrRowOutOfRange is returned when editing a row that does not exist.
	ErrRowOutOfRange = errors.New("row out of range")
)

// RowError describes an input row that could not be processed.
type RowError struct {
	Key   string
	Cells []string
}

func (e *RowError) Error() string {
	return e.Key + ": " + strings.Join(e.Cells, ",")
}

// Is reports ErrInvalidRow.
func (e *RowError) Is(target error) bool {
	return target == ErrInvalidRow
}

// Message translates the error.
func (e *RowError) Message(tr table.Translator) string {
	return tr.Translate(e.Key, strings.Join(e.Cells, ","))
}

// Row is one line of the price table. ItemName is the untranslated catalog
// name and empty for unknown items.
type Row struct {
	ItemID     float64 `json:"item_id"`
	ItemName   string  `json:"item_name"`
	WikiPrice  any     `json:"wiki_price"`
	MarketBuy  float64 `json:"market_buy"`
	MarketSell float64 `json:"market_sell"`
}

func isHeader(cells []string) bool {
	if len(cells) < 3 {
		return false
	}
	for _, c := range cells[:3] {
		if _, ok := utils.ParseNumber(c); ok {
			return false
		}
	}
	return true
}

// ProcessRaw converts sheet cells into price rows joined with the item
// catalog. A leading header row is skipped. The first invalid row aborts
// processing.
func ProcessRaw(raw [][]string, items []map[string]any) ([]Row, error) {
	if len(raw) > 0 && isHeader(raw[0]) {
		raw = raw[1:]
	}

	catalog := make(map[string]map[string]any, len(items))
	for _, item := range items {
		if id, ok := utils.Key(item[table.DefaultIDField]); ok {
			catalog[id] = item
		}
	}

	rows := make([]Row, 0, len(raw))
	for _, cells := range raw {
		if len(cells) < 3 {
			return nil, &RowError{Key: KeyInvalidRowFormat, Cells: cells}
		}
		id, ok1 := utils.ParseNumber(cells[0])
		buy, ok2 := utils.ParseNumber(cells[1])
		sell, ok3 := utils.ParseNumber(cells[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, &RowError{Key: KeyInvalidNumberInRow, Cells: cells}
		}

		row := Row{ItemID: id, WikiPrice: table.KeyNotAvailable, MarketBuy: buy, MarketSell: sell}
		key, _ := utils.Key(id)
		if item, ok := catalog[key]; ok {
			row.ItemName = utils.ToString(item[table.DefaultNameField])
			if price := table.Resolve(item, "params.price"); utils.Truthy(price) {
				row.WikiPrice = price
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Cells returns the display values of r in column order.
func (r Row) Cells(tr table.Translator) []string {
	name := table.Unknown(tr, table.KeyUnknownItem, r.ItemID)
	if r.ItemName != "" {
		name = tr.Translate(r.ItemName)
	}
	return []string{
		utils.ToString(r.ItemID),
		name,
		utils.ToString(r.WikiPrice),
		utils.ToString(r.MarketBuy),
		utils.ToString(r.MarketSell),
	}
}

// Editable reports whether a column can be edited.
func Editable(col int) bool {
	return col == ColMarketBuy || col == ColMarketSell
}

// Markup renders rows as an HTML table whose price cells are editable.
func Markup(rows []Row, tr table.Translator, empty string) string {
	if len(rows) == 0 {
		return "<p>" + html.EscapeString(empty) + "</p>"
	}

	var b strings.Builder
	b.WriteString(`<table class="market"><thead><tr>`)
	for _, h := range Headers {
		b.WriteString("<th>" + html.EscapeString(tr.Translate(h)) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for i, r := range rows {
		b.WriteString(`<tr data-row-index="` + strconv.Itoa(i) + `">`)
		for col, cell := range r.Cells(tr) {
			if Editable(col) {
				b.WriteString(`<td contenteditable="true" data-col-index="` + strconv.Itoa(col) + `">`)
			} else {
				b.WriteString("<td>")
			}
			b.WriteString(html.EscapeString(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
