package market

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"gamedata-wiki/core/fetch"
)

// DefaultSheetName is the worksheet read when none is configured.
const DefaultSheetName = "Sheet1"

// ErrNoSheet is returned when no sheet reference is given or configured.
var ErrNoSheet = errors.New("no google sheet url or id")

var sheetIDPattern = regexp.MustCompile(`spreadsheets/d/([a-zA-Z0-9-_]+)`)

// SheetID extracts the spreadsheet id from a sheet URL. Anything else is
// taken as the id itself.
func SheetID(ref string) string {
	ref = strings.TrimSpace(ref)
	if m := sheetIDPattern.FindStringSubmatch(ref); m != nil {
		return m[1]
	}
	return ref
}

// CSVURL returns the CSV export URL of a worksheet.
func CSVURL(id, sheet string) string {
	if sheet == "" {
		sheet = DefaultSheetName
	}
	return "https://docs.google.com/spreadsheets/d/" + id +
		"/gviz/tq?tqx=out:csv&sheet=" + url.QueryEscape(sheet)
}

// FetchSheet downloads a worksheet and returns its cells.
func FetchSheet(ctx context.Context, f fetch.Fetcher, ref, sheet string) ([][]string, error) {
	id := SheetID(ref)
	if id == "" {
		return nil, ErrNoSheet
	}
	data, err := f.Fetch(ctx, CSVURL(id, sheet))
	if err != nil {
		return nil, err
	}
	return ParseCSV(data)
}

// ParseCSV reads RFC 4180 CSV with a variable number of fields per row.
// Cells are trimmed and blank lines dropped.
func ParseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	rows := records[:0]
	for _, rec := range records {
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if len(rec) == 1 && rec[0] == "" {
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}
