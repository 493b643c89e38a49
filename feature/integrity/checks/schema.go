package checks

import (
	"gamedata-wiki/core/database"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema check.
type SchemaReport struct {
	Matched bool                            `json:"matched"`
	Tables  map[string]database.TableReport `json:"tables"`
	Errors  []string                        `json:"errors"`
}

// CheckSchema compares the tables of models with their gorm definitions.
// A table that cannot be inspected is recorded as an error and the check
// continues with the next one.
func CheckSchema(db *gorm.DB, models ...database.Tabler) *SchemaReport {
	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]database.TableReport, len(models)),
		Errors:  []string{},
	}
	for _, model := range models {
		tbl, err := database.InspectModel(db, model)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			report.Matched = false
			continue
		}
		if !tbl.Matched() {
			report.Matched = false
		}
		report.Tables[tbl.Table] = *tbl
	}
	return report
}
