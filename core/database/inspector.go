package database

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
// Field names and types are lower-cased.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if db.Dialector.Name() == DriverSQLite {
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// TableReport is the result of comparing a table with its model.
type TableReport struct {
	Table          string   `json:"table"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// Matched reports whether the table has every column of the model.
func (r *TableReport) Matched() bool {
	return r.Status == "ok"
}

// Tabler is implemented by models with an explicit table name.
type Tabler interface {
	TableName() string
}

// InspectModel compares the table of model with the model's gorm tags.
// Only fields with a column tag are checked, and types only when a type tag
// is present. Types match when the actual type contains the expected one.
func InspectModel(db *gorm.DB, model Tabler) (*TableReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	tableName := model.TableName()
	report := &TableReport{
		Table:          tableName,
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	actualCols, err := GetTableColumns(db, tableName)
	if err != nil {
		return nil, err
	}
	actual := make(map[string]ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actual[col.Field] = col
	}

	typ := reflect.TypeOf(model)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("gorm")
		colName := gormTagValue(tag, "column")
		if colName == "" {
			continue
		}

		col, ok := actual[colName]
		if !ok {
			report.MissingColumns = append(report.MissingColumns, colName)
			report.Status = "error"
			continue
		}

		expType := strings.ToLower(gormTagValue(tag, "type"))
		if expType != "" && !strings.Contains(col.Type, expType) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", colName, expType, col.Type))
			report.Status = "error"
		}
	}

	return report, nil
}

func gormTagValue(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, key+":") {
			return strings.TrimPrefix(p, key+":")
		}
	}
	return ""
}
