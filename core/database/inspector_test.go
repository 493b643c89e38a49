package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type priceRow struct {
	Name    string `gorm:"column:name;type:varchar(64)"`
	Payload string `gorm:"column:payload;type:text"`
	Note    string
}

func (priceRow) TableName() string { return "price_rows" }

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE price_rows (id INTEGER PRIMARY KEY, name TEXT, payload TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "price_rows")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["payload"])

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestInspectModel_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("Name", "VARCHAR(64)", "NO", "PRI", nil, "").
		AddRow("payload", "longtext", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `price_rows`").WillReturnRows(rows)

	report, err := InspectModel(db, priceRow{})
	require.NoError(t, err)
	assert.True(t, report.Matched())
	assert.Empty(t, report.MissingColumns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectModel_Mismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("name", "int(11)", "NO", "PRI", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `price_rows`").WillReturnRows(rows)

	report, err := InspectModel(db, &priceRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched())
	assert.Equal(t, []string{"payload"}, report.MissingColumns)
	assert.Equal(t, []string{"name: expected varchar(64), got int(11)"}, report.TypeMismatches)
}

func TestInspectModel_Errors(t *testing.T) {
	_, err := InspectModel(nil, priceRow{})
	assert.EqualError(t, err, "database connection is nil")

	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS").WillReturnError(assert.AnError)
	_, err = InspectModel(db, priceRow{})
	assert.ErrorIs(t, err, assert.AnError)
}
