package checks

import (
	"testing"

	"gamedata-wiki/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cacheRow struct {
	Key     string `gorm:"column:cache_key;type:varchar(64);primaryKey"`
	Payload string `gorm:"column:payload;type:text"`
}

func (cacheRow) TableName() string { return "cache_rows" }

type otherRow struct {
	Name string `gorm:"column:name;type:text"`
}

func (otherRow) TableName() string { return "other_rows" }

func TestCheckSchema(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&cacheRow{}))

	report := CheckSchema(db, cacheRow{})
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["cache_rows"].Status)

	report = CheckSchema(db, cacheRow{}, otherRow{})
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"name"}, report.Tables["other_rows"].MissingColumns)
}

func TestCheckSchemaNilDB(t *testing.T) {
	report := CheckSchema(nil, cacheRow{})
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 1)
}
