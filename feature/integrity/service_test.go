package integrity

import (
	"context"
	"testing"

	"gamedata-wiki/core/database"
	"gamedata-wiki/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
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

type cacheModel struct {
	Key     string `gorm:"column:cache_key;type:varchar(64)"`
	Payload string `gorm:"column:payload;type:text"`
}

func (cacheModel) TableName() string { return "market_price_caches" }

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", "", nil, nil, nil, zap.NewNop())

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Objects())

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.NotEmpty(t, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		err := svc.FixStructure(context.Background(), []string{"releases"})
		assert.NoError(t, err)
	})
}

func TestService_Releases(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", "", nil, nil, nil, zap.NewNop())

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "releases/"
	})).Return(mocks.Objects())

	reports, err := svc.CheckReleases(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, reports)
	mockClient.AssertExpectations(t)
}

func TestService_Schema(t *testing.T) {
	t.Run("No Database", func(t *testing.T) {
		svc := NewService(nil, "", "", nil, nil, nil, zap.NewNop())
		report := svc.CheckSchema()
		assert.True(t, report.Matched)
	})

	t.Run("MySQL", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		svc := NewService(nil, "", "", nil, db, []database.Tabler{cacheModel{}}, zap.NewNop())

		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("cache_key", "varchar(64)", "NO", "PRI", nil, "").
			AddRow("payload", "text", "YES", "", nil, "")
		sqlMock.ExpectQuery("SHOW COLUMNS FROM `market_price_caches`").WillReturnRows(rows)

		report := svc.CheckSchema()
		assert.True(t, report.Matched)
		assert.Equal(t, "ok", report.Tables["market_price_caches"].Status)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("MySQL Mismatch", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		svc := NewService(nil, "", "", nil, db, []database.Tabler{cacheModel{}}, zap.NewNop())

		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("cache_key", "int(11)", "NO", "PRI", nil, "")
		sqlMock.ExpectQuery("SHOW COLUMNS FROM `market_price_caches`").WillReturnRows(rows)

		report := svc.CheckSchema()
		assert.False(t, report.Matched)
		tbl := report.Tables["market_price_caches"]
		assert.Equal(t, []string{"payload"}, tbl.MissingColumns)
		assert.Len(t, tbl.TypeMismatches, 1)
	})
}
