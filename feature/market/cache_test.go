package market

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"gamedata-wiki/core/database"
	"gamedata-wiki/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

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

func TestNewCache(t *testing.T) {
	client := new(mocks.Client)

	c, err := NewCache(Config{CacheBackend: BackendStorage}, client, "gamedata", nil)
	require.NoError(t, err)
	assert.IsType(t, &StorageCache{}, c)

	c, err = NewCache(Config{CacheBackend: BackendNone}, nil, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	_, err = NewCache(Config{CacheBackend: BackendDatabase}, nil, "", nil)
	assert.Error(t, err)

	_, err = NewCache(Config{CacheBackend: "redis"}, nil, "", nil)
	assert.Error(t, err)
}

func TestStorageCache(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "gamedata", CacheObject, mock.Anything).
		Return(io.NopCloser(strings.NewReader(`[]`)), nil).Once()
	client.On("PutObject", mock.Anything, "gamedata", CacheObject, mock.Anything, int64(4), mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()

	c := &StorageCache{Client: client, Bucket: "gamedata"}
	ctx := context.Background()

	data, ok, err := c.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(data))

	require.NoError(t, c.Save(ctx, []byte(`[{}]`)))
	client.AssertExpectations(t)
}

func TestStorageCacheMissing(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "gamedata", CacheObject, mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	c := &StorageCache{Client: client, Bucket: "gamedata"}
	_, ok, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorageCacheError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "gamedata", CacheObject, mock.Anything).
		Return(nil, errors.New("connection refused"))

	c := &StorageCache{Client: client, Bucket: "gamedata"}
	_, _, err := c.Load(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestDBCacheSQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	c, err := NewDBCache(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := c.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Save(ctx, []byte(`[1]`)))
	require.NoError(t, c.Save(ctx, []byte(`[2]`)))

	data, ok, err := c.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2]", string(data))

	var count int64
	require.NoError(t, db.Model(&MarketPriceCache{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	report, err := database.InspectModel(db, MarketPriceCache{})
	require.NoError(t, err)
	assert.True(t, report.Matched(), "%+v", report)
}

func TestDBCacheLoadMySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	c := &DBCache{db: db}

	mock.ExpectQuery("SELECT \\* FROM `market_price_caches`").
		WillReturnRows(sqlmock.NewRows([]string{"cache_key", "payload", "updated_at"}).
			AddRow(CacheKey, `[{"item_id":1}]`, time.Now()))

	data, ok, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"item_id":1}]`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBCacheLoadError(t *testing.T) {
	db, mock := setupMockDB(t)
	c := &DBCache{db: db}

	mock.ExpectQuery("SELECT \\* FROM `market_price_caches`").
		WillReturnError(errors.New("db down"))

	_, _, err := c.Load(context.Background())
	assert.ErrorContains(t, err, "db down")
}
