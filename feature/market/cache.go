package market

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gamedata-wiki/core/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheKey names the cached price table in every backend.
const CacheKey = "marketPricesCache"

// CacheObject is the object holding the table in the storage backend.
const CacheObject = "cache/" + CacheKey + ".json"

// Cache persists the serialized price table.
type Cache interface {
	// Load returns the cached payload. The boolean is false when nothing
	// is cached.
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, data []byte) error
}

// NewCache returns the backend selected by cfg.
func NewCache(cfg Config, client storage.Client, bucket string, db *gorm.DB) (Cache, error) {
	switch strings.ToLower(cfg.CacheBackend) {
	case BackendStorage, "":
		if client == nil {
			return nil, fmt.Errorf("storage cache requires a storage client")
		}
		return &StorageCache{Client: client, Bucket: bucket}, nil
	case BackendDatabase:
		if db == nil {
			return nil, fmt.Errorf("database cache requires a database connection")
		}
		return NewDBCache(db)
	case BackendNone:
		return &MemoryCache{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.CacheBackend)
	}
}

// StorageCache keeps the table as an object in the bucket.
type StorageCache struct {
	Client storage.Client
	Bucket string
}

// Load reads the cache object.
func (c *StorageCache) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := storage.ReadObject(ctx, c.Client, c.Bucket, CacheObject)
	if storage.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Save writes the cache object.
func (c *StorageCache) Save(ctx context.Context, data []byte) error {
	return storage.WriteObject(ctx, c.Client, c.Bucket, CacheObject, data, "application/json")
}

// MarketPriceCache is the database row of a cached table.
type MarketPriceCache struct {
	Key       string    `gorm:"column:cache_key;type:varchar(64);primaryKey"`
	Payload   string    `gorm:"column:payload;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (MarketPriceCache) TableName() string {
	return "market_price_caches"
}

// DBCache keeps the table in the market_price_caches table.
type DBCache struct {
	db *gorm.DB
}

// NewDBCache creates the cache table when missing.
func NewDBCache(db *gorm.DB) (*DBCache, error) {
	if err := db.AutoMigrate(&MarketPriceCache{}); err != nil {
		return nil, fmt.Errorf("failed to migrate market cache: %w", err)
	}
	return &DBCache{db: db}, nil
}

// Load reads the cached row.
func (c *DBCache) Load(ctx context.Context) ([]byte, bool, error) {
	var row MarketPriceCache
	err := c.db.WithContext(ctx).Where("cache_key = ?", CacheKey).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read market cache: %w", err)
	}
	return []byte(row.Payload), true, nil
}

// Save upserts the cached row.
func (c *DBCache) Save(ctx context.Context, data []byte) error {
	row := MarketPriceCache{Key: CacheKey, Payload: string(data), UpdatedAt: time.Now()}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write market cache: %w", err)
	}
	return nil
}

// MemoryCache keeps the table in memory only.
type MemoryCache struct {
	mu   sync.Mutex
	data []byte
}

// Load returns the last saved payload.
func (c *MemoryCache) Load(ctx context.Context) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data, c.data != nil, nil
}

// Save keeps data.
func (c *MemoryCache) Save(ctx context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = append([]byte(nil), data...)
	return nil
}
