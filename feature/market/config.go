package market

// Cache backends.
const (
	BackendStorage  = "storage"
	BackendDatabase = "database"
	BackendNone     = "none"
)

// Config holds configuration for the market feature.
type Config struct {
	// CacheBackend is one of storage, database or none.
	CacheBackend string `mapstructure:"cache_backend" default:"storage"`
	// Sheet is the default Google Sheet URL or id.
	Sheet string `mapstructure:"sheet" default:""`
	// SheetName is the worksheet exported as CSV.
	SheetName string `mapstructure:"sheet_name" default:"Sheet1"`
}
