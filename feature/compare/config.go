package compare

// Config holds configuration for the comparison cache.
type Config struct {
	CacheSize       int `mapstructure:"cache_size" default:"32"`
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" default:"10"`
}
