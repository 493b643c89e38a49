package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/database"
	"gamedata-wiki/core/i18n"
	"gamedata-wiki/core/logger"
	"gamedata-wiki/core/server"
	"gamedata-wiki/core/storage"
	"gamedata-wiki/feature/compare"
	"gamedata-wiki/feature/market"
	"gamedata-wiki/feature/tables"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Data selects where release bundles are read from.
	Data catalog.Config `mapstructure:"data"`
	// I18n selects where translations are read from.
	I18n i18n.Config `mapstructure:"i18n"`
	// Tables holds configuration for the wiki tables.
	Tables tables.Config `mapstructure:"tables"`
	// Compare holds configuration for the version comparison cache.
	Compare compare.Config `mapstructure:"compare"`
	// Market holds configuration for the market price editor.
	Market market.Config `mapstructure:"market"`
}

// LoadConfig loads configuration from environment variables and the .env
// file in path, then validates the selected backends.
func LoadConfig(path string) (*Config, error) {
	envPath := filepath.Join(path, ".env")

	// A missing .env is normal in production.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects unknown source and backend kinds.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(strings.TrimPrefix(c.Server.Port, ":")); err != nil {
		return fmt.Errorf("invalid server port %q", c.Server.Port)
	}
	switch c.Data.Source {
	case catalog.SourceDir, catalog.SourceStorage, catalog.SourceRemote:
	default:
		return fmt.Errorf("unknown data source %q", c.Data.Source)
	}
	switch c.I18n.Source {
	case i18n.SourceDir, i18n.SourceStorage, i18n.SourceRemote:
	default:
		return fmt.Errorf("unknown translation source %q", c.I18n.Source)
	}
	switch strings.ToLower(c.Market.CacheBackend) {
	case market.BackendStorage, market.BackendDatabase, market.BackendNone:
	default:
		return fmt.Errorf("unknown market cache backend %q", c.Market.CacheBackend)
	}
	if c.Data.Source == catalog.SourceRemote && c.Data.RemoteURL == "" {
		return fmt.Errorf("data source remote requires DATA_REMOTE_URL")
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
