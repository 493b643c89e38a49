package i18n

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gamedata-wiki/core/fetch"
	"gamedata-wiki/core/storage"
)

// Translation source kinds.
const (
	SourceDir     = "dir"
	SourceStorage = "storage"
	SourceRemote  = "remote"
)

// Config selects where translation files are read from.
type Config struct {
	// Source is the translation source kind (dir, storage, remote).
	Source string `mapstructure:"source" default:"dir"`
	// Dir is the local translation directory for the dir source.
	Dir string `mapstructure:"dir" default:"data/lang"`
	// Prefix is the object prefix for the storage source.
	Prefix string `mapstructure:"prefix" default:"lang/"`
	// RemoteURL is the base URL for the remote source.
	RemoteURL string `mapstructure:"remote_url" default:""`
	// Languages limits the loaded languages (comma separated codes).
	// Empty loads every language of languages.json.
	Languages string `mapstructure:"languages" default:""`
}

// Codes returns the configured language codes.
func (c Config) Codes() []string {
	var codes []string
	for _, code := range strings.Split(c.Languages, ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// Load builds the catalog from the source selected by cfg. For the storage
// and remote sources a partially loaded catalog is returned together with
// the error, so callers may keep serving untranslated text.
func Load(ctx context.Context, cfg Config, defaultLang string, client storage.Client, bucket string, f fetch.Fetcher) (*Catalog, error) {
	switch cfg.Source {
	case SourceDir, "":
		if _, err := os.Stat(cfg.Dir); err != nil {
			return NewCatalog(defaultLang), fmt.Errorf("translation dir %s: %w", cfg.Dir, err)
		}
		return LoadFS(os.DirFS(cfg.Dir), defaultLang)
	case SourceStorage:
		if client == nil {
			return NewCatalog(defaultLang), fmt.Errorf("storage source requires a storage client")
		}
		return LoadRemote(ctx, fetch.NewBucket(client, bucket), cfg.Prefix, defaultLang, cfg.Codes())
	case SourceRemote:
		return LoadRemote(ctx, f, cfg.RemoteURL, defaultLang, cfg.Codes())
	default:
		return NewCatalog(defaultLang), fmt.Errorf("unknown translation source: %s", cfg.Source)
	}
}
