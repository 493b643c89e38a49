package catalog

import (
	"fmt"

	"gamedata-wiki/core/fetch"
	"gamedata-wiki/core/storage"
)

// Source kinds.
const (
	SourceDir     = "dir"
	SourceStorage = "storage"
	SourceRemote  = "remote"
)

// Config selects where release bundles are read from.
type Config struct {
	// Source is the bundle source kind (dir, storage, remote).
	Source string `mapstructure:"source" default:"dir"`
	// Dir is the local bundle directory for the dir source.
	Dir string `mapstructure:"dir" default:"data/releases"`
	// Prefix is the object prefix for the storage source.
	Prefix string `mapstructure:"prefix" default:"releases/"`
	// RemoteURL is the base URL for the remote source.
	RemoteURL string `mapstructure:"remote_url" default:""`
	// Version pins the served release. Empty serves the newest one.
	Version string `mapstructure:"version" default:""`
}

// NewSource builds the Source selected by cfg.
func NewSource(cfg Config, client storage.Client, bucket string, f fetch.Fetcher) (Source, error) {
	switch cfg.Source {
	case SourceDir, "":
		return &DirSource{Dir: cfg.Dir}, nil
	case SourceStorage:
		if client == nil {
			return nil, fmt.Errorf("storage source requires a storage client")
		}
		prefix := cfg.Prefix
		if prefix == "" {
			prefix = DefaultPrefix
		}
		return &StorageSource{Client: client, Bucket: bucket, Prefix: prefix}, nil
	case SourceRemote:
		if cfg.RemoteURL == "" {
			return nil, fmt.Errorf("remote source requires a remote url")
		}
		return &RemoteSource{Fetcher: f, BaseURL: cfg.RemoteURL}, nil
	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Source)
	}
}
