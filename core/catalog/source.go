package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gamedata-wiki/core/fetch"
	"gamedata-wiki/core/storage"
)

// Extension of bundle documents.
const Extension = ".json"

// DefaultPrefix is the storage prefix of release bundles.
const DefaultPrefix = "releases/"

// ErrNoVersions is returned when a source holds no bundle.
var ErrNoVersions = errors.New("no release versions available")

// Source reads release bundle documents.
type Source interface {
	// Read returns the raw bundle document of version.
	Read(ctx context.Context, version string) ([]byte, error)
	// Versions lists the available versions, newest first.
	Versions(ctx context.Context) ([]string, error)
}

// Load reads and parses the bundle of version. An empty version selects
// the newest available one.
func Load(ctx context.Context, src Source, version string, paths Paths) (*Bundle, error) {
	if version == "" {
		latest, err := Latest(ctx, src)
		if err != nil {
			return nil, err
		}
		version = latest
	}

	data, err := src.Read(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("failed to read release %s: %w", version, err)
	}
	return Parse(version, data, paths)
}

// Latest returns the newest version of src.
func Latest(ctx context.Context, src Source) (string, error) {
	versions, err := src.Versions(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list versions: %w", err)
	}
	if len(versions) == 0 {
		return "", ErrNoVersions
	}
	return versions[0], nil
}

// sortVersions orders versions newest first. Release versions are date
// stamps such as 2025_0417, so lexical order is chronological.
func sortVersions(versions []string) []string {
	sort.Sort(sort.Reverse(sort.StringSlice(versions)))
	return versions
}

func versionOf(name string) (string, bool) {
	if !strings.HasSuffix(name, Extension) {
		return "", false
	}
	v := strings.TrimSuffix(name, Extension)
	return v, v != ""
}

// DirSource reads bundles from a local directory.
type DirSource struct {
	Dir string
}

// Read implements Source.
func (s *DirSource) Read(ctx context.Context, version string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, version+Extension))
}

// Versions implements Source.
func (s *DirSource) Versions(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	var versions []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if v, ok := versionOf(e.Name()); ok {
			versions = append(versions, v)
		}
	}
	return sortVersions(versions), nil
}

// StorageSource reads bundles from an object storage bucket.
type StorageSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// NewStorageSource creates a storage source using DefaultPrefix.
func NewStorageSource(client storage.Client, bucket string) *StorageSource {
	return &StorageSource{Client: client, Bucket: bucket, Prefix: DefaultPrefix}
}

// ObjectName returns the object key of version.
func (s *StorageSource) ObjectName(version string) string {
	return s.Prefix + version + Extension
}

// Read implements Source.
func (s *StorageSource) Read(ctx context.Context, version string) ([]byte, error) {
	return storage.ReadObject(ctx, s.Client, s.Bucket, s.ObjectName(version))
}

// Versions implements Source.
func (s *StorageSource) Versions(ctx context.Context) ([]string, error) {
	keys, err := storage.ListKeys(ctx, s.Client, s.Bucket, s.Prefix, false)
	if err != nil {
		return nil, err
	}

	var versions []string
	for _, key := range keys {
		if v, ok := versionOf(strings.TrimPrefix(key, s.Prefix)); ok && !strings.Contains(v, "/") {
			versions = append(versions, v)
		}
	}
	return sortVersions(versions), nil
}

// IndexFile lists the versions of a RemoteSource as a JSON string array.
const IndexFile = "versions.json"

// RemoteSource downloads bundles from a base URL.
type RemoteSource struct {
	Fetcher fetch.Fetcher
	BaseURL string
}

func (s *RemoteSource) url(name string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + name
}

// Read implements Source.
func (s *RemoteSource) Read(ctx context.Context, version string) ([]byte, error) {
	return s.Fetcher.Fetch(ctx, s.url(version+Extension))
}

// Versions implements Source.
func (s *RemoteSource) Versions(ctx context.Context) ([]string, error) {
	data, err := s.Fetcher.Fetch(ctx, s.url(IndexFile))
	if err != nil {
		return nil, err
	}
	var versions []string
	if err := json.Unmarshal(data, &versions); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", IndexFile, err)
	}
	return sortVersions(versions), nil
}
