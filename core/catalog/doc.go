// Package catalog loads release bundles of game data.
//
// A release bundle is a single JSON document holding every named dataset of
// one game version (item_base, CARPENTRY_FORMULAS, FORGE_FORMULAS, ...).
// Datasets are extracted with gjson paths, so a bundle may nest them under
// any envelope as long as the paths are configured accordingly.
//
// Bundles are read from a Source. Three sources are provided:
//   - DirSource reads <dir>/<version>.json from the local filesystem.
//   - StorageSource reads <prefix><version>.json from an object storage bucket.
//   - RemoteSource downloads <base>/<version>.json with go-getter.
//
// Load fails with ErrDatasetMissing when any required dataset is absent, so
// a bundle handed to the renderer is always complete.
package catalog
