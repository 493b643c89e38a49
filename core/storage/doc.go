// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so that release
// bundles, translation files and the market price cache can be read from
// AWS S3 or a self-hosted MinIO instance, and mocked in unit tests
// (core/storage/mocks).
//
// ReadObject, WriteObject and ListKeys cover the whole-object access
// patterns the application needs on top of the raw client.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "releases/2025_0417.json")
package storage
