package fetch

import (
	"context"
	"strings"

	"gamedata-wiki/core/storage"
)

// Bucket is a Fetcher that reads object keys from a storage bucket, so
// loaders written against Fetcher also work on the wiki's own bucket.
type Bucket struct {
	Client storage.Client
	Name   string
}

// NewBucket creates a bucket backed Fetcher.
func NewBucket(client storage.Client, bucket string) *Bucket {
	return &Bucket{Client: client, Name: bucket}
}

// Fetch reads the object at src. A leading slash is ignored.
func (b *Bucket) Fetch(ctx context.Context, src string) ([]byte, error) {
	return storage.ReadObject(ctx, b.Client, b.Name, strings.TrimPrefix(src, "/"))
}
