package checks

import (
	"context"
	"errors"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/storage"
)

// ReleaseReport is the result of checking one release bundle.
type ReleaseReport struct {
	Version string   `json:"version"`
	Status  string   `json:"status"` // "ok", "error"
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// CheckReleases verifies that every release bundle under prefix holds all
// required datasets. Releases are reported newest first.
func CheckReleases(ctx context.Context, client storage.Client, bucket, prefix string, paths catalog.Paths) ([]ReleaseReport, error) {
	if err := ensureBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	src := &catalog.StorageSource{Client: client, Bucket: bucket, Prefix: prefix}
	versions, err := src.Versions(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]ReleaseReport, 0, len(versions))
	for _, version := range versions {
		report := ReleaseReport{Version: version, Status: "ok"}

		data, err := src.Read(ctx, version)
		if err == nil {
			_, err = catalog.Parse(version, data, paths)
		}
		var missing *catalog.MissingError
		switch {
		case errors.As(err, &missing):
			report.Status = "error"
			report.Missing = missing.Datasets
		case err != nil:
			report.Status = "error"
			report.Error = err.Error()
		}
		reports = append(reports, report)
	}
	return reports, nil
}
