package integrity

import (
	"context"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/database"
	"gamedata-wiki/core/storage"
	"gamedata-wiki/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	paths  catalog.Paths
	db     *gorm.DB
	models []database.Tabler
	logger *zap.Logger
}

// NewService creates a new integrity service. Releases are looked up under
// prefix; models are the database tables whose schema is checked.
func NewService(client storage.Client, bucket, prefix string, paths catalog.Paths, db *gorm.DB, models []database.Tabler, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = catalog.DefaultPrefix
	}
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		paths:  paths,
		db:     db,
		models: models,
		logger: logger,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckReleases checks every release bundle in the bucket.
func (s *Service) CheckReleases(ctx context.Context) ([]checks.ReleaseReport, error) {
	return checks.CheckReleases(ctx, s.client, s.bucket, s.prefix, s.paths)
}

// CheckSchema checks the database tables. Without a database connection
// there is nothing to check.
func (s *Service) CheckSchema() *checks.SchemaReport {
	if s.db == nil {
		return &checks.SchemaReport{Matched: true, Tables: map[string]database.TableReport{}, Errors: []string{}}
	}
	return checks.CheckSchema(s.db, s.models...)
}
