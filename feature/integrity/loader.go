package integrity

import (
	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/database"
	"gamedata-wiki/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Integrity feature.
func NewFeature(client storage.Client, bucket, prefix string, paths catalog.Paths, db *gorm.DB, models []database.Tabler, logger *zap.Logger) *Feature {
	svc := NewService(client, bucket, prefix, paths, db, models, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service returns the integrity service.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled reports whether a storage client is configured.
func (f *Feature) IsEnabled() bool {
	return f.service.client != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
