package compare

import (
	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the compare feature.
func NewFeature(source catalog.Source, paths catalog.Paths, cfg Config, holder *session.Holder, logger *zap.Logger) *Feature {
	svc := NewService(source, paths, cfg, holder, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "compare"
}

// IsEnabled reports whether a catalog source is configured.
func (f *Feature) IsEnabled() bool {
	return f.service.source != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
