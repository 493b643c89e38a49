package market

import (
	"gamedata-wiki/core/fetch"
	"gamedata-wiki/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the market feature.
func NewFeature(holder *session.Holder, fetcher fetch.Fetcher, cache Cache, cfg Config, logger *zap.Logger) *Feature {
	svc := NewService(holder, fetcher, cache, cfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service returns the market service.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "market"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
