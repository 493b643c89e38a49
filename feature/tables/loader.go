package tables

import (
	"gamedata-wiki/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the tables feature. Configurations are read from
// cfg.ConfigDir on top of the embedded ones.
func NewFeature(holder *session.Holder, cfg Config, logger *zap.Logger) (*Feature, error) {
	configs, err := LoadConfigs(cfg.ConfigDir)
	if err != nil {
		return nil, err
	}
	svc := NewService(holder, configs, cfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}, nil
}

// Service returns the table service.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "tables"
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
