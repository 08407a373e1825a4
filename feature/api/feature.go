package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the sync API feature. reports may be nil when report
// persistence is disabled; the report routes then answer 404.
func NewFeature(runner Runner, reports ReportReader, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(runner, reports, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "api"
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
