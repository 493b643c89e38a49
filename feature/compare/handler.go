package compare

import (
	"errors"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/logger"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for version comparison.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/versions", h.HandleVersions)

	group := app.Group("/compare")
	group.Get("/", h.HandleCompare)
	group.Get("/view", h.HandleView)
}

func status(err error) int {
	switch {
	case errors.Is(err, ErrMissingVersion):
		return fiber.StatusBadRequest
	case errors.Is(err, catalog.ErrDatasetMissing):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// HandleVersions lists the release versions.
// @Summary List Versions
// @Description Lists the release versions of the catalog source, newest first.
// @Tags compare
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /versions [get]
func (h *Handler) HandleVersions(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	versions, err := h.service.Versions(c.UserContext())
	if err != nil {
		l.Error("Failed to list versions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(versions)
}

// HandleCompare diffs two versions.
// @Summary Compare Versions
// @Description Compares the item catalog of two release versions.
// @Tags compare
// @Produce json
// @Param a query string true "Older version"
// @Param b query string true "Newer version"
// @Success 200 {object} Report
// @Failure 400 {object} map[string]string "Missing version"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare [get]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	report, err := h.service.Compare(c.UserContext(), c.Query("a"), c.Query("b"))
	if err != nil {
		l.Error("Comparison failed", zap.Error(err))
		return c.Status(status(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleView renders the comparison of two versions as HTML.
// @Summary Comparison View
// @Description Renders the comparison of two release versions in the requested language.
// @Tags compare
// @Produce html
// @Param a query string true "Older version"
// @Param b query string true "Newer version"
// @Param lang query string false "Language code"
// @Success 200 {string} string "HTML fragment"
// @Failure 400 {string} string "Missing version"
// @Router /compare/view [get]
func (h *Handler) HandleView(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.UserContext()

	c.Type("html", "utf-8")
	report, err := h.service.Compare(ctx, c.Query("a"), c.Query("b"))
	if err != nil {
		l.Error("Comparison failed", zap.Error(err))
		return c.Status(status(err)).SendString("<p>" + templ.EscapeString(err.Error()) + "</p>")
	}
	return View(report, h.service.Localizer(ctx, c.Query("lang"))).Render(ctx, c.Response().BodyWriter())
}
