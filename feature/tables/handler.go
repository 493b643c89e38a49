package tables

import (
	"errors"
	"time"

	"gamedata-wiki/core/logger"
	"gamedata-wiki/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the wiki tables.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the table routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandlePage)
	app.Get("/languages", h.HandleLanguages)

	group := app.Group("/tables")
	group.Get("/", h.HandleList)
	group.Post("/reload", h.HandleReload)
	group.Get("/:dataset", h.HandleTable)
}

// TableList is the response of the table list.
type TableList struct {
	Version string   `json:"version"`
	Tables  []string `json:"tables"`
}

// ReloadResponse is the response of a reload.
type ReloadResponse struct {
	Version  string `json:"version"`
	LoadedAt string `json:"loaded_at"`
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownDataset):
		status = fiber.StatusNotFound
	case errors.Is(err, session.ErrNotLoaded):
		status = fiber.StatusServiceUnavailable
	}
	l.Error(msg, zap.Error(err))
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// HandlePage renders the wiki page.
// @Summary Wiki Page
// @Description Renders every table of the loaded release in the requested language.
// @Tags tables
// @Produce html
// @Param lang query string false "Language code"
// @Success 200 {string} string "HTML page"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router / [get]
func (h *Handler) HandlePage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.UserContext()

	lang, err := h.service.ResolveLang(ctx, c.Query("lang"))
	if err != nil {
		return h.fail(c, l, "Failed to load session", err)
	}
	tables, err := h.service.RenderAll(ctx, lang)
	if err != nil {
		return h.fail(c, l, "Failed to render tables", err)
	}
	version, err := h.service.Version(ctx)
	if err != nil {
		return h.fail(c, l, "Failed to load session", err)
	}
	langs, err := h.service.Languages(ctx)
	if err != nil {
		return h.fail(c, l, "Failed to load languages", err)
	}
	loc, err := h.service.Localizer(ctx, lang)
	if err != nil {
		return h.fail(c, l, "Failed to load session", err)
	}

	c.Type("html", "utf-8")
	return Page(PageData{
		Lang:      lang,
		Version:   version,
		Languages: langs,
		Tables:    tables,
		Loc:       loc,
	}).Render(ctx, c.Response().BodyWriter())
}

// HandleList lists the tables.
// @Summary List Tables
// @Description Lists the configured tables in page order.
// @Tags tables
// @Produce json
// @Success 200 {object} TableList
// @Failure 503 {object} map[string]string "Not loaded"
// @Router /tables [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	version, err := h.service.Version(c.UserContext())
	if err != nil {
		return h.fail(c, l, "Failed to load session", err)
	}
	return c.JSON(TableList{Version: version, Tables: h.service.Tables()})
}

// HandleTable renders one table.
// @Summary Render Table
// @Description Renders one table as an HTML fragment, or as JSON with format=json.
// @Tags tables
// @Produce html,json
// @Param dataset path string true "Table name (e.g. 'items')"
// @Param lang query string false "Language code"
// @Param format query string false "html or json"
// @Success 200 {object} Rendered
// @Failure 404 {object} map[string]string "Unknown table"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tables/{dataset} [get]
func (h *Handler) HandleTable(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c).With(zap.String("table", c.Params("dataset")))
	ctx := c.UserContext()

	lang, err := h.service.ResolveLang(ctx, c.Query("lang"))
	if err != nil {
		return h.fail(c, l, "Failed to load session", err)
	}
	r, err := h.service.Render(ctx, c.Params("dataset"), lang)
	if err != nil {
		return h.fail(c, l, "Failed to render table", err)
	}

	if c.Query("format") == "json" {
		return c.JSON(r)
	}
	c.Type("html", "utf-8")
	return c.SendString(r.HTML)
}

// HandleReload reloads the release and the translations.
// @Summary Reload Data
// @Description Reloads the release bundle and translations. The previous data stays in place on failure.
// @Tags tables
// @Produce json
// @Success 200 {object} ReloadResponse
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tables/reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Reloading release data")

	sess, err := h.service.Reload(c.UserContext())
	if err != nil {
		return h.fail(c, l, "Reload failed", err)
	}
	l.Info("Release data reloaded", zap.String("version", sess.Version))
	return c.JSON(ReloadResponse{
		Version:  sess.Version,
		LoadedAt: sess.LoadedAt.UTC().Format(time.RFC3339),
	})
}

// HandleLanguages lists the available languages.
// @Summary List Languages
// @Tags tables
// @Produce json
// @Success 200 {array} i18n.Language
// @Failure 503 {object} map[string]string "Not loaded"
// @Router /languages [get]
func (h *Handler) HandleLanguages(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	langs, err := h.service.Languages(c.UserContext())
	if err != nil {
		return h.fail(c, l, "Failed to load languages", err)
	}
	return c.JSON(langs)
}
