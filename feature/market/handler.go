package market

import (
	"errors"
	"io"
	"strconv"

	"gamedata-wiki/core/logger"
	"gamedata-wiki/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the market prices.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the market routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/market")
	group.Get("/", h.HandleGet)
	group.Post("/load", h.HandleLoad)
	group.Put("/cells/:row/:col", h.HandleSetCell)
	group.Post("/import", h.HandleImport)
	group.Get("/export", h.HandleExport)
}

// LoadRequest is the body of a load request.
type LoadRequest struct {
	Sheet string `json:"sheet"`
	Force bool   `json:"force"`
}

// CellRequest is the body of a cell edit.
type CellRequest struct {
	// Value is a number or a numeric string.
	Value any `json:"value"`
}

// RowsResponse carries the price table.
type RowsResponse struct {
	Count int   `json:"count"`
	Rows  []Row `json:"rows"`
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidRow), errors.Is(err, ErrInvalidNumber),
		errors.Is(err, ErrNotEditable), errors.Is(err, ErrNoSheet),
		errors.Is(err, ErrNoValidData):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrRowOutOfRange), errors.Is(err, ErrNoData):
		status = fiber.StatusNotFound
	}
	l.Error(msg, zap.Error(err))

	message := err.Error()
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		if translated := rowErr.Message(h.service.Localizer(c.UserContext(), c.Query("lang"))); translated != rowErr.Key {
			message = translated
		}
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// HandleGet renders the price table.
// @Summary Market Prices
// @Description Renders the price table as editable HTML, or as JSON with format=json.
// @Tags market
// @Produce html,json
// @Param lang query string false "Language code"
// @Param format query string false "html or json"
// @Success 200 {object} RowsResponse
// @Router /market [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	rows := h.service.Rows()
	if c.Query("format") == "json" {
		return c.JSON(RowsResponse{Count: len(rows), Rows: rows})
	}

	loc := h.service.Localizer(c.UserContext(), c.Query("lang"))
	empty := loc.Translate("no_data_to_display")
	if empty == "no_data_to_display" {
		empty = "No data to display"
	}
	c.Type("html", "utf-8")
	return c.SendString(Markup(rows, loc, empty))
}

// HandleLoad loads the price table from the cache or the sheet.
// @Summary Load Market Prices
// @Description Loads the price table from the cache, or from the Google Sheet when forced or nothing is cached.
// @Tags market
// @Accept json
// @Produce json
// @Param request body LoadRequest false "Sheet URL or id"
// @Success 200 {object} RowsResponse
// @Failure 400 {object} map[string]string "Invalid sheet data"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /market/load [post]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req LoadRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	if c.QueryBool("force") {
		req.Force = true
	}

	rows, err := h.service.Load(c.UserContext(), req.Sheet, req.Force)
	if err != nil {
		return h.fail(c, l, "Market load failed", err)
	}
	return c.JSON(RowsResponse{Count: len(rows), Rows: rows})
}

// HandleSetCell edits a buy or sell price.
// @Summary Edit Market Price
// @Description Sets the buy (column 3) or sell (column 4) price of a row.
// @Tags market
// @Accept json
// @Produce json
// @Param row path int true "Row index"
// @Param col path int true "Column index"
// @Param request body CellRequest true "New value"
// @Success 200 {object} Row
// @Failure 400 {object} map[string]string "Invalid value or column"
// @Failure 404 {object} map[string]string "Row not found"
// @Router /market/cells/{row}/{col} [put]
func (h *Handler) HandleSetCell(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	row, err := strconv.Atoi(c.Params("row"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid row index"})
	}
	col, err := strconv.Atoi(c.Params("col"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid column index"})
	}
	var req CellRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	updated, err := h.service.SetCell(c.UserContext(), row, col, utils.ToString(req.Value))
	if err != nil {
		return h.fail(c, l, "Market edit rejected", err)
	}
	return c.JSON(updated)
}

// HandleImport replaces the price table with an uploaded CSV.
// @Summary Import Market Prices
// @Description Replaces the price table with a CSV document (item_id, market_buy, market_sell), sent as the body or as the "file" form field.
// @Tags market
// @Accept text/csv,multipart/form-data
// @Produce json
// @Success 200 {object} RowsResponse
// @Failure 400 {object} map[string]string "Invalid CSV"
// @Router /market/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data := c.Body()
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return h.fail(c, l, "Failed to open upload", err)
		}
		defer f.Close()
		buf := make([]byte, fh.Size)
		if _, err := io.ReadFull(f, buf); err != nil {
			return h.fail(c, l, "Failed to read upload", err)
		}
		data = buf
	}

	rows, err := h.service.Import(c.UserContext(), data)
	if err != nil {
		return h.fail(c, l, "Market import failed", err)
	}
	return c.JSON(RowsResponse{Count: len(rows), Rows: rows})
}

// HandleExport downloads the market prices as CSV.
// @Summary Export Market Prices
// @Tags market
// @Produce text/csv
// @Success 200 {string} string "CSV document"
// @Failure 404 {object} map[string]string "No data"
// @Router /market/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data, err := h.service.Export()
	if err != nil {
		return h.fail(c, l, "Market export failed", err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="market_prices.csv"`)
	return c.Send(data)
}
