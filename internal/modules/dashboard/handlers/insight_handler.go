package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/export"
)

// ChatRequest is a message for the assistant
type ChatRequest struct {
	Message string `json:"message"`
}

type InsightHandler struct {
	exporter  *export.Service
	publicURL string
}

func NewInsightHandler(exporter *export.Service, publicURL string) *InsightHandler {
	return &InsightHandler{exporter: exporter, publicURL: publicURL}
}

// GetChart godoc
// @Summary Render a chart
// @Description Renders a series of the open detail page as SVG, or as chart JSON with format=json
// @Tags Dashboard
// @Produce image/svg+xml
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param key path string true "Chart key (e.g. retention, processes)"
// @Param format query string false "svg or json" default(svg)
// @Success 200 {string} string "SVG document"
// @Success 200 {object} analytics.ChartData
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /charts/{key} [get]
func (h *InsightHandler) GetChart(c *fiber.Ctx) error {
	key := c.Params("key")
	points, err := currentSession(c).Chart(key)
	if err != nil {
		return respondError(c, err)
	}

	if c.Query("format") == "json" {
		return c.JSON(analytics.ToChartData(key, points))
	}

	svg := analytics.RenderSVG(key, points)
	if svg == "" {
		return c.Status(fiber.StatusNoContent).Send(nil)
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(svg)
}

// Export godoc
// @Summary Export the dashboard
// @Description Downloads the current dashboard as an Excel workbook or PDF
// @Tags Dashboard
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param Authorization header string true "Bearer token"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /export [get]
func (h *InsightHandler) Export(c *fiber.Ctx) error {
	format, ok := export.ParseFormat(c.Query("format", string(export.FormatExcel)))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported export format. Use: xlsx or pdf",
		})
	}

	now := time.Now()
	report, err := currentSession(c).Report(c.UserContext(), now)
	if err != nil {
		return respondError(c, err)
	}

	data, contentType, ext, err := h.exporter.Export(report, format)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("clarity-dashboard-%s.%s", now.Format("20060102"), ext)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// Chat godoc
// @Summary Ask the assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body ChatRequest true "Message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /chat [post]
func (h *InsightHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	s := currentSession(c)
	reply, err := s.Chat(c.UserContext(), req.Message)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"reply":    reply,
		"messages": s.Transcript(),
	})
}

// ShareQR godoc
// @Summary Dashboard QR code
// @Description PNG QR code pointing at the public dashboard URL
// @Tags Dashboard
// @Produce image/png
// @Param size query int false "Image size in pixels" default(256)
// @Success 200 {file} file
// @Router /share/qr [get]
func (h *InsightHandler) ShareQR(c *fiber.Ctx) error {
	size := c.QueryInt("size", 256)
	if size < 64 || size > 1024 {
		size = 256
	}

	png, err := qrcode.Encode(h.publicURL, qrcode.Medium, size)
	if err != nil {
		return respondError(c, fmt.Errorf("failed to generate QR code: %w", err))
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
