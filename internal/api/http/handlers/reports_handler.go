package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/registrar-service/internal/service"
)

// ReportsHandler serves aggregated registrar ticket reports.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Weekly GET /api/reports/weekly.
func (h *ReportsHandler) Weekly(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return err
	}
	buckets, err := h.service.Weekly(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(buckets)
}

// Monthly GET /api/reports/monthly.
func (h *ReportsHandler) Monthly(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return err
	}
	buckets, err := h.service.Monthly(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(buckets)
}
