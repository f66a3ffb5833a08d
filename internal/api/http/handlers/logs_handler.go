package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/registrar-service/internal/api/dto"
	"github.com/campus-kit/registrar-service/internal/repository"
	"github.com/campus-kit/registrar-service/internal/service"
	util "github.com/campus-kit/registrar-service/pkg/util"
)

const defaultLogPageSize = 50

// LogsHandler manages the library sign-in log endpoints.
type LogsHandler struct {
	service *service.LibraryService
}

// NewLogsHandler constructs handler.
func NewLogsHandler(libraryService *service.LibraryService) *LogsHandler {
	return &LogsHandler{service: libraryService}
}

// Create POST /api/logs. Requires the full manual sign-in fields.
func (h *LogsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLibraryLogRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid JSON body")
	}
	if err := requireFields(
		fieldPair{"date", req.Date},
		fieldPair{"timeIn", req.TimeIn},
		fieldPair{"name", req.Name},
		fieldPair{"yearLevel", req.YearLevel},
		fieldPair{"course", req.Course},
		fieldPair{"purpose", req.Purpose},
	); err != nil {
		return err
	}
	return h.create(c, req)
}

// SignIn POST /api/logs/signin. Simplified variant used by the QR kiosk;
// date and timeIn default to the current wall clock.
func (h *LogsHandler) SignIn(c *fiber.Ctx) error {
	var req dto.CreateLibraryLogRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid JSON body")
	}
	if err := requireFields(
		fieldPair{"name", req.Name},
		fieldPair{"yearLevel", req.YearLevel},
		fieldPair{"purpose", req.Purpose},
	); err != nil {
		return err
	}
	if req.Via == "" {
		req.Via = "qr"
	}
	return h.create(c, req)
}

func (h *LogsHandler) create(c *fiber.Ctx, req dto.CreateLibraryLogRequest) error {
	log, err := h.service.Create(c.UserContext(), service.LibraryLogInput{
		Date:      req.Date,
		TimeIn:    req.TimeIn,
		Name:      req.Name,
		YearLevel: req.YearLevel,
		Course:    req.Course,
		Purpose:   req.Purpose,
		Extra:     req.Extra,
		Via:       req.Via,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "_id": log.ID})
}

// List GET /api/logs. Paginated; limit=0 or export=1 returns every
// matching row.
func (h *LogsHandler) List(c *fiber.Ctx) error {
	filter := repository.LibraryLogFilter{
		Purpose:    optionalQuery(c, "purpose"),
		Course:     optionalQuery(c, "course"),
		SearchTerm: optionalQuery(c, "q"),
		DateFrom:   optionalQuery(c, "from"),
		DateTo:     optionalQuery(c, "to"),
	}

	page := parseLimit(c.Query("page"), 1, 0)
	rawSize := c.Query("pageSize", c.Query("limit"))
	exportAll := c.Query("export") == "1" || rawSize == "0"
	pageSize := parseLimit(rawSize, defaultLogPageSize, 0)

	result, err := h.service.List(c.UserContext(), filter, page, pageSize, exportAll)
	if err != nil {
		return err
	}

	rows := make([]dto.LibraryLogResponse, 0, len(result.Rows))
	for i := range result.Rows {
		rows = append(rows, dto.LibraryLogResponseFrom(&result.Rows[i]))
	}
	return c.JSON(dto.LibraryLogPageResponse{
		Rows:     rows,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}
