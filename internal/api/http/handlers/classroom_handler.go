package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/registrar-service/internal/api/dto"
	"github.com/campus-kit/registrar-service/internal/domain"
	"github.com/campus-kit/registrar-service/internal/repository"
	"github.com/campus-kit/registrar-service/internal/service"
	util "github.com/campus-kit/registrar-service/pkg/util"
)

// ClassroomHandler manages classroom maintenance ticket endpoints.
type ClassroomHandler struct {
	service *service.ClassroomService
}

// NewClassroomHandler constructs handler.
func NewClassroomHandler(classroomService *service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{service: classroomService}
}

// Create POST /api/classroom-tickets.
func (h *ClassroomHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid JSON body")
	}
	if err := requireFields(
		fieldPair{"department", req.Department},
		fieldPair{"requester", req.Requester},
		fieldPair{"particulars", req.Particulars},
		fieldPair{"location", req.Location},
		fieldPair{"description", req.Description},
	); err != nil {
		return err
	}

	dateFiled, err := dto.ParseDate("dateFiled", req.DateFiled)
	if err != nil {
		return util.NewValidationError(err.Error())
	}

	ticket, err := h.service.Create(c.UserContext(), service.ClassroomCreateInput{
		Reference:   req.Reference,
		Department:  req.Department,
		Requester:   req.Requester,
		Particulars: req.Particulars,
		Location:    req.Location,
		Description: req.Description,
		DateFiled:   dateFiled,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":        true,
		"_id":       ticket.ID,
		"reference": ticket.Reference,
	})
}

// List GET /api/classroom-tickets.
func (h *ClassroomHandler) List(c *fiber.Ctx) error {
	filter := repository.ClassroomFilter{
		Status:     optionalQuery(c, "status"),
		SearchTerm: optionalQuery(c, "q"),
		Limit:      parseLimit(c.Query("limit"), defaultMaintenanceLimit, maxMaintenanceLimit),
	}

	tickets, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ClassroomResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.ClassroomResponseFrom(&tickets[i]))
	}
	return c.JSON(items)
}

// UpdateStatus PATCH /api/classroom-tickets/:id.
func (h *ClassroomHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	var req dto.StatusPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid JSON body")
	}
	if !domain.ValidMaintenanceStatus(req.Status) {
		return util.NewValidationError("Invalid status")
	}
	if err := h.service.SetStatus(c.UserContext(), id, req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Delete DELETE /api/classroom-tickets/:id.
func (h *ClassroomHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}
