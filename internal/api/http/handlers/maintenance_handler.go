package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/registrar-service/internal/api/dto"
	"github.com/campus-kit/registrar-service/internal/domain"
	"github.com/campus-kit/registrar-service/internal/repository"
	"github.com/campus-kit/registrar-service/internal/service"
	util "github.com/campus-kit/registrar-service/pkg/util"
)

const (
	defaultMaintenanceLimit = 200
	maxMaintenanceLimit     = 1000
)

// MaintenanceHandler manages general maintenance ticket endpoints.
type MaintenanceHandler struct {
	service *service.MaintenanceService
}

// NewMaintenanceHandler constructs handler.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: maintenanceService}
}

// Create POST /api/maintenance.
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid JSON body")
	}
	if err := requireFields(
		fieldPair{"requester", req.Requester},
		fieldPair{"department", req.Department},
		fieldPair{"description", req.Description},
		fieldPair{"urgency", req.Urgency},
	); err != nil {
		return err
	}

	ticket, err := h.service.Create(c.UserContext(), service.MaintenanceCreateInput{
		TicketID:    req.TicketID,
		Requester:   req.Requester,
		Department:  req.Department,
		Description: req.Description,
		Urgency:     req.Urgency,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":       true,
		"_id":      ticket.ID,
		"ticketId": ticket.TicketID,
	})
}

// List GET /api/maintenance.
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	filter := repository.MaintenanceFilter{
		Status:     optionalQuery(c, "status"),
		Urgency:    optionalQuery(c, "urgency"),
		SearchTerm: optionalQuery(c, "q"),
		Limit:      parseLimit(c.Query("limit"), defaultMaintenanceLimit, maxMaintenanceLimit),
	}

	tickets, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.MaintenanceResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.MaintenanceResponseFrom(&tickets[i]))
	}
	return c.JSON(items)
}

// UpdateStatus PATCH /api/maintenance/:id. Status is the only mutable field.
func (h *MaintenanceHandler) UpdateStatus(c *fiber.Ctx) error {
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

// Delete DELETE /api/maintenance/:id.
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}
