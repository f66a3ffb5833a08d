package handlers

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/registrar-service/internal/api/dto"
	"github.com/campus-kit/registrar-service/internal/repository"
	"github.com/campus-kit/registrar-service/internal/service"
	util "github.com/campus-kit/registrar-service/pkg/util"
)

// TicketsHandler manages registrar document-request ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /api/tickets. A JSON array body is a bulk insert.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) > 0 && body[0] == '[' {
		return h.createBulk(c, body)
	}

	var req dto.CreateTicketRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return util.NewValidationError("Invalid JSON body")
	}
	if err := requireFields(
		fieldPair{"studentName", req.StudentName},
		fieldPair{"requestType", req.RequestType},
		fieldPair{"dateReceived", req.DateReceived},
	); err != nil {
		return err
	}

	input, err := req.ToInput()
	if err != nil {
		return util.NewValidationError(err.Error())
	}
	ticket, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":  true,
		"_id": ticket.ID,
		"ref": ticket.Ref,
	})
}

func (h *TicketsHandler) createBulk(c *fiber.Ctx, body []byte) error {
	var reqs []dto.CreateTicketRequest
	if err := json.Unmarshal(body, &reqs); err != nil {
		return util.NewValidationError("Invalid JSON body")
	}
	if len(reqs) == 0 {
		return util.NewValidationError("Empty array")
	}

	inputs := make([]service.TicketCreateInput, 0, len(reqs))
	for _, req := range reqs {
		input, err := req.ToInput()
		if err != nil {
			return util.NewValidationError(err.Error())
		}
		inputs = append(inputs, input)
	}

	inserted, err := h.service.CreateBatch(c.UserContext(), inputs)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":            true,
		"insertedCount": inserted,
	})
}

// List GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return err
	}
	filter := repository.TicketFilter{
		Status:     optionalQuery(c, "status"),
		SearchTerm: optionalQuery(c, "q"),
		From:       from,
		To:         to,
		Limit:      parseLimit(c.Query("limit"), 0, 0),
	}

	tickets, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.TicketResponseFrom(&tickets[i]))
	}
	return c.JSON(items)
}

// Update PATCH /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	patch, err := dto.ParseTicketPatch(c.Body())
	if err != nil {
		return util.NewValidationError(err.Error())
	}
	if _, err := h.service.Update(c.UserContext(), id, patch); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true, "_id": id})
}

// Delete DELETE /api/tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true, "_id": id})
}
