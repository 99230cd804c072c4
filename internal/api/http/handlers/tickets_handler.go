package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/suroriente/helpdesk-service/internal/api/dto"
	"github.com/suroriente/helpdesk-service/internal/auth"
	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/service"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler manages the scope-filtered ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	rows, err := h.service.ListTickets(c.UserContext(), *identity)
	if err != nil {
		return err
	}
	items := make([]dto.TicketRowItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.TicketRowItem{
			ID:               row.ID,
			RequesterName:    row.RequesterName,
			RequesterSurname: row.RequesterSurname,
			RequesterEmail:   row.RequesterEmail,
			RequesterPhone:   row.RequesterPhone,
			SupportType:      row.SupportTypeName,
			Status:           string(row.Status),
			Description:      row.Description,
			ImageURL:         row.ImageURL,
			CreatedAt:        row.CreatedAt,
		})
	}
	return respond(c, fiber.StatusOK, "", items)
}

// StatusSummary GET /tickets/estado.
func (h *TicketsHandler) StatusSummary(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	counts, total, err := h.service.StatusSummary(c.UserContext(), *identity)
	if err != nil {
		return err
	}
	items := make([]dto.StatusCountItem, 0, len(counts))
	for _, count := range counts {
		items = append(items, dto.StatusCountItem{Status: string(count.Status), Total: count.Total})
	}
	return respond(c, fiber.StatusOK, "", dto.StatusSummaryResponse{
		Counts:       items,
		TotalGeneral: total,
	})
}

// CategoryTotals GET /tickets/totales.
func (h *TicketsHandler) CategoryTotals(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	totals, err := h.service.CategoryTotals(c.UserContext(), *identity)
	if err != nil {
		return err
	}
	items := make([]dto.CategoryTotalItem, 0, len(totals))
	for _, total := range totals {
		items = append(items, dto.CategoryTotalItem{SupportType: total.SupportTypeName, Total: total.Total})
	}
	return respond(c, fiber.StatusOK, "", items)
}

// Transition PATCH /tickets/:id/estado.
func (h *TicketsHandler) Transition(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Estado == "" {
		return apperrors.NewValidationError("estado is required", nil)
	}
	if err := h.service.ApplyTransition(c.UserContext(), *identity, c.Params("id"), domain.TicketStatus(req.Estado)); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "ticket status updated", fiber.Map{
		"id":     c.Params("id"),
		"status": req.Estado,
	})
}
