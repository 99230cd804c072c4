package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/suroriente/helpdesk-service/internal/api/dto"
	"github.com/suroriente/helpdesk-service/internal/auth"
	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/service"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

// SupportsHandler manages the per-category creation and listing
// endpoints.
type SupportsHandler struct {
	service *service.TicketService
}

// NewSupportsHandler constructs handler.
func NewSupportsHandler(ticketService *service.TicketService) *SupportsHandler {
	return &SupportsHandler{service: ticketService}
}

// CreatePlatform POST /supports/platform.
func (h *SupportsHandler) CreatePlatform(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateSupportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), *identity, domain.PlatformDetail{
		Description: req.Description,
		ImageURL:    req.Image,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "support ticket created", createdTicket(ticket))
}

// CreateOther POST /supports/other.
func (h *SupportsHandler) CreateOther(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateSupportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), *identity, domain.OtherDetail{
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "support ticket created", createdTicket(ticket))
}

// CreateCreditNote POST /supports/credit-note.
func (h *SupportsHandler) CreateCreditNote(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCreditNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), *identity, domain.CreditNoteDetail{
		BillingDate:        req.BillingDate,
		InvoiceToVoid:      req.InvoiceToVoid,
		CopayInvoiceToVoid: req.CopayInvoiceToVoid,
		VoidedCopayAmount:  req.VoidedCopayAmount,
		InvoiceToRebill:    req.InvoiceToRebill,
		AttentionCenter:    req.AttentionCenter,
		BillerName:         req.BillerName,
		Reason:             req.Reason,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "credit note ticket created", createdTicket(ticket))
}

// ListPlatform GET /supports/platform.
func (h *SupportsHandler) ListPlatform(c *fiber.Ctx) error {
	return h.list(c, domain.SupportTypePlatform)
}

// ListOther GET /supports/other.
func (h *SupportsHandler) ListOther(c *fiber.Ctx) error {
	return h.list(c, domain.SupportTypeOther)
}

// ListCreditNotes GET /supports/credit-note.
func (h *SupportsHandler) ListCreditNotes(c *fiber.Ctx) error {
	return h.list(c, domain.SupportTypeCreditNote)
}

func (h *SupportsHandler) list(c *fiber.Ctx, supportType domain.SupportType) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	rows, err := h.service.ListSupports(c.UserContext(), *identity, supportType)
	if err != nil {
		return err
	}
	items := make([]dto.SupportRowItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.SupportRowItem{
			TicketID:        row.TicketID,
			Status:          string(row.Status),
			CreatedAt:       row.CreatedAt,
			Description:     row.Description,
			ImageURL:        row.ImageURL,
			AttentionCenter: row.AttentionCenter,
			BillingDate:     row.BillingDate,
			VoidedAmount:    row.VoidedAmount,
			EngineerName:    row.EngineerName,
			EngineerSurname: row.EngineerSurname,
		})
	}
	return respond(c, fiber.StatusOK, "", items)
}

func createdTicket(ticket *domain.Ticket) dto.CreatedTicketResponse {
	return dto.CreatedTicketResponse{
		ID:             ticket.ID,
		Status:         string(ticket.Status),
		SupportType:    string(ticket.SupportType),
		MunicipalityID: ticket.MunicipalityID,
		EngineerID:     ticket.EngineerID,
		CreatedAt:      ticket.CreatedAt,
	}
}
