package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/suroriente/helpdesk-service/internal/api/dto"
	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/service"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

// CatalogHandler serves the municipality, position and support-type
// reference endpoints.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalogService}
}

// CreateMunicipality POST /municipalities (ADMIN).
func (h *CatalogHandler) CreateMunicipality(c *fiber.Ctx) error {
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	municipality, err := h.service.CreateMunicipality(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "municipality created", municipalityItem(municipality))
}

// ListMunicipalities GET /municipalities.
func (h *CatalogHandler) ListMunicipalities(c *fiber.Ctx) error {
	list, err := h.service.ListMunicipalities(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CatalogItem, 0, len(list))
	for i := range list {
		items = append(items, municipalityItem(&list[i]))
	}
	return respond(c, fiber.StatusOK, "", items)
}

// UpdateMunicipality PUT /municipalities/:id (ADMIN).
func (h *CatalogHandler) UpdateMunicipality(c *fiber.Ctx) error {
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	municipality, err := h.service.UpdateMunicipality(c.UserContext(), c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "municipality updated", municipalityItem(municipality))
}

// DeleteMunicipality DELETE /municipalities/:id (ADMIN).
func (h *CatalogHandler) DeleteMunicipality(c *fiber.Ctx) error {
	if err := h.service.DeleteMunicipality(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "municipality deleted", nil)
}

// CreatePosition POST /positions (ADMIN).
func (h *CatalogHandler) CreatePosition(c *fiber.Ctx) error {
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	position, err := h.service.CreatePosition(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "position created", positionItem(position))
}

// ListPositions GET /positions.
func (h *CatalogHandler) ListPositions(c *fiber.Ctx) error {
	list, err := h.service.ListPositions(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CatalogItem, 0, len(list))
	for i := range list {
		items = append(items, positionItem(&list[i]))
	}
	return respond(c, fiber.StatusOK, "", items)
}

// UpdatePosition PUT /positions/:id (ADMIN).
func (h *CatalogHandler) UpdatePosition(c *fiber.Ctx) error {
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	position, err := h.service.UpdatePosition(c.UserContext(), c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "position updated", positionItem(position))
}

// DeletePosition DELETE /positions/:id (ADMIN).
func (h *CatalogHandler) DeletePosition(c *fiber.Ctx) error {
	if err := h.service.DeletePosition(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "position deleted", nil)
}

// ListSupportTypes GET /support-types.
func (h *CatalogHandler) ListSupportTypes(c *fiber.Ctx) error {
	list, err := h.service.ListSupportTypes(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.SupportTypeItem, 0, len(list))
	for _, info := range list {
		items = append(items, dto.SupportTypeItem{ID: info.ID, Name: info.Name})
	}
	return respond(c, fiber.StatusOK, "", items)
}

func municipalityItem(m *domain.Municipality) dto.CatalogItem {
	return dto.CatalogItem{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func positionItem(p *domain.Position) dto.CatalogItem {
	return dto.CatalogItem{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}
