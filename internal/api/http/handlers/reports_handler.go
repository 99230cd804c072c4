package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/suroriente/helpdesk-service/internal/api/dto"
	"github.com/suroriente/helpdesk-service/internal/auth"
	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/service"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

// ReportsHandler serves the reporting and dashboard endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// TicketsByPeriod GET /reports/tickets?periodo=semana|mes|anio|rango&inicio=&fin=&tipo=.
func (h *ReportsHandler) TicketsByPeriod(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	period := domain.ReportPeriod{Kind: domain.PeriodKind(c.Query("periodo"))}
	if period.Kind == domain.PeriodRange {
		start, err := parseDate(c.Query("inicio"))
		if err != nil {
			return apperrors.NewValidationError("invalid inicio date", nil)
		}
		end, err := parseDate(c.Query("fin"))
		if err != nil {
			return apperrors.NewValidationError("invalid fin date", nil)
		}
		period.Start = start
		period.End = end
	}

	var supportType *domain.SupportType
	if raw := c.Query("tipo"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid tipo", nil)
		}
		st, ok := domain.SupportTypeFromID(id)
		if !ok {
			return apperrors.NewValidationError("unknown tipo", map[string]any{"tipo": id})
		}
		supportType = &st
	}

	rows, err := h.service.TicketsByPeriod(c.UserContext(), *identity, period, supportType)
	if err != nil {
		return err
	}
	items := make([]dto.ReportRowItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, reportRow(row))
	}
	return respond(c, fiber.StatusOK, "", items)
}

// MonthlySummary GET /reports/monthly?anio=2026.
func (h *ReportsHandler) MonthlySummary(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	year := time.Now().Year()
	if raw := c.Query("anio"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid anio", nil)
		}
		year = parsed
	}

	rows, err := h.service.MonthlySummary(c.UserContext(), *identity, year)
	if err != nil {
		return err
	}
	items := make([]dto.MonthlySummaryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.MonthlySummaryItem{
			Month:      row.Month,
			MonthName:  row.MonthName,
			Total:      row.Total,
			Open:       row.Open,
			InProgress: row.InProgress,
			Resolved:   row.Resolved,
		})
	}
	return respond(c, fiber.StatusOK, "", items)
}

// History GET /reports/history.
func (h *ReportsHandler) History(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	rows, err := h.service.History(c.UserContext(), *identity)
	if err != nil {
		return err
	}
	items := make([]dto.HistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.HistoryItem{
			Year:        row.Year,
			Month:       row.Month,
			MonthName:   row.MonthName,
			Total:       row.Total,
			Open:        row.Open,
			InProgress:  row.InProgress,
			Resolved:    row.Resolved,
			Platform:    row.Platform,
			CreditNotes: row.CreditNotes,
			Other:       row.Other,
		})
	}
	return respond(c, fiber.StatusOK, "", items)
}

// Dashboard GET /reports/dashboard.
func (h *ReportsHandler) Dashboard(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	dash, err := h.service.GetDashboard(c.UserContext(), *identity)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dash)
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func reportRow(row domain.ReportRow) dto.ReportRowItem {
	return dto.ReportRowItem{
		TicketID:           row.TicketID,
		CreatedAt:          row.CreatedAt,
		Status:             string(row.Status),
		SupportType:        row.SupportTypeName,
		RequesterName:      row.RequesterName,
		RequesterSurname:   row.RequesterSurname,
		RequesterEmail:     row.RequesterEmail,
		RequesterPhone:     row.RequesterPhone,
		EngineerName:       row.EngineerName,
		EngineerSurname:    row.EngineerSurname,
		EngineerEmail:      row.EngineerEmail,
		Municipality:       row.Municipality,
		Description:        row.Description,
		Image:              row.Image,
		BillingDate:        row.BillingDate,
		InvoiceToVoid:      row.InvoiceToVoid,
		CopayInvoiceToVoid: row.CopayInvoiceToVoid,
		VoidedCopayAmount:  row.VoidedCopayAmount,
		InvoiceToRebill:    row.InvoiceToRebill,
	}
}
