package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/events"
	"github.com/suroriente/helpdesk-service/internal/repository"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

// TicketService orchestrates ticket creation and the lifecycle state
// machine.
type TicketService struct {
	tickets        repository.TicketRepository
	supports       repository.SupportRepository
	municipalities repository.MunicipalityRepository
	assigner       *AssignmentService
	dispatcher     events.Dispatcher
	logger         *zap.Logger
}

// TicketDependencies bundles repositories.
type TicketDependencies struct {
	TicketRepo       repository.TicketRepository
	SupportRepo      repository.SupportRepository
	MunicipalityRepo repository.MunicipalityRepository
	Assigner         *AssignmentService
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewTicketService creates the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:        deps.TicketRepo,
		supports:       deps.SupportRepo,
		municipalities: deps.MunicipalityRepo,
		assigner:       deps.Assigner,
		dispatcher:     deps.Dispatcher,
		logger:         deps.Logger,
	}
}

// CreateTicket validates the detail payload, assigns an engineer and
// persists ticket plus detail atomically. The new ticket always starts
// open and always belongs to the requester's own municipality; the
// client never picks one. Notification fan-out happens after commit and
// never affects the response.
func (s *TicketService) CreateTicket(ctx context.Context, actor domain.Identity, detail domain.TicketDetail) (*domain.Ticket, error) {
	if actor.MunicipalityID == nil || *actor.MunicipalityID == "" {
		return nil, apperrors.NewValidationError("requester has no municipality", nil)
	}
	municipalityID := *actor.MunicipalityID
	municipality, err := s.municipalities.GetByID(ctx, municipalityID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("municipality", map[string]any{"municipality_id": municipalityID})
		}
		return nil, apperrors.MapError(err)
	}

	if err := detail.Validate(); err != nil {
		var missing *domain.MissingFieldsError
		if errors.As(err, &missing) {
			return nil, apperrors.NewValidationError(err.Error(), map[string]any{"missing_fields": missing.Fields})
		}
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	engineerID, err := s.assigner.PickEngineer(ctx, municipalityID)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		RequesterID:    actor.UserID,
		EngineerID:     &engineerID,
		MunicipalityID: municipalityID,
		SupportType:    detail.SupportType(),
		Status:         domain.TicketStatusOpen,
	}
	if err := s.tickets.CreateWithDetail(ctx, ticket, detail); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("support_type", string(ticket.SupportType)),
		zap.String("municipality_id", municipalityID),
		zap.String("engineer_id", engineerID))

	s.publishCreated(ctx, actor, ticket, detail, municipality.Name)
	return ticket, nil
}

// ApplyTransition advances the ticket lifecycle for the actor. The
// authorization check runs before transition validity, so a caller
// without rights over the ticket never learns whether the move would
// have been legal.
func (s *TicketService) ApplyTransition(ctx context.Context, actor domain.Identity, ticketID string, next domain.TicketStatus) error {
	if !domain.ValidStatus(next) {
		return apperrors.NewValidationError("unknown ticket status", map[string]any{"status": string(next)})
	}

	head, err := s.tickets.GetHead(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return apperrors.MapError(err)
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleEngineer:
		if head.EngineerID == nil || *head.EngineerID != actor.UserID {
			return apperrors.NewForbidden("ticket is assigned to another engineer")
		}
	default:
		return apperrors.NewForbidden("role cannot change ticket status")
	}

	if !domain.CanTransition(head.Status, next) {
		return apperrors.NewInvalidTransition("status change not allowed",
			map[string]any{"from": string(head.Status), "to": string(next)})
	}

	ok, err := s.tickets.UpdateStatus(ctx, ticketID, head.Status, next)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !ok {
		// Someone moved the ticket between our read and the update.
		return apperrors.NewInvalidTransition("ticket status changed concurrently",
			map[string]any{"from": string(head.Status), "to": string(next)})
	}

	s.logger.Info("ticket status changed",
		zap.String("ticket_id", ticketID),
		zap.String("from", string(head.Status)),
		zap.String("to", string(next)),
		zap.String("actor_id", actor.UserID))

	s.publishStatusChanged(ctx, actor, ticketID, head.Status, next)
	return nil
}

// ListTickets returns the scope-filtered listing rows for the actor.
func (s *TicketService) ListTickets(ctx context.Context, actor domain.Identity) ([]domain.TicketRow, error) {
	rows, err := s.tickets.ListRows(ctx, domain.VisibilityScope(actor))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// ListSupports returns the category listing for the actor's scope.
func (s *TicketService) ListSupports(ctx context.Context, actor domain.Identity, supportType domain.SupportType) ([]domain.SupportRow, error) {
	if !supportType.Valid() {
		return nil, apperrors.NewValidationError("unknown support type", nil)
	}
	rows, err := s.supports.ListByCategory(ctx, domain.VisibilityScope(actor), supportType)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// StatusSummary tallies the actor's visible tickets per lifecycle state
// plus the grand total.
func (s *TicketService) StatusSummary(ctx context.Context, actor domain.Identity) ([]domain.StatusCount, int64, error) {
	counts, total, err := s.tickets.StatusCounts(ctx, domain.VisibilityScope(actor))
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return counts, total, nil
}

// CategoryTotals tallies the actor's visible tickets per support type,
// rollup row included.
func (s *TicketService) CategoryTotals(ctx context.Context, actor domain.Identity) ([]domain.CategoryTotal, error) {
	totals, err := s.tickets.CategoryTotals(ctx, domain.VisibilityScope(actor))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return totals, nil
}

func (s *TicketService) publishCreated(ctx context.Context, actor domain.Identity, ticket *domain.Ticket, detail domain.TicketDetail, municipality string) {
	if s.dispatcher == nil {
		return
	}
	payload := events.TicketCreatedPayload{
		SupportType:    ticket.SupportType,
		MunicipalityID: ticket.MunicipalityID,
		Municipality:   municipality,
		EngineerID:     ticket.EngineerID,
	}
	eventType := events.EventTicketCreated
	switch d := detail.(type) {
	case domain.PlatformDetail:
		payload.Description = d.Description
	case domain.OtherDetail:
		payload.Description = d.Description
	case domain.CreditNoteDetail:
		payload.Description = d.Reason
		payload.InvoiceToVoid = d.InvoiceToVoid
		eventType = events.EventCreditNoteCreated
	}
	s.publishAsync(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticket.ID,
		Actor:     eventActor(actor),
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func (s *TicketService) publishStatusChanged(ctx context.Context, actor domain.Identity, ticketID string, old, next domain.TicketStatus) {
	if s.dispatcher == nil {
		return
	}
	s.publishAsync(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketStatusChanged,
		TicketID:  ticketID,
		Actor:     eventActor(actor),
		Timestamp: time.Now(),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: old,
			NewStatus: next,
		},
	})
}

// publishAsync fires the event on a detached context so that handler
// latency and request cancellation never reach the caller.
func (s *TicketService) publishAsync(ctx context.Context, event events.Event) {
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := s.dispatcher.Publish(detached, event); err != nil {
			s.logger.Warn("event publish failed",
				zap.String("event_type", string(event.Type)),
				zap.String("ticket_id", event.TicketID),
				zap.Error(err))
		}
	}()
}

func eventActor(actor domain.Identity) events.Actor {
	return events.Actor{
		UserID: actor.UserID,
		Name:   actor.Name,
		Email:  actor.Email,
		Role:   actor.Role,
	}
}
