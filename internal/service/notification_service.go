package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/suroriente/helpdesk-service/internal/config"
	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/events"
	"github.com/suroriente/helpdesk-service/internal/repository"
)

// Mail is one outbound notification message.
type Mail struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender delivers notification mail. The default implementation only
// logs; delivery transports plug in behind this interface.
type Sender interface {
	Send(ctx context.Context, mail Mail) error
}

// LogSender writes every mail to the log instead of delivering it.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) Send(ctx context.Context, mail Mail) error {
	s.Logger.Info("notification mail",
		zap.String("from", mail.From),
		zap.Strings("to", mail.To),
		zap.String("subject", mail.Subject))
	return nil
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      repository.UserRepository
	sender     Sender
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, users repository.UserRepository, sender Sender, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		users:      users,
		sender:     sender,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventCreditNoteCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for ticket_created", zap.String("ticket_id", event.TicketID))
		return nil
	}

	recipients := n.recipients(ctx, payload.EngineerID)
	if len(recipients) == 0 {
		n.logger.Debug("no recipients for ticket_created", zap.String("ticket_id", event.TicketID))
		return nil
	}

	subject := fmt.Sprintf("Nuevo ticket de soporte (%s) - %s", payload.SupportType, payload.Municipality)
	body := newTicketBody(event, payload)
	mail := Mail{
		From:    n.cfg.From,
		To:      recipients,
		Subject: subject,
		Body:    body,
	}
	if err := n.sender.Send(ctx, mail); err != nil {
		n.logger.Warn("ticket_created notification failed",
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ticket status notification",
		zap.String("ticket_id", event.TicketID),
		zap.Any("payload", event.Payload))
	return nil
}

// recipients is the ops mailbox plus the assigned engineer's address
// when it can still be resolved.
func (n *NotificationService) recipients(ctx context.Context, engineerID *string) []string {
	var to []string
	if strings.TrimSpace(n.cfg.OpsMailbox) != "" {
		to = append(to, n.cfg.OpsMailbox)
	}
	if engineerID != nil {
		engineer, err := n.users.GetByID(ctx, *engineerID)
		switch {
		case err == nil:
			to = append(to, engineer.Email)
		case errors.Is(err, pgx.ErrNoRows):
			n.logger.Debug("assigned engineer no longer in directory", zap.String("engineer_id", *engineerID))
		default:
			n.logger.Warn("engineer lookup failed", zap.Error(err))
		}
	}
	return to
}

func newTicketBody(event events.Event, payload events.TicketCreatedPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ticket %s creado por %s (%s).\n", event.TicketID, event.Actor.Name, event.Actor.Email)
	fmt.Fprintf(&b, "Municipio: %s\n", payload.Municipality)
	fmt.Fprintf(&b, "Tipo de soporte: %s\n", payload.SupportType)
	if payload.SupportType == domain.SupportTypeCreditNote && payload.InvoiceToVoid != "" {
		fmt.Fprintf(&b, "Factura a anular: %s\n", payload.InvoiceToVoid)
	}
	if payload.Description != "" {
		fmt.Fprintf(&b, "Descripcion: %s\n", payload.Description)
	}
	return b.String()
}
