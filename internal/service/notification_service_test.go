package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suroriente/helpdesk-service/internal/config"
	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/events"
)

type recordingSender struct {
	sent []Mail
}

func (r *recordingSender) Send(ctx context.Context, mail Mail) error {
	r.sent = append(r.sent, mail)
	return nil
}

func ticketCreatedEvent(engineerID *string) events.Event {
	return events.Event{
		ID:        "evt-1",
		Type:      events.EventCreditNoteCreated,
		TicketID:  "t-1",
		Actor:     events.Actor{UserID: "staff-1", Name: "Laura", Email: "laura@example.com", Role: domain.RoleHealthStaff},
		Timestamp: time.Now(),
		Payload: events.TicketCreatedPayload{
			SupportType:    domain.SupportTypeCreditNote,
			MunicipalityID: "muni-1",
			Municipality:   "Pasto",
			EngineerID:     engineerID,
			InvoiceToVoid:  "F-1001",
		},
	}
}

func TestTicketCreatedMailsOpsAndEngineer(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "eng-1", Email: "eng@example.com"})
	sender := &recordingSender{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, users, sender, zap.NewNop(),
		config.NotificationConfig{From: "noreply@example.com", OpsMailbox: "ops@example.com"})
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), ticketCreatedEvent(strPtr("eng-1"))))

	require.Len(t, sender.sent, 1)
	mail := sender.sent[0]
	assert.Equal(t, []string{"ops@example.com", "eng@example.com"}, mail.To)
	assert.Contains(t, mail.Subject, "CREDIT_NOTE")
	assert.Contains(t, mail.Body, "F-1001")
}

func TestTicketCreatedSkipsMissingEngineer(t *testing.T) {
	sender := &recordingSender{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, newStubUserRepo(), sender, zap.NewNop(),
		config.NotificationConfig{From: "noreply@example.com", OpsMailbox: "ops@example.com"})
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), ticketCreatedEvent(strPtr("ghost"))))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"ops@example.com"}, sender.sent[0].To)
}

func TestTicketCreatedNoRecipients(t *testing.T) {
	sender := &recordingSender{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, newStubUserRepo(), sender, zap.NewNop(), config.NotificationConfig{})
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), ticketCreatedEvent(nil)))
	assert.Empty(t, sender.sent)
}
