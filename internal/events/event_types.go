package events

import (
	"time"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventCreditNoteCreated   EventType = "credit_note_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	SupportType    domain.SupportType `json:"support_type"`
	MunicipalityID string             `json:"municipality_id"`
	Municipality   string             `json:"municipality"`
	EngineerID     *string            `json:"engineer_id,omitempty"`
	Description    string             `json:"description,omitempty"`
	// InvoiceToVoid is set only for credit-note tickets; the ops mailbox
	// mail template leads with it.
	InvoiceToVoid string `json:"invoice_to_void,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}
