package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The wire values
// are the ones the frontend has always sent.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "abierto"
	TicketStatusInProgress TicketStatus = "en_proceso"
	TicketStatusResolved   TicketStatus = "resuelto"
)

// allowedTransitions is the forward-only lifecycle chain. RESOLVED is
// terminal.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress},
	TicketStatusInProgress: {TicketStatusResolved},
	TicketStatusResolved:   {},
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s TicketStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether next is reachable from current in a
// single step.
func CanTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Ticket is the aggregate for support requests. EngineerID may dangle
// when the assigned engineer was later deleted from the directory.
type Ticket struct {
	ID             string
	RequesterID    string
	EngineerID     *string
	MunicipalityID string
	SupportType    SupportType
	Status         TicketStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TicketHead is the minimal projection the transition check needs.
type TicketHead struct {
	ID         string
	Status     TicketStatus
	EngineerID *string
}

// TicketRow is a listing row with requester and category display fields
// joined in.
type TicketRow struct {
	ID               string
	RequesterName    string
	RequesterSurname string
	RequesterEmail   string
	RequesterPhone   string
	SupportTypeName  string
	Status           TicketStatus
	Description      string
	ImageURL         *string
	CreatedAt        time.Time
}

// StatusCount tallies tickets per lifecycle state.
type StatusCount struct {
	Status TicketStatus
	Total  int64
}

// CategoryTotal tallies tickets per support type. The rollup row has an
// empty SupportTypeName and carries the grand total.
type CategoryTotal struct {
	SupportTypeName string
	Total           int64
}
