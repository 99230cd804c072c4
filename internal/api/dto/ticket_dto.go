package dto

import "time"

// TransitionRequest is the body of the status-change endpoint. The field
// name matches what the frontend has always sent.
type TransitionRequest struct {
	Estado string `json:"estado"`
}

// TicketRowItem is a listing row.
type TicketRowItem struct {
	ID               string    `json:"id"`
	RequesterName    string    `json:"requester_name"`
	RequesterSurname string    `json:"requester_surname"`
	RequesterEmail   string    `json:"requester_email"`
	RequesterPhone   string    `json:"requester_phone"`
	SupportType      string    `json:"support_type"`
	Status           string    `json:"status"`
	Description      string    `json:"description"`
	ImageURL         *string   `json:"image_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// StatusCountItem tallies one lifecycle state.
type StatusCountItem struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

// StatusSummaryResponse is the status-count endpoint payload.
type StatusSummaryResponse struct {
	Counts       []StatusCountItem `json:"counts"`
	TotalGeneral int64             `json:"total_general"`
}

// CategoryTotalItem tallies one support type; the rollup row carries an
// empty support_type and the grand total.
type CategoryTotalItem struct {
	SupportType string `json:"support_type"`
	Total       int64  `json:"total"`
}

// CreatedTicketResponse is returned by the creation endpoints.
type CreatedTicketResponse struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	SupportType    string    `json:"support_type"`
	MunicipalityID string    `json:"municipality_id"`
	EngineerID     *string   `json:"engineer_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
