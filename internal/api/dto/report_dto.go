package dto

import "time"

// ReportRowItem is a full export row.
type ReportRowItem struct {
	TicketID         string    `json:"ticket_id"`
	CreatedAt        time.Time `json:"created_at"`
	Status           string    `json:"status"`
	SupportType      string    `json:"support_type"`
	RequesterName    string    `json:"requester_name"`
	RequesterSurname string    `json:"requester_surname"`
	RequesterEmail   string    `json:"requester_email"`
	RequesterPhone   string    `json:"requester_phone"`
	EngineerName     *string   `json:"engineer_name,omitempty"`
	EngineerSurname  *string   `json:"engineer_surname,omitempty"`
	EngineerEmail    *string   `json:"engineer_email,omitempty"`
	Municipality     string    `json:"municipality"`
	Description      string    `json:"description"`
	Image            string    `json:"image"`

	BillingDate        *string `json:"billing_date,omitempty"`
	InvoiceToVoid      *string `json:"invoice_to_void,omitempty"`
	CopayInvoiceToVoid *string `json:"copay_invoice_to_void,omitempty"`
	VoidedCopayAmount  *string `json:"voided_copay_amount,omitempty"`
	InvoiceToRebill    *string `json:"invoice_to_rebill,omitempty"`
}

// MonthlySummaryItem tallies one month by status.
type MonthlySummaryItem struct {
	Month      int    `json:"month"`
	MonthName  string `json:"month_name"`
	Total      int64  `json:"total"`
	Open       int64  `json:"open"`
	InProgress int64  `json:"in_progress"`
	Resolved   int64  `json:"resolved"`
}

// HistoryItem is a month/year rollup row.
type HistoryItem struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	MonthName   string `json:"month_name"`
	Total       int64  `json:"total"`
	Open        int64  `json:"open"`
	InProgress  int64  `json:"in_progress"`
	Resolved    int64  `json:"resolved"`
	Platform    int64  `json:"platform"`
	CreditNotes int64  `json:"credit_notes"`
	Other       int64  `json:"other"`
}
