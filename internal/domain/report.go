package domain

import "time"

// PeriodKind selects the date window of a report query.
type PeriodKind string

const (
	PeriodAll   PeriodKind = ""
	PeriodWeek  PeriodKind = "semana"
	PeriodMonth PeriodKind = "mes"
	PeriodYear  PeriodKind = "anio"
	PeriodRange PeriodKind = "rango"
)

// ReportPeriod bounds a report query. Start/End are only read for
// PeriodRange.
type ReportPeriod struct {
	Kind  PeriodKind
	Start *time.Time
	End   *time.Time
}

// ReportRow is a full export row for the download endpoints.
type ReportRow struct {
	TicketID         string
	CreatedAt        time.Time
	Status           TicketStatus
	SupportTypeName  string
	RequesterName    string
	RequesterSurname string
	RequesterEmail   string
	RequesterPhone   string
	EngineerName     *string
	EngineerSurname  *string
	EngineerEmail    *string
	Municipality     string
	Description      string
	Image            string

	BillingDate        *string
	InvoiceToVoid      *string
	CopayInvoiceToVoid *string
	VoidedCopayAmount  *string
	InvoiceToRebill    *string
}

// MonthlySummaryRow tallies one month of a given year by status.
type MonthlySummaryRow struct {
	Month      int
	MonthName  string
	Total      int64
	Open       int64
	InProgress int64
	Resolved   int64
}

// HistoryRow is a month/year rollup with per-status and per-category
// tallies, returned newest-first.
type HistoryRow struct {
	Year        int
	Month       int
	MonthName   string
	Total       int64
	Open        int64
	InProgress  int64
	Resolved    int64
	Platform    int64
	CreditNotes int64
	Other       int64
}
