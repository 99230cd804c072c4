package domain

import (
	"strings"
	"time"
)

// TicketDetail is the category-specific payload created atomically with
// its ticket. Exactly one variant exists per ticket, keyed by the
// ticket's support type, and it is immutable after creation.
type TicketDetail interface {
	SupportType() SupportType
	// Validate checks the category's required fields before anything is
	// persisted.
	Validate() error
}

// PlatformDetail describes a platform (R-FAST) error report.
type PlatformDetail struct {
	Description string
	ImageURL    *string
}

func (d PlatformDetail) SupportType() SupportType { return SupportTypePlatform }

func (d PlatformDetail) Validate() error {
	return requireDescription(d.Description)
}

// OtherDetail describes a miscellaneous support request.
type OtherDetail struct {
	Description string
	Image       *string
}

func (d OtherDetail) SupportType() SupportType { return SupportTypeOther }

func (d OtherDetail) Validate() error {
	return requireDescription(d.Description)
}

// CreditNoteDetail describes a billing credit-note request. All invoice
// fields are individually required.
type CreditNoteDetail struct {
	BillingDate        string
	InvoiceToVoid      string
	CopayInvoiceToVoid string
	VoidedCopayAmount  string
	InvoiceToRebill    string
	AttentionCenter    string
	BillerName         string
	Reason             string
}

func (d CreditNoteDetail) SupportType() SupportType { return SupportTypeCreditNote }

func (d CreditNoteDetail) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"billing_date", d.BillingDate},
		{"invoice_to_void", d.InvoiceToVoid},
		{"copay_invoice_to_void", d.CopayInvoiceToVoid},
		{"voided_copay_amount", d.VoidedCopayAmount},
		{"invoice_to_rebill", d.InvoiceToRebill},
		{"reason", d.Reason},
	}
	missing := []string{}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// MissingFieldsError names the required fields absent from a detail
// payload.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func requireDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return &MissingFieldsError{Fields: []string{"description"}}
	}
	return nil
}

// SupportRow is a category-scoped listing row joined with the assigned
// engineer's name. CreditNote-only columns stay nil for the other
// categories.
type SupportRow struct {
	TicketID        string
	Status          TicketStatus
	CreatedAt       time.Time
	Description     string
	ImageURL        *string
	AttentionCenter *string
	BillingDate     *string
	VoidedAmount    *string
	EngineerName    string
	EngineerSurname string
}
