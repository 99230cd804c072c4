package dto

import "time"

// CreateSupportRequest covers the platform and other categories. The
// ticket's municipality always comes from the authenticated requester,
// never from the body.
type CreateSupportRequest struct {
	Description string  `json:"description"`
	Image       *string `json:"image,omitempty"`
}

// CreateCreditNoteRequest carries the credit-note fields. All invoice
// fields are required; attention_center and biller_name are optional.
type CreateCreditNoteRequest struct {
	BillingDate        string `json:"billing_date"`
	InvoiceToVoid      string `json:"invoice_to_void"`
	CopayInvoiceToVoid string `json:"copay_invoice_to_void"`
	VoidedCopayAmount  string `json:"voided_copay_amount"`
	InvoiceToRebill    string `json:"invoice_to_rebill"`
	AttentionCenter    string `json:"attention_center"`
	BillerName         string `json:"biller_name"`
	Reason             string `json:"reason"`
}

// SupportRowItem is a category-scoped listing row.
type SupportRowItem struct {
	TicketID        string    `json:"ticket_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	Description     string    `json:"description"`
	ImageURL        *string   `json:"image_url,omitempty"`
	AttentionCenter *string   `json:"attention_center,omitempty"`
	BillingDate     *string   `json:"billing_date,omitempty"`
	VoidedAmount    *string   `json:"voided_copay_amount,omitempty"`
	EngineerName    string    `json:"engineer_name"`
	EngineerSurname string    `json:"engineer_surname"`
}
