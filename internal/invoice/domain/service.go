package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// LineItemInput is an externally supplied line. Amount is intentionally
// absent: it is always recomputed.
type LineItemInput struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	Rate          decimal.Decimal `json:"rate"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

type CreateInvoiceRequest struct {
	InvoiceNumber string
	PaymentTerms  string
	IssueDate     string
	DueDate       string
	Currency      string
	LogoURL       string
	Status        string
	Business      Party
	Client        Party
	Items         []LineItemInput
	TaxRate       decimal.Decimal
	ShippingCost  decimal.Decimal
}

// UpdateInvoiceRequest is a partial update; nil fields keep their current
// values. Derived amounts are recomputed regardless of which fields changed.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string
	PaymentTerms  *string
	IssueDate     *string
	DueDate       *string
	Currency      *string
	LogoURL       *string
	Status        *string
	Business      *Party
	Client        *Party
	Items         *[]LineItemInput
	TaxRate       *decimal.Decimal
	ShippingCost  *decimal.Decimal
}

type ListInvoiceResponse struct {
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	GetByNumber(ctx context.Context, number string) (Invoice, error)
	Update(ctx context.Context, id string, req UpdateInvoiceRequest) (Invoice, error)
	List(ctx context.Context) (ListInvoiceResponse, error)
	RenderPDF(ctx context.Context, id string) ([]byte, error)
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")
	ErrInvalidInvoiceNumber = errors.New("invalid_invoice_number")
	ErrDuplicateNumber      = errors.New("duplicate_invoice_number")
	ErrInvalidIssueDate     = errors.New("invalid_issue_date")
	ErrInvalidDueDate       = errors.New("invalid_due_date")
	ErrInvalidDescription   = errors.New("invalid_description")
	ErrInvalidTaxRate       = errors.New("invalid_tax_rate")
	ErrInvalidShippingCost  = errors.New("invalid_shipping_cost")
	ErrInvalidStatus        = errors.New("invalid_status")
)
