// Package domain contains the invoice model and service contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicegen/internal/invoice/calc"
	"github.com/smallbiznis/invoicegen/internal/invoice/terms"
	"github.com/smallbiznis/invoicegen/internal/money"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusFinalized InvoiceStatus = "finalized"
)

// LineItem is one billable row. Amount is always derived from the other
// fields by the calculator; it is never accepted as input truth.
type LineItem struct {
	ID            string            `json:"id"`
	Description   string            `json:"description"`
	Quantity      decimal.Decimal   `json:"quantity"`
	Rate          money.Money       `json:"rate"`
	DiscountType  calc.DiscountType `json:"discount_type"`
	DiscountValue decimal.Decimal   `json:"discount_value"`
	Amount        money.Money       `json:"amount"`
}

// CalcItem projects the line into the calculator's input shape.
func (li LineItem) CalcItem() calc.Item {
	return calc.Item{
		Quantity:      li.Quantity,
		Rate:          li.Rate,
		DiscountType:  li.DiscountType,
		DiscountValue: li.DiscountValue,
	}
}

// Party is a free-text business or client block.
type Party struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// Lines returns the non-empty display lines of the party block, in the fixed
// order used by the rendered document.
func (p Party) Lines() []string {
	lines := make([]string, 0, 5)
	for _, s := range []string{p.Name, p.Address, p.Phone, p.Email} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	if p.TaxID != "" {
		lines = append(lines, "Tax ID: "+p.TaxID)
	}
	return lines
}

// Invoice is the persisted invoice record. Subtotal, TaxAmount, Total and
// every line Amount are derived fields, recomputed on each mutation.
type Invoice struct {
	ID            snowflake.ID                   `gorm:"primaryKey" json:"id"`
	InvoiceNumber string                         `gorm:"type:text;not null;uniqueIndex:ux_invoices_number" json:"invoice_number"`
	PaymentTerms  terms.PaymentTerms             `gorm:"type:text;not null" json:"payment_terms"`
	IssueDate     string                         `gorm:"type:text;not null" json:"issue_date"`
	DueDate       string                         `gorm:"type:text;not null" json:"due_date"`
	Currency      string                         `gorm:"type:text;not null;default:'USD'" json:"currency"`
	LogoURL       string                         `gorm:"type:text" json:"logo_url,omitempty"`
	Status        InvoiceStatus                  `gorm:"type:text;not null;default:'draft'" json:"status"`
	Business      datatypes.JSONType[Party]      `gorm:"not null" json:"business"`
	Client        datatypes.JSONType[Party]      `gorm:"not null" json:"client"`
	Items         datatypes.JSONType[[]LineItem] `gorm:"not null" json:"items"`
	TaxRate       decimal.Decimal                `gorm:"type:numeric;not null" json:"tax_rate"`
	ShippingCost  money.Money                    `gorm:"type:numeric;not null" json:"shipping_cost"`
	Subtotal      money.Money                    `gorm:"type:numeric;not null" json:"subtotal"`
	TaxAmount     money.Money                    `gorm:"type:numeric;not null" json:"tax_amount"`
	Total         money.Money                    `gorm:"type:numeric;not null" json:"total"`
	CreatedAt     time.Time                      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time                      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }
