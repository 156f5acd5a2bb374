package document

import (
	"github.com/smallbiznis/invoicegen/internal/currency"
	"github.com/smallbiznis/invoicegen/internal/invoice/calc"
	"github.com/smallbiznis/invoicegen/internal/invoice/domain"
	"github.com/smallbiznis/invoicegen/internal/money"
)

// Build lays out an invoice with the default A4 geometry.
func Build(inv domain.Invoice) Model {
	return BuildWith(DefaultLayout(), inv)
}

// BuildWith assembles the paginated layout model for an invoice.
//
// Only the item table flows across pages: when the current page cannot fit
// another row, a new page starts at the top margin with the table header
// repeated. The header, metadata and party blocks live on the first page
// only and are never split. The totals block is placed whole; if it does not
// fit under the last row it moves to a fresh page.
func BuildWith(layout Layout, inv domain.Invoice) Model {
	symbol := currency.Symbol(inv.Currency)
	items := inv.Items.Data()
	business := inv.Business.Data()
	client := inv.Client.Data()

	parties := &PartyBlock{
		BusinessLabel: "Invoice From:",
		BusinessLines: business.Lines(),
		ClientLabel:   "Bill To:",
		ClientLines:   client.Lines(),
	}

	page := Page{
		Title: &TitleBlock{Text: "INVOICE", LogoURL: inv.LogoURL},
		Meta: &MetaBlock{
			InvoiceNumber: inv.InvoiceNumber,
			PaymentTerms:  string(inv.PaymentTerms),
			IssueDate:     inv.IssueDate,
			DueDate:       inv.DueDate,
			Currency:      inv.Currency,
		},
		Parties:     parties,
		TableHeader: true,
	}

	usable := layout.usable()
	partyHeight := layout.PartyLabelHeight + float64(parties.lineCount())*layout.PartyLineHeight
	used := layout.TitleHeight + layout.SectionGap +
		layout.MetaHeight + layout.SectionGap +
		partyHeight + layout.SectionGap +
		layout.TableHeaderHeight

	var pages []Page
	for _, item := range items {
		if used+layout.RowHeight > usable {
			pages = append(pages, page)
			page = Page{TableHeader: true}
			used = layout.TableHeaderHeight
		}
		page.Rows = append(page.Rows, formatRow(item, symbol))
		used += layout.RowHeight
	}

	totals := totalsBlock(inv, symbol)
	totalsHeight := layout.SectionGap + float64(len(totals.Lines))*layout.TotalLineHeight
	if used+totalsHeight > usable {
		pages = append(pages, page)
		page = Page{}
	}
	page.Totals = totals
	pages = append(pages, page)

	return Model{
		Currency: inv.Currency,
		Symbol:   symbol,
		Layout:   layout,
		Pages:    pages,
	}
}

func formatRow(item domain.LineItem, symbol string) ItemRow {
	discount := item.DiscountValue.String() + "%"
	if item.DiscountType == calc.DiscountAmount {
		discount = symbol + item.DiscountValue.String()
	}
	return ItemRow{
		Description: item.Description,
		Quantity:    item.Quantity.String(),
		Rate:        symbol + item.Rate.String(),
		Discount:    discount,
		Amount:      symbol + item.Amount.String(),
	}
}

func totalsBlock(inv domain.Invoice, symbol string) *TotalsBlock {
	lines := []TotalLine{{
		Label:    "Subtotal",
		Value:    symbol + inv.Subtotal.String(),
		RawValue: inv.Subtotal.String(),
	}}
	if inv.TaxRate.IsPositive() {
		lines = append(lines, TotalLine{
			Label:    "Tax (" + inv.TaxRate.String() + "%)",
			Value:    symbol + inv.TaxAmount.String(),
			RawValue: inv.TaxAmount.String(),
		})
	}
	if inv.ShippingCost.Cmp(money.Zero()) > 0 {
		lines = append(lines, TotalLine{
			Label:    "Shipping",
			Value:    symbol + inv.ShippingCost.String(),
			RawValue: inv.ShippingCost.String(),
		})
	}
	lines = append(lines, TotalLine{
		Label:    "Total",
		Value:    symbol + inv.Total.String(),
		RawValue: inv.Total.String(),
		Emphasis: true,
	})
	return &TotalsBlock{Lines: lines}
}
