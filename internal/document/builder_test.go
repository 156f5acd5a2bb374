package document

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicegen/internal/invoice/calc"
	"github.com/smallbiznis/invoicegen/internal/invoice/domain"
	"github.com/smallbiznis/invoicegen/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testInvoice(itemCount int) domain.Invoice {
	items := make([]domain.LineItem, 0, itemCount)
	subtotal := money.Zero()
	for i := 0; i < itemCount; i++ {
		amount := money.MustFromString("10.00")
		items = append(items, domain.LineItem{
			ID:            fmt.Sprintf("line-%d", i),
			Description:   fmt.Sprintf("Consulting hour %d", i+1),
			Quantity:      decimal.NewFromInt(1),
			Rate:          money.MustFromString("10.00"),
			DiscountType:  calc.DiscountPercentage,
			DiscountValue: decimal.Zero,
			Amount:        amount,
		})
		subtotal = subtotal.Add(amount)
	}

	taxRate := decimal.RequireFromString("10")
	taxAmount := subtotal.Percent(taxRate).Round()
	shipping := money.MustFromString("5.00")
	total := subtotal.Add(taxAmount).Add(shipping).Round()

	return domain.Invoice{
		InvoiceNumber: "INV-0042",
		PaymentTerms:  "NET30",
		IssueDate:     "2024-01-28",
		DueDate:       "2024-02-27",
		Currency:      "USD",
		Status:        domain.InvoiceStatusDraft,
		Business:      datatypes.NewJSONType(domain.Party{Name: "Acme Studio", Email: "billing@acme.test", TaxID: "US-12345"}),
		Client:        datatypes.NewJSONType(domain.Party{Name: "Globex", Address: "1 Main St"}),
		Items:         datatypes.NewJSONType(items),
		TaxRate:       taxRate,
		ShippingCost:  shipping,
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		Total:         total,
	}
}

func TestBuildSinglePage(t *testing.T) {
	model := Build(testInvoice(3))

	require.Len(t, model.Pages, 1)
	first := model.Pages[0]
	require.NotNil(t, first.Title)
	assert.Equal(t, "INVOICE", first.Title.Text)
	require.NotNil(t, first.Meta)
	assert.Equal(t, "INV-0042", first.Meta.InvoiceNumber)
	assert.Equal(t, "2024-02-27", first.Meta.DueDate)
	assert.True(t, first.TableHeader)
	assert.Len(t, first.Rows, 3)
	require.NotNil(t, first.Totals)
}

func TestBuildPartyLines(t *testing.T) {
	model := Build(testInvoice(1))

	parties := model.Pages[0].Parties
	require.NotNil(t, parties)
	assert.Equal(t, "Invoice From:", parties.BusinessLabel)
	assert.Equal(t, "Bill To:", parties.ClientLabel)
	assert.Equal(t, []string{"Acme Studio", "billing@acme.test", "Tax ID: US-12345"}, parties.BusinessLines)
	assert.Equal(t, []string{"Globex", "1 Main St"}, parties.ClientLines)
}

func TestBuildPaginatesLongItemTables(t *testing.T) {
	const itemCount = 60
	model := Build(testInvoice(itemCount))

	require.Greater(t, len(model.Pages), 1)

	total := 0
	for i, pg := range model.Pages {
		total += len(pg.Rows)
		if i == 0 {
			assert.NotNil(t, pg.Title)
			assert.NotNil(t, pg.Meta)
			assert.NotNil(t, pg.Parties)
		} else {
			assert.Nil(t, pg.Title)
			assert.Nil(t, pg.Meta)
			assert.Nil(t, pg.Parties)
		}
		if len(pg.Rows) > 0 {
			assert.True(t, pg.TableHeader, "page %d with rows must repeat the header", i)
		}
	}
	assert.Equal(t, itemCount, total, "no row may be dropped or duplicated")

	for i, pg := range model.Pages {
		if i == len(model.Pages)-1 {
			assert.NotNil(t, pg.Totals)
		} else {
			assert.Nil(t, pg.Totals)
		}
	}
}

func TestBuildRowsNeverOverflowPage(t *testing.T) {
	layout := DefaultLayout()
	model := BuildWith(layout, testInvoice(200))

	perPage := int(layout.usable()-layout.TableHeaderHeight) / int(layout.RowHeight)
	for i, pg := range model.Pages {
		assert.LessOrEqual(t, len(pg.Rows), perPage, "page %d", i)
	}
}

func TestBuildTotalsLines(t *testing.T) {
	model := Build(testInvoice(2))

	totals := model.Pages[0].Totals
	require.NotNil(t, totals)
	require.Len(t, totals.Lines, 4)

	assert.Equal(t, "Subtotal", totals.Lines[0].Label)
	assert.Equal(t, "$20.00", totals.Lines[0].Value)
	assert.Equal(t, "Tax (10%)", totals.Lines[1].Label)
	assert.Equal(t, "$2.00", totals.Lines[1].Value)
	assert.Equal(t, "Shipping", totals.Lines[2].Label)
	assert.Equal(t, "Total", totals.Lines[3].Label)
	assert.Equal(t, "$27.00", totals.Lines[3].Value)
	assert.True(t, totals.Lines[3].Emphasis)

	// The raw values reconstruct the grand total without parsing glyphs.
	sum := decimal.Zero
	for _, line := range totals.Lines[:3] {
		sum = sum.Add(decimal.RequireFromString(line.RawValue))
	}
	assert.True(t, sum.Equal(decimal.RequireFromString(totals.Lines[3].RawValue)))
}

func TestBuildOmitsZeroTaxAndShipping(t *testing.T) {
	inv := testInvoice(1)
	inv.TaxRate = decimal.Zero
	inv.TaxAmount = money.Zero()
	inv.ShippingCost = money.Zero()
	inv.Total = inv.Subtotal

	model := Build(inv)
	totals := model.Pages[0].Totals
	require.NotNil(t, totals)
	require.Len(t, totals.Lines, 2)
	assert.Equal(t, "Subtotal", totals.Lines[0].Label)
	assert.Equal(t, "Total", totals.Lines[1].Label)
}

func TestBuildDiscountFormatting(t *testing.T) {
	inv := testInvoice(1)
	items := inv.Items.Data()
	items[0].DiscountType = calc.DiscountPercentage
	items[0].DiscountValue = decimal.RequireFromString("10")
	items = append(items, domain.LineItem{
		ID:            "line-fixed",
		Description:   "Fixture",
		Quantity:      decimal.NewFromInt(1),
		Rate:          money.MustFromString("30.00"),
		DiscountType:  calc.DiscountAmount,
		DiscountValue: decimal.RequireFromString("5"),
		Amount:        money.MustFromString("25.00"),
	})
	inv.Items = datatypes.NewJSONType(items)

	model := Build(inv)
	rows := model.Pages[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "10%", rows[0].Discount)
	assert.Equal(t, "$5", rows[1].Discount)
	assert.Equal(t, "$10.00", rows[0].Rate)
}

func TestBuildUnknownCurrencyUsesCode(t *testing.T) {
	inv := testInvoice(1)
	inv.Currency = "XYZ"

	model := Build(inv)
	assert.Equal(t, "XYZ", model.Symbol)
	assert.Equal(t, "XYZ10.00", model.Pages[0].Rows[0].Rate)
}
