// Package document builds the paginated layout model of an invoice.
//
// The model is page-explicit: pagination is decided here, from fixed page
// geometry, so the renderer only has to walk pages and emit rows. The same
// invoice always produces the same model.
package document

// Layout is the page geometry in millimetres (A4 portrait by default).
// Heights are per-block row heights used by the pagination math.
type Layout struct {
	PageHeight        float64
	TopMargin         float64
	BottomMargin      float64
	SideMargin        float64
	TitleHeight       float64
	MetaHeight        float64
	PartyLabelHeight  float64
	PartyLineHeight   float64
	TableHeaderHeight float64
	RowHeight         float64
	TotalLineHeight   float64
	SectionGap        float64
}

// DefaultLayout returns the built-in A4 geometry.
func DefaultLayout() Layout {
	return Layout{
		PageHeight:        297,
		TopMargin:         15,
		BottomMargin:      15,
		SideMargin:        10,
		TitleHeight:       18,
		MetaHeight:        20,
		PartyLabelHeight:  8,
		PartyLineHeight:   6,
		TableHeaderHeight: 8,
		RowHeight:         8,
		TotalLineHeight:   8,
		SectionGap:        8,
	}
}

// usable is the drawable height of a page.
func (l Layout) usable() float64 {
	return l.PageHeight - l.TopMargin - l.BottomMargin
}

// Model is the fully paginated invoice document.
type Model struct {
	Currency string
	Symbol   string
	Layout   Layout
	Pages    []Page
}

// Page holds the blocks placed on one physical page. Title, Meta and Parties
// appear only on the first page; the item table header is repeated on every
// page that carries rows; Totals appears exactly once, on the last page.
type Page struct {
	Title       *TitleBlock
	Meta        *MetaBlock
	Parties     *PartyBlock
	TableHeader bool
	Rows        []ItemRow
	Totals      *TotalsBlock
}

type TitleBlock struct {
	Text    string
	LogoURL string
}

type MetaBlock struct {
	InvoiceNumber string
	PaymentTerms  string
	IssueDate     string
	DueDate       string
	Currency      string
}

// PartyBlock is the two-column business/client section. The columns are
// line-aligned: line i of each column sits on the same baseline.
type PartyBlock struct {
	BusinessLabel string
	BusinessLines []string
	ClientLabel   string
	ClientLines   []string
}

func (p PartyBlock) lineCount() int {
	n := len(p.BusinessLines)
	if len(p.ClientLines) > n {
		n = len(p.ClientLines)
	}
	return n
}

// ItemRow is one formatted table row.
type ItemRow struct {
	Description string
	Quantity    string
	Rate        string
	Discount    string
	Amount      string
}

// TotalsBlock is never split across a page boundary.
type TotalsBlock struct {
	Lines []TotalLine
}

// TotalLine carries both the formatted display value (with currency symbol)
// and the raw decimal string, so downstream consumers can re-derive the
// amounts without parsing glyphs.
type TotalLine struct {
	Label    string
	Value    string
	RawValue string
	Emphasis bool
}
