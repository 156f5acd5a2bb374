// Package render projects a document model into PDF bytes with maroto.
package render

import (
	"context"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/invoicegen/internal/document"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// PDF walks a paginated document model and emits fixed-size A4 pages.
// Rendering is deterministic for a given model; the only I/O is the optional
// logo fetch, which degrades to rendering without the logo.
type PDF struct {
	log   *zap.Logger
	logos *LogoFetcher
}

type Params struct {
	fx.In

	Log   *zap.Logger
	Logos *LogoFetcher
}

func NewPDF(p Params) *PDF {
	return &PDF{
		log:   p.Log.Named("render.pdf"),
		logos: p.Logos,
	}
}

func (r *PDF) Render(ctx context.Context, model document.Model) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(model.Layout.SideMargin).
		WithRightMargin(model.Layout.SideMargin).
		WithTopMargin(model.Layout.TopMargin).
		WithBottomMargin(model.Layout.BottomMargin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	logoBytes, logoExt := r.loadLogo(ctx, model)
	for _, pg := range model.Pages {
		m.AddPages(r.buildPage(pg, model.Layout, logoBytes, logoExt))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// loadLogo resolves the model's logo, if any. Any failure is logged and the
// document is rendered without it.
func (r *PDF) loadLogo(ctx context.Context, model document.Model) ([]byte, extension.Type) {
	if len(model.Pages) == 0 || model.Pages[0].Title == nil || model.Pages[0].Title.LogoURL == "" {
		return nil, ""
	}
	url := model.Pages[0].Title.LogoURL
	data, ext, err := r.logos.Fetch(ctx, url)
	if err != nil {
		r.log.Warn("rendering without logo", zap.String("logo_url", url), zap.Error(err))
		return nil, ""
	}
	return data, ext
}

func (r *PDF) buildPage(pg document.Page, layout document.Layout, logo []byte, logoExt extension.Type) core.Page {
	var rows []core.Row

	if pg.Title != nil {
		rows = append(rows, titleRow(pg.Title, layout, logo, logoExt))
	}
	if pg.Meta != nil {
		rows = append(rows, metaRow(pg.Meta, layout))
	}
	if pg.Parties != nil {
		rows = append(rows, partyRow(pg.Parties, layout))
	}
	if pg.TableHeader {
		rows = append(rows, tableHeaderRow(layout))
	}
	for _, item := range pg.Rows {
		rows = append(rows, itemRow(item, layout))
	}
	if pg.Totals != nil {
		rows = append(rows, totalsRows(pg.Totals, layout)...)
	}

	return page.New().Add(rows...)
}

func titleRow(title *document.TitleBlock, layout document.Layout, logo []byte, logoExt extension.Type) core.Row {
	titleCol := text.NewCol(4, title.Text, props.Text{
		Size:  20,
		Style: fontstyle.Bold,
		Align: align.Right,
	})
	if logo != nil {
		return row.New(layout.TitleHeight).Add(
			image.NewFromBytesCol(2, logo, logoExt, props.Rect{Percent: 80}),
			col.New(6),
			titleCol,
		)
	}
	return row.New(layout.TitleHeight).Add(col.New(8), titleCol)
}

func metaRow(meta *document.MetaBlock, layout document.Layout) core.Row {
	return row.New(layout.MetaHeight).Add(
		col.New(6).Add(
			text.New("Invoice number: "+meta.InvoiceNumber, props.Text{Top: 0}),
			text.New("Issue date: "+meta.IssueDate, props.Text{Top: 5}),
			text.New("Due date: "+meta.DueDate, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New("Payment terms: "+meta.PaymentTerms, props.Text{Top: 0}),
			text.New("Currency: "+meta.Currency, props.Text{Top: 5}),
		),
	)
}

func partyRow(parties *document.PartyBlock, layout document.Layout) core.Row {
	height := layout.PartyLabelHeight
	lines := len(parties.BusinessLines)
	if len(parties.ClientLines) > lines {
		lines = len(parties.ClientLines)
	}
	height += float64(lines) * layout.PartyLineHeight

	business := col.New(6).Add(text.New(parties.BusinessLabel, props.Text{Style: fontstyle.Bold}))
	for i, line := range parties.BusinessLines {
		business.Add(text.New(line, props.Text{
			Top: layout.PartyLabelHeight + float64(i)*layout.PartyLineHeight,
		}))
	}

	client := col.New(6).Add(text.New(parties.ClientLabel, props.Text{Style: fontstyle.Bold}))
	for i, line := range parties.ClientLines {
		client.Add(text.New(line, props.Text{
			Top: layout.PartyLabelHeight + float64(i)*layout.PartyLineHeight,
		}))
	}

	return row.New(height).Add(business, client)
}

func tableHeaderRow(layout document.Layout) core.Row {
	return row.New(layout.TableHeaderHeight).Add(
		text.NewCol(4, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Discount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
}

func itemRow(item document.ItemRow, layout document.Layout) core.Row {
	return row.New(layout.RowHeight).Add(
		text.NewCol(4, item.Description, props.Text{Size: 9}),
		text.NewCol(2, item.Quantity, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, item.Rate, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, item.Discount, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
	)
}

func totalsRows(totals *document.TotalsBlock, layout document.Layout) []core.Row {
	rows := make([]core.Row, 0, len(totals.Lines))
	for _, line := range totals.Lines {
		style := props.Text{Size: 9}
		if line.Emphasis {
			style = props.Text{Size: 11, Style: fontstyle.Bold}
		}
		valueStyle := style
		valueStyle.Align = align.Right
		rows = append(rows, row.New(layout.TotalLineHeight).Add(
			col.New(7),
			text.NewCol(2, line.Label, style),
			text.NewCol(3, line.Value, valueStyle),
		))
	}
	return rows
}
