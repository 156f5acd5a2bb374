// Package service implements the invoice service: input validation,
// derived-amount computation and persistence orchestration.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/invoicegen/internal/document"
	"github.com/smallbiznis/invoicegen/internal/invoice/calc"
	"github.com/smallbiznis/invoicegen/internal/invoice/domain"
	"github.com/smallbiznis/invoicegen/internal/invoice/terms"
	"github.com/smallbiznis/invoicegen/internal/money"
	"github.com/smallbiznis/invoicegen/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Renderer turns a document model into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, model document.Model) ([]byte, error)
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Renderer Renderer
	Layout   document.Layout
}

type invoiceService struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	renderer Renderer
	layout   document.Layout
}

func New(p Params) domain.Service {
	return &invoiceService{
		db:       p.DB,
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		renderer: p.Renderer,
		layout:   p.Layout,
	}
}

func (s *invoiceService) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	inv := domain.Invoice{
		ID:       s.genID.Generate(),
		Currency: "USD",
		Status:   domain.InvoiceStatusDraft,
	}
	if err := applyCreate(&inv, req); err != nil {
		return domain.Invoice{}, err
	}
	if err := recompute(&inv); err != nil {
		return domain.Invoice{}, err
	}

	if err := s.repo.Insert(ctx, s.db, &inv); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Invoice{}, domain.ErrDuplicateNumber
		}
		return domain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
	)
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	inv, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if inv == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *inv, nil
}

func (s *invoiceService) GetByNumber(ctx context.Context, number string) (domain.Invoice, error) {
	if strings.TrimSpace(number) == "" {
		return domain.Invoice{}, domain.ErrInvalidInvoiceNumber
	}

	inv, err := s.repo.FindByNumber(ctx, s.db, number)
	if err != nil {
		return domain.Invoice{}, err
	}
	if inv == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *inv, nil
}

func (s *invoiceService) Update(ctx context.Context, id string, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	inv, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if inv == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	if err := applyUpdate(inv, req); err != nil {
		return domain.Invoice{}, err
	}
	if err := recompute(inv); err != nil {
		return domain.Invoice{}, err
	}

	if err := s.repo.Update(ctx, s.db, inv); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Invoice{}, domain.ErrDuplicateNumber
		}
		return domain.Invoice{}, err
	}

	s.log.Info("invoice updated", zap.String("invoice_id", inv.ID.String()))
	return *inv, nil
}

func (s *invoiceService) List(ctx context.Context) (domain.ListInvoiceResponse, error) {
	invoices, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return domain.ListInvoiceResponse{Invoices: invoices}, nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	model := document.BuildWith(s.layout, inv)
	data, err := s.renderer.Render(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}
	return data, nil
}

func applyCreate(inv *domain.Invoice, req domain.CreateInvoiceRequest) error {
	inv.InvoiceNumber = strings.TrimSpace(req.InvoiceNumber)
	inv.IssueDate = req.IssueDate
	inv.DueDate = req.DueDate
	inv.LogoURL = req.LogoURL
	inv.Business = datatypes.NewJSONType(req.Business)
	inv.Client = datatypes.NewJSONType(req.Client)
	inv.TaxRate = req.TaxRate
	inv.ShippingCost = money.FromDecimal(req.ShippingCost)

	paymentTerms, err := terms.Parse(req.PaymentTerms)
	if err != nil {
		return err
	}
	inv.PaymentTerms = paymentTerms

	if req.Currency != "" {
		inv.Currency = strings.ToUpper(req.Currency)
	}
	if req.Status != "" {
		status, err := parseStatus(req.Status)
		if err != nil {
			return err
		}
		inv.Status = status
	}

	items, err := buildItems(req.Items)
	if err != nil {
		return err
	}
	inv.Items = datatypes.NewJSONType(items)
	return nil
}

func applyUpdate(inv *domain.Invoice, req domain.UpdateInvoiceRequest) error {
	if req.InvoiceNumber != nil {
		inv.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
	}
	if req.PaymentTerms != nil {
		paymentTerms, err := terms.Parse(*req.PaymentTerms)
		if err != nil {
			return err
		}
		inv.PaymentTerms = paymentTerms
	}
	if req.IssueDate != nil {
		inv.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}
	if req.Currency != nil {
		inv.Currency = strings.ToUpper(*req.Currency)
	}
	if req.LogoURL != nil {
		inv.LogoURL = *req.LogoURL
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return err
		}
		inv.Status = status
	}
	if req.Business != nil {
		inv.Business = datatypes.NewJSONType(*req.Business)
	}
	if req.Client != nil {
		inv.Client = datatypes.NewJSONType(*req.Client)
	}
	if req.TaxRate != nil {
		inv.TaxRate = *req.TaxRate
	}
	if req.ShippingCost != nil {
		inv.ShippingCost = money.FromDecimal(*req.ShippingCost)
	}
	if req.Items != nil {
		items, err := buildItems(*req.Items)
		if err != nil {
			return err
		}
		inv.Items = datatypes.NewJSONType(items)
	}
	return nil
}

// recompute revalidates the invariant fields and rederives every computed
// value: line amounts, totals and the due date. It runs on every create and
// every update, regardless of which fields changed.
func recompute(inv *domain.Invoice) error {
	if inv.InvoiceNumber == "" {
		return domain.ErrInvalidInvoiceNumber
	}
	if inv.TaxRate.IsNegative() {
		return domain.ErrInvalidTaxRate
	}
	if inv.ShippingCost.IsNegative() {
		return domain.ErrInvalidShippingCost
	}

	issueDate, err := terms.ParseDate(inv.IssueDate)
	if err != nil {
		return domain.ErrInvalidIssueDate
	}

	// The due date derives from the payment terms. A caller-supplied value
	// is honored as a manual override when it parses, so existing invoices
	// keep their agreed dates.
	if inv.DueDate == "" {
		dueDate, err := terms.ResolveDueDate(issueDate, inv.PaymentTerms)
		if err != nil {
			return err
		}
		inv.DueDate = terms.FormatDate(dueDate)
	} else if _, err := terms.ParseDate(inv.DueDate); err != nil {
		return domain.ErrInvalidDueDate
	}

	items := inv.Items.Data()
	calcItems := make([]calc.Item, 0, len(items))
	for i := range items {
		amount, err := calc.ItemAmount(items[i].CalcItem())
		if err != nil {
			return err
		}
		items[i].Amount = amount
		calcItems = append(calcItems, items[i].CalcItem())
	}
	inv.Items = datatypes.NewJSONType(items)

	totals, err := calc.ComputeTotals(calcItems, inv.TaxRate, inv.ShippingCost)
	if err != nil {
		return err
	}
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
	return nil
}

func buildItems(inputs []domain.LineItemInput) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Description) == "" {
			return nil, domain.ErrInvalidDescription
		}
		discountType, err := calc.ParseDiscountType(in.DiscountType)
		if err != nil {
			return nil, err
		}
		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, domain.LineItem{
			ID:            id,
			Description:   in.Description,
			Quantity:      in.Quantity,
			Rate:          money.FromDecimal(in.Rate),
			DiscountType:  discountType,
			DiscountValue: in.DiscountValue,
		})
	}
	return items, nil
}

func parseStatus(value string) (domain.InvoiceStatus, error) {
	switch domain.InvoiceStatus(value) {
	case domain.InvoiceStatusDraft, domain.InvoiceStatusFinalized:
		return domain.InvoiceStatus(value), nil
	default:
		return "", domain.ErrInvalidStatus
	}
}
