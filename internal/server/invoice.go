package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/invoicegen/internal/invoice/domain"
)

type createInvoiceRequest struct {
	InvoiceNumber string                        `json:"invoice_number"`
	PaymentTerms  string                        `json:"payment_terms"`
	IssueDate     string                        `json:"issue_date"`
	DueDate       string                        `json:"due_date"`
	Currency      string                        `json:"currency"`
	LogoURL       string                        `json:"logo_url"`
	Status        string                        `json:"status"`
	Business      invoicedomain.Party           `json:"business"`
	Client        invoicedomain.Party           `json:"client"`
	Items         []invoicedomain.LineItemInput `json:"items"`
	TaxRate       decimal.Decimal               `json:"tax_rate"`
	ShippingCost  decimal.Decimal               `json:"shipping_cost"`
}

type updateInvoiceRequest struct {
	InvoiceNumber *string                        `json:"invoice_number"`
	PaymentTerms  *string                        `json:"payment_terms"`
	IssueDate     *string                        `json:"issue_date"`
	DueDate       *string                        `json:"due_date"`
	Currency      *string                        `json:"currency"`
	LogoURL       *string                        `json:"logo_url"`
	Status        *string                        `json:"status"`
	Business      *invoicedomain.Party           `json:"business"`
	Client        *invoicedomain.Party           `json:"client"`
	Items         *[]invoicedomain.LineItemInput `json:"items"`
	TaxRate       *decimal.Decimal               `json:"tax_rate"`
	ShippingCost  *decimal.Decimal               `json:"shipping_cost"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}

	item, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		InvoiceNumber: req.InvoiceNumber,
		PaymentTerms:  req.PaymentTerms,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Currency:      req.Currency,
		LogoURL:       req.LogoURL,
		Status:        req.Status,
		Business:      req.Business,
		Client:        req.Client,
		Items:         req.Items,
		TaxRate:       req.TaxRate,
		ShippingCost:  req.ShippingCost,
	})
	if err != nil {
		s.metrics.RecordInvoiceOp("create", "error")
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordInvoiceOp("create", "ok")
	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (s *Server) ListInvoices(c *gin.Context) {
	if number := strings.TrimSpace(c.Query("number")); number != "" {
		item, err := s.invoiceSvc.GetByNumber(c.Request.Context(), number)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": []invoicedomain.Invoice{item}})
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Invoices})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	item, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request"))
		return
	}

	item, err := s.invoiceSvc.Update(c.Request.Context(), id, invoicedomain.UpdateInvoiceRequest{
		InvoiceNumber: req.InvoiceNumber,
		PaymentTerms:  req.PaymentTerms,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Currency:      req.Currency,
		LogoURL:       req.LogoURL,
		Status:        req.Status,
		Business:      req.Business,
		Client:        req.Client,
		Items:         req.Items,
		TaxRate:       req.TaxRate,
		ShippingCost:  req.ShippingCost,
	})
	if err != nil {
		s.metrics.RecordInvoiceOp("update", "error")
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordInvoiceOp("update", "ok")
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) RenderInvoicePDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	item, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := s.invoiceSvc.RenderPDF(c.Request.Context(), id)
	if err != nil {
		s.metrics.RecordPDFRender("error")
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordPDFRender("ok")
	c.Header("Content-Disposition", `attachment; filename="invoice-`+item.InvoiceNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
