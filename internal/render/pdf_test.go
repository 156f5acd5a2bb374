package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicegen/internal/config"
	"github.com/smallbiznis/invoicegen/internal/document"
	"github.com/smallbiznis/invoicegen/internal/invoice/calc"
	"github.com/smallbiznis/invoicegen/internal/invoice/domain"
	"github.com/smallbiznis/invoicegen/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func newTestPDF(t *testing.T, uploadDir string) *PDF {
	t.Helper()
	logos := NewLogoFetcher(LogoParams{
		Cfg: config.Config{
			UploadDir:        uploadDir,
			LogoFetchTimeout: time.Second,
		},
		Log: zap.NewNop(),
	})
	return NewPDF(Params{Log: zap.NewNop(), Logos: logos})
}

func renderModel(itemCount int, logoURL string) document.Model {
	items := make([]domain.LineItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		items = append(items, domain.LineItem{
			ID:            "line",
			Description:   "Design work",
			Quantity:      decimal.NewFromInt(2),
			Rate:          money.MustFromString("50.00"),
			DiscountType:  calc.DiscountPercentage,
			DiscountValue: decimal.RequireFromString("10"),
			Amount:        money.MustFromString("90.00"),
		})
	}
	inv := domain.Invoice{
		InvoiceNumber: "INV-0001",
		PaymentTerms:  "NET30",
		IssueDate:     "2024-01-28",
		DueDate:       "2024-02-27",
		Currency:      "USD",
		LogoURL:       logoURL,
		Business:      datatypes.NewJSONType(domain.Party{Name: "Acme Studio"}),
		Client:        datatypes.NewJSONType(domain.Party{Name: "Globex"}),
		Items:         datatypes.NewJSONType(items),
		TaxRate:       decimal.RequireFromString("10"),
		ShippingCost:  money.MustFromString("5.00"),
		Subtotal:      money.MustFromString("90.00"),
		TaxAmount:     money.MustFromString("9.00"),
		Total:         money.MustFromString("104.00"),
	}
	return document.Build(inv)
}

func TestRenderProducesPDF(t *testing.T) {
	pdf := newTestPDF(t, t.TempDir())

	data, err := pdf.Render(context.Background(), renderModel(3, ""))
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderMultiPage(t *testing.T) {
	pdf := newTestPDF(t, t.TempDir())

	model := renderModel(80, "")
	require.Greater(t, len(model.Pages), 1)

	data, err := pdf.Render(context.Background(), model)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderSurvivesMissingLogo(t *testing.T) {
	pdf := newTestPDF(t, t.TempDir())

	data, err := pdf.Render(context.Background(), renderModel(1, "/uploads/no-such-file.png"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderWithUploadedLogo(t *testing.T) {
	dir := t.TempDir()
	// Minimal 1x1 PNG.
	png := []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
		0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
		0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
		0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), png, 0o644))

	pdf := newTestPDF(t, dir)
	data, err := pdf.Render(context.Background(), renderModel(1, "/uploads/logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestLogoFetcherRejectsTraversal(t *testing.T) {
	logos := NewLogoFetcher(LogoParams{
		Cfg: config.Config{UploadDir: t.TempDir(), LogoFetchTimeout: time.Second},
		Log: zap.NewNop(),
	})

	_, _, err := logos.Fetch(context.Background(), "/uploads/../etc/passwd")
	assert.Error(t, err)
}

func TestLogoFetcherRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.txt"), []byte("plain text"), 0o644))

	logos := NewLogoFetcher(LogoParams{
		Cfg: config.Config{UploadDir: dir, LogoFetchTimeout: time.Second},
		Log: zap.NewNop(),
	})

	_, _, err := logos.Fetch(context.Background(), "/uploads/logo.txt")
	assert.ErrorIs(t, err, errUnsupportedLogoFormat)
}
