package service

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"avon-hello/logger"
	"avon-hello/models"
	"avon-hello/pricing"
	"avon-hello/repository"
	"avon-hello/utils"
)

//go:embed templates/invoice.html
var templateFS embed.FS

var invoiceTemplate = template.Must(template.ParseFS(templateFS, "templates/invoice.html"))

// Invoice formats
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// ErrUnsupportedFormat is returned for formats other than text, html and pdf
var ErrUnsupportedFormat = errors.New("unsupported invoice format")

var formatInfo = map[string]struct{ ext, contentType string }{
	FormatText: {"txt", "text/plain; charset=utf-8"},
	FormatHTML: {"html", "text/html; charset=utf-8"},
	FormatPDF:  {"pdf", "application/pdf"},
}

const (
	textWidth    = 90
	invoiceTitle = "*** CUSTOMER ORDER ***"
	dateLayout   = "Monday, January 2, 2006"
	logoMaxSize  = 240
)

// Invoice is everything printed on one order's invoice
type Invoice struct {
	Order          models.Order
	Customer       models.Customer
	Representative models.Representative
	Totals         pricing.OrderTotals
	TaxRatePercent decimal.Decimal
	Date           string
}

// Document is a rendered invoice
type Document struct {
	Format      string
	ContentType string
	Data        []byte
	// Path is set once the document is saved
	Path string
}

// PDFRendererInterface turns an HTML page into a PDF
type PDFRendererInterface interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// InvoiceService renders and stores order invoices
type InvoiceService struct {
	orders          repository.OrderRepositoryInterface
	customers       repository.CustomerRepositoryInterface
	representatives repository.RepresentativeRepositoryInterface
	engine          *pricing.Engine
	pdf             PDFRendererInterface
	outputDir       string
}

// NewInvoiceService creates a new InvoiceService writing files under outputDir
func NewInvoiceService(
	orders repository.OrderRepositoryInterface,
	customers repository.CustomerRepositoryInterface,
	representatives repository.RepresentativeRepositoryInterface,
	engine *pricing.Engine,
	pdf PDFRendererInterface,
	outputDir string,
) *InvoiceService {
	if engine == nil {
		engine = pricing.Default()
	}
	return &InvoiceService{
		orders:          orders,
		customers:       customers,
		representatives: representatives,
		engine:          engine,
		pdf:             pdf,
		outputDir:       outputDir,
	}
}

// Build loads an order with its customer and representative and prices its lines
func (s *InvoiceService) Build(ctx context.Context, orderID int64) (*Invoice, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	rep, err := s.representatives.Get(ctx)
	if err != nil {
		return nil, err
	}

	inputs := make([]pricing.LineInput, 0, len(order.Lines))
	for _, l := range order.Lines {
		discount, err := decimal.NewFromString(l.DiscountPercent)
		if err != nil {
			discount = decimal.Zero
		}
		inputs = append(inputs, pricing.LineInput{
			Qty:               l.Qty,
			UnitPrice:         utils.FromCents(l.UnitPrice),
			RegPrice:          utils.FromCents(l.RegPrice),
			DiscountPercent:   discount,
			TaxApplied:        l.Tax,
			ProcessingApplied: l.Processing,
		})
	}

	date := time.Now()
	if t, err := time.Parse(time.RFC3339, order.TimeSubmitted); err == nil {
		date = t
	}

	return &Invoice{
		Order:          *order,
		Customer:       *customer,
		Representative: *rep,
		Totals:         storedTotals(order, s.engine.TotalsFor(inputs)),
		TaxRatePercent: s.engine.Config().TaxRatePercent,
		Date:           date.Format(dateLayout),
	}, nil
}

// Render builds the invoice of an order in the given format.
// darkMode only affects HTML shown on screen; PDFs are always printed light.
func (s *InvoiceService) Render(ctx context.Context, orderID int64, format string, darkMode bool) (*Document, error) {
	info, ok := formatInfo[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	inv, err := s.Build(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatText:
		data = []byte(RenderText(inv))
	case FormatHTML:
		html, err := RenderHTML(inv, darkMode)
		if err != nil {
			return nil, err
		}
		data = []byte(html)
	case FormatPDF:
		if s.pdf == nil {
			return nil, fmt.Errorf("%w: pdf rendering is not configured", ErrUnsupportedFormat)
		}
		html, err := RenderHTML(inv, false)
		if err != nil {
			return nil, err
		}
		if data, err = s.pdf.RenderPDF(ctx, html); err != nil {
			return nil, err
		}
	}

	logger.Info("🧾 RenderInvoice: Invoice rendered",
		zap.Int64("orderId", orderID), zap.String("format", format), zap.Int("bytes", len(data)))
	return &Document{Format: format, ContentType: info.contentType, Data: data}, nil
}

// Save writes doc under the invoice directory as order-<id>-<short uuid>.<ext>
func (s *InvoiceService) Save(doc *Document, orderID int64) (string, error) {
	info, ok := formatInfo[doc.Format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create invoice directory: %w", err)
	}

	name := fmt.Sprintf("order-%d-%s.%s", orderID, uuid.NewString()[:8], info.ext)
	path := filepath.Join(s.outputDir, name)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write invoice: %w", err)
	}
	doc.Path = path

	logger.Info("✓ SaveInvoice: Invoice written", zap.String("path", path))
	return path, nil
}

// storedTotals pins the breakdown to what was saved with the order. Line totals
// and the grand total come from the order; TaxAmount is the remainder so the
// summary rows add up to the stored order total.
func storedTotals(order *models.Order, breakdown pricing.OrderTotals) pricing.OrderTotals {
	t := breakdown
	for i := range t.Lines {
		if i < len(order.Lines) {
			t.Lines[i].Total = utils.FromCents(order.Lines[i].TotalPrice)
		}
	}
	t.GrandTotal = utils.FromCents(order.OrderTotal)
	t.TaxAmount = t.GrandTotal.Sub(t.Subtotal).Add(t.DiscountTotal).Sub(t.ProcessingCharge)
	return t
}

type summaryRow struct {
	Label  string
	Amount string
	Grand  bool
}

func summaryRows(inv *Invoice) []summaryRow {
	money := func(d decimal.Decimal) string { return utils.FormatUSD(utils.ToCents(d)) }
	t := inv.Totals

	rows := []summaryRow{{Label: "Sub Total", Amount: money(t.Subtotal)}}
	if !t.DiscountTotal.IsZero() {
		rows = append(rows, summaryRow{Label: "Discounts", Amount: money(t.DiscountTotal.Neg())})
	}
	rows = append(rows,
		summaryRow{Label: "Processing Charge", Amount: money(t.ProcessingCharge)},
		summaryRow{Label: "TAX1 " + inv.TaxRatePercent.String() + "%", Amount: money(t.TaxAmount)},
		summaryRow{Label: "Grand Total", Amount: money(t.GrandTotal), Grand: true},
		summaryRow{Label: "Previous Balance", Amount: utils.FormatUSD(inv.Order.PreviousBalance)},
		summaryRow{Label: "Payment", Amount: utils.FormatUSD(-inv.Order.Payment)},
		summaryRow{Label: "Net Due", Amount: utils.FormatUSD(inv.Order.NetDue), Grand: true},
	)
	return rows
}

type lineRow struct {
	Page, ProductNumber, Description, Shade string
	Qty                                     int
	Price, Total                            string
}

func lineRows(inv *Invoice) []lineRow {
	rows := make([]lineRow, 0, len(inv.Order.Lines))
	for _, l := range inv.Order.Lines {
		rows = append(rows, lineRow{
			Page:          l.Page,
			ProductNumber: l.ProductNumber,
			Description:   l.Description,
			Shade:         l.Shade,
			Qty:           l.Qty,
			Price:         utils.FormatUSD(l.UnitPrice),
			Total:         utils.FormatUSD(l.TotalPrice),
		})
	}
	return rows
}

// RenderText renders the fixed-column plain-text invoice
func RenderText(inv *Invoice) string {
	var b strings.Builder
	rep := inv.Representative

	b.WriteString(center(strings.ToUpper(rep.Name), textWidth) + "\n")
	b.WriteString(center(invoiceTitle, textWidth) + "\n\n")
	fmt.Fprintf(&b, "Campaign # %d - %d\n", inv.Order.CampaignNumber, inv.Order.CampaignYear)
	fmt.Fprintf(&b, "%s\n\n", inv.Date)

	fmt.Fprintf(&b, "Customer: %s %s\n", inv.Customer.FirstName, inv.Customer.LastName)
	if inv.Customer.Address != "" {
		fmt.Fprintf(&b, "%s\n", inv.Customer.Address)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n%s\n%s\nEmail: %s\nWebsite: %s\n\n", rep.Name, rep.Address, rep.Phone, rep.Email, rep.Website)

	fmt.Fprintf(&b, "%-8s%-12s%-40s%6s%12s%12s\n", "Page", "Product #", "Product", "Qty", "Price", "Total")
	b.WriteString(strings.Repeat("-", textWidth) + "\n")
	for _, l := range lineRows(inv) {
		fmt.Fprintf(&b, "%-8s%-12s%-40s%6d%12s%12s\n",
			truncate(l.Page, 7), truncate(l.ProductNumber, 11), truncate(l.Description, 39), l.Qty, l.Price, l.Total)
	}
	b.WriteString(strings.Repeat("-", textWidth) + "\n")

	for _, row := range summaryRows(inv) {
		fmt.Fprintf(&b, "%-56s%-20s%14s\n", "", row.Label, row.Amount)
	}
	b.WriteString("\n")
	b.WriteString(center("Thank You", textWidth) + "\n")
	b.WriteString(strings.Repeat("_", textWidth) + "\n")
	return b.String()
}

type htmlView struct {
	*Invoice
	DarkMode    bool
	LogoDataURI template.URL
	Lines       []lineRow
	Summary     []summaryRow
}

// RenderHTML renders the invoice page. The representative logo, when set, is
// shrunk and inlined so the page has no external references.
func RenderHTML(inv *Invoice, darkMode bool) (string, error) {
	view := htmlView{
		Invoice:  inv,
		DarkMode: darkMode,
		Lines:    lineRows(inv),
		Summary:  summaryRows(inv),
	}

	if path := inv.Representative.LogoPath; path != "" {
		logo, err := OptimizeLogo(path, logoMaxSize)
		if err != nil {
			logger.Warn("⚠️ RenderHTML: Failed to load logo, continuing without it",
				zap.String("path", path), zap.Error(err))
		} else {
			view.LogoDataURI = template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(logo))
		}
	}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.String(), nil
}

func center(s string, width int) string {
	if pad := (width - len(s)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
