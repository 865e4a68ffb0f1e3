package controller

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"avon-hello/config"
	"avon-hello/logger"
	"avon-hello/service"
)

// InvoiceController handles HTTP requests for order invoices
type InvoiceController struct {
	invoiceService *service.InvoiceService
	settings       *config.SettingsStore
	open           service.FileOpener
}

// NewInvoiceController creates a new InvoiceController. open may be nil when
// the host has no desktop to open files on.
func NewInvoiceController(invoiceService *service.InvoiceService, settings *config.SettingsStore, open service.FileOpener) *InvoiceController {
	return &InvoiceController{
		invoiceService: invoiceService,
		settings:       settings,
		open:           open,
	}
}

// Get handles GET /admin/orders/{id}/invoice?format=text|html|pdf&save=true&open=true
// format defaults to html. open=true saves the file and hands it to the OS default
// viewer; save=true only saves it. The saved path is returned in X-Invoice-Path.
func (c *InvoiceController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "GetInvoice")
	if !ok {
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = service.FormatHTML
	}
	open, _ := strconv.ParseBool(q.Get("open"))
	save, _ := strconv.ParseBool(q.Get("save"))

	darkMode := false
	if c.settings != nil {
		darkMode = c.settings.Get().Appearance.DarkMode
	}

	logger.Info("📥 GetInvoice: Rendering invoice",
		zap.Int64("orderId", id), zap.String("format", format), zap.Bool("open", open))

	doc, err := c.invoiceService.Render(r.Context(), id, format, darkMode)
	if err != nil {
		writeError(w, "GetInvoice", err)
		return
	}

	if save || open {
		path, err := c.invoiceService.Save(doc, id)
		if err != nil {
			writeError(w, "GetInvoice", err)
			return
		}
		w.Header().Set("X-Invoice-Path", path)

		if open && c.open != nil {
			if err := c.open(path); err != nil {
				// the invoice is still returned; only the viewer failed
				logger.Warn("⚠️ GetInvoice: Could not open invoice", zap.String("path", path), zap.Error(err))
			}
		}
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		logger.Error("❌ GetInvoice: Error writing response", zap.Error(err))
	}
}
