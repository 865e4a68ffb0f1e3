package router

import (
	"net/http"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"avon-hello/app/controller"
	"avon-hello/logger"
)

type Controllers struct {
	Customer       *controller.CustomerController
	Order          *controller.OrderController
	Invoice        *controller.InvoiceController
	Pricing        *controller.PricingController
	Campaign       *controller.CampaignController
	Representative *controller.RepresentativeController
	Settings       *controller.SettingsController
	Backup         *controller.BackupController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every admin route on mux and returns it wrapped with
// request logging and panic recovery
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) http.Handler {
	// Ping endpoint
	mux.HandleFunc("GET /ping", pingHandler)

	// Customers
	mux.HandleFunc("GET /admin/customers", controllers.Customer.List)
	mux.HandleFunc("POST /admin/customers", controllers.Customer.Create)
	mux.HandleFunc("GET /admin/customers/search", controllers.Customer.Search)
	mux.HandleFunc("GET /admin/customers/{id}", controllers.Customer.Get)
	mux.HandleFunc("PUT /admin/customers/{id}", controllers.Customer.Update)

	// Orders
	mux.HandleFunc("GET /admin/customers/{id}/orders", controllers.Order.ListByCustomer)
	mux.HandleFunc("POST /admin/customers/{id}/orders", controllers.Order.Create)
	mux.HandleFunc("GET /admin/orders/{id}", controllers.Order.Get)
	mux.HandleFunc("DELETE /admin/orders/{id}", controllers.Order.Delete)
	mux.HandleFunc("PUT /admin/orders/{id}/lines", controllers.Order.ReplaceLines)
	mux.HandleFunc("POST /admin/orders/{id}/payment", controllers.Order.RecordPayment)

	// Invoices
	mux.HandleFunc("GET /admin/orders/{id}/invoice", controllers.Invoice.Get)

	// Pricing
	mux.HandleFunc("POST /admin/pricing/preview", controllers.Pricing.Preview)
	mux.HandleFunc("GET /admin/pricing/config", controllers.Pricing.Config)

	// Campaign counter
	mux.HandleFunc("GET /admin/campaign", controllers.Campaign.Get)
	mux.HandleFunc("PUT /admin/campaign", controllers.Campaign.Update)
	mux.HandleFunc("POST /admin/campaign/next", controllers.Campaign.Next)
	mux.HandleFunc("POST /admin/campaign/previous", controllers.Campaign.Previous)
	mux.HandleFunc("GET /admin/campaign/history", controllers.Campaign.History)

	// Representative info and settings
	mux.HandleFunc("GET /admin/representative", controllers.Representative.Get)
	mux.HandleFunc("PUT /admin/representative", controllers.Representative.Update)
	mux.HandleFunc("GET /admin/settings", controllers.Settings.Get)
	mux.HandleFunc("PUT /admin/settings", controllers.Settings.Update)

	// Backups
	mux.HandleFunc("GET /admin/backup", controllers.Backup.List)
	mux.HandleFunc("POST /admin/backup", controllers.Backup.Run)

	return recoverer(requestLogger(mux))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("📥 "+r.Method+" "+r.URL.Path,
			zap.Int("status", rec.status), zap.Duration("elapsed", time.Since(start)))
	})
}

// recoverer turns a handler panic into a 500 and writes it to the error log
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("💥 Unhandled panic",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.ByteString("stack", debug.Stack()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
