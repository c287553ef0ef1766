package routes

import (
	"net/http"

	"github.com/glowpoint/clinic-desk/internal/api/handlers"
	"github.com/glowpoint/clinic-desk/internal/api/middleware"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	bookingHandler        *handlers.BookingHandler
	appointmentHandler    *handlers.AppointmentHandler
	billingHandler        *handlers.BillingHandler
	patientHandler        *handlers.PatientHandler
	catalogHandler        *handlers.CatalogHandler
	notificationHandler   *handlers.NotificationHandler
	clinicalRecordHandler *handlers.ClinicalRecordHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	bookingHandler *handlers.BookingHandler,
	appointmentHandler *handlers.AppointmentHandler,
	billingHandler *handlers.BillingHandler,
	patientHandler *handlers.PatientHandler,
	catalogHandler *handlers.CatalogHandler,
	notificationHandler *handlers.NotificationHandler,
	clinicalRecordHandler *handlers.ClinicalRecordHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		bookingHandler:        bookingHandler,
		appointmentHandler:    appointmentHandler,
		billingHandler:        billingHandler,
		patientHandler:        patientHandler,
		catalogHandler:        catalogHandler,
		notificationHandler:   notificationHandler,
		clinicalRecordHandler: clinicalRecordHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Booking endpoint
	r.mux.HandleFunc("POST /api/bookings", r.bookingHandler.Book)

	// Appointment lifecycle endpoints
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.List)
	r.mux.HandleFunc("GET /api/appointments/{id}", r.appointmentHandler.Get)
	r.mux.HandleFunc("POST /api/appointments/{id}/complete", r.appointmentHandler.Complete)
	r.mux.HandleFunc("POST /api/appointments/{id}/cancel", r.appointmentHandler.Cancel)
	r.mux.HandleFunc("POST /api/appointments/{id}/reschedule", r.appointmentHandler.Reschedule)

	// Billing endpoints
	r.mux.HandleFunc("GET /api/billing/queue", r.billingHandler.PaymentQueue)
	r.mux.HandleFunc("POST /api/billing/drafts", r.billingHandler.CreateDraft)
	r.mux.HandleFunc("POST /api/billing/drafts/items", r.billingHandler.AddItem)
	r.mux.HandleFunc("POST /api/billing/drafts/items/remove", r.billingHandler.RemoveItem)
	r.mux.HandleFunc("POST /api/billing/invoices", r.billingHandler.Finalize)
	r.mux.HandleFunc("GET /api/invoices", r.billingHandler.ListInvoices)
	r.mux.HandleFunc("GET /api/invoices/{id}", r.billingHandler.GetInvoice)

	// Patient registry endpoints
	r.mux.HandleFunc("GET /api/patients", r.patientHandler.List)
	r.mux.HandleFunc("GET /api/patients/search", r.patientHandler.Search)
	r.mux.HandleFunc("GET /api/patients/{id}", r.patientHandler.Get)
	r.mux.HandleFunc("POST /api/patients", r.patientHandler.Register)
	r.mux.HandleFunc("PUT /api/patients/{id}", r.patientHandler.Update)

	// Clinical record endpoints
	r.mux.HandleFunc("POST /api/skin-analyses", r.clinicalRecordHandler.CreateSkinAnalysis)
	r.mux.HandleFunc("GET /api/patients/{id}/skin-analyses", r.clinicalRecordHandler.ListSkinAnalyses)
	r.mux.HandleFunc("POST /api/treatment-progress", r.clinicalRecordHandler.CreateTreatmentProgress)
	r.mux.HandleFunc("GET /api/patients/{id}/treatment-progress", r.clinicalRecordHandler.ListTreatmentProgress)

	// Catalog endpoints
	r.mux.HandleFunc("GET /api/treatments", r.catalogHandler.ListTreatments)
	r.mux.HandleFunc("GET /api/treatments/{id}", r.catalogHandler.GetTreatment)
	r.mux.HandleFunc("POST /api/treatments", r.catalogHandler.CreateTreatment)
	r.mux.HandleFunc("PUT /api/treatments/{id}", r.catalogHandler.UpdateTreatment)

	r.mux.HandleFunc("GET /api/products", r.catalogHandler.ListProducts)
	r.mux.HandleFunc("GET /api/products/{id}", r.catalogHandler.GetProduct)
	r.mux.HandleFunc("POST /api/products", r.catalogHandler.CreateProduct)
	r.mux.HandleFunc("PUT /api/products/{id}", r.catalogHandler.UpdateProduct)

	r.mux.HandleFunc("GET /api/doctors", r.catalogHandler.ListDoctors)
	r.mux.HandleFunc("GET /api/doctors/{id}", r.catalogHandler.GetDoctor)
	r.mux.HandleFunc("POST /api/doctors", r.catalogHandler.CreateDoctor)
	r.mux.HandleFunc("PUT /api/doctors/{id}", r.catalogHandler.UpdateDoctor)

	// Stock notification endpoints
	r.mux.HandleFunc("GET /api/notifications", r.notificationHandler.List)
	r.mux.HandleFunc("POST /api/notifications/read", r.notificationHandler.MarkAllRead)
	r.mux.HandleFunc("POST /api/notifications/derive", r.notificationHandler.Derive)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
