package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glowpoint/clinic-desk/internal/adapters/cache"
	"github.com/glowpoint/clinic-desk/internal/adapters/database"
	"github.com/glowpoint/clinic-desk/internal/adapters/search"
	"github.com/glowpoint/clinic-desk/internal/api/handlers"
	"github.com/glowpoint/clinic-desk/internal/api/routes"
	"github.com/glowpoint/clinic-desk/internal/application/services"
	"github.com/glowpoint/clinic-desk/internal/domain/providers"
	"github.com/glowpoint/clinic-desk/internal/domain/repositories"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/postgres"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/redis"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/typesense"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/observability"
	"github.com/glowpoint/clinic-desk/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client; the desk works without caching
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client; patient search degrades without it
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
	} else {
		log.Println("Typesense client initialized successfully")
	}

	// Initialize adapters
	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	baseTreatmentAdapter := database.NewTreatmentAdapter(pgClient)
	baseProductAdapter := database.NewProductAdapter(pgClient)

	var treatmentAdapter repositories.TreatmentRepository
	var productAdapter repositories.ProductRepository
	if cacheProvider != nil {
		treatmentAdapter = database.NewCachedTreatmentAdapter(baseTreatmentAdapter, cacheProvider)
		productAdapter = database.NewCachedProductAdapter(baseProductAdapter, cacheProvider)
		log.Println("Catalog adapters wrapped with caching layer")
	} else {
		treatmentAdapter = baseTreatmentAdapter
		productAdapter = baseProductAdapter
		log.Println("Catalog adapters running without cache (Redis unavailable)")
	}

	patientAdapter := database.NewPatientAdapter(pgClient)
	doctorAdapter := database.NewDoctorAdapter(pgClient)
	appointmentAdapter := database.NewAppointmentAdapter(pgClient)
	invoiceAdapter := database.NewInvoiceAdapter(pgClient)
	clinicalRecordAdapter := database.NewClinicalRecordAdapter(pgClient)
	notificationAdapter := database.NewStockNotificationAdapter(pgClient)

	var searchRepo repositories.PatientSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
	}

	// Initialize services
	bookingService := services.NewBookingService(
		appointmentAdapter,
		patientAdapter,
		doctorAdapter,
		treatmentAdapter,
		searchRepo,
		cfg.Clinic,
	)
	appointmentService := services.NewAppointmentService(appointmentAdapter, patientAdapter)
	billingService := services.NewBillingService(
		invoiceAdapter,
		appointmentAdapter,
		treatmentAdapter,
		productAdapter,
	)
	patientService := services.NewPatientService(patientAdapter, searchRepo)
	catalogService := services.NewCatalogService(treatmentAdapter, productAdapter, doctorAdapter)
	clinicalRecordService := services.NewClinicalRecordService(clinicalRecordAdapter, appointmentAdapter)
	stockAlertService := services.NewStockAlertService(
		productAdapter,
		notificationAdapter,
		cfg.Clinic.StockAlertThreshold,
	)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(bookingService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	billingHandler := handlers.NewBillingHandler(billingService)
	patientHandler := handlers.NewPatientHandler(patientService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	notificationHandler := handlers.NewNotificationHandler(stockAlertService)
	clinicalRecordHandler := handlers.NewClinicalRecordHandler(clinicalRecordService)

	// Set up router
	router := routes.NewRouter(
		bookingHandler,
		appointmentHandler,
		billingHandler,
		patientHandler,
		catalogHandler,
		notificationHandler,
		clinicalRecordHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
