package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"crm-backend/internal/auth"
	"crm-backend/internal/cache"
	"crm-backend/internal/config"
	"crm-backend/internal/database"
	"crm-backend/internal/db"
	"crm-backend/internal/handlers"
	"crm-backend/internal/health"
	h "crm-backend/internal/http"
	"crm-backend/internal/middleware"
	"crm-backend/internal/repositories"
	"crm-backend/internal/services"
	"crm-backend/internal/whatsapp"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; list caching degrades to pass-through
	cache.Init(cfg)
	defer cache.Close()

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	companyRepo := repositories.NewCompanyRepository(pool)
	clientRepo := repositories.NewClientRepository(pool)
	packageRepo := repositories.NewPackageRepository(pool)
	quotationRepo := repositories.NewQuotationRepository(pool)
	billRepo := repositories.NewBillRepository(pool)
	receiptRepo := repositories.NewReceiptRepository(pool)
	onlineTransactionRepo := repositories.NewOnlineTransactionRepository(pool)

	// Services
	authService := services.NewAuthService(userRepo, jwtManager)
	companyService := services.NewCompanyService(companyRepo, userRepo, jwtManager)
	clientService := services.NewClientService(clientRepo)
	packageService := services.NewPackageService(packageRepo)
	quotationService := services.NewQuotationService(quotationRepo)
	billService := services.NewBillService(billRepo)
	receiptService := services.NewReceiptService(receiptRepo)
	pdfService := services.NewPDFService()
	shareService := whatsapp.NewService(cfg.WhatsApp.CountryCode)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret,
		onlineTransactionRepo, companyRepo, billRepo, receiptService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	clientHandler := handlers.NewClientHandler(clientService)
	packageHandler := handlers.NewPackageHandler(packageService)
	quotationHandler := handlers.NewQuotationHandler(quotationService)
	billHandler := handlers.NewBillHandler(billService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)
	pdfHandler := handlers.NewPDFHandler(pdfService, shareService, companyService,
		quotationService, billService, receiptService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	router := h.NewRouter(
		authHandler,
		companyHandler,
		clientHandler,
		packageHandler,
		quotationHandler,
		billHandler,
		receiptHandler,
		pdfHandler,
		razorpayHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.NewCORS(cfg)(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
