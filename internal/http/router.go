package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crm-backend/internal/handlers"
	"crm-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	companyHandler *handlers.CompanyHandler,
	clientHandler *handlers.ClientHandler,
	packageHandler *handlers.PackageHandler,
	quotationHandler *handlers.QuotationHandler,
	billHandler *handlers.BillHandler,
	receiptHandler *handlers.ReceiptHandler,
	pdfHandler *handlers.PDFHandler,
	razorpayHandler *handlers.RazorpayHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Ops endpoints, no auth
	r.HandleFunc("/health", healthHandler.Liveness).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.Readiness).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	// Razorpay webhook authenticates by signature, not by token
	r.HandleFunc("/api/payments/webhook", razorpayHandler.Webhook).Methods("POST")

	// Authenticated but company-independent routes
	sessionAPI := r.PathPrefix("/auth/session").Subrouter()
	sessionAPI.Use(authMiddleware.Authenticate)
	sessionAPI.HandleFunc("", authHandler.Session).Methods("GET")

	passwordAPI := r.PathPrefix("/auth/change-password").Subrouter()
	passwordAPI.Use(authMiddleware.Authenticate)
	passwordAPI.HandleFunc("", authHandler.ChangePassword).Methods("POST")

	companiesAPI := r.PathPrefix("/api/companies").Subrouter()
	companiesAPI.Use(authMiddleware.Authenticate)
	companiesAPI.HandleFunc("", companyHandler.ListCompanies).Methods("GET")
	companiesAPI.HandleFunc("/select", companyHandler.SelectCompany).Methods("POST")

	// Everything below requires a selected company
	currentCompanyAPI := r.PathPrefix("/api/companies/current").Subrouter()
	currentCompanyAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireCompany)
	currentCompanyAPI.HandleFunc("", companyHandler.CurrentCompany).Methods("GET")

	companyAPI := r.PathPrefix("/api/companies").Subrouter()
	companyAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireCompany)
	companyAPI.HandleFunc("/{id:[0-9]+}", companyHandler.UpdateCompany).Methods("PUT")

	clientsAPI := r.PathPrefix("/api/clients").Subrouter()
	clientsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireCompany)
	clientsAPI.HandleFunc("", clientHandler.ListClients).Methods("GET")
	clientsAPI.HandleFunc("", clientHandler.CreateClient).Methods("POST")
	clientsAPI.HandleFunc("/search/{query}", clientHandler.SearchClients).Methods("GET")
	clientsAPI.HandleFunc("/{id}", clientHandler.GetClient).Methods("GET")
	clientsAPI.HandleFunc("/{id}", clientHandler.UpdateClient).Methods("PUT")
	clientsAPI.HandleFunc("/{id}", clientHandler.DeleteClient).Methods("DELETE")

	packagesAPI := r.PathPrefix("/api/packages").Subrouter()
	packagesAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireCompany)
	packagesAPI.HandleFunc("", packageHandler.ListPackages).Methods("GET")
	packagesAPI.HandleFunc("", packageHandler.CreatePackage).Methods("POST")
	packagesAPI.HandleFunc("/tier/{tier}", packageHandler.ListByTier).Methods("GET")
	packagesAPI.HandleFunc("/{id}", packageHandler.GetPackage).Methods("GET")
	packagesAPI.HandleFunc("/{id}", packageHandler.UpdatePackage).Methods("PUT")
	packagesAPI.HandleFunc("/{id}", packageHandler.DeletePackage).Methods("DELETE")

	quotationsAPI := r.PathPrefix("/api/quotations").Subrouter()
	quotationsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireCompany)
	quotationsAPI.HandleFunc("", quotationHandler.ListQuotations).Methods("GET")
	quotationsAPI.HandleFunc("", quotationHandler.CreateQuotation).Methods("POST")
	quotationsAPI.HandleFunc("/recent", quotationHandler.RecentQuotations).Methods("GET")
	quotationsAPI.HandleFunc("/calculate", quotationHandler.Calculate).Methods("POST")
	quotationsAPI.HandleFunc("/{id}", quotationHandler.GetQuotation).Methods("GET")
	quotationsAPI.HandleFunc("/{id}", quotationHandler.UpdateQuotation).Methods("PUT")
	quotationsAPI.HandleFunc("/{id}", quotationHandler.DeleteQuotation).Methods("DELETE")

	billsAPI := r.PathPrefix("/api/bills").Subrouter()
	billsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireCompany)
	billsAPI.HandleFunc("", billHandler.ListBills).Methods("GET")
	billsAPI.HandleFunc("", billHandler.CreateBill).Methods("POST")
	billsAPI.HandleFunc("/recent", billHandler.RecentBills).Methods("GET")
	billsAPI.HandleFunc("/{id}", billHandler.GetBill).Methods("GET")
	billsAPI.HandleFunc("/{id}", billHandler.UpdateBill).Methods("PUT")
	billsAPI.HandleFunc("/{id}", billHandler.DeleteBill).Methods("DELETE")

	receiptsAPI := r.PathPrefix("/api/receipts").Subrouter()
	receiptsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireCompany)
	receiptsAPI.HandleFunc("", receiptHandler.ListReceipts).Methods("GET")
	receiptsAPI.HandleFunc("", receiptHandler.CreateReceipt).Methods("POST")
	receiptsAPI.HandleFunc("/recent", receiptHandler.RecentReceipts).Methods("GET")
	receiptsAPI.HandleFunc("/quotation/{quotationId}", receiptHandler.ReceiptsByQuotation).Methods("GET")
	receiptsAPI.HandleFunc("/{id}", receiptHandler.GetReceipt).Methods("GET")
	receiptsAPI.HandleFunc("/{id}", receiptHandler.UpdateReceipt).Methods("PUT")
	receiptsAPI.HandleFunc("/{id}", receiptHandler.DeleteReceipt).Methods("DELETE")

	pdfAPI := r.PathPrefix("/api/pdf").Subrouter()
	pdfAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireCompany)
	pdfAPI.HandleFunc("/quotation/{id}", pdfHandler.QuotationPDF).Methods("GET")
	pdfAPI.HandleFunc("/bill/{id}", pdfHandler.BillPDF).Methods("GET")
	pdfAPI.HandleFunc("/receipt/{id}", pdfHandler.ReceiptPDF).Methods("GET")
	pdfAPI.HandleFunc("/whatsapp/{type}/{id}", pdfHandler.WhatsAppShare).Methods("GET")

	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireCompany)
	paymentsAPI.HandleFunc("/status", razorpayHandler.PaymentStatus).Methods("GET")
	paymentsAPI.HandleFunc("/order", razorpayHandler.CreateOrder).Methods("POST")
	paymentsAPI.HandleFunc("/verify", razorpayHandler.VerifyPayment).Methods("POST")

	return r
}
