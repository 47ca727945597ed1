package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"

	"parkspot/internal/api"
	"parkspot/internal/auth"
	"parkspot/internal/repository"
	"parkspot/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	spotRepo := repository.NewSpotRepository(database)
	reservationRepo := repository.NewReservationRepository(database)
	customerRepo := repository.NewCustomerRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	jobRepo := repository.NewJobRepository(database)
	operatorAuthRepo := repository.NewOperatorAuthRepository(database)

	availability := service.NewSpotAvailability(spotRepo)
	reservationSvc := service.NewReservationService(reservationRepo, spotRepo, availability)
	reservationSvc.SetNotifier(service.NewSenderService(customerRepo, vehicleRepo))
	spotSvc := service.NewSpotService(spotRepo, reservationRepo)
	customerSvc := service.NewCustomerService(customerRepo, vehicleRepo)
	stripeSvc := service.NewStripeService()
	paymentSvc := service.NewPaymentService(paymentRepo, reservationRepo, stripeSvc)
	operatorAuthSvc := service.NewOperatorAuthService(operatorAuthRepo)
	jobSvc := service.NewJobService(jobRepo, reservationSvc)

	reservationHandler := api.NewReservationHandler(reservationSvc)
	spotHandler := api.NewSpotHandler(spotSvc, availability)
	customerHandler := api.NewCustomerHandler(customerSvc)
	paymentHandler := api.NewPaymentHandler(paymentSvc)
	authHandler := api.NewOperatorAuthHandler(operatorAuthSvc)
	webhookHandler := api.NewStripeWebhookHandler(os.Getenv("STRIPE_WEBHOOK_SECRET"), paymentSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/customers", customerHandler.RegisterCustomer).Methods("POST")
	r.HandleFunc("/api/customers/{customer_id}", customerHandler.GetCustomer).Methods("GET")
	r.HandleFunc("/api/customers/{customer_id}/vehicles", customerHandler.RegisterVehicle).Methods("POST")
	r.HandleFunc("/api/customers/{customer_id}/vehicles", customerHandler.ListVehicles).Methods("GET")
	r.HandleFunc("/api/customers/{customer_id}/vehicles/{id}", customerHandler.DeleteVehicle).Methods("DELETE")
	r.HandleFunc("/api/spots", spotHandler.ListSpots).Methods("GET")
	r.HandleFunc("/api/spots/{id}", spotHandler.GetSpot).Methods("GET")
	r.HandleFunc("/api/spots/{id}/availability", spotHandler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/reservations", reservationHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}", reservationHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}/cancel", reservationHandler.CancelReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}/payment", paymentHandler.RecordPayment).Methods("POST")
	r.HandleFunc("/api/reservations/{id}/payment", paymentHandler.GetPayment).Methods("GET")
	r.HandleFunc("/api/stripe/webhook", webhookHandler.HandleWebhook).Methods("POST")
	r.HandleFunc("/admin/login", authHandler.Login).Methods("POST")

	// Operator endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.OperatorAuthMiddleware)
	admin.HandleFunc("/operators", authHandler.CreateOperator).Methods("POST")
	admin.HandleFunc("/spots", spotHandler.CreateSpot).Methods("POST")
	admin.HandleFunc("/spots/{id}", spotHandler.UpdateSpot).Methods("PUT")
	admin.HandleFunc("/spots/{id}/maintenance", spotHandler.EnterMaintenance).Methods("POST")
	admin.HandleFunc("/spots/{id}/maintenance", spotHandler.ExitMaintenance).Methods("DELETE")
	admin.HandleFunc("/reservations", reservationHandler.ListReservations).Methods("GET")
	admin.HandleFunc("/reservations/{id}/complete", reservationHandler.CompleteReservation).Methods("POST")
	admin.HandleFunc("/reservations/{id}/refund", paymentHandler.RefundPayment).Methods("POST")

	c := cron.New()
	if _, err := c.AddFunc("@every 5m", func() {
		if err := jobSvc.CompleteOverdueReservations(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to register overdue sweep: %v", err)
	}
	if _, err := c.AddFunc("@hourly", func() {
		if err := jobSvc.ExpireStalePayments(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to register payment cleanup: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("FRONTEND_URL")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler(r))))
}
