package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/schoolpay/schoolpay-gobackend/internal/config"
	"github.com/schoolpay/schoolpay-gobackend/internal/db"
	"github.com/schoolpay/schoolpay-gobackend/internal/handlers"
	"github.com/schoolpay/schoolpay-gobackend/internal/repositories"
	"github.com/schoolpay/schoolpay-gobackend/internal/services"
	"github.com/schoolpay/schoolpay-gobackend/pkg/log"
)

func main() {
	// Load .env before anything reads the environment; absent in deployed
	// environments where config comes from the platform
	_ = godotenv.Load(".env")

	cfg := config.Load()

	logOpts := []log.LoggerOption{}
	if cfg.Logging.ConsoleEnabled() {
		logOpts = append(logOpts, log.WithConsoleLogger())
	}
	if cfg.Logging.File != "" {
		logOpts = append(logOpts, log.WithFileLogger(cfg.Logging.File))
	}
	log.Init("schoolpay-backend", logOpts...)
	logger := log.GetLogger()

	client, err := db.Connect(context.Background(), cfg.Mongo.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Disconnect(ctx, client); err != nil {
			logger.Error().Err(err).Msg("error disconnecting from MongoDB")
		}
	}()

	database := client.Database(cfg.Mongo.Database)

	// Wire repositories, services and handlers
	transactionRepo := repositories.NewTransactionRepository(database)
	statusRepo := repositories.NewStatusRepository(database)
	gatewayClient := services.NewGatewayClient(cfg.Gateway)

	authService := services.NewAuthService(cfg.Auth.JWTSecret)
	transactionService := services.NewTransactionService(transactionRepo, statusRepo, gatewayClient)

	authHandler := handlers.NewAuthHandler(authService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Set up router
	router := mux.NewRouter()
	router.Use(handlers.LoggingMiddleware)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	router.HandleFunc("/auth/generate-new-token", authHandler.GenerateNewToken).Methods("GET")
	router.HandleFunc("/public/transactions", transactionHandler.PublicProbe).Methods("GET")

	protected := router.PathPrefix("/transactions").Subrouter()
	protected.Use(handlers.AuthMiddleware(authService))
	protected.HandleFunc("", transactionHandler.Probe).Methods("GET")
	protected.HandleFunc("/all", transactionHandler.GetAllTransactions).Methods("GET")
	protected.HandleFunc("/school/{schoolId}", transactionHandler.GetTransactionsBySchool).Methods("GET")
	protected.HandleFunc("/check-status/{customOrderId}", transactionHandler.CheckTransactionStatus).Methods("GET")
	protected.HandleFunc("/update-status", transactionHandler.UpdateTransactionStatus).Methods("POST")
	protected.HandleFunc("/collect-payment", transactionHandler.CollectPayment).Methods("POST")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.Server.FrontendURL},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", server.Addr).Msg("server running")
	logger.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
