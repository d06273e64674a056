package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelgo/config"
	"travelgo/cron"
	"travelgo/database"
	bookingRepoPkg "travelgo/database/repository/booking"
	hotelRepoPkg "travelgo/database/repository/hotel"
	"travelgo/handlers"
	"travelgo/models"
	"travelgo/routes"
	"travelgo/services/booking"
	"travelgo/services/chain"
	"travelgo/services/hotel"
	"travelgo/services/invoice"
	"travelgo/services/ipfs"
	"travelgo/services/notification"
	"travelgo/services/payment"
	"travelgo/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	hotelRepo := hotelRepoPkg.NewMongoHotelRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// On-chain verifier; nil when no provider is configured.
	chainClient, err := chain.NewEthChainClient(
		config.AppConfig.ProviderURL,
		config.AppConfig.ContractAddress,
		logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect blockchain provider: %v", err)
	}
	var verifier chain.ChainClient
	if chainClient != nil {
		verifier = chainClient
	}

	// Services.
	hotelService := &hotel.DefaultHotelService{
		Repo:        hotelRepo,
		CacheClient: utils.GetCacheClient(),
		Logger:      logger,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:      bookingRepo,
		HotelRepo: hotelRepo,
		Logger:    logger,
	}

	notifier := notification.NewEmailNotificationService(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.EmailUser,
		config.AppConfig.EmailPassword,
		config.AppConfig.FrontendURL,
		logger,
	)

	invoices := &invoice.Generator{
		Dir:    config.AppConfig.InvoiceDir,
		Logger: logger,
	}

	gateways := map[string]payment.Gateway{
		models.PaymentMethodCrypto: &payment.CryptoGateway{Chain: verifier, Logger: logger},
		models.PaymentMethodCard:   &payment.StripeCardGateway{Logger: logger},
		models.PaymentMethodBank:   &payment.BankTransferGateway{Logger: logger},
	}
	paymentService := payment.NewService(
		payment.Config{
			Concurrency:  config.AppConfig.PaymentConcurrency,
			JobTimeout:   time.Duration(config.AppConfig.PaymentJobTimeout) * time.Second,
			FeeRate:      config.AppConfig.PaymentFeeRate,
			RefundWindow: time.Duration(config.AppConfig.RefundWindowHours) * time.Hour,
			QueueSize:    256,
		},
		gateways, invoices, notifier, logger,
	)

	pinning := ipfs.NewPinataClient(
		config.AppConfig.PinataAPIKey,
		config.AppConfig.PinataAPISecret,
		logger,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Hotel:   handlers.NewHotelHandler(hotelService, logger),
		Booking: handlers.NewBookingHandler(bookingService, paymentService, invoices, verifier, logger),
		Owner:   handlers.NewOwnerHandler(hotelService, utils.AuthClient, logger),
		Admin:   handlers.NewAdminHandler(hotelService, utils.AuthClient, logger),
		IPFS:    handlers.NewIPFSHandler(pinning, logger),
	}

	routes.RegisterRoutes(router, handlerBundle, &config.AppConfig, utils.AuthClient)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Background worker: check-in reminders and on-chain reconciliation.
	worker := cron.NewWorker(&config.AppConfig, bookingRepo, notifier, verifier)
	worker.Start()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	worker.Stop()
	paymentService.Stop()

	logger.Sugar().Info("main: server stopped gracefully")
}
