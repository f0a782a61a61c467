package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	config "github.com/satsangkankpul/donation-services/configs"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/app"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/broker"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/handlers"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/metrics"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/notify"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/payment"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/service"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/session"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/ws"
	nats "github.com/satsangkankpul/donation-services/internal/nats"
	"github.com/satsangkankpul/donation-services/web"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "donation"

func init() {
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME+"_service_"+instanceId[:8], cfg.LogToFile, cfg.LogLevel)

	ctx := context.Background()

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.DatabaseDriver, err)
	}
	defer stores.Close()

	sessionStore, closeSessions, err := app.OpenSessionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer closeSessions()

	// notifiers, the hub is always on
	hub := ws.NewHub()
	notifiers := []service.Notifier{hub}

	if cfg.NatsURL != "" {
		n, err := nats.Connect(cfg.NatsURL, cfg.NatsToken)
		if err != nil {
			log.Errorf("Error: unable to connect to NATS server %v", err)
		} else {
			defer n.Conn.Close()
			log.Printf("NATS connection established successfully %s", n.Url)
			notifiers = append(notifiers, broker.NewBroker(n.Conn, cfg.NatsSubject))
		}
	}

	if cfg.TelegramBotToken != "" {
		chatIDs := cfg.ChatIDs()
		if len(chatIDs) == 0 {
			log.Warn("No valid telegram chat IDs found, notifications disabled")
		} else if tn, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, chatIDs); err != nil {
			log.Errorf("Failed to initialize Telegram notifier: %v", err)
		} else {
			log.Infof("Telegram notifier initialized with %d chat IDs", len(chatIDs))
			notifiers = append(notifiers, tn)
		}
	}

	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Warn("RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET not set, online payments will fail")
	}
	rzp := payment.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL, cfg.RazorpayTimeout())

	donationService := service.NewDonationService(stores.Donations, notifiers...)
	paymentService := service.NewPaymentService(rzp, rzp.KeySecret(), cfg.PaymentCurrency, donationService)
	adminService := service.NewAdminService(stores.Admins, cfg.BcryptCost)

	sessions := session.NewManager(cfg.SessionSecret, sessionStore, cfg.SessionTTL(), cfg.SessionCookieSecure)

	views, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(reg); err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.Origins())

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(handlers.Services{
		Donations: donationService,
		Payments:  paymentService,
		Admins:    adminService,
	}, sessions, views, cfg.ServicePort)
	h.SetRoutes(r, hub.HandleWebSocket, metrics.Handler(reg))

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.ServicePort,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s (%s, %s store)", SERVICE_NAME, server.Addr, cfg.AppEnv, cfg.DatabaseDriver)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
		return
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
