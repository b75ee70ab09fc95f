// Microvest - micro-investment platform
// Entry point for the API server
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/adiontis/investment-bridge/internal/config"
	"github.com/adiontis/investment-bridge/internal/handlers"
	"github.com/adiontis/investment-bridge/internal/middleware"
	"github.com/adiontis/investment-bridge/internal/services/auth"
	"github.com/adiontis/investment-bridge/internal/services/invest"
	"github.com/adiontis/investment-bridge/internal/services/notify"
	"github.com/adiontis/investment-bridge/internal/services/rating"
	"github.com/adiontis/investment-bridge/internal/services/settlement"
	"github.com/adiontis/investment-bridge/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := storage.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the business directory for local development
	if cfg.IsDevelopment() {
		if err := db.SeedDemoBusinesses(); err != nil {
			log.Fatalf("Failed to seed businesses: %v", err)
		}
	}

	// Initialize repositories
	userRepo := storage.NewUserRepository(db)
	sessionRepo := storage.NewSessionRepository(db)
	businessRepo := storage.NewBusinessRepository(db)
	investmentRepo := storage.NewInvestmentRepository(db)
	payoutRepo := storage.NewPayoutRepository(db)
	ratingRepo := storage.NewRatingRepository(db)
	notificationRepo := storage.NewNotificationRepository(db)
	settlementRepo := storage.NewSettlementRepository(db)

	// Initialize services
	authService := auth.NewService(cfg, userRepo, sessionRepo)
	notifier := notify.NewService(notificationRepo)
	investService := invest.NewService(userRepo, businessRepo, investmentRepo, notifier)
	ratingService := rating.NewService(businessRepo, payoutRepo)

	// Weekly settlement sweep
	processor := settlement.NewProcessor(
		settlementRepo,
		&settlement.SimulatedTransfer{Delay: cfg.TransferDelay},
		notifier,
	)
	scheduler, err := settlement.NewScheduler(processor, cfg.SettlementWeekday, cfg.SettlementHour, cfg.SettlementTimezone)
	if err != nil {
		log.Fatalf("Failed to create settlement scheduler: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go scheduler.Run(ctx)

	// Initialize handlers
	h := handlers.New(
		cfg,
		authService,
		investService,
		ratingService,
		scheduler,
		userRepo,
		businessRepo,
		investmentRepo,
		payoutRepo,
		ratingRepo,
		notificationRepo,
	)

	// Initialize auth middleware and rate limiters
	authMiddleware := middleware.NewAuth(authService)
	authLimiter := middleware.NewRateLimiter(10)
	investLimiter := middleware.NewRateLimiter(30)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.Handle("/api/auth/register", authLimiter.Limit(post(h.Register)))
	mux.Handle("/api/auth/login", authLimiter.Limit(post(h.Login)))
	mux.Handle("/api/auth/logout", authMiddleware.OptionalAuth(post(h.Logout)))
	mux.HandleFunc("/api/businesses", h.ListBusinesses)

	// Business detail and ratings; rating submission requires auth
	mux.Handle("/api/businesses/", authMiddleware.OptionalAuth(http.HandlerFunc(h.BusinessRoutes)))

	// Protected routes
	mux.Handle("/api/investments", authMiddleware.RequireAuth(investLimiter.Limit(post(h.CreateInvestment))))
	mux.Handle("/api/investments/portfolio", authMiddleware.RequireAuth(http.HandlerFunc(h.Portfolio)))
	mux.Handle("/api/payouts/history", authMiddleware.RequireAuth(http.HandlerFunc(h.PayoutHistory)))
	mux.Handle("/api/payouts/schedule", authMiddleware.RequireAuth(http.HandlerFunc(h.PayoutSchedule)))
	mux.Handle("/api/users/dashboard", authMiddleware.RequireAuth(http.HandlerFunc(h.Dashboard)))
	mux.Handle("/api/users/kyc", authMiddleware.RequireAuth(post(h.VerifyKYC)))
	mux.Handle("/api/users/notifications", authMiddleware.RequireAuth(http.HandlerFunc(h.Notifications)))
	mux.Handle("/api/notifications/", authMiddleware.RequireAuth(http.HandlerFunc(h.NotificationRoutes)))

	// Static frontend
	mux.Handle("/", http.FileServer(http.Dir(staticDir())))

	// Apply global middleware
	handler := middleware.Chain(
		mux,
		middleware.Recover,
		middleware.SecurityHeaders,
		middleware.Logger,
	)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Microvest server starting on http://localhost%s", addr)
	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Next settlement sweep: %s", scheduler.NextFire(time.Now()))

	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}

func staticDir() string {
	if _, err := os.Stat("web/static"); err == nil {
		return "web/static"
	}

	// Try from executable location
	exe, _ := os.Executable()
	dir := filepath.Join(filepath.Dir(exe), "web", "static")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}

	return "web/static"
}

// post restricts a handler to POST requests
func post(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	})
}
