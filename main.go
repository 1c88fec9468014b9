package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/api"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/cache"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/config"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/middleware"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/migrate"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/repo"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
	"github.com/vishnu-R2005/Doctor-appointment-system/internal/seed"
)

func main() {
	cfg := config.Load()

	var (
		pool  *pgxpool.Pool
		store scheduling.Store
	)
	if cfg.DatabaseURL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("config postgres: %v", err)
		}
		if cfg.DBMaxConns > 0 {
			poolConfig.MaxConns = int32(cfg.DBMaxConns)
		}
		if cfg.DBMinConns > 0 {
			poolConfig.MinConns = int32(cfg.DBMinConns)
		}
		if cfg.DBMaxConnLifetime > 0 {
			poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
		}
		pool, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("ping postgres: %v", err)
		}
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("gorm postgres: %v", err)
		}
		if err := migrate.Run(context.Background(), db, "migrations"); err != nil {
			log.Fatalf("migrations: %v", err)
		}
		if err := seed.Run(context.Background(), db); err != nil {
			log.Printf("[seed] skipped: %v", err)
		}
		store = repo.New(pool, db)
	} else {
		log.Printf("[store] DATABASE_URL empty, using in-memory store (data is lost on restart)")
		store = scheduling.NewMemoryStore()
	}

	svc := scheduling.NewService(store)
	if pool == nil {
		seed.Demo(context.Background(), svc)
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if pool != nil {
			if err := pool.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"db unhealthy"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	h := api.New(svc, cfg, cache.New(30*time.Second))

	authLimiter := middleware.NewRateLimiter(cfg.AuthRateRPS, cfg.AuthRateBurst)
	limited := middleware.Limit(authLimiter)

	public := r.PathPrefix("/api").Subrouter()
	public.Handle("/auth/register", limited(http.HandlerFunc(h.Register))).Methods(http.MethodPost)
	public.Handle("/auth/login", limited(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	public.HandleFunc("/doctors", h.Doctors).Methods(http.MethodGet)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuthMiddleware(cfg.JWTSecret))
	protected.HandleFunc("/me", h.Me).Methods(http.MethodGet)

	patient := middleware.RequireRole(string(scheduling.RolePatient))
	protected.Handle("/appointments", patient(http.HandlerFunc(h.Book))).Methods(http.MethodPost)
	protected.Handle("/me/appointments", patient(http.HandlerFunc(h.MyAppointments))).Methods(http.MethodGet)
	protected.Handle("/appointments/{id}/cancel", patient(http.HandlerFunc(h.CancelAppointment))).Methods(http.MethodPost)
	protected.Handle("/availability", patient(http.HandlerFunc(h.Availability))).Methods(http.MethodGet)

	doctor := middleware.RequireRole(string(scheduling.RoleDoctor))
	protected.Handle("/doctor/appointments", doctor(http.HandlerFunc(h.DoctorAppointments))).Methods(http.MethodGet)
	protected.Handle("/appointments/{id}/approve", doctor(http.HandlerFunc(h.Approve))).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}/reject", doctor(http.HandlerFunc(h.Reject))).Methods(http.MethodPost)

	admin := middleware.RequireRole(string(scheduling.RoleAdmin))
	protected.Handle("/admin/dashboard", admin(http.HandlerFunc(h.Dashboard))).Methods(http.MethodGet)
	protected.Handle("/admin/users/{role}", admin(http.HandlerFunc(h.UsersByRole))).Methods(http.MethodGet)

	chain := middleware.Recover(middleware.RequestID(middleware.Timeout(cfg.RequestTimeoutSec)(middleware.CORS(cfg.CORSOrigins)(middleware.Gzip(r)))))
	logged := handlers.CombinedLoggingHandler(os.Stdout, chain)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      logged,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("backend stopped")
}
