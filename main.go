package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"octofit-tracker/internal/config"
	"octofit-tracker/internal/database"
	"octofit-tracker/internal/handlers"
	"octofit-tracker/internal/leaderboard"
	"octofit-tracker/internal/metrics"
	"octofit-tracker/internal/middleware"
	"octofit-tracker/internal/seed"
)

func main() {
	populate := flag.Bool("populate", false, "Reset the database and populate it with sample data")
	flag.Parse()

	if *populate {
		runPopulate()
		return
	}

	runServer()
}

func runPopulate() {
	// Quiet structured logging for the CLI; the summary goes to stdout
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	engine := leaderboard.NewEngine(db, leaderboard.TiePolicy(cfg.RankTiePolicy))

	color.Cyan("Populating %s with sample data...", cfg.DatabasePath)

	summary, err := seed.Run(db, engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Population failed: %v\n", err)
		os.Exit(1)
	}

	color.Green("\n=== Database Population Complete ===")
	fmt.Printf("Teams created: %d\n", summary.Teams)
	fmt.Printf("Users created: %d\n", summary.Users)
	fmt.Printf("Activities created: %d\n", summary.Activities)
	fmt.Printf("Leaderboard entries: %d\n", summary.Entries)
	fmt.Printf("Workouts created: %d\n", summary.Workouts)
	color.Green("\nDatabase successfully populated with superhero test data!")
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting octofit-tracker server",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DatabasePath,
		"tie_policy", cfg.RankTiePolicy,
		"log_level", cfg.LogLevel)

	// Open database
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("Database opened successfully")

	// Create leaderboard engine
	engine := leaderboard.NewEngine(db, leaderboard.TiePolicy(cfg.RankTiePolicy))

	// Create handlers
	usersHandler := handlers.NewUsersHandler(db)
	teamsHandler := handlers.NewTeamsHandler(db)
	activitiesHandler := handlers.NewActivitiesHandler(db, engine)
	leaderboardHandler := handlers.NewLeaderboardHandler(db, engine)
	workoutsHandler := handlers.NewWorkoutsHandler(db)

	// Set up HTTP routes
	r := mux.NewRouter()
	r.StrictSlash(true)

	r.Handle("/api/", middleware.WrapHandler(metrics.EndpointRoot, handlers.HandleAPIRoot)).Methods(http.MethodGet)

	registerCollection(r, "/api/users", metrics.EndpointUsers, collection{
		list:   usersHandler.HandleList,
		create: usersHandler.HandleCreate,
		get:    usersHandler.HandleGet,
		update: usersHandler.HandleUpdate,
		delete: usersHandler.HandleDelete,
	})
	registerCollection(r, "/api/teams", metrics.EndpointTeams, collection{
		list:   teamsHandler.HandleList,
		create: teamsHandler.HandleCreate,
		get:    teamsHandler.HandleGet,
		update: teamsHandler.HandleUpdate,
		delete: teamsHandler.HandleDelete,
	})
	registerCollection(r, "/api/activities", metrics.EndpointActivities, collection{
		list:   activitiesHandler.HandleList,
		create: activitiesHandler.HandleCreate,
		get:    activitiesHandler.HandleGet,
		update: activitiesHandler.HandleUpdate,
		delete: activitiesHandler.HandleDelete,
	})
	registerCollection(r, "/api/leaderboard", metrics.EndpointLeaderboard, collection{
		list:   leaderboardHandler.HandleList,
		create: leaderboardHandler.HandleCreate,
		get:    leaderboardHandler.HandleGet,
		update: leaderboardHandler.HandleUpdate,
		delete: leaderboardHandler.HandleDelete,
	})
	registerCollection(r, "/api/workouts", metrics.EndpointWorkouts, collection{
		list:   workoutsHandler.HandleList,
		create: workoutsHandler.HandleCreate,
		get:    workoutsHandler.HandleGet,
		update: workoutsHandler.HandleUpdate,
		delete: workoutsHandler.HandleDelete,
	})

	// Health check endpoint
	r.Handle("/health", middleware.WrapHandler(metrics.EndpointHealth, func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})).Methods(http.MethodGet)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	collectorCtx, collectorCancel := context.WithCancel(context.Background())
	defer collectorCancel()

	// Start entity count collector if metrics are enabled
	if cfg.MetricsEnabled {
		go func() {
			logger.Info("Starting entity count collector")
			metrics.StartEntityCountCollector(collectorCtx, db, 15*time.Second)
		}()
	}

	// Start metrics server if enabled
	var metricsServer *http.Server
	if cfg.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())

		metricsAddr := fmt.Sprintf("%s:%d", cfg.MetricsHost, cfg.MetricsPort)
		metricsServer = &http.Server{
			Addr:    metricsAddr,
			Handler: metricsMux,
		}

		go func() {
			logger.Info("Metrics server listening", "addr", metricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// Start HTTP server in background
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down gracefully...")

	collectorCancel()

	// Shutdown HTTP servers with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown failed", "error", err)
		}
	}

	logger.Info("Server stopped")
}

// collection bundles the five REST handlers for one entity type
type collection struct {
	list   http.HandlerFunc
	create http.HandlerFunc
	get    http.HandlerFunc
	update http.HandlerFunc
	delete http.HandlerFunc
}

func registerCollection(r *mux.Router, path, endpoint string, c collection) {
	r.Handle(path, middleware.WrapHandler(endpoint, c.list)).Methods(http.MethodGet)
	r.Handle(path, middleware.WrapHandler(endpoint, c.create)).Methods(http.MethodPost)
	r.Handle(path+"/{id}", middleware.WrapHandler(endpoint, c.get)).Methods(http.MethodGet)
	r.Handle(path+"/{id}", middleware.WrapHandler(endpoint, c.update)).Methods(http.MethodPut)
	r.Handle(path+"/{id}", middleware.WrapHandler(endpoint, c.delete)).Methods(http.MethodDelete)
}
