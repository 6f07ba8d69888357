package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okuzmin/gradstats/app/analysis"
	"github.com/okuzmin/gradstats/app/api"
	"github.com/okuzmin/gradstats/app/cfg"
	"github.com/okuzmin/gradstats/app/cleaner"
	"github.com/okuzmin/gradstats/app/config"
	"github.com/okuzmin/gradstats/app/database"
	"github.com/okuzmin/gradstats/app/ingest"
	"github.com/okuzmin/gradstats/app/scraper"
)

func main() {
	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting GradStats server", "version", appCfg.Version)

	// Database connection and schema
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatal("Failed to ensure database schema: ", err)
	}
	slog.Info("Database ready", "path", appCfg.DBPath)

	// Report configuration (falls back to defaults when the file is absent)
	report, err := config.NewLoader(appCfg.ReportFile).Load()
	if err != nil {
		log.Fatal("Failed to load report configuration: ", err)
	}
	slog.Info("Report configuration loaded", "term", report.Term)

	// Ingestion pipeline
	repo := database.NewApplicantRepository(db)

	var source ingest.RecordSource
	if appCfg.Scrape {
		source = scraper.NewScraper(appCfg.UserAgent,
			time.Duration(appCfg.ScrapeDelay)*time.Second, appCfg.MaxPages)
		slog.Info("Using GradCafe scraper source", "max_pages", appCfg.MaxPages)
	} else {
		source = ingest.NewFileSource(appCfg.DataFile)
		slog.Info("Using file source", "path", appCfg.DataFile)
	}

	processor := ingest.NewProcessor(source, cleaner.NewCleaner(), repo)
	engine := analysis.NewEngine(db, report)

	// Initialize HTTP server
	handler := api.NewHandler(engine, repo, processor)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		slog.Info("Endpoints available",
			"analysis", fmt.Sprintf("http://localhost:%s/analysis", appCfg.Port),
			"pull_data", fmt.Sprintf("http://localhost:%s/pull-data (POST)", appCfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("GradStats server shutdown complete")
}
