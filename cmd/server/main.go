package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"baggage-claim-service/internal/domain/repository"
	"baggage-claim-service/internal/infrastructure/config"
	"baggage-claim-service/internal/infrastructure/persistence"
	"baggage-claim-service/internal/infrastructure/router"
	"baggage-claim-service/internal/interface/api"
	journalRepo "baggage-claim-service/internal/interface/repository"
	"baggage-claim-service/internal/usecase"
	"baggage-claim-service/pkg/logger"
	"baggage-claim-service/pkg/metrics"
	"baggage-claim-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Baggage Claim Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
	handler := usecase.NewBaggageHandler(log, m)

	// Set up monitors
	monitors := router.NewMonitorRouter(log)
	for _, name := range cfg.MonitorNames {
		monitor, err := usecase.NewArrivalsMonitor(name, os.Stdout,
			usecase.WithLogger(log),
			usecase.WithMetrics(m),
		)
		if err != nil {
			log.Fatal("Failed to create monitor", "monitor", name, "error", err)
		}
		if err := monitors.Register(monitor); err != nil {
			log.Fatal("Failed to register monitor", "monitor", name, "error", err)
		}
	}
	log.Info("Monitors ready", "monitors", monitors.Names())

	// Set up the journal
	journal, closeJournal := openJournal(ctx, cfg, log)
	defer closeJournal()
	if journal != nil {
		observer := usecase.NewJournalObserver(ctx, "journal", journal, cfg.JournalWriteTimeout, log, m)
		if _, err := handler.Subscribe(observer); err != nil {
			log.Fatal("Failed to subscribe journal", "error", err)
		}
	}

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	if journal != nil {
		mux.Handle("/journal", api.NewJournalHandler(journal, log))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Replay the feed
	feed, closeFeed, err := openFeed(cfg.FeedFile)
	if err != nil {
		log.Fatal("Failed to open feed", "file", cfg.FeedFile, "error", err)
	}
	orchestrator := usecase.NewFeedOrchestrator(handler, monitors, utils.NewFeedParser(log), log)
	feedErr := orchestrator.ProcessFeed(ctx, feed)
	if feedErr != nil {
		log.Error("Feed replay failed", "error", feedErr)
	}
	closeFeed()

	if cfg.Serve {
		// Wait for interrupt signal
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		log.Info("Received signal", "signal", sig)
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("Baggage Claim Service stopped")
	if feedErr != nil {
		closeJournal()
		log.Sync()
		os.Exit(1)
	}
}

// openFeed returns the configured feed file, or the built-in walkthrough
func openFeed(path string) (io.Reader, func(), error) {
	if path == "" {
		return strings.NewReader(utils.DefaultFeed), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// openJournal connects the configured journal backend. It returns a nil
// repository when journaling is disabled.
func openJournal(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.BaggageJournalRepository, func()) {
	switch cfg.JournalDriver {
	case config.JournalMongo:
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, persistence.MongoSettings{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDB,
			Username: cfg.MongoUser,
			Password: cfg.MongoPassword,
		})
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		repo, err := journalRepo.NewMongoBaggageJournalRepository(ctx, db)
		if err != nil {
			log.Fatal("Failed to prepare journal collection", "error", err)
		}
		return repo, func() {
			// Disconnect from MongoDB
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		}

	case config.JournalPostgres:
		log.Info("Connecting to PostgreSQL")
		gormDB, err := persistence.NewPostgresDB(ctx, cfg.PostgresURI)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		repo := journalRepo.NewGormBaggageJournalRepository(gormDB)
		if err := repo.Migrate(ctx); err != nil {
			log.Fatal("Failed to migrate journal table", "error", err)
		}
		return repo, func() {
			if err := persistence.ClosePostgresDB(gormDB); err != nil {
				log.Error("PostgreSQL close error", "error", err)
			}
		}

	default:
		return nil, func() {}
	}
}
