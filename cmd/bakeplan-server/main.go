package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakeplan/internal/catalog"
	"bakeplan/internal/config"
	"bakeplan/internal/database"
	"bakeplan/internal/metrics"
	"bakeplan/internal/model"
	"bakeplan/internal/plan"
	"bakeplan/internal/server"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	planRepo := plan.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	cat := catalog.Default()
	bridge := &model.Bridge{Local: model.NewLocalScorer(cat)}
	if cfg.ModelScriptPath != "" {
		scorer := model.NewExternalScorer(cfg.ModelRuntime, cfg.ModelScriptPath)
		scorer.Timeout = cfg.ModelTimeout
		bridge.External = scorer
		log.Printf("External model enabled: %s %s", cfg.ModelRuntime, cfg.ModelScriptPath)
	} else {
		log.Println("No external model configured, serving local plans")
	}

	mux := http.NewServeMux()
	server.New(bridge, planRepo, metricsStore).RegisterHandlers(mux)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	go func() {
		log.Printf("Planning server listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
