package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"study-quiz/internal/auth"
	"study-quiz/internal/config"
	"study-quiz/internal/gemini"
	"study-quiz/internal/httpapi"
	"study-quiz/internal/quiz"
	"study-quiz/internal/quiz/sqlstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.EnableDevLogin {
		log.Printf("ENABLE_DEV_LOGIN is on; POST /auth/token issues a token for any username")
	}

	addr := flag.String("addr", cfg.HTTPAddr, "HTTP listen address")
	dsn := flag.String("dsn", cfg.DBDSN, "database DSN (driver from DB_DRIVER)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := sqlstore.Open(openCtx, sqlstore.Driver(cfg.DBDriver), *dsn)
	cancel()
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer store.Close()

	var generator quiz.Generator
	if cfg.GeminiAPIKey != "" {
		generator = gemini.NewClient(gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		}, &http.Client{Timeout: cfg.GeminiTimeout})
	} else {
		log.Printf("GEMINI_API_KEY not set; /api/quizzes/generate is disabled")
	}

	service := quiz.NewService(store, store, generator)
	server := &http.Server{
		Addr: *addr,
		Handler: httpapi.NewRouter(service, httpapi.RouterOptions{
			Auth:           auth.NewAuthService(cfg.AuthHMACSecret),
			EnableDevLogin: cfg.EnableDevLogin,
			CORSOrigins:    cfg.CORSOrigins,
			QuestionCount:  cfg.QuestionCount,
			RequestTimeout: cfg.GeminiTimeout + 15*time.Second,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("quiz-service listening on %s (db=%s)", *addr, cfg.DBDriver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
	log.Printf("quiz-service stopped")
}
