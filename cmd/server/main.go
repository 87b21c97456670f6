package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"avis-insight/internal/auth"
	"avis-insight/internal/config"
	"avis-insight/internal/history"
	"avis-insight/internal/notify"
	"avis-insight/internal/scheduler"
	"avis-insight/internal/sentiment"
	"avis-insight/internal/stats"
	"avis-insight/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	store, err := history.Open(cfg.HistoryFilePath)
	if err != nil {
		log.Fatalf("failed to open review history: %v", err)
	}
	if n := store.SkippedRows(); n > 0 {
		log.Printf("⚠️ Skipped %d malformed row(s) in %s", n, cfg.HistoryFilePath)
	}

	// Missing or unreadable model artifacts abort before serving.
	classifier, err := sentiment.NewFactory(cfg).CreateClassifier(cfg.ClassifierProvider)
	if err != nil {
		log.Fatalf("failed to create classifier: %v", err)
	}

	authSvc := auth.New(cfg.AdminUsername, cfg.AdminPassword)
	sessions := auth.NewSessionManager(cfg.SessionTTL)

	var notifier notify.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramAdminChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			log.Printf("failed to init telegram notifier: %v", err)
		} else {
			notifier = tg
		}
	}

	if notifier != nil {
		sched := scheduler.New(cfg.DailyReportCron)
		sched.SetReportFunction(func(ctx context.Context) error {
			return notifier.Send("📊 Rapport quotidien\n" + stats.Project(store.All()).Summary())
		})
		if err := sched.Start(); err != nil {
			log.Printf("failed to start scheduler: %v", err)
		} else {
			defer sched.Stop()
		}
	}

	srv := web.New(store, classifier, authSvc, sessions, notifier, cfg.Port)

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")
	if err := srv.Stop(); err != nil {
		log.Printf("failed to stop server: %v", err)
	}
}
