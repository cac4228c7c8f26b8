package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	tele "gopkg.in/telebot.v4"
)

func main() {
	if err := run(); err != nil {
		log.Fatal("[f] " + err.Error())
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("[w] no .env file loaded: " + err.Error())
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Updates arrive over the webhook endpoint, so no poller; handlers
	// run synchronously inside each HTTP request.
	settings := tele.Settings{
		Token:       cfg.BotToken,
		URL:         cfg.TelegramURL,
		Synchronous: true,
		OnError: func(err error, _ tele.Context) {
			log.Println("[e] handler error: " + err.Error())
		},
	}

	bot, err := tele.NewBot(settings)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	registry := NewCloudflareClient(cfg)
	prober := NewProber()
	wildcard := NewWildcardBot(bot, registry, prober, cfg.OwnerID)

	mux := http.NewServeMux()
	mux.Handle(cfg.WebhookPath, NewWebhookHandler(wildcard))
	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		log.Println("[l] listening on " + cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Println("[l] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
