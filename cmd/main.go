package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	platformclient "deploybot/clients/platform"
	telegramclient "deploybot/clients/telegram"
	vercelclient "deploybot/clients/vercel"
	"deploybot/config"
	"deploybot/handlers"
	"deploybot/middleware"
	"deploybot/services/commands"
	"deploybot/services/configure"
	"deploybot/services/dedup"
	"deploybot/services/deployments"
	"deploybot/services/notifier"
)

const (
	notifierMaxAttempts = 3
	seenMessagesCap     = 10000
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize external API clients
	telegramClient := telegramclient.NewTelegramClient(cfg.TelegramConfig.BotToken)
	vercelClient := vercelclient.NewVercelClient(
		cfg.VercelConfig.APIToken,
		cfg.VercelConfig.TargetProject,
		cfg.VercelConfig.GitHubRemote,
		cfg.VercelConfig.GitHubOrg,
		cfg.VercelConfig.GitHubProject,
	)
	platformClient := platformclient.NewPlatformClient(
		cfg.PlatformConfig.ProductionURL,
		cfg.PlatformConfig.ServiceEmail,
		cfg.PlatformConfig.ServicePassword,
	)

	// Initialize services
	notifierService := notifier.NewNotifierService(telegramClient, notifierMaxAttempts)
	dedupService := dedup.NewDedupService(seenMessagesCap)
	commandsService := commands.NewCommandsService()
	deploymentsService := deployments.NewDeploymentsService(vercelClient, notifierService)
	configureService := configure.NewConfigureService(platformClient, notifierService)

	telegramHandler := handlers.NewTelegramWebhookHandler(
		cfg.TelegramConfig.AllowedChatID,
		dedupService,
		notifierService,
		commandsService,
		deploymentsService,
		configureService,
	)

	// Operator alerts go to the same authorized chat the bot serves
	alertMiddleware := middleware.NewErrorAlertMiddleware(
		notifierService,
		cfg.TelegramConfig.AllowedChatID,
		cfg.Environment,
	)

	router := mux.NewRouter()
	telegramHandler.SetupEndpoints(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
