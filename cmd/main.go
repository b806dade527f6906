package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"

	discordclient "pinbot/clients/discord"
	"pinbot/config"
	"pinbot/core/log"
	"pinbot/handlers"
	"pinbot/middleware"
	"pinbot/usecases/pin"
	"pinbot/utils"
)

type Options struct {
	Prefix   string `long:"prefix" description:"Command trigger character (overrides COMMAND_PREFIX)"`
	LogLevel string `long:"log-level" description:"Log level: debug, info, warn, error (overrides LOG_LEVEL)"`
	Port     string `long:"port" description:"Health endpoint port (overrides PORT)"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		log.Error("❌ Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	applyOptions(cfg, opts)

	if err := config.ValidateCommandPrefix(cfg.CommandPrefix); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.AlertConfig.WebhookURL,
		Environment: cfg.Environment,
		AppName:     "pinbot",
		LogsURL:     cfg.AlertConfig.LogsURL,
	})

	instanceLock, err := utils.NewInstanceLock(cfg.LockDir, cfg.DiscordConfig.BotToken)
	if err != nil {
		return err
	}
	if err := instanceLock.TryLock(); err != nil {
		return err
	}
	defer func() {
		if err := instanceLock.Unlock(); err != nil {
			log.Warn("⚠️ Failed to release instance lock", "error", err)
		}
	}()

	session, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	discordClient := discordclient.NewDiscordClient(session)
	pinUseCase := pin.NewPinUseCase(discordClient, cfg.CommandPrefix)
	discordHandler := handlers.NewDiscordEventsHandler(session, pinUseCase, alertMiddleware, cfg.WorkerPoolSize)

	if err := discordHandler.StartBot(); err != nil {
		return err
	}
	defer discordHandler.StopBot()

	router := mux.NewRouter()
	handlers.NewHealthHandler(discordHandler.IsConnected).SetupEndpoints(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(router),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func applyOptions(cfg *config.AppConfig, opts Options) {
	if opts.Prefix != "" {
		cfg.CommandPrefix = opts.Prefix
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Port != "" {
		cfg.Port = opts.Port
	}
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("✅ Health endpoint listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-stop:
		log.Info("🛑 Shutdown signal received, cleaning up...")
	case err := <-serverErr:
		return fmt.Errorf("health server failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("❌ Server shutdown error", "error", err)
		return err
	}

	log.Info("✅ Server stopped gracefully")
	return nil
}
