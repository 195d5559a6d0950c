package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/user/fito-garden/config"
	"github.com/user/fito-garden/internal/chat"
	"github.com/user/fito-garden/internal/game"
	"github.com/user/fito-garden/internal/httpapi"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "./config/config.json", "Path to configuration file")
	flag.Parse()

	// Set up logger
	logger := setupLogger()
	defer logger.Sync()

	// Load .env if present; the chat API key never lives in config.json
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", zap.Error(err))
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize game store
	storage := game.NewDocumentStorage(cfg.Storage.DocumentPath)
	store := game.NewStore(storage, logger)

	// Initialize chat proxy when an API key is available
	var chatProxy http.Handler
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		streamer := chat.NewOpenAIStreamer(apiKey, cfg.Chat.BaseURL, cfg.Chat.Model, cfg.Chat.MaxTokens, cfg.Chat.Temperature)
		chatProxy = chat.NewProxy(streamer, cfg.Chat.TurnCap, logger)
		logger.Info("Chat assistant enabled", zap.String("model", cfg.Chat.Model))
	} else {
		logger.Warn("OPENAI_API_KEY not set, chat assistant disabled")
	}

	// Set up HTTP server
	joinQR := httpapi.NewJoinQR(cfg.Game.VideoCallBaseURL)
	handler := httpapi.NewHandler(store, chatProxy, joinQR, logger)
	router := httpapi.NewRouter(handler)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start HTTP server
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	waitForShutdown(logger)
}

func setupLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

func waitForShutdown(logger *zap.Logger) {
	// Set up channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	// Perform cleanup
	logger.Info("Shutting down")
}
