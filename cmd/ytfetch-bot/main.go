package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"ytfetchbot/internal/adapters/ffmpeg"
	"ytfetchbot/internal/adapters/httpfetch"
	"ytfetchbot/internal/adapters/localstorage"
	"ytfetchbot/internal/adapters/telegram"
	"ytfetchbot/internal/adapters/ytdlp"
	"ytfetchbot/internal/bot"
	"ytfetchbot/internal/config"
	"ytfetchbot/internal/core/ports"
	"ytfetchbot/internal/service"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, environment variables might be set manually
		log.Println("No .env file found")
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Configuration error: %v", err)
	}

	storage, err := localstorage.New(cfg.DataDir)
	if err != nil {
		logger.Fatalf("Failed to prepare storage: %v", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatalf("Failed to connect to Telegram: %v", err)
	}
	logger.Printf("Bot started: @%s", api.Self.UserName)

	extractor := ytdlp.New(cfg.YtDlpPath, cfg.DownloadTimeout)
	var transcoder ports.Transcoder
	if cfg.Transcode {
		transcoder = ffmpeg.New(cfg.FFmpegPath)
	}
	delivery := telegram.New(api)

	workflow := service.NewWorkflow(
		extractor,
		transcoder,
		delivery,
		storage,
		httpfetch.New(),
		cfg.MaxDuration,
		cfg.MaxFileSize,
		logger,
	)
	classifier := service.NewLinkClassifier()

	// Handle graceful shutdown: let in-flight requests reach their
	// cleanup point instead of killing them mid-write.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("Received interrupt signal, shutting down...")
		cancel()
	}()

	b := bot.New(api, cfg, delivery, classifier, workflow, logger)
	b.Run(ctx)

	logger.Println("Shutdown complete")
}
