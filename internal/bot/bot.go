package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"ytfetchbot/internal/adapters/telegram"
	"ytfetchbot/internal/config"
	"ytfetchbot/internal/core/domain"
	"ytfetchbot/internal/service"
)

const updateTimeout = 60 // long-poll seconds

// Bot wires the Telegram update stream to the download workflow.
// Each recognized link runs in its own goroutine; artifacts are
// partitioned per request, so overlapping downloads never collide.
type Bot struct {
	api        *tgbotapi.BotAPI
	delivery   *telegram.Delivery
	classifier *service.LinkClassifier
	workflow   *service.Workflow
	cfg        *config.Config
	router     *Router
	logger     *log.Logger
	inflight   sync.WaitGroup
}

// New creates a Bot with its route table: commands first, then
// recognized video links, then the guidance fallback.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	delivery *telegram.Delivery,
	classifier *service.LinkClassifier,
	workflow *service.Workflow,
	logger *log.Logger,
) *Bot {
	b := &Bot{
		api:        api,
		delivery:   delivery,
		classifier: classifier,
		workflow:   workflow,
		cfg:        cfg,
		logger:     logger,
	}
	b.router = NewRouter([]Route{
		{Match: isCommand("start", "help"), Handle: b.handleHelp},
		{Match: func(msg *tgbotapi.Message) bool { return classifier.Classify(msg.Text) }, Handle: b.handleLink},
	}, b.handleOther)
	return b
}

// Run consumes updates until ctx is cancelled, then waits for
// in-flight requests to finish their cleanup before returning.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Println("Waiting for YouTube links...")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.inflight.Wait()
			return
		case update, ok := <-updates:
			if !ok {
				b.inflight.Wait()
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.router.Dispatch(ctx, update.Message)
		}
	}
}

// handleLink launches the workflow for one recognized video link.
func (b *Bot) handleLink(ctx context.Context, msg *tgbotapi.Message) {
	req := domain.Request{
		ID:         uuid.New().String(),
		URL:        strings.TrimSpace(msg.Text),
		ChatID:     msg.Chat.ID,
		MessageID:  msg.MessageID,
		ReceivedAt: time.Now().UTC(),
	}

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		reqCtx, cancel := context.WithTimeout(ctx, b.cfg.RequestTimeout)
		defer cancel()
		b.workflow.Process(reqCtx, req)
	}()
}

func (b *Bot) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	if err := b.delivery.Reply(msg.Chat.ID, 0, b.helpText()); err != nil {
		b.logger.Printf("help reply: %v", err)
	}
}

func (b *Bot) handleOther(ctx context.Context, msg *tgbotapi.Message) {
	if err := b.delivery.Reply(msg.Chat.ID, msg.MessageID, "Send me a YouTube link to download the video! 🎥"); err != nil {
		b.logger.Printf("guidance reply: %v", err)
	}
}

func (b *Bot) helpText() string {
	return fmt.Sprintf(`🎥 Send me a YouTube link and I will download the video and upload it back here.

Limits:
• videos up to %d minutes
• files up to %d MB

Commands:
/help — show this message`,
		int(b.cfg.MaxDuration.Minutes()), b.cfg.MaxFileSize>>20)
}
