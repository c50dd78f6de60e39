package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ytfetchbot/internal/core/domain"
	"ytfetchbot/internal/core/ports"
)

// Delivery implements ports.Delivery on top of the Telegram Bot API.
type Delivery struct {
	bot *tgbotapi.BotAPI
}

// New wraps an authenticated bot client.
func New(bot *tgbotapi.BotAPI) *Delivery {
	return &Delivery{bot: bot}
}

// CreateStatus posts the initial progress message as a reply.
func (d *Delivery) CreateStatus(ctx context.Context, chatID int64, replyTo int, text string) (ports.StatusHandle, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo

	sent, err := d.bot.Send(msg)
	if err != nil {
		return ports.StatusHandle{}, fmt.Errorf("failed to send status message: %w", err)
	}
	return ports.StatusHandle{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// UpdateStatus edits the progress message in place.
func (d *Delivery) UpdateStatus(ctx context.Context, h ports.StatusHandle, text string) error {
	edit := tgbotapi.NewEditMessageText(h.ChatID, h.MessageID, text)
	if _, err := d.bot.Request(edit); err != nil {
		return fmt.Errorf("failed to edit status message: %w", err)
	}
	return nil
}

// DeleteStatus removes the progress message.
func (d *Delivery) DeleteStatus(ctx context.Context, h ports.StatusHandle) error {
	if _, err := d.bot.Request(tgbotapi.NewDeleteMessage(h.ChatID, h.MessageID)); err != nil {
		return fmt.Errorf("failed to delete status message: %w", err)
	}
	return nil
}

// SendVideo uploads the file as a streamable video message. The
// sendVideo call is built by hand because VideoConfig does not expose
// the width and height parameters the inline player needs.
func (d *Delivery) SendVideo(ctx context.Context, chatID int64, path, caption string, meta *domain.VideoMetadata, thumbPath string) error {
	params := tgbotapi.Params{}
	params.AddNonZero64("chat_id", chatID)
	params.AddNonEmpty("caption", caption)
	params.AddBool("supports_streaming", true)
	if meta != nil {
		params.AddNonZero("duration", meta.Duration)
		params.AddNonZero("width", meta.Width)
		params.AddNonZero("height", meta.Height)
	}

	files := []tgbotapi.RequestFile{
		{Name: "video", Data: tgbotapi.FilePath(path)},
	}
	if thumbPath != "" {
		files = append(files, tgbotapi.RequestFile{Name: "thumb", Data: tgbotapi.FilePath(thumbPath)})
	}

	if _, err := d.bot.UploadFiles("sendVideo", params, files); err != nil {
		return fmt.Errorf("failed to upload video: %w", err)
	}
	return nil
}

// Reply sends a plain text message outside any workflow, used for
// help and guidance replies. replyTo may be 0.
func (d *Delivery) Reply(chatID int64, replyTo int, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	_, err := d.bot.Send(msg)
	return err
}
