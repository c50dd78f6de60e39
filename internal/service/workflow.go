package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"ytfetchbot/internal/core/domain"
	"ytfetchbot/internal/core/ports"
)

const (
	statusStarting    = "📥 Starting download..."
	statusDownloading = "⏳ Downloading..."
	statusProcessing  = "🎞 Processing..."
	statusUploading   = "📤 Uploading to Telegram..."
)

// Workflow drives one request from link to delivered video: resolve
// metadata, gate on duration, download, optionally re-encode, gate on
// size, upload, and remove every artifact the request created on the
// way — on success, rejection and failure alike.
type Workflow struct {
	extractor   ports.Extractor
	transcoder  ports.Transcoder // nil disables the re-encode stage
	delivery    ports.Delivery
	storage     ports.Storage
	fetcher     ports.Fetcher // nil disables thumbnail fetching
	maxDuration time.Duration
	maxFileSize int64
	logger      *log.Logger
}

// NewWorkflow creates a Workflow.
func NewWorkflow(
	extractor ports.Extractor,
	transcoder ports.Transcoder,
	delivery ports.Delivery,
	storage ports.Storage,
	fetcher ports.Fetcher,
	maxDuration time.Duration,
	maxFileSize int64,
	logger *log.Logger,
) *Workflow {
	return &Workflow{
		extractor:   extractor,
		transcoder:  transcoder,
		delivery:    delivery,
		storage:     storage,
		fetcher:     fetcher,
		maxDuration: maxDuration,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Process runs the workflow for one request and returns its terminal
// outcome. The request's storage directory is removed before Process
// returns, whatever the outcome. The status message is deleted on
// success and left showing the final reason otherwise.
func (w *Workflow) Process(ctx context.Context, req domain.Request) domain.Result {
	w.logger.Printf("[REQ %s] %s from chat %d", req.ID, req.URL, req.ChatID)

	status, err := w.delivery.CreateStatus(ctx, req.ChatID, req.MessageID, statusStarting)
	if err != nil {
		w.logger.Printf("[REQ %s] ERROR: %v", req.ID, err)
		return domain.Result{
			Outcome: domain.OutcomeFailed,
			Reason:  "could not reach the chat",
			Err:     &domain.DeliveryError{Err: err},
		}
	}

	res := w.run(ctx, req, status)

	if err := w.storage.CleanupRequest(req.ID); err != nil {
		w.logger.Printf("[REQ %s] cleanup: %v", req.ID, err)
	}

	switch res.Outcome {
	case domain.OutcomeDelivered:
		if err := w.delivery.DeleteStatus(ctx, status); err != nil {
			w.logger.Printf("[REQ %s] delete status: %v", req.ID, err)
		}
		w.logger.Printf("[REQ %s] delivered", req.ID)
	case domain.OutcomeRejected:
		w.updateStatus(ctx, req, status, "🚫 "+res.Reason)
		w.logger.Printf("[REQ %s] rejected: %s", req.ID, res.Reason)
	case domain.OutcomeFailed:
		w.updateStatus(ctx, req, status, "❌ Error: "+res.Reason)
	}
	return res
}

// run executes the staged pipeline. Each stage gates the next; the
// first rejection or failure is terminal.
func (w *Workflow) run(ctx context.Context, req domain.Request, status ports.StatusHandle) domain.Result {
	meta, err := w.extractor.Resolve(ctx, req.URL)
	if err != nil {
		return w.fail(ctx, req, "could not fetch video info", &domain.ExtractionError{Err: err})
	}
	w.logger.Printf("[REQ %s] resolved %q (%ds)", req.ID, meta.Title, meta.Duration)

	// The duration gate runs before the download so an over-long video
	// never costs us its bandwidth.
	if maxSec := int(w.maxDuration / time.Second); meta.Duration > maxSec {
		return reject(fmt.Sprintf("video too long (%ds, limit is %ds)", meta.Duration, maxSec))
	}

	dir, err := w.storage.InitRequest(req.ID)
	if err != nil {
		return w.fail(ctx, req, "internal storage error", err)
	}

	w.updateStatus(ctx, req, status, statusDownloading)
	if err := w.extractor.Materialize(ctx, req.URL, dir); err != nil {
		return w.fail(ctx, req, "download failed", &domain.ExtractionError{Err: err})
	}

	artifact, err := w.storage.LocateArtifact(req.ID)
	if err != nil {
		return w.fail(ctx, req, "download produced no file", &domain.ExtractionError{Err: err})
	}

	if w.transcoder != nil {
		w.updateStatus(ctx, req, status, statusProcessing)
		processed, err := w.transcoder.Transcode(ctx, artifact)
		if err != nil {
			return w.fail(ctx, req, "re-encoding failed", &domain.TransformError{Err: err})
		}
		artifact = processed
	}

	info, err := os.Stat(artifact)
	if err != nil {
		return w.fail(ctx, req, "internal storage error", err)
	}
	if info.Size() > w.maxFileSize {
		return reject(fmt.Sprintf("file too large (%d MB, limit is %d MB)",
			info.Size()>>20, w.maxFileSize>>20))
	}

	thumbPath := w.fetchThumbnail(ctx, req, meta.ThumbnailURL)

	w.updateStatus(ctx, req, status, statusUploading)
	if err := w.delivery.SendVideo(ctx, req.ChatID, artifact, "✅ "+meta.Title, meta, thumbPath); err != nil {
		return w.fail(ctx, req, "upload failed", &domain.DeliveryError{Err: err})
	}

	return domain.Result{Outcome: domain.OutcomeDelivered}
}

// fetchThumbnail saves the video's thumbnail into the request
// directory. Thumbnails are cosmetic; any failure here only logs.
func (w *Workflow) fetchThumbnail(ctx context.Context, req domain.Request, url string) string {
	if w.fetcher == nil || url == "" {
		return ""
	}

	body, err := w.fetcher.Fetch(ctx, url)
	if err != nil {
		w.logger.Printf("[REQ %s] thumbnail fetch: %v", req.ID, err)
		return ""
	}
	defer body.Close()

	path := filepath.Join(w.storage.RequestPath(req.ID), "thumb.jpg")
	f, err := os.Create(path)
	if err != nil {
		w.logger.Printf("[REQ %s] thumbnail save: %v", req.ID, err)
		return ""
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		w.logger.Printf("[REQ %s] thumbnail save: %v", req.ID, err)
		return ""
	}
	return path
}

func (w *Workflow) updateStatus(ctx context.Context, req domain.Request, h ports.StatusHandle, text string) {
	if err := w.delivery.UpdateStatus(ctx, h, text); err != nil {
		w.logger.Printf("[REQ %s] update status: %v", req.ID, err)
	}
}

func (w *Workflow) fail(ctx context.Context, req domain.Request, reason string, err error) domain.Result {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		reason = "request timed out"
	}
	w.logger.Printf("[REQ %s] ERROR: %s: %v", req.ID, reason, err)
	return domain.Result{Outcome: domain.OutcomeFailed, Reason: reason, Err: err}
}

func reject(reason string) domain.Result {
	return domain.Result{Outcome: domain.OutcomeRejected, Reason: reason}
}
