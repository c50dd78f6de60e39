package ports

import (
	"context"
	"io"

	"ytfetchbot/internal/core/domain"
)

// Extractor resolves video metadata and materializes media files
// through an external extraction tool.
type Extractor interface {
	// Resolve fetches metadata for the given URL without downloading
	// anything.
	Resolve(ctx context.Context, url string) (*domain.VideoMetadata, error)

	// Materialize downloads the video into destDir, merged into a
	// single container. The exact filename is up to the tool; callers
	// locate it afterwards through Storage.LocateArtifact.
	Materialize(ctx context.Context, url string, destDir string) error
}

// Transcoder re-encodes a media file to the fixed delivery profile.
type Transcoder interface {
	// Transcode writes the re-encoded file next to inputPath and
	// returns its path.
	Transcode(ctx context.Context, inputPath string) (string, error)
}

// StatusHandle identifies one mutable progress message in a chat.
type StatusHandle struct {
	ChatID    int64
	MessageID int
}

// Delivery publishes files and ephemeral status messages to the chat
// platform.
type Delivery interface {
	// CreateStatus posts the initial progress message as a reply to
	// the requesting message.
	CreateStatus(ctx context.Context, chatID int64, replyTo int, text string) (StatusHandle, error)

	// UpdateStatus edits the progress message in place.
	UpdateStatus(ctx context.Context, h StatusHandle, text string) error

	// DeleteStatus removes the progress message.
	DeleteStatus(ctx context.Context, h StatusHandle) error

	// SendVideo uploads the file with the given caption. meta supplies
	// duration and dimensions so the platform renders a proper inline
	// player; thumbPath may be empty.
	SendVideo(ctx context.Context, chatID int64, path, caption string, meta *domain.VideoMetadata, thumbPath string) error
}

// Storage manages the per-request artifact directories. Every path it
// hands out lives under one request's private directory, so
// concurrent requests never observe each other's files.
type Storage interface {
	// InitRequest creates the request's directory and returns its path.
	InitRequest(requestID string) (string, error)

	// LocateArtifact returns the newest regular file in the request's
	// directory.
	LocateArtifact(requestID string) (string, error)

	// CleanupRequest removes the request's directory and everything
	// in it.
	CleanupRequest(requestID string) error

	// RequestPath returns the filesystem path for a request ID.
	RequestPath(requestID string) string
}

// Fetcher streams a plain HTTP resource, such as a thumbnail image.
type Fetcher interface {
	// Fetch retrieves the resource. The caller must close the reader.
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}
