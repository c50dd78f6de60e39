package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"ytfetchbot/internal/core/domain"
)

const (
	resolveTimeout = 2 * time.Minute

	// Prefer up to 1080p video plus best audio, merged into one file.
	downloadFormat = "bestvideo[height<=1080]+bestaudio/best[height<=1080]/best"
	outputTemplate = "source.%(ext)s"
)

// Extractor shells out to the local yt-dlp binary for metadata
// resolution and media download.
type Extractor struct {
	binaryPath      string
	downloadTimeout time.Duration
}

// New creates an Extractor. An empty binaryPath assumes yt-dlp is in
// PATH.
func New(binaryPath string, downloadTimeout time.Duration) *Extractor {
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}
	return &Extractor{binaryPath: binaryPath, downloadTimeout: downloadTimeout}
}

// videoInfo is the subset of yt-dlp's -J output we care about.
type videoInfo struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Thumbnail string  `json:"thumbnail"`
}

// Resolve fetches metadata without downloading, via yt-dlp -J.
func (e *Extractor) Resolve(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	out, err := e.run(ctx, "-J", "--no-playlist", "--no-warnings", url)
	if err != nil {
		return nil, err
	}
	return parseInfo(out)
}

// Materialize downloads the video into destDir as source.<ext>.
func (e *Extractor) Materialize(ctx context.Context, url string, destDir string) error {
	ctx, cancel := context.WithTimeout(ctx, e.downloadTimeout)
	defer cancel()

	_, err := e.run(ctx,
		"-f", downloadFormat,
		"--merge-output-format", "mp4",
		"--no-playlist",
		"--no-warnings",
		"-o", filepath.Join(destDir, outputTemplate),
		url,
	)
	return err
}

func (e *Extractor) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.binaryPath, args...)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}

func parseInfo(data []byte) (*domain.VideoMetadata, error) {
	var info videoInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("yt-dlp returned unparseable metadata: %w", err)
	}
	if info.Title == "" {
		return nil, fmt.Errorf("yt-dlp returned no metadata")
	}
	return &domain.VideoMetadata{
		Title:        info.Title,
		Duration:     int(info.Duration),
		Width:        info.Width,
		Height:       info.Height,
		ThumbnailURL: info.Thumbnail,
	}, nil
}
