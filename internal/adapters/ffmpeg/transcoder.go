package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Transcoder re-encodes media to the fixed delivery profile: H.264
// video, AAC audio, moov atom up front so playback can start while
// the file streams.
type Transcoder struct {
	binaryPath string
}

// New creates a Transcoder. An empty binaryPath assumes ffmpeg is in
// PATH.
func New(binaryPath string) *Transcoder {
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}
	return &Transcoder{binaryPath: binaryPath}
}

// Transcode writes processed.mp4 next to inputPath and returns its
// path.
func (t *Transcoder) Transcode(ctx context.Context, inputPath string) (string, error) {
	outputPath := filepath.Join(filepath.Dir(inputPath), "processed.mp4")

	cmd := exec.CommandContext(ctx, t.binaryPath, transcodeArgs(inputPath, outputPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg failed: %w, stderr: %s", err, lastLines(stderr.String(), 4))
	}
	return outputPath, nil
}

func transcodeArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "26",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		outputPath,
	}
}

// ffmpeg prints the actual failure at the end of its output.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
