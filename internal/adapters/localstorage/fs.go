package localstorage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LocalStorage implements ports.Storage on the local filesystem.
// Each request gets its own directory under <base>/requests/<id>, so
// artifact lookup and cleanup never touch another request's files.
type LocalStorage struct {
	BaseDir string
}

// New creates the base directory if needed and returns the storage.
func New(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "requests"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", baseDir, err)
	}
	return &LocalStorage{BaseDir: baseDir}, nil
}

// InitRequest creates the request's directory.
func (s *LocalStorage) InitRequest(requestID string) (string, error) {
	dir := s.RequestPath(requestID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create request directory %s: %w", dir, err)
	}
	return dir, nil
}

// LocateArtifact returns the newest regular file in the request's
// directory. The directory belongs to exactly one request, so the
// newest file is the one the extractor just wrote.
func (s *LocalStorage) LocateArtifact(requestID string) (string, error) {
	dir := s.RequestPath(requestID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read request directory %s: %w", dir, err)
	}

	var latest string
	var latestTime time.Time
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(dir, e.Name())
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no artifact found in %s", dir)
	}
	return latest, nil
}

// CleanupRequest removes the request's directory and all artifacts
// in it. Removing a directory that was never created is not an error.
func (s *LocalStorage) CleanupRequest(requestID string) error {
	return os.RemoveAll(s.RequestPath(requestID))
}

// RequestPath returns the directory for a request ID.
func (s *LocalStorage) RequestPath(requestID string) string {
	return filepath.Join(s.BaseDir, "requests", requestID)
}
