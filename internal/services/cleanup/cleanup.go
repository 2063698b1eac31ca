// Package cleanup sweeps abandoned working files out of the upload
// directory. Sessions that were never rendered leave a source video, a
// session JSON and sometimes a temp wav behind; this service reclaims them
// once they go stale. Rendered final videos are never touched.
package cleanup

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Service handles cleanup of stale working files
type Service struct {
	uploadDir       string
	maxAge          time.Duration
	cleanupInterval time.Duration
	cancel          context.CancelFunc
}

// NewService creates a new cleanup service
func NewService(uploadDir string, maxAge, cleanupInterval time.Duration) *Service {
	return &Service{
		uploadDir:       uploadDir,
		maxAge:          maxAge,
		cleanupInterval: cleanupInterval,
	}
}

// Start begins the cleanup service
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// Run initial sweep
	s.sweep()

	go func() {
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-ctx.Done():
				log.Println("[INFO] Cleanup service stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Cleanup service started (interval: %v, max age: %v)", s.cleanupInterval, s.maxAge)
}

// Stop stops the cleanup service
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// sweep removes stale working files from the upload directory
func (s *Service) sweep() {
	if _, err := os.Stat(s.uploadDir); os.IsNotExist(err) {
		return
	}

	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		log.Printf("[ERROR] Cleanup read error: %v", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !IsWorkingFile(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) <= s.maxAge {
			continue
		}

		path := filepath.Join(s.uploadDir, entry.Name())
		log.Printf("[DEBUG] Removing stale working file: %s", path)
		if err := os.Remove(path); err != nil {
			log.Printf("[WARN] Failed to remove working file %s: %v", path, err)
		}
	}
}

// IsWorkingFile reports whether a filename belongs to an in-progress
// session: uploaded sources, session JSONs and temp audio or subtitle
// files. Final rendered videos do not match.
func IsWorkingFile(name string) bool {
	switch {
	case strings.HasPrefix(name, "video_"):
		return true
	case strings.HasPrefix(name, "session_") && strings.HasSuffix(name, ".json"):
		return true
	case strings.HasSuffix(name, ".wav"):
		return true
	case strings.HasSuffix(name, ".ass"):
		return true
	case strings.HasSuffix(name, ".tmp"):
		return true
	}
	return false
}
