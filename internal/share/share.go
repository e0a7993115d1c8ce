// Package share exports the day's audio as a WAV file and hands the
// message off to an external messaging surface.
package share

import (
	"bytes"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/wav"
)

// ExportWAV wraps raw PCM bytes in a WAV container and writes it to dir as
// revelacao-<yyyy-mm-dd>.wav, returning the file path.
func ExportWAV(pcm []byte, sampleRate, channels int, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	name := fmt.Sprintf("revelacao-%s.wav", now.Format("2006-01-02"))
	path := filepath.Join(dir, name)

	data, err := wav.EncodeReader(bytes.NewReader(pcm), sampleRate, channels, 16)
	if err != nil {
		return "", fmt.Errorf("encode wav: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write wav file: %w", err)
	}
	return path, nil
}

// MessageLink builds a pre-filled external messaging link with the text
// URL-encoded.
func MessageLink(text string) string {
	return "https://wa.me/?text=" + url.QueryEscape(text)
}

// Share opens the exported WAV in the platform handler (when a path is
// given) and the pre-filled messaging link. A failure on the file step is
// silent: the text-only link is the fallback path.
func Share(text, wavPath string, logger *log.Logger) error {
	if wavPath != "" {
		if err := openPath(wavPath); err != nil {
			if logger != nil {
				logger.Printf("share: open wav failed, text-only fallback: %v", err)
			}
		}
	}

	link := MessageLink(text)
	if logger != nil {
		logger.Printf("share: opening message link (%d chars of text)", len(text))
	}
	if err := openPath(link); err != nil {
		return fmt.Errorf("open share link: %w", err)
	}
	return nil
}
