//go:build linux

package share

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// openPath hands a file path or URL to the desktop's default handler.
func openPath(target string) error {
	if _, err := exec.LookPath("xdg-open"); err != nil {
		return fmt.Errorf("xdg-open not found: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "xdg-open", target).Run(); err != nil {
		return fmt.Errorf("xdg-open: %w", err)
	}
	return nil
}
