//go:build darwin

package share

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// openPath hands a file path or URL to the default handler via open(1).
func openPath(target string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "open", target).Run(); err != nil {
		return fmt.Errorf("open: %w", err)
	}
	return nil
}
