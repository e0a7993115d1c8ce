// Package clipboard writes the support payment key to the system clipboard.
package clipboard

import (
	"fmt"

	atclip "github.com/atotto/clipboard"
)

// CopyPix places the PIX payment identifier on the clipboard. Write-only;
// nothing is ever read back.
func CopyPix(key string) error {
	if key == "" {
		return fmt.Errorf("no pix key configured")
	}
	if err := atclip.WriteAll(key); err != nil {
		return fmt.Errorf("write to clipboard: %w", err)
	}
	return nil
}
