//go:build !linux

package hal

import (
	"context"
	"fmt"
)

func RunConsole(_ context.Context, _ AppFactory, _ ConsoleConfig) error {
	return fmt.Errorf("console backend needs Linux fbdev: %w", ErrNotImplemented)
}
