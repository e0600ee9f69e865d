//go:build !cgo

package hal

import (
	"errors"
	"time"
)

// WindowConfig controls the desktop window backend.
type WindowConfig struct {
	Width  int
	Height int
	Scale  int
	Tick   time.Duration
	Sound  bool
	Logger Logger
}

func RunWindow(_ AppFactory, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
