//go:build !ebiten

package window

import (
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend stub for builds without the ebiten tag
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (w *Backend) Init(config backend.Config) error {
	return ErrUnavailable
}

func (w *Backend) Update(frame video.Snapshot) ([]backend.InputEvent, error) {
	return nil, ErrUnavailable
}

func (w *Backend) Cleanup() error {
	return nil
}
