package server

import (
	"sync"

	"github.com/raine/buddy-vision/internal/vision"
)

// StatusSnapshot is a point-in-time view of the UI state.
type StatusSnapshot struct {
	Loading         bool
	Message         string
	LastDescription string
}

// StatusBoard implements pipeline.Listener and keeps the latest UI state
// for the status endpoint to report.
type StatusBoard struct {
	mu       sync.Mutex
	snapshot StatusSnapshot
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{}
}

func (b *StatusBoard) ShowLoading(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot.Loading = true
	b.snapshot.Message = message
}

func (b *StatusBoard) HideLoading() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot.Loading = false
}

func (b *StatusBoard) ShowStatus(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot.Message = message
}

func (b *StatusBoard) DescriptionReady(description string, result *vision.VisionResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot.LastDescription = description
	b.snapshot.Message = ""
}

// Snapshot returns a copy of the current UI state.
func (b *StatusBoard) Snapshot() StatusSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot
}
