// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"context"
	"log/slog"
	"sync"

	"github.com/krishisetu/sahayak-tui/internal/locale"
)

// State is the controller's position in the record/finalize cycle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateFinalizing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateFinalizing:
		return "finalizing"
	}
	return "unknown"
}

// TranscribeFunc converts a finished audio clip to text.
type TranscribeFunc func(ctx context.Context, audio []byte, filename string, lang locale.Language) (string, error)

// Controller runs the push-to-talk cycle: idle until Start opens the
// microphone, recording until Stop, then finalizing while the clip is
// transcribed. Transcription failures are swallowed after logging, so a bad
// clip costs the user a retry and nothing else. Safe for concurrent use;
// State may be polled while a clip is being finalized.
type Controller struct {
	newCapture func() Capture
	transcribe TranscribeFunc

	mu      sync.Mutex
	state   State
	capture Capture
}

// NewController builds a controller that records via captures from
// newCapture and transcribes with transcribe.
func NewController(newCapture func() Capture, transcribe TranscribeFunc) *Controller {
	return &Controller{newCapture: newCapture, transcribe: transcribe}
}

// State returns the current cycle position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start opens the microphone and begins recording. Calling Start outside
// the idle state is a no-op.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return nil
	}

	cap := c.newCapture()
	if err := cap.Start(ctx); err != nil {
		return err
	}
	c.capture = cap
	c.state = StateRecording
	return nil
}

// Stop ends the recording and transcribes the clip, returning the text and
// true on success. Outside the recording state it is a no-op returning
// ("", false), so a second stop cannot submit a clip twice.
//
// The microphone is released before transcription starts, and any failure
// along the way resolves to ("", false) after a warning log.
func (c *Controller) Stop(ctx context.Context, lang locale.Language) (string, bool) {
	c.mu.Lock()
	if c.state != StateRecording {
		c.mu.Unlock()
		return "", false
	}
	c.state = StateFinalizing
	cap := c.capture
	c.capture = nil
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
	}()

	audio, err := cap.Stop()
	if err != nil {
		slog.Warn("recording failed", "error", err)
		return "", false
	}

	text, err := c.transcribe(ctx, audio, "recording.wav", lang)
	if err != nil {
		slog.Warn("transcription failed", "error", err)
		return "", false
	}
	if text == "" {
		slog.Warn("transcription returned no text")
		return "", false
	}
	return text, true
}

// Abort discards an in-progress recording without transcribing it.
func (c *Controller) Abort() {
	c.mu.Lock()
	if c.state != StateRecording {
		c.mu.Unlock()
		return
	}
	cap := c.capture
	c.capture = nil
	c.state = StateIdle
	c.mu.Unlock()
	if _, err := cap.Stop(); err != nil {
		slog.Debug("abort stop", "error", err)
	}
}
