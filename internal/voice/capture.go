// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice records microphone audio and hands the finished clip to the
// transcription service, driving the record/finalize state machine behind
// the push-to-talk control.
package voice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrMediaAccess indicates the recorder could not open the microphone.
var ErrMediaAccess = errors.New("voice: microphone unavailable")

// IsMediaAccess reports whether err is a microphone access failure.
func IsMediaAccess(err error) bool {
	return errors.Is(err, ErrMediaAccess)
}

// Capture records one audio clip. Start begins recording; Stop releases the
// device and returns the captured bytes. A Capture is single use.
type Capture interface {
	Start(ctx context.Context) error
	Stop() ([]byte, error)
}

// =============================================================================
// EXEC CAPTURE
// =============================================================================

// ExecCapture records by shelling out to an external recorder such as
// arecord or sox, writing a WAV file to a temp path. The literal token
// {output} in the argument list is replaced with that path.
type ExecCapture struct {
	command []string

	cmd     *exec.Cmd
	outPath string
	waited  chan error
}

// NewExecCapture builds a capture around the given recorder command line.
// An empty command defaults to arecord with settings the transcription
// service accepts.
func NewExecCapture(command []string) *ExecCapture {
	if len(command) == 0 {
		command = []string{"arecord", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "wav", "{output}"}
	}
	return &ExecCapture{command: command}
}

func (e *ExecCapture) Start(ctx context.Context) error {
	if e.cmd != nil {
		return errors.New("voice: capture already started")
	}

	f, err := os.CreateTemp("", "sahayak-rec-*.wav")
	if err != nil {
		return fmt.Errorf("voice: %w", err)
	}
	e.outPath = f.Name()
	f.Close()

	args := make([]string, 0, len(e.command)-1)
	for _, a := range e.command[1:] {
		args = append(args, strings.ReplaceAll(a, "{output}", e.outPath))
	}

	cmd := exec.CommandContext(ctx, e.command[0], args...)
	if err := cmd.Start(); err != nil {
		os.Remove(e.outPath)
		e.outPath = ""
		return fmt.Errorf("%w: %v", ErrMediaAccess, err)
	}
	e.cmd = cmd
	e.waited = make(chan error, 1)
	go func() { e.waited <- cmd.Wait() }()

	// Recorders that fail to open the device exit almost immediately.
	select {
	case <-e.waited:
		os.Remove(e.outPath)
		e.cmd, e.outPath, e.waited = nil, "", nil
		return ErrMediaAccess
	case <-time.After(150 * time.Millisecond):
	}
	return nil
}

func (e *ExecCapture) Stop() ([]byte, error) {
	if e.cmd == nil {
		return nil, errors.New("voice: capture not started")
	}
	defer func() {
		os.Remove(e.outPath)
		e.cmd, e.outPath, e.waited = nil, "", nil
	}()

	// Ask the recorder to finish the file; arecord flushes the WAV header
	// on SIGINT. Fall back to a hard kill if it ignores the signal.
	if e.cmd.Process != nil {
		_ = e.cmd.Process.Signal(os.Interrupt)
	}
	select {
	case <-e.waited:
	case <-time.After(3 * time.Second):
		_ = e.cmd.Process.Kill()
		<-e.waited
	}

	data, err := os.ReadFile(e.outPath)
	if err != nil {
		return nil, fmt.Errorf("voice: reading %s: %w", filepath.Base(e.outPath), err)
	}
	if len(data) == 0 {
		return nil, errors.New("voice: recorder produced no audio")
	}
	return data, nil
}
