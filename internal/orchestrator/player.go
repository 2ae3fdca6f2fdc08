// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
)

// ExecPlayer plays reply audio by shelling out to an external player such
// as mpv or ffplay. Relative audio paths from the service are resolved
// against BaseURL.
type ExecPlayer struct {
	command []string
	baseURL string
}

// NewExecPlayer builds a player around the given command line; the literal
// token {url} in the arguments is replaced with the audio URL. An empty
// command defaults to mpv without video output.
func NewExecPlayer(command []string, baseURL string) *ExecPlayer {
	if len(command) == 0 {
		command = []string{"mpv", "--no-video", "--really-quiet", "{url}"}
	}
	return &ExecPlayer{command: command, baseURL: strings.TrimRight(baseURL, "/")}
}

// Play starts playback in the background and returns once the player
// process has launched.
func (p *ExecPlayer) Play(ctx context.Context, url string) error {
	if url == "" {
		return errors.New("orchestrator: empty audio url")
	}
	if strings.HasPrefix(url, "/") {
		url = p.baseURL + url
	}

	args := make([]string, 0, len(p.command)-1)
	for _, a := range p.command[1:] {
		args = append(args, strings.ReplaceAll(a, "{url}", url))
	}

	cmd := exec.CommandContext(ctx, p.command[0], args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			slog.Debug("audio player exited", "error", err)
		}
	}()
	return nil
}
