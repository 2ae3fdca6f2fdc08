// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package attachment holds the single pending image attachment for the
// next outgoing message. Selecting a new image replaces the previous one;
// the slot is consumed exactly once when the message is sent.
package attachment

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// maxImageBytes caps the attachment size before encoding. Large images blow
// past typical request body limits on the service side.
const maxImageBytes = 10 << 20

// Attachment is an image staged for the next message, already encoded for
// the wire.
type Attachment struct {
	Name      string // base file name, shown in the transcript
	Data      string // base64-encoded file contents
	MediaType string // sniffed media type, e.g. "image/png"
}

// Encoder manages the single attachment slot.
//
// Not safe for concurrent use on its own; the orchestrator serializes
// access under its lock.
type Encoder struct {
	current *Attachment
}

// NewEncoder returns an Encoder with an empty slot.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Select reads and encodes the image at path, replacing any previously
// selected attachment. On failure the slot is cleared so a stale image can
// never ride along with the next message.
func (e *Encoder) Select(path string) (*Attachment, error) {
	e.current = nil

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}
	if info.Size() > maxImageBytes {
		return nil, fmt.Errorf("attachment: %s exceeds %d MB limit", filepath.Base(path), maxImageBytes>>20)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}

	mediaType := sniffMediaType(path, data)
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, fmt.Errorf("attachment: %s is not an image (%s)", filepath.Base(path), mediaType)
	}

	e.current = &Attachment{
		Name:      filepath.Base(path),
		Data:      base64.StdEncoding.EncodeToString(data),
		MediaType: mediaType,
	}
	return e.current, nil
}

// Current returns the staged attachment without consuming it, or nil.
func (e *Encoder) Current() *Attachment {
	return e.current
}

// Take consumes the staged attachment. The second call after a Select
// returns nil, which keeps one image from attaching to two messages.
func (e *Encoder) Take() *Attachment {
	a := e.current
	e.current = nil
	return a
}

// Clear drops the staged attachment, if any.
func (e *Encoder) Clear() {
	e.current = nil
}

// sniffMediaType determines the media type from content, falling back to
// the file extension for formats http.DetectContentType cannot identify.
func sniffMediaType(path string, data []byte) string {
	t := http.DetectContentType(data)
	if t != "application/octet-stream" && t != "text/plain; charset=utf-8" {
		return t
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	}
	return t
}
