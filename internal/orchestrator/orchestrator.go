// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package orchestrator coordinates one conversational session: the
// transcript, the pending attachment, voice capture, location sharing, and
// the round trips to the assistant service. The UI layer calls into it and
// renders whatever the transcript holds afterwards.
package orchestrator

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/krishisetu/sahayak-tui/internal/api"
	"github.com/krishisetu/sahayak-tui/internal/attachment"
	"github.com/krishisetu/sahayak-tui/internal/locale"
	"github.com/krishisetu/sahayak-tui/internal/location"
	"github.com/krishisetu/sahayak-tui/internal/model"
	"github.com/krishisetu/sahayak-tui/internal/reply"
	"github.com/krishisetu/sahayak-tui/internal/session"
	"github.com/krishisetu/sahayak-tui/internal/voice"
)

// resetCommand restarts the guided flow server side. It is sent on
// bootstrap and after a language switch, and never shown in the transcript.
const resetCommand = "reset"

// connectNotice is shown when the assistant service cannot be reached.
const connectNotice = "Sorry, I couldn't connect to the assistant. Please check that the service is running and try again."

// timeoutNotice is shown when a reply does not arrive in time.
const timeoutNotice = "The assistant took too long to respond. Please try again."

// ChatService is the slice of the service client the orchestrator sends
// messages through.
type ChatService interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// Player plays synthesized speech for an assistant reply. Implementations
// should return quickly and do the actual playback in the background.
type Player interface {
	Play(ctx context.Context, url string) error
}

// SendOptions qualifies a Send.
type SendOptions struct {
	// VoiceOrigin marks the message as transcribed speech, which asks the
	// service to synthesize a spoken reply.
	VoiceOrigin bool
}

// UIState is a snapshot of the orchestrator's activity flags for rendering.
type UIState struct {
	Loading          bool
	Recording        bool
	FetchingLocation bool
}

// Orchestrator owns a session and everything attached to it. All methods
// are safe for concurrent use; sends are serialized, and a send already in
// flight turns further sends into no-ops.
type Orchestrator struct {
	mu sync.Mutex

	chat        ChatService
	session     *session.Session
	transcript  *model.Transcript
	attachments *attachment.Encoder
	recorder    *voice.Controller
	bridge      *location.Bridge
	player      Player

	loading bool
	epoch   int
}

// Options wires the orchestrator's collaborators. Chat is required;
// Recorder, Bridge, and Player may be nil to disable voice, location, and
// audio playback.
type Options struct {
	Chat     ChatService
	Language locale.Language
	Recorder *voice.Controller
	Bridge   *location.Bridge
	Player   Player
}

// New builds an orchestrator with a fresh session in the given language.
func New(opts Options) *Orchestrator {
	lang := opts.Language
	if lang == "" {
		lang = locale.Default
	}
	return &Orchestrator{
		chat:        opts.Chat,
		session:     session.New(lang),
		transcript:  model.NewTranscript(),
		attachments: attachment.NewEncoder(),
		recorder:    opts.Recorder,
		bridge:      opts.Bridge,
		player:      opts.Player,
	}
}

// Language returns the session's conversation language.
func (o *Orchestrator) Language() locale.Language {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.Language()
}

// Transcript returns the live transcript. Callers render from it between
// orchestrator calls.
func (o *Orchestrator) Transcript() *model.Transcript {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.transcript
}

// State snapshots the activity flags.
func (o *Orchestrator) State() UIState {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := UIState{Loading: o.loading}
	if o.recorder != nil {
		s.Recording = o.recorder.State() == voice.StateRecording
	}
	if o.bridge != nil {
		s.FetchingLocation = o.bridge.Fetching()
	}
	return s
}

// =============================================================================
// SENDING
// =============================================================================

// Send submits text to the assistant and appends both sides of the exchange
// to the transcript. Blank text with no staged attachment, and sends while
// another is in flight, are no-ops. The user entry is appended before the
// network round trip, so the message appears immediately; a staged
// attachment is consumed by exactly this send and prefixes the entry with
// its file name. An attachment alone, with no text, is a valid send.
func (o *Orchestrator) Send(ctx context.Context, text string, opts SendOptions) {
	text = strings.TrimSpace(text)

	o.mu.Lock()
	if o.loading {
		o.mu.Unlock()
		return
	}

	att := o.attachments.Take()
	if text == "" && att == nil {
		o.mu.Unlock()
		return
	}
	o.loading = true

	display := text
	if att != nil {
		display = strings.TrimSpace("[Attached Image: " + att.Name + "] " + text)
	}
	msg := o.transcript.AppendUser(display)
	msg.HasAttachment = att != nil

	req := api.ChatRequest{
		UserID:        o.session.ID(),
		Message:       text,
		IsVoiceOrigin: opts.VoiceOrigin,
	}
	if att != nil {
		req.ImageData = att.Data
		req.ImageMediaType = att.MediaType
	}
	lang := o.session.Language()
	tr := o.transcript
	epoch := o.epoch
	o.mu.Unlock()

	resp, err := o.chat.Chat(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.epoch != epoch {
		// The session was replaced while this send was in flight. The
		// reply belongs to the discarded transcript; drop it.
		slog.Debug("discarding reply for replaced session")
		return
	}
	o.loading = false

	if err != nil {
		tr.AppendAssistant(failureBody(err))
		return
	}
	if resp.Error != "" {
		tr.AppendAssistant(resp.Error)
		return
	}

	r := reply.Interpret(resp, lang)
	tr.AppendAssistant(r.Body)
	o.playAudio(ctx, r.AudioURL)
}

// Bootstrap restarts the guided flow and appends the service's greeting.
// No user entry is recorded; the reset is an implementation detail of
// starting a conversation.
func (o *Orchestrator) Bootstrap(ctx context.Context) {
	o.mu.Lock()
	if o.loading {
		o.mu.Unlock()
		return
	}
	o.loading = true
	req := api.ChatRequest{UserID: o.session.ID(), Message: resetCommand}
	lang := o.session.Language()
	tr := o.transcript
	epoch := o.epoch
	o.mu.Unlock()

	resp, err := o.chat.Chat(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.epoch != epoch {
		slog.Debug("discarding greeting for replaced session")
		return
	}
	o.loading = false

	if err != nil {
		tr.AppendAssistant(failureBody(err))
		return
	}
	if resp.Error != "" {
		tr.AppendAssistant(resp.Error)
		return
	}

	r := reply.Interpret(resp, lang)
	tr.AppendAssistant(r.Body)
	o.playAudio(ctx, r.AudioURL)
}

// SetLanguage switches the conversation language. The old session is
// destroyed, a fresh one starts with an empty transcript, and the guided
// flow is bootstrapped again so the greeting arrives in the new language.
// A send still in flight for the old session is preempted: its reply is
// discarded when it lands, never appended to the new transcript.
func (o *Orchestrator) SetLanguage(ctx context.Context, lang locale.Language) {
	o.mu.Lock()
	if lang == o.session.Language() {
		o.mu.Unlock()
		return
	}
	o.session.Destroy()
	o.session = session.New(lang)
	o.transcript = model.NewTranscript()
	o.attachments.Clear()
	o.epoch++
	o.loading = false
	o.mu.Unlock()

	o.Bootstrap(ctx)
}

// failureBody maps a client error to the transcript notice for it.
func failureBody(err error) string {
	slog.Warn("chat request failed", "error", err)
	if api.IsTimeout(err) {
		return timeoutNotice
	}
	return connectNotice
}

// playAudio starts playback of a spoken reply, if there is one and a
// player is wired. Playback failures only log; the text reply already
// rendered. Caller holds o.mu.
func (o *Orchestrator) playAudio(ctx context.Context, url string) {
	if url == "" || o.player == nil {
		return
	}
	if err := o.player.Play(ctx, url); err != nil {
		slog.Warn("audio playback failed", "error", err)
	}
}

// =============================================================================
// VOICE
// =============================================================================

// StartRecording opens the microphone. Without a wired recorder it is a
// no-op returning nil.
func (o *Orchestrator) StartRecording(ctx context.Context) error {
	o.mu.Lock()
	rec := o.recorder
	o.mu.Unlock()
	if rec == nil {
		return nil
	}
	return rec.Start(ctx)
}

// StopRecording finishes the capture, transcribes it, and submits the text
// as a voice-origin message. A failed or empty transcription submits
// nothing. Reports whether a message was submitted.
func (o *Orchestrator) StopRecording(ctx context.Context) bool {
	o.mu.Lock()
	rec := o.recorder
	lang := o.session.Language()
	o.mu.Unlock()
	if rec == nil {
		return false
	}

	text, ok := rec.Stop(ctx, lang)
	if !ok {
		return false
	}
	o.Send(ctx, text, SendOptions{VoiceOrigin: true})
	return true
}

// =============================================================================
// LOCATION
// =============================================================================

// ShareLocation runs the weather recommendation flow against the
// transcript. Without a wired bridge it is a no-op.
func (o *Orchestrator) ShareLocation(ctx context.Context) {
	o.mu.Lock()
	bridge := o.bridge
	tr := o.transcript
	lang := o.session.Language()
	o.mu.Unlock()
	if bridge == nil {
		return
	}
	bridge.Share(ctx, tr, lang)
}

// =============================================================================
// ATTACHMENTS
// =============================================================================

// SelectAttachment stages the image at path for the next send.
func (o *Orchestrator) SelectAttachment(path string) (*attachment.Attachment, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.attachments.Select(path)
}

// PendingAttachment returns the staged attachment without consuming it.
func (o *Orchestrator) PendingAttachment() *attachment.Attachment {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.attachments.Current()
}

// ClearAttachment drops the staged attachment.
func (o *Orchestrator) ClearAttachment() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attachments.Clear()
}
