// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/krishisetu/sahayak-tui/internal/api"
	"github.com/krishisetu/sahayak-tui/internal/locale"
	"github.com/krishisetu/sahayak-tui/internal/location"
	"github.com/krishisetu/sahayak-tui/internal/model"
	"github.com/krishisetu/sahayak-tui/internal/voice"
)

// fakeChat records requests and replays canned responses.
type fakeChat struct {
	mu   sync.Mutex
	reqs []api.ChatRequest
	resp *api.ChatResponse
	err  error

	// When set, the next Chat call blocks until release is closed.
	started chan struct{}
	release chan struct{}
}

func (f *fakeChat) Chat(_ context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	started, release := f.started, f.release
	f.started = nil
	f.mu.Unlock()

	if started != nil {
		close(started)
		<-release
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &api.ChatResponse{ResponseHTML: "ok"}, nil
}

func (f *fakeChat) requests() []api.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.ChatRequest(nil), f.reqs...)
}

type fakePlayer struct {
	urls []string
}

func (p *fakePlayer) Play(_ context.Context, url string) error {
	p.urls = append(p.urls, url)
	return nil
}

func TestSendRoundTrip(t *testing.T) {
	chat := &fakeChat{resp: &api.ChatResponse{ResponseHTML: "Namaste! Which state are you from?"}}
	o := New(Options{Chat: chat, Language: locale.Hindi})

	o.Send(context.Background(), "  hello  ", SendOptions{})

	reqs := chat.requests()
	if len(reqs) != 1 {
		t.Fatalf("chat called %d times", len(reqs))
	}
	if reqs[0].Message != "hello" {
		t.Errorf("Message = %q, want trimmed text", reqs[0].Message)
	}
	if !strings.HasPrefix(reqs[0].UserID, "tui_user_") {
		t.Errorf("UserID = %q", reqs[0].UserID)
	}

	msgs := o.Transcript().All()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d entries", len(msgs))
	}
	if msgs[0].Sender != model.SenderUser || msgs[0].Body != "hello" {
		t.Errorf("first entry = %+v", msgs[0])
	}
	if msgs[1].Sender != model.SenderAssistant || msgs[1].Body != "Namaste! Which state are you from?" {
		t.Errorf("second entry = %+v", msgs[1])
	}
	if o.State().Loading {
		t.Error("loading must clear after the round trip")
	}
}

func TestSendBlankIsNoOp(t *testing.T) {
	chat := &fakeChat{}
	o := New(Options{Chat: chat})

	o.Send(context.Background(), "   ", SendOptions{})
	o.Send(context.Background(), "", SendOptions{})

	if len(chat.requests()) != 0 {
		t.Error("blank sends must not reach the service")
	}
	if o.Transcript().Len() != 0 {
		t.Error("blank sends must not touch the transcript")
	}
}

func TestSendWhileLoadingIsNoOp(t *testing.T) {
	chat := &fakeChat{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	o := New(Options{Chat: chat})

	done := make(chan struct{})
	go func() {
		o.Send(context.Background(), "first", SendOptions{})
		close(done)
	}()
	<-chat.started

	o.Send(context.Background(), "second", SendOptions{})
	close(chat.release)
	<-done

	reqs := chat.requests()
	if len(reqs) != 1 || reqs[0].Message != "first" {
		t.Errorf("requests = %+v, want only the first send", reqs)
	}
}

func TestSendFailureAppendsNotice(t *testing.T) {
	chat := &fakeChat{err: api.ErrUnreachable}
	o := New(Options{Chat: chat})

	o.Send(context.Background(), "hello", SendOptions{})

	msgs := o.Transcript().All()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d entries", len(msgs))
	}
	if msgs[0].Sender != model.SenderUser {
		t.Error("user entry must survive the failure")
	}
	if !strings.Contains(msgs[1].Body, "couldn't connect") {
		t.Errorf("notice = %q", msgs[1].Body)
	}
	if o.State().Loading {
		t.Error("loading must clear after a failure")
	}
}

func TestSendTimeoutNotice(t *testing.T) {
	chat := &fakeChat{err: &api.ClientError{Type: api.ErrTypeTimeout, Message: "deadline"}}
	o := New(Options{Chat: chat})

	o.Send(context.Background(), "hello", SendOptions{})

	if last := o.Transcript().Last(); !strings.Contains(last.Body, "took too long") {
		t.Errorf("notice = %q", last.Body)
	}
}

func TestSendVoiceOriginFlag(t *testing.T) {
	chat := &fakeChat{}
	o := New(Options{Chat: chat})

	o.Send(context.Background(), "spoken", SendOptions{VoiceOrigin: true})

	if reqs := chat.requests(); !reqs[0].IsVoiceOrigin {
		t.Error("voice origin flag must reach the wire")
	}
}

func TestSendConsumesAttachmentOnce(t *testing.T) {
	chat := &fakeChat{}
	o := New(Options{Chat: chat})

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}
	path := filepath.Join(t.TempDir(), "leaf.png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := o.SelectAttachment(path); err != nil {
		t.Fatal(err)
	}

	o.Send(context.Background(), "what is wrong with this crop", SendOptions{})
	o.Send(context.Background(), "and now?", SendOptions{})

	reqs := chat.requests()
	if reqs[0].ImageData == "" || reqs[0].ImageMediaType != "image/png" {
		t.Errorf("first send missing image: %+v", reqs[0])
	}
	if reqs[1].ImageData != "" || reqs[1].ImageMediaType != "" {
		t.Error("second send must not carry the consumed image")
	}

	msgs := o.Transcript().All()
	if !strings.HasPrefix(msgs[0].Body, "[Attached Image: leaf.png] ") {
		t.Errorf("first entry = %q, want attachment prefix", msgs[0].Body)
	}
	if !msgs[0].HasAttachment {
		t.Error("first entry must be flagged as carrying an attachment")
	}
	if strings.Contains(msgs[2].Body, "Attached Image") {
		t.Error("second entry must not mention the attachment")
	}
}

func TestSendImageOnly(t *testing.T) {
	chat := &fakeChat{}
	o := New(Options{Chat: chat})

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}
	path := filepath.Join(t.TempDir(), "leaf.png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := o.SelectAttachment(path); err != nil {
		t.Fatal(err)
	}

	o.Send(context.Background(), "", SendOptions{})

	reqs := chat.requests()
	if len(reqs) != 1 {
		t.Fatalf("chat called %d times, want the image-only send to go through", len(reqs))
	}
	if reqs[0].Message != "" || reqs[0].ImageData == "" {
		t.Errorf("request = %+v, want empty message with image payload", reqs[0])
	}

	msgs := o.Transcript().All()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d entries", len(msgs))
	}
	if msgs[0].Body != "[Attached Image: leaf.png]" || !msgs[0].HasAttachment {
		t.Errorf("user entry = %+v, want bare attachment marker", msgs[0])
	}
	if o.PendingAttachment() != nil {
		t.Error("the send must consume the staged attachment")
	}
}

func TestSendSurfacesServiceError(t *testing.T) {
	chat := &fakeChat{resp: &api.ChatResponse{
		Error:    "Session state corrupted. Please restart the conversation.",
		AudioURL: "/audio/stale.mp3",
	}}
	player := &fakePlayer{}
	o := New(Options{Chat: chat, Player: player})

	o.Send(context.Background(), "hello", SendOptions{})

	msgs := o.Transcript().All()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d entries", len(msgs))
	}
	if msgs[1].Body != "Session state corrupted. Please restart the conversation." {
		t.Errorf("assistant entry = %q, want the service error verbatim", msgs[1].Body)
	}
	if len(player.urls) != 0 {
		t.Error("an errored reply must not play audio")
	}
	if o.State().Loading {
		t.Error("loading must clear after an errored reply")
	}
}

func TestSendPlaysReplyAudio(t *testing.T) {
	chat := &fakeChat{resp: &api.ChatResponse{ResponseHTML: "ok", AudioURL: "/audio/r1.mp3"}}
	player := &fakePlayer{}
	o := New(Options{Chat: chat, Player: player})

	o.Send(context.Background(), "hello", SendOptions{VoiceOrigin: true})

	if len(player.urls) != 1 || player.urls[0] != "/audio/r1.mp3" {
		t.Errorf("player urls = %v", player.urls)
	}
}

func TestSendEligibilityScenario(t *testing.T) {
	chat := &fakeChat{resp: &api.ChatResponse{
		ResponseHTML: "Based on your details from Pune:",
		State:        "end",
		RAGPayload: &api.EligibilityPayload{
			EligibleSchemes: []api.EligibilityRecord{
				{Scheme: "PM-KISAN", Reason: "Small landholder.", Documents: "Aadhaar, 7/12 extract"},
			},
		},
	}}
	o := New(Options{Chat: chat, Language: locale.Marathi})

	o.Send(context.Background(), "I am from Pune with 1.5 acres", SendOptions{})

	body := o.Transcript().Last().Body
	if !strings.Contains(body, "🟢 <b>PM-KISAN</b>") {
		t.Errorf("body missing scheme block: %s", body)
	}
	if !strings.Contains(body, "तुम्हाला कोणत्या योजनेत रस आहे?") {
		t.Errorf("body missing Marathi follow-up: %s", body)
	}
}

func TestBootstrap(t *testing.T) {
	chat := &fakeChat{resp: &api.ChatResponse{ResponseHTML: "Welcome! Please choose your state."}}
	o := New(Options{Chat: chat})

	o.Bootstrap(context.Background())

	reqs := chat.requests()
	if len(reqs) != 1 || reqs[0].Message != "reset" {
		t.Fatalf("requests = %+v, want one reset", reqs)
	}

	msgs := o.Transcript().All()
	if len(msgs) != 1 {
		t.Fatalf("transcript has %d entries, want greeting only", len(msgs))
	}
	if msgs[0].Sender != model.SenderAssistant {
		t.Error("the reset command must not appear as a user entry")
	}
}

func TestSetLanguageRestartsSession(t *testing.T) {
	chat := &fakeChat{resp: &api.ChatResponse{ResponseHTML: "greeting"}}
	o := New(Options{Chat: chat, Language: locale.English})

	o.Send(context.Background(), "hello", SendOptions{})
	firstID := chat.requests()[0].UserID

	o.SetLanguage(context.Background(), locale.Tamil)

	if o.Language() != locale.Tamil {
		t.Errorf("Language = %q", o.Language())
	}
	reqs := chat.requests()
	last := reqs[len(reqs)-1]
	if last.Message != "reset" {
		t.Errorf("expected a re-bootstrap, got %q", last.Message)
	}
	if last.UserID == firstID {
		t.Error("language switch must start a new session identity")
	}
	msgs := o.Transcript().All()
	if len(msgs) != 1 || msgs[0].Body != "greeting" {
		t.Errorf("transcript after switch = %+v, want fresh greeting only", msgs)
	}
}

func TestSetLanguageDuringSendDiscardsStaleReply(t *testing.T) {
	chat := &fakeChat{
		resp:    &api.ChatResponse{ResponseHTML: "greeting"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	o := New(Options{Chat: chat, Language: locale.English})

	done := make(chan struct{})
	go func() {
		o.Send(context.Background(), "first", SendOptions{})
		close(done)
	}()
	<-chat.started

	o.SetLanguage(context.Background(), locale.Tamil)
	close(chat.release)
	<-done

	msgs := o.Transcript().All()
	if len(msgs) != 1 {
		t.Fatalf("transcript after switch has %d entries, want the fresh greeting only: %+v", len(msgs), msgs)
	}
	if msgs[0].Sender != model.SenderAssistant || msgs[0].Body != "greeting" {
		t.Errorf("entry = %+v", msgs[0])
	}
	if o.State().Loading {
		t.Error("the stale send must not leave loading set")
	}

	// The flow must not be wedged: the next send goes through.
	o.Send(context.Background(), "second", SendOptions{})
	reqs := chat.requests()
	if last := reqs[len(reqs)-1]; last.Message != "second" {
		t.Errorf("last request = %+v, want the follow-up send", last)
	}
}

type blockingProvider struct {
	started chan struct{}
	release chan struct{}
}

func (p *blockingProvider) CurrentPosition(context.Context) (location.Position, error) {
	close(p.started)
	<-p.release
	return location.Position{Latitude: 18.52, Longitude: 73.86}, nil
}

func TestStatePollsDuringLocationShare(t *testing.T) {
	provider := &blockingProvider{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	bridge := location.NewBridge(provider, func(context.Context, api.WeatherRequest) (*api.WeatherResponse, error) {
		return &api.WeatherResponse{Recommendation: "Irrigate early."}, nil
	})
	o := New(Options{Chat: &fakeChat{}, Bridge: bridge})

	done := make(chan struct{})
	go func() {
		o.ShareLocation(context.Background())
		close(done)
	}()
	<-provider.started

	if !o.State().FetchingLocation {
		t.Error("State().FetchingLocation must be set while the share is in flight")
	}
	close(provider.release)
	<-done

	if o.State().FetchingLocation {
		t.Error("FetchingLocation must clear after the share completes")
	}
}

func TestSetLanguageSameIsNoOp(t *testing.T) {
	chat := &fakeChat{}
	o := New(Options{Chat: chat, Language: locale.Hindi})

	o.SetLanguage(context.Background(), locale.Hindi)

	if len(chat.requests()) != 0 {
		t.Error("same-language switch must not re-bootstrap")
	}
}

// scriptedCapture yields fixed audio for the voice round trip.
type scriptedCapture struct{ audio []byte }

func (s *scriptedCapture) Start(context.Context) error { return nil }
func (s *scriptedCapture) Stop() ([]byte, error)       { return s.audio, nil }

func TestVoiceRoundTripSubmits(t *testing.T) {
	chat := &fakeChat{}
	rec := voice.NewController(
		func() voice.Capture { return &scriptedCapture{audio: []byte("wav")} },
		func(_ context.Context, _ []byte, _ string, lang locale.Language) (string, error) {
			if lang != locale.Telugu {
				t.Errorf("transcribe lang = %q", lang)
			}
			return "నా పంట", nil
		},
	)
	o := New(Options{Chat: chat, Language: locale.Telugu, Recorder: rec})

	if err := o.StartRecording(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !o.State().Recording {
		t.Error("State().Recording must be set while capturing")
	}
	if !o.StopRecording(context.Background()) {
		t.Fatal("StopRecording = false, want submitted")
	}

	reqs := chat.requests()
	if len(reqs) != 1 || reqs[0].Message != "నా పంట" || !reqs[0].IsVoiceOrigin {
		t.Errorf("requests = %+v, want one voice-origin send", reqs)
	}
}

func TestVoiceFailureSubmitsNothing(t *testing.T) {
	chat := &fakeChat{}
	rec := voice.NewController(
		func() voice.Capture { return &scriptedCapture{audio: []byte("wav")} },
		func(context.Context, []byte, string, locale.Language) (string, error) {
			return "", nil
		},
	)
	o := New(Options{Chat: chat, Recorder: rec})

	if err := o.StartRecording(context.Background()); err != nil {
		t.Fatal(err)
	}
	if o.StopRecording(context.Background()) {
		t.Error("empty transcription must not submit")
	}
	if len(chat.requests()) != 0 {
		t.Error("no request expected")
	}
	if o.Transcript().Len() != 0 {
		t.Error("transcript must stay untouched")
	}
}
