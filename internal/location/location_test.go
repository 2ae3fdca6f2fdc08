// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package location

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/krishisetu/sahayak-tui/internal/api"
	"github.com/krishisetu/sahayak-tui/internal/locale"
	"github.com/krishisetu/sahayak-tui/internal/model"
)

type fakeProvider struct {
	pos Position
	err error
}

func (f *fakeProvider) CurrentPosition(context.Context) (Position, error) {
	return f.pos, f.err
}

func okWeather(resp *api.WeatherResponse) WeatherFunc {
	return func(context.Context, api.WeatherRequest) (*api.WeatherResponse, error) {
		return resp, nil
	}
}

func TestShareSuccess(t *testing.T) {
	var gotReq api.WeatherRequest
	weather := func(_ context.Context, req api.WeatherRequest) (*api.WeatherResponse, error) {
		gotReq = req
		return &api.WeatherResponse{
			WeatherSummary: &api.WeatherSummary{
				TotalRainfallMM: 45,
				RainyDays:       6,
				AvgTempMinC:     18,
				AvgTempMaxC:     31,
				MaxWindKMH:      22,
			},
			Recommendation: "Heavy rain expected.\nConsider crop insurance under Fasal Bima.",
		}, nil
	}

	b := NewBridge(&fakeProvider{pos: Position{Latitude: 18.52, Longitude: 73.86}}, weather)
	tr := model.NewTranscript()
	b.Share(context.Background(), tr, locale.Marathi)

	if gotReq.Latitude != 18.52 || gotReq.Longitude != 73.86 {
		t.Errorf("weather request coords = %v,%v", gotReq.Latitude, gotReq.Longitude)
	}
	if gotReq.Language != "marathi" {
		t.Errorf("weather request language = %q, want full name", gotReq.Language)
	}

	msgs := tr.All()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d entries, want announcement + recommendation", len(msgs))
	}
	if msgs[0].Sender != model.SenderUser || !strings.Contains(msgs[0].Body, "📍") {
		t.Errorf("first entry = %+v, want user announcement", msgs[0])
	}
	body := msgs[1].Body
	for _, want := range []string{
		"45.0 mm over 6 rainy days",
		"18-31 °C",
		"22 km/h",
		"Heavy rain expected.<br>Consider crop insurance under Fasal Bima.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("recommendation missing %q\nbody: %s", want, body)
		}
	}
}

func TestSharePositionDenied(t *testing.T) {
	b := NewBridge(&fakeProvider{err: ErrDenied}, func(context.Context, api.WeatherRequest) (*api.WeatherResponse, error) {
		t.Error("weather must not be called without a position")
		return nil, nil
	})
	tr := model.NewTranscript()
	b.Share(context.Background(), tr, locale.English)

	msgs := tr.All()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d entries, want announcement + notice", len(msgs))
	}
	if msgs[0].Sender != model.SenderUser {
		t.Error("announcement must be appended even when resolution fails")
	}
	if !strings.Contains(msgs[1].Body, "couldn't access your location") {
		t.Errorf("notice = %q", msgs[1].Body)
	}
}

func TestShareServiceErrorVerbatim(t *testing.T) {
	b := NewBridge(&fakeProvider{}, func(context.Context, api.WeatherRequest) (*api.WeatherResponse, error) {
		return nil, &api.ClientError{Type: api.ErrTypeService, Message: "Weather data unavailable for this region"}
	})
	tr := model.NewTranscript()
	b.Share(context.Background(), tr, locale.English)

	last := tr.Last()
	if last == nil || last.Body != "Weather data unavailable for this region" {
		t.Errorf("service error must surface verbatim, got %+v", last)
	}
}

func TestShareTransportErrorNotice(t *testing.T) {
	b := NewBridge(&fakeProvider{}, func(context.Context, api.WeatherRequest) (*api.WeatherResponse, error) {
		return nil, errors.New("connection refused")
	})
	tr := model.NewTranscript()
	b.Share(context.Background(), tr, locale.English)

	last := tr.Last()
	if last == nil || !strings.Contains(last.Body, "try again later") {
		t.Errorf("want generic failure notice, got %+v", last)
	}
}

func TestShareSummaryMissing(t *testing.T) {
	b := NewBridge(&fakeProvider{}, okWeather(&api.WeatherResponse{
		Recommendation: "Light showers likely.\nDelay fertilizer application.",
	}))
	tr := model.NewTranscript()
	b.Share(context.Background(), tr, locale.English)

	msgs := tr.All()
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d entries, want announcement + recommendation", len(msgs))
	}
	body := msgs[1].Body
	if strings.Contains(body, "Weather Outlook") {
		t.Errorf("outlook block rendered without a summary: %s", body)
	}
	if body != "Light showers likely.<br>Delay fertilizer application." {
		t.Errorf("body = %q, want recommendation alone", body)
	}
}

func TestShareEmptyReplyBecomesNotice(t *testing.T) {
	b := NewBridge(&fakeProvider{}, okWeather(&api.WeatherResponse{}))
	tr := model.NewTranscript()
	b.Share(context.Background(), tr, locale.English)

	last := tr.Last()
	if last == nil || !strings.Contains(last.Body, "try again later") {
		t.Errorf("an empty reply must degrade to the failure notice, got %+v", last)
	}
}

func TestShareGuardsReentry(t *testing.T) {
	b := NewBridge(&fakeProvider{}, okWeather(&api.WeatherResponse{}))
	tr := model.NewTranscript()
	b.fetching = true
	b.Share(context.Background(), tr, locale.English)

	if tr.Len() != 0 {
		t.Error("a share in flight must make Share a no-op")
	}
}

func TestHTTPProviderFieldSpellings(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Position
	}{
		{"ip-api style", `{"status":"success","lat":28.61,"lon":77.21}`, Position{28.61, 77.21}},
		{"long form", `{"latitude":18.52,"longitude":73.86}`, Position{18.52, 73.86}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewHTTPProvider(srv.URL)
			pos, err := p.CurrentPosition(context.Background())
			if err != nil {
				t.Fatalf("CurrentPosition: %v", err)
			}
			if pos != tt.want {
				t.Errorf("pos = %+v, want %+v", pos, tt.want)
			}
		})
	}
}

func TestHTTPProviderNoCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"fail"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	if _, err := p.CurrentPosition(context.Background()); !errors.Is(err, ErrDenied) {
		t.Errorf("err = %v, want ErrDenied", err)
	}
}
