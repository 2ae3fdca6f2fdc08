// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/krishisetu/sahayak-tui/internal/api"
	"github.com/krishisetu/sahayak-tui/internal/locale"
	"github.com/krishisetu/sahayak-tui/internal/model"
)

// positionTimeout bounds how long a share waits on the geolocation source.
const positionTimeout = 10 * time.Second

// shareAnnouncement is the synthetic user entry posted when a share begins,
// so the transcript shows who asked for the advice.
const shareAnnouncement = "📍 Sharing my location for weather-based scheme advice..."

// deniedNotice is shown when the position cannot be resolved in time.
const deniedNotice = "I couldn't access your location. Please check your connection and try again."

// failureNotice is shown when the weather service itself is unreachable.
const failureNotice = "Sorry, I couldn't fetch weather-based recommendations right now. Please try again later."

// WeatherFunc fetches weather-aware scheme recommendations for a position.
type WeatherFunc func(ctx context.Context, req api.WeatherRequest) (*api.WeatherResponse, error)

// Bridge runs the location-share flow against a transcript: one synthetic
// user entry announcing the share, then exactly one assistant entry with
// the recommendation or the failure notice. Safe for concurrent use;
// Fetching may be polled while a share is in flight.
type Bridge struct {
	provider Provider
	weather  WeatherFunc

	mu       sync.Mutex
	fetching bool
}

// NewBridge builds a bridge over the given position provider and weather
// endpoint.
func NewBridge(provider Provider, weather WeatherFunc) *Bridge {
	return &Bridge{provider: provider, weather: weather}
}

// Fetching reports whether a share is currently in flight.
func (b *Bridge) Fetching() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetching
}

// begin claims the in-flight flag; it reports false when a share is
// already running.
func (b *Bridge) begin() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fetching {
		return false
	}
	b.fetching = true
	return true
}

func (b *Bridge) end() {
	b.mu.Lock()
	b.fetching = false
	b.mu.Unlock()
}

// Share resolves the position and appends the weather recommendation to the
// transcript. A share already in flight makes the call a no-op. The
// announcement entry is appended before the position lookup starts, so the
// user sees their request even when resolution fails.
func (b *Bridge) Share(ctx context.Context, transcript *model.Transcript, lang locale.Language) {
	if !b.begin() {
		return
	}
	defer b.end()

	transcript.AppendUser(shareAnnouncement)

	posCtx, cancel := context.WithTimeout(ctx, positionTimeout)
	defer cancel()

	pos, err := b.provider.CurrentPosition(posCtx)
	if err != nil {
		slog.Warn("position lookup failed", "error", err)
		transcript.AppendAssistant(deniedNotice)
		return
	}

	resp, err := b.weather(ctx, api.WeatherRequest{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Language:  lang.FullName(),
	})
	if err != nil {
		if api.IsService(err) {
			transcript.AppendAssistant(err.Error())
			return
		}
		slog.Warn("weather lookup failed", "error", err)
		transcript.AppendAssistant(failureNotice)
		return
	}

	transcript.AppendAssistant(formatRecommendation(resp))
}

// formatRecommendation renders the weather summary block followed by the
// recommendation text, converting newlines to line breaks for the
// transcript's HTML bodies. A reply missing the summary degrades to the
// recommendation alone; one missing both becomes the failure notice.
func formatRecommendation(resp *api.WeatherResponse) string {
	recommendation := strings.ReplaceAll(resp.Recommendation, "\n", "<br>")
	s := resp.WeatherSummary
	if s == nil {
		if recommendation == "" {
			slog.Warn("weather reply had no summary or recommendation")
			return failureNotice
		}
		return recommendation
	}
	var b strings.Builder
	b.WriteString("🌦️ <b>Weather Outlook:</b><br>")
	b.WriteString(fmt.Sprintf("Rainfall: %.1f mm over %d rainy days<br>", s.TotalRainfallMM, s.RainyDays))
	b.WriteString(fmt.Sprintf("Temperature: %.0f-%.0f °C<br>", s.AvgTempMinC, s.AvgTempMaxC))
	b.WriteString(fmt.Sprintf("Max wind: %.0f km/h<br><br>", s.MaxWindKMH))
	b.WriteString(recommendation)
	return b.String()
}
