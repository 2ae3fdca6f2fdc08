// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Kisan Yojana assistant service.
package api

// =============================================================================
// CHAT
// =============================================================================

// ChatRequest is the outbound payload for one conversational turn.
// Text may be empty only when an image is attached. ImageData and
// ImageMediaType travel together or not at all.
type ChatRequest struct {
	UserID        string `json:"user_id"`
	Message       string `json:"message"`
	IsVoiceOrigin bool   `json:"is_voice"`

	ImageData      string `json:"image_base64,omitempty"`
	ImageMediaType string `json:"image_mime,omitempty"`
}

// ChatResponse is the raw assistant reply. ResponseHTML is opaque HTML.
// State and NextState are two independently possible terminal-signal fields;
// either carrying "end" means the guided flow reached its concluding step.
// Eligibility arrives either pre-structured (RAGPayload) or as free text that
// may contain a fenced JSON document (RAGResponse).
type ChatResponse struct {
	ResponseHTML string `json:"response"`
	Error        string `json:"error,omitempty"`

	State     string `json:"state,omitempty"`
	NextState string `json:"next_state,omitempty"`

	RAGPayload  *EligibilityPayload `json:"rag_payload,omitempty"`
	RAGResponse string              `json:"rag_response,omitempty"`

	AudioURL string `json:"audio_url,omitempty"`
}

// TerminalSignal reports whether the reply marks the end of the guided flow.
func (r *ChatResponse) TerminalSignal() bool {
	return r.State == "end" || r.NextState == "end"
}

// =============================================================================
// ELIGIBILITY
// =============================================================================

// EligibilityPayload wraps the scheme matches extracted by the service.
type EligibilityPayload struct {
	EligibleSchemes []EligibilityRecord `json:"eligible_schemes"`
}

// EligibilityRecord is one scheme match with its justification.
type EligibilityRecord struct {
	Scheme      string `json:"scheme"`
	Reason      string `json:"reason"`
	KeyFeatures string `json:"key_features,omitempty"`
	Documents   string `json:"documents,omitempty"`
}

// =============================================================================
// TRANSCRIPTION
// =============================================================================

// TranscribeResponse carries the recognized text for an audio upload.
// An absent or empty Text is not an error; it means nothing was recognized.
type TranscribeResponse struct {
	Text string `json:"text"`
}

// =============================================================================
// WEATHER
// =============================================================================

// WeatherRequest asks for weather-based scheme recommendations.
// Language is the full language name ("hindi"), not the short code.
type WeatherRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Language  string  `json:"language"`
}

// WeatherSummary aggregates the last 30 days of weather at the location.
type WeatherSummary struct {
	TotalRainfallMM float64 `json:"total_rainfall_mm"`
	RainyDays       int     `json:"rainy_days"`
	AvgTempMinC     float64 `json:"avg_temp_min_c"`
	AvgTempMaxC     float64 `json:"avg_temp_max_c"`
	MaxWindKMH      float64 `json:"max_wind_kmh"`
}

// WeatherResponse is the weather-advisory reply. Recommendation is free text
// with literal newlines.
type WeatherResponse struct {
	Error          string          `json:"error,omitempty"`
	WeatherSummary *WeatherSummary `json:"weather_summary,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
}
