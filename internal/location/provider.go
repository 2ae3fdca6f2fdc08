// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package location resolves the user's position and bridges it to the
// weather-aware scheme recommendation flow.
package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrDenied indicates the position could not be resolved, for whatever
// reason the geolocation source gives. The chat flow treats every denial
// the same way.
var ErrDenied = errors.New("location: position unavailable")

// Position is a resolved geographic coordinate.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Provider resolves the current position. Implementations must honor the
// context deadline.
type Provider interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// DefaultGeoEndpoint is a public IP geolocation service returning
// coordinates as JSON.
const DefaultGeoEndpoint = "http://ip-api.com/json"

// HTTPProvider resolves the position from an IP geolocation endpoint,
// accepting the common lat/lon field spellings.
type HTTPProvider struct {
	Endpoint string
	client   *http.Client
}

// NewHTTPProvider builds a provider for the given endpoint, defaulting to
// DefaultGeoEndpoint when empty.
func NewHTTPProvider(endpoint string) *HTTPProvider {
	if endpoint == "" {
		endpoint = DefaultGeoEndpoint
	}
	return &HTTPProvider{
		Endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) CurrentPosition(ctx context.Context) (Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Endpoint, nil)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrDenied, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrDenied, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("%w: geolocation endpoint returned %d", ErrDenied, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrDenied, err)
	}

	var raw struct {
		Lat       *float64 `json:"lat"`
		Lon       *float64 `json:"lon"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrDenied, err)
	}

	pos := Position{}
	switch {
	case raw.Lat != nil && raw.Lon != nil:
		pos.Latitude, pos.Longitude = *raw.Lat, *raw.Lon
	case raw.Latitude != nil && raw.Longitude != nil:
		pos.Latitude, pos.Longitude = *raw.Latitude, *raw.Longitude
	default:
		return Position{}, fmt.Errorf("%w: no coordinates in response", ErrDenied)
	}
	return pos, nil
}
