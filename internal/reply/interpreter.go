// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reply turns raw assistant replies into render-ready message bodies.
//
// A reply may embed eligibility results three ways: as a pre-structured
// payload, as free text containing a fenced JSON document, or not at all.
// The interpreter resolves that once into a tagged source, augments the body
// when the guided flow has reached its terminal step, and degrades to the
// plain reply on any parse failure. A malformed eligibility block must never
// blank out an otherwise-valid reply.
package reply

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/krishisetu/sahayak-tui/internal/api"
	"github.com/krishisetu/sahayak-tui/internal/locale"
)

// =============================================================================
// ELIGIBILITY SOURCE
// =============================================================================

// sourceKind discriminates where eligibility data came from.
type sourceKind int

const (
	sourceAbsent sourceKind = iota
	sourceStructured
	sourceRawText
)

// eligibilitySource is the tagged union over the reply's optional
// eligibility fields, resolved once at the top of Interpret.
type eligibilitySource struct {
	kind    sourceKind
	payload *api.EligibilityPayload // sourceStructured
	raw     string                  // sourceRawText
}

// resolveSource inspects the reply and picks the eligibility source,
// preferring the already-structured payload over free text.
func resolveSource(resp *api.ChatResponse) eligibilitySource {
	if resp.RAGPayload != nil {
		return eligibilitySource{kind: sourceStructured, payload: resp.RAGPayload}
	}
	if strings.TrimSpace(resp.RAGResponse) != "" {
		return eligibilitySource{kind: sourceRawText, raw: resp.RAGResponse}
	}
	return eligibilitySource{kind: sourceAbsent}
}

// =============================================================================
// INTERPRETER
// =============================================================================

// Result is the interpreted reply: the final HTML body for the assistant
// transcript entry, plus a pointer to synthesized audio if any.
type Result struct {
	Body     string
	AudioURL string
}

// Interpret builds the final assistant message body from a raw reply.
//
// The eligibility augmentation is isolated in augmentEligibility so a
// malformed block degrades to the base body; the localized follow-up prompt
// is still appended whenever the terminal step was reached with a candidate
// source, matching the service's conversational flow.
func Interpret(resp *api.ChatResponse, lang locale.Language) Result {
	body := resp.ResponseHTML

	src := resolveSource(resp)
	if resp.TerminalSignal() && src.kind != sourceAbsent {
		body += augmentEligibility(src)
		body += "<br><br><b>" + lang.FollowUpPrompt() + "</b>"
	}

	return Result{Body: body, AudioURL: resp.AudioURL}
}

// augmentEligibility renders the eligibility block for the resolved source.
// Returns "" when the source cannot be parsed; the failure is logged only.
func augmentEligibility(src eligibilitySource) string {
	payload := src.payload
	if src.kind == sourceRawText {
		parsed, err := parseFencedPayload(src.raw)
		if err != nil {
			slog.Warn("eligibility parse failed, showing base reply", "error", err)
			return ""
		}
		payload = parsed
	}

	if len(payload.EligibleSchemes) == 0 {
		return "<br><br><i>Based on your answers, we couldn't find specific schemes, or further verification is required.</i>"
	}

	var b strings.Builder
	b.WriteString("<br><br><b>✅ Eligible Schemes:</b><br>")
	for _, s := range payload.EligibleSchemes {
		b.WriteString("🟢 <b>" + s.Scheme + "</b><br><i>" + s.Reason + "</i><br>")
		if s.KeyFeatures != "" {
			b.WriteString("➔ <b>Key Features:</b> " + s.KeyFeatures + "<br>")
		}
		if s.Documents != "" {
			b.WriteString("➔ <b>Documents Required:</b> " + s.Documents + "<br><br>")
		}
	}
	return b.String()
}

// parseFencedPayload strips surrounding markdown code fences (with an
// optional language tag on the opening fence) and whitespace, then parses
// the remainder as an eligibility payload.
func parseFencedPayload(raw string) (*api.EligibilityPayload, error) {
	clean := strings.TrimSpace(raw)

	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
		// Drop the language tag ("json") up to the first newline.
		if idx := strings.IndexByte(clean, '\n'); idx >= 0 && !strings.ContainsRune(clean[:idx], '{') {
			clean = clean[idx+1:]
		}
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	clean = strings.TrimSpace(clean)

	var payload api.EligibilityPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
