// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The assistant service replies with a small HTML subset: <br> for line
// breaks, <b>/<i> for emphasis. These helpers flatten that to terminal
// text, with optional emphasis hooks so the UI can apply its styles.

// Emphasis maps bold and italic segments to their rendered form. A nil
// hook leaves the segment unstyled.
type Emphasis struct {
	Bold   func(string) string
	Italic func(string) string
}

// HTMLToText flattens an HTML fragment to plain text, turning <br> into
// newlines and dropping all other markup.
func HTMLToText(fragment string) string {
	return RenderHTML(fragment, Emphasis{})
}

// RenderHTML flattens an HTML fragment to terminal text, applying the
// emphasis hooks to <b>/<strong> and <i>/<em> content. Unparseable input
// is returned as-is; a mangled reply still beats a blank one.
func RenderHTML(fragment string, em Emphasis) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimRight(renderSelection(doc.Selection, em), "\n ")
}

func renderSelection(sel *goquery.Selection, em Emphasis) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "#text":
			b.WriteString(s.Text())
		case "br":
			b.WriteByte('\n')
		case "b", "strong":
			b.WriteString(applyHook(renderSelection(s, em), em.Bold))
		case "i", "em":
			b.WriteString(applyHook(renderSelection(s, em), em.Italic))
		default:
			b.WriteString(renderSelection(s, em))
		}
	})
	return b.String()
}

func applyHook(s string, hook func(string) string) string {
	if hook == nil {
		return s
	}
	return hook(s)
}
