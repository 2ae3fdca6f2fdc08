// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package locale defines the fixed set of supported conversation languages
// and the localized strings the client renders itself (everything else comes
// from the assistant service already localized).
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// =============================================================================
// LANGUAGE TYPE
// =============================================================================

// Language is a short locale code from the supported set.
type Language string

const (
	English  Language = "en"
	Hindi    Language = "hi"
	Marathi  Language = "mr"
	Tamil    Language = "ta"
	Telugu   Language = "te"
	Punjabi  Language = "pa"
	Haryanvi Language = "haryanvi"
)

// Default is the base language used when no translation is registered.
const Default = English

// String returns the short locale code.
func (l Language) String() string {
	return string(l)
}

// IsValid reports whether l is one of the supported languages.
func (l Language) IsValid() bool {
	_, ok := fullNames[l]
	return ok
}

// Supported returns the supported languages in display order.
func Supported() []Language {
	return []Language{English, Hindi, Marathi, Tamil, Telugu, Punjabi, Haryanvi}
}

// =============================================================================
// PARSING
// =============================================================================

// matcher resolves BCP 47-ish inputs ("hi-IN", "en_US") to a supported tag.
// Haryanvi has no standard tag and is handled by exact match only.
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Hindi,
	language.Marathi,
	language.Tamil,
	language.Telugu,
	language.Punjabi,
})

var tagToLanguage = map[string]Language{
	"en": English,
	"hi": Hindi,
	"mr": Marathi,
	"ta": Tamil,
	"te": Telugu,
	"pa": Punjabi,
}

// Parse maps a user-supplied locale string to a supported Language.
// It accepts exact short codes, full names, and regional variants
// ("hi-IN" resolves to Hindi). Returns false for anything else.
func Parse(s string) (Language, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "", false
	}

	// Exact short code (covers "haryanvi", which x/text cannot).
	if l := Language(s); l.IsValid() {
		return l, true
	}

	// Full name ("hindi", "marathi", ...).
	for l, name := range fullNames {
		if s == name {
			return l, true
		}
	}

	// Regional variants via x/text matching.
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return "", false
	}
	base, _ := []language.Tag{
		language.English, language.Hindi, language.Marathi,
		language.Tamil, language.Telugu, language.Punjabi,
	}[idx].Base()
	if l, ok := tagToLanguage[base.String()]; ok {
		return l, true
	}
	return "", false
}

// =============================================================================
// LOCALIZED STRINGS
// =============================================================================

// fullNames maps short codes to the full language name the weather-advisory
// endpoint expects.
var fullNames = map[Language]string{
	English:  "english",
	Hindi:    "hindi",
	Marathi:  "marathi",
	Tamil:    "tamil",
	Telugu:   "telugu",
	Punjabi:  "punjabi",
	Haryanvi: "haryanvi",
}

// FullName returns the full language name for the weather-advisory request.
func (l Language) FullName() string {
	if name, ok := fullNames[l]; ok {
		return name
	}
	return fullNames[Default]
}

// followUpPrompts holds the localized "which scheme are you interested in?"
// suffix appended after an eligibility listing. Languages without an entry
// fall back to English.
var followUpPrompts = map[Language]string{
	English: "Which scheme are you interested in?",
	Hindi:   "आप किस योजना में रुचि रखते हैं?",
	Marathi: "तुम्हाला कोणत्या योजनेत रस आहे?",
	Tamil:   "நீங்கள் எந்த திட்டத்தில் ஆர்வமாக உள்ளீர்கள்?",
	Telugu:  "మీరు ఏ పథకం పట్ల ఆసక్తి చూపుతున్నారు?",
}

// FollowUpPrompt returns the localized follow-up question for l,
// defaulting to the English phrasing.
func (l Language) FollowUpPrompt() string {
	if p, ok := followUpPrompts[l]; ok {
		return p
	}
	return followUpPrompts[Default]
}

// placeholders holds the localized input-field placeholder text.
var placeholders = map[Language]string{
	English:  "Type your question here...",
	Hindi:    "अपना सवाल यहाँ लिखें...",
	Marathi:  "आपला प्रश्न येथे लिहा...",
	Tamil:    "உங்கள் கேள்வியை இங்கே எழுதுங்கள்...",
	Telugu:   "మీ ప్రశ్నను ఇక్కడ టైప్ చేయండి...",
	Punjabi:  "ਆਪਣਾ ਸਵਾਲ ਇੱਥੇ ਲਿਖੋ...",
	Haryanvi: "अपना सवाल यहाँ लिखो...",
}

// Placeholder returns the localized input placeholder for l.
func (l Language) Placeholder() string {
	if p, ok := placeholders[l]; ok {
		return p
	}
	return placeholders[Default]
}
