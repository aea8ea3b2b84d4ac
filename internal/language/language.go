package language

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// names covers the languages Whisper detects most often. Codes outside the
// table fall back to title-casing the code itself.
var names = map[string]string{
	"en": "english",
	"es": "spanish",
	"fr": "french",
	"de": "german",
	"it": "italian",
	"pt": "portuguese",
	"ca": "catalan",
	"ja": "japanese",
	"ko": "korean",
	"zh": "chinese",
	"ru": "russian",
	"ar": "arabic",
	"hi": "hindi",
	"nl": "dutch",
	"pl": "polish",
	"sv": "swedish",
	"da": "danish",
	"no": "norwegian",
	"fi": "finnish",
	"tr": "turkish",
	"uk": "ukrainian",
}

var titler = cases.Title(language.Und)

// Display returns a human-readable name for a detected language code.
// Unknown or empty codes are returned title-cased as-is.
func Display(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return "Unknown"
	}
	if name, ok := names[normalized]; ok {
		return titler.String(name)
	}
	return titler.String(normalized)
}
