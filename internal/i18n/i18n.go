// Package i18n maps (language, key) pairs to localized message templates.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Supported language codes.
const (
	Russian = "ru"
	English = "en"
)

// DefaultLanguage is used for unknown language codes.
var DefaultLanguage = Russian

// Languages lists supported languages, default first.
var Languages = []string{Russian, English}

var matcher = language.NewMatcher([]language.Tag{language.Russian, language.English})

// SetDefault changes the fallback language. Unsupported codes are ignored.
func SetDefault(code string) {
	if _, ok := messages[code]; ok {
		DefaultLanguage = code
	}
}

// Supported reports whether code has a message table.
func Supported(code string) bool {
	_, ok := messages[code]
	return ok
}

// T returns the template for key in lang. Unknown languages fall back to the
// default language and unknown keys return the key itself.
func T(lang, key string) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[DefaultLanguage]
	}
	if s, ok := table[key]; ok {
		return s
	}
	return key
}

// Tf formats the template for key in lang with args.
func Tf(lang, key string, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

// Match picks the closest supported language for a client language code
// such as "en-US" or "uk". Empty or unknown codes yield the default language.
func Match(code string) string {
	if code == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLanguage
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLanguage
	}
	return []string{Russian, English}[idx]
}

// IsLabel reports whether text equals the label for key in any supported language.
func IsLabel(text, key string) bool {
	return LabelKey(text, key) != ""
}

// LabelKey returns the first of keys whose label in any language equals text,
// or "" when none match.
func LabelKey(text string, keys ...string) string {
	for _, key := range keys {
		for _, lang := range Languages {
			if s, ok := messages[lang][key]; ok && s == text {
				return key
			}
		}
	}
	return ""
}
