package models

import (
	"errors"
	"strings"
)

// Language represents a supported interface language
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageHaitian Language = "ht"
)

// DefaultLanguage is used when a request does not name a language
const DefaultLanguage = LanguageEnglish

// ErrUnsupportedLanguage is returned for language codes outside SupportedLanguages
var ErrUnsupportedLanguage = errors.New("unsupported language")

// SupportedLanguages lists every language the service has content for
var SupportedLanguages = []Language{LanguageEnglish, LanguageSpanish, LanguageHaitian}

// ParseLanguage normalizes a language code. An empty code yields DefaultLanguage.
func ParseLanguage(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return DefaultLanguage, nil
	}
	// Accept region-qualified codes such as "es-MX"
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	for _, lang := range SupportedLanguages {
		if string(lang) == code {
			return lang, nil
		}
	}
	return "", ErrUnsupportedLanguage
}
