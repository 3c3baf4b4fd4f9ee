package locale

import (
	"golang.org/x/text/language"
)

// Locale is one of the two supported content languages.
type Locale string

const (
	// EN is English, the universal default.
	EN Locale = "EN"
	// FR is French.
	FR Locale = "FR"
)

// Default is returned whenever a value cannot be resolved.
const Default = EN

// Wire names shared by the detector, the redirect policy and the client synchronizer.
const (
	QueryKey      = "lang"
	CookieName    = "language"
	CookieMaxAge  = 60 * 60 * 24 * 365 // one year, in seconds
	HeaderName    = "X-Language"
	PathSuffix    = "-fr"
	FileSuffixFR  = ".fr"
	XDefaultAlias = "x-default"
)

// All returns both locales, EN first.
func All() []Locale {
	return []Locale{EN, FR}
}

// Parse converts an untrusted string into a Locale.
// Only the exact string "FR" yields FR; everything else, including "fr", yields EN.
func Parse(candidate string) Locale {
	if candidate == string(FR) {
		return FR
	}
	return EN
}

// IsValid reports whether s is a canonical locale marker ("EN" or "FR").
func IsValid(s string) bool {
	return s == string(EN) || s == string(FR)
}

// String returns the canonical tag.
func (l Locale) String() string {
	if l == FR {
		return string(FR)
	}
	return string(EN)
}

// Other returns the opposite locale.
func (l Locale) Other() Locale {
	if l == FR {
		return EN
	}
	return FR
}

// Tag returns the BCP 47 language tag.
func (l Locale) Tag() language.Tag {
	if l == FR {
		return language.French
	}
	return language.English
}

// HrefLang returns the value used in hreflang alternates ("en" or "fr").
func (l Locale) HrefLang() string {
	base, _ := l.Tag().Base()
	return base.String()
}

// OpenGraph returns the og:locale value ("en_US" or "fr_FR").
func (l Locale) OpenGraph() string {
	if l == FR {
		return "fr_FR"
	}
	return "en_US"
}
