package useragent

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultPatterns lists the crawler identity substrings recognised out of the box.
var DefaultPatterns = []string{
	"googlebot",
	"bingbot",
	"slurp",
	"duckduckbot",
	"baiduspider",
	"yandexbot",
	"sogou",
	"facebook",
	"twitter",
	"linkedinbot",
	"whatsapp",
	"telegrambot",
}

// keywordSet optimizes keyword lookups using map structure
type keywordSet map[string]struct{}

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, len(keywords))
	for _, word := range keywords {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			result[word] = struct{}{}
		}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// Bot name extraction keywords - direct mapping for common crawlers
var botNameMap = map[string]string{
	"googlebot":           "Googlebot",
	"bingbot":             "Bingbot",
	"yandexbot":           "Yandexbot",
	"baiduspider":         "Baiduspider",
	"duckduckbot":         "DuckDuckBot",
	"slurp":               "Yahoo Slurp",
	"twitterbot":          "Twitterbot",
	"facebookexternalhit": "Facebook",
	"linkedinbot":         "Linkedinbot",
	"whatsapp":            "WhatsApp",
	"telegrambot":         "Telegrambot",
}

var botNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([a-z0-9\-_]+bot)`),
	regexp.MustCompile(`(?i)([a-z0-9\-_]+spider)`),
	regexp.MustCompile(`(?i)([a-z0-9\-_]+crawler)`),
}

// Detector classifies user agents against a fixed pattern set.
// A Detector is immutable and safe for concurrent use.
type Detector struct {
	patterns keywordSet
}

// Option configures a Detector.
type Option func(*Detector)

// WithPatterns adds crawler identity substrings to the default set.
func WithPatterns(patterns ...string) Option {
	return func(d *Detector) {
		for k := range newKeywordSet(patterns...) {
			d.patterns[k] = struct{}{}
		}
	}
}

// WithOnlyPatterns replaces the default set entirely.
func WithOnlyPatterns(patterns ...string) Option {
	return func(d *Detector) {
		d.patterns = newKeywordSet(patterns...)
	}
}

// NewDetector returns a Detector seeded with DefaultPatterns.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{patterns: newKeywordSet(DefaultPatterns...)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDetector = NewDetector()

// IsCrawler reports whether ua belongs to a known crawler using the default patterns.
func IsCrawler(ua string) bool {
	return defaultDetector.IsCrawler(ua)
}

// IsCrawler reports whether ua matches any configured crawler pattern, case-insensitively.
func (d *Detector) IsCrawler(ua string) bool {
	if ua == "" || d == nil {
		return false
	}
	return d.patterns.contains(strings.ToLower(ua))
}

// Name returns a human-readable crawler name for logging, or "" when ua is not a crawler.
func (d *Detector) Name(ua string) string {
	if !d.IsCrawler(ua) {
		return ""
	}
	return extractBotName(ua)
}

// extractBotName has a fast path for well known crawlers and falls back to regex extraction.
func extractBotName(userAgent string) string {
	lowerUA := strings.ToLower(userAgent)

	if strings.Contains(lowerUA, "googlebot") {
		return "Googlebot"
	}

	for keyword, name := range botNameMap {
		if strings.Contains(lowerUA, keyword) {
			return name
		}
	}

	title := cases.Title(language.English)
	for _, pattern := range botNamePatterns {
		if matches := pattern.FindStringSubmatch(userAgent); len(matches) > 1 {
			return title.String(strings.ToLower(matches[1]))
		}
	}

	return "Unknown Bot"
}
