package langdetect

// Option configures a Detector.
type Option func(*Detector)

// WithCookieName sets the preference cookie name. Empty names are ignored.
func WithCookieName(name string) Option {
	return func(d *Detector) {
		if name == "" {
			return
		}
		d.cookieName = name
	}
}

// WithQueryParamName sets the locale marker query key. Empty names are ignored.
func WithQueryParamName(name string) Option {
	return func(d *Detector) {
		if name == "" {
			return
		}
		d.queryParam = name
	}
}

// WithSkipPrefixes replaces the list of path prefixes that bypass detection.
func WithSkipPrefixes(prefixes ...string) Option {
	return func(d *Detector) {
		if len(prefixes) == 0 {
			return
		}
		d.skipPrefixes = prefixes
	}
}

// WithCrawlerDetector swaps the crawler classifier.
func WithCrawlerDetector(c CrawlerDetector) Option {
	return func(d *Detector) {
		if c == nil {
			return
		}
		d.crawlers = c
	}
}
