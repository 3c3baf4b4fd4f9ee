package useragent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/pkg/useragent"
)

func TestIsCrawler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ua   string
		want bool
	}{
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", true},
		{"bingbot upper case", "MOZILLA/5.0 (COMPATIBLE; BINGBOT/2.0)", true},
		{"yahoo slurp", "Mozilla/5.0 (compatible; Yahoo! Slurp; http://help.yahoo.com/help/us/ysearch/slurp)", true},
		{"duckduckbot", "DuckDuckBot/1.1; (+http://duckduckgo.com/duckduckbot.html)", true},
		{"facebook preview", "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)", true},
		{"twitter card", "Twitterbot/1.0", true},
		{"whatsapp", "WhatsApp/2.23.20.0", true},
		{"telegram", "TelegramBot (like TwitterBot)", true},
		{"chrome desktop", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", false},
		{"safari iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile/15E148 Safari/604.1", false},
		{"generic bot not in list", "SomeRandomBot/1.0", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, useragent.IsCrawler(tt.ua))
		})
	}
}

func TestDetectorOptions(t *testing.T) {
	t.Parallel()

	t.Run("extra patterns", func(t *testing.T) {
		d := useragent.NewDetector(useragent.WithPatterns("SomeRandomBot"))
		assert.True(t, d.IsCrawler("SomeRandomBot/1.0"))
		assert.True(t, d.IsCrawler("Googlebot/2.1"))
	})

	t.Run("only patterns", func(t *testing.T) {
		d := useragent.NewDetector(useragent.WithOnlyPatterns("internalcheck"))
		assert.True(t, d.IsCrawler("InternalCheck/0.1"))
		assert.False(t, d.IsCrawler("Googlebot/2.1"))
	})

	t.Run("long header is matched in full", func(t *testing.T) {
		ua := strings.Repeat("a", 1024) + "googlebot"
		assert.True(t, useragent.NewDetector().IsCrawler(ua))
	})
}

func TestDetectorName(t *testing.T) {
	t.Parallel()

	d := useragent.NewDetector(useragent.WithPatterns("acmebot"))
	assert.Equal(t, "Googlebot", d.Name("Mozilla/5.0 (compatible; Googlebot/2.1)"))
	assert.Equal(t, "DuckDuckBot", d.Name("DuckDuckBot/1.1"))
	assert.Equal(t, "Acmebot", d.Name("AcmeBot/3.0"))
	assert.Equal(t, "", d.Name("Mozilla/5.0 (X11; Linux x86_64) Firefox/120.0"))
}
