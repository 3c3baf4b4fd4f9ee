package content

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/folio/pkg/locale"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate renders d as a long date in l ("January 2, 2024" or "2 janvier 2024").
// With relative set, a coarse age measured against now is appended in parentheses.
// The age compares calendar fields: year first, then month, then day.
func FormatDate(d time.Time, now time.Time, l locale.Locale, relative bool) string {
	var full string
	if l == locale.FR {
		full = fmt.Sprintf("%d %s %d", d.Day(), frenchMonths[d.Month()-1], d.Year())
	} else {
		full = d.Format("January 2, 2006")
	}
	if !relative {
		return full
	}
	return full + " (" + age(d, now, l) + ")"
}

func age(d, now time.Time, l locale.Locale) string {
	years := now.Year() - d.Year()
	months := int(now.Month()) - int(d.Month())
	days := now.Day() - d.Day()

	if l == locale.FR {
		switch {
		case years > 0:
			return fmt.Sprintf("il y a %d an%s", years, plural(years))
		case months > 0:
			return fmt.Sprintf("il y a %d mois", months)
		case days > 0:
			return fmt.Sprintf("il y a %d jour%s", days, plural(days))
		default:
			return "Aujourd'hui"
		}
	}

	switch {
	case years > 0:
		return fmt.Sprintf("%dy ago", years)
	case months > 0:
		return fmt.Sprintf("%dmo ago", months)
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	default:
		return "Today"
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
