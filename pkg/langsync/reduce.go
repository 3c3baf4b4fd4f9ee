package langsync

import (
	"net/url"

	"github.com/dmitrymomot/folio/pkg/locale"
)

// State is the input of Reduce.
type State struct {
	// Cell is the current store value.
	Cell locale.Locale
	// URL is the current location.
	URL *url.URL
	// Key is the marker query key. Empty means locale.QueryKey.
	Key string
	// HardReload marks pages whose body was rendered server-side for one locale only.
	HardReload bool
}

// Event is one of Mount, Navigate or Switch.
type Event interface {
	isEvent()
}

// Mount is dispatched once when the client runtime starts.
// Initial carries the locale resolved by the server, if any.
type Mount struct {
	Initial *locale.Locale
}

// Navigate is dispatched when the location changes.
type Navigate struct {
	URL *url.URL
}

// Switch is dispatched when something outside the synchronizer sets the locale.
type Switch struct {
	Locale locale.Locale
}

func (Mount) isEvent()    {}
func (Navigate) isEvent() {}
func (Switch) isEvent()   {}

// Plan lists the mutations a reconciliation pass must perform.
type Plan struct {
	// Locale is the cell value after the pass.
	Locale locale.Locale
	// SetCell requests writing Locale into the store.
	SetCell bool
	// ReplaceURL, when non-nil, is the location to replace the current one with.
	ReplaceURL *url.URL
	// Persist requests saving Locale to the preference store.
	Persist bool
	// Reload requests a full page reload of ReplaceURL (or the current URL).
	Reload bool
}

// NoOp reports whether the plan performs no mutation.
func (p Plan) NoOp() bool {
	return !p.SetCell && p.ReplaceURL == nil && !p.Persist && !p.Reload
}

// Reduce computes the plan for applying e to s. It has no side effects.
func Reduce(s State, e Event) Plan {
	if s.Key == "" {
		s.Key = locale.QueryKey
	}

	switch ev := e.(type) {
	case Mount:
		return reduceMount(s, ev)
	case Navigate:
		if ev.URL != nil {
			s.URL = ev.URL
		}
		return reduceNavigate(s)
	case Switch:
		return reduceSwitch(s, locale.Parse(ev.Locale.String()))
	default:
		return Plan{Locale: s.Cell}
	}
}

// URL marker wins over the server value; the server value wins over the cell.
func reduceMount(s State, ev Mount) Plan {
	p := Plan{Locale: s.Cell}
	marker, valid := urlMarker(s.URL, s.Key)

	switch {
	case valid:
		p.Locale = marker
		p.Persist = true
	case ev.Initial != nil:
		p.Locale = locale.Parse(ev.Initial.String())
	}
	p.SetCell = p.Locale != s.Cell

	if !valid && s.URL != nil {
		p.ReplaceURL = locale.WithMarker(s.URL, s.Key, p.Locale)
	}
	return p
}

func reduceNavigate(s State) Plan {
	p := Plan{Locale: s.Cell}
	if s.URL == nil {
		return p
	}

	marker, valid := urlMarker(s.URL, s.Key)
	if !valid {
		p.ReplaceURL = locale.WithMarker(s.URL, s.Key, s.Cell)
		return p
	}
	if marker != s.Cell {
		p.Locale = marker
		p.SetCell = true
		p.Persist = true
	}
	return p
}

func reduceSwitch(s State, l locale.Locale) Plan {
	p := Plan{Locale: l, SetCell: l != s.Cell}
	if s.URL == nil {
		p.Persist = p.SetCell
		return p
	}

	marker, valid := urlMarker(s.URL, s.Key)
	if valid && marker == l {
		// URL already agrees; only the cell may lag behind.
		p.Persist = p.SetCell
		return p
	}

	p.ReplaceURL = locale.WithMarker(s.URL, s.Key, l)
	p.Persist = true
	p.Reload = s.HardReload
	return p
}

func urlMarker(u *url.URL, key string) (locale.Locale, bool) {
	if u == nil {
		return locale.Default, false
	}
	raw, ok := locale.Marker(u.RawQuery, key)
	if !ok || !locale.IsValid(raw) {
		return locale.Default, false
	}
	return locale.Locale(raw), true
}
