// Package langdetect resolves the effective locale of an inbound request
// from several conflicting signals.
//
// Signals are consulted in a fixed priority order and the first conclusive
// one wins:
//
//  1. A path ending in the "-fr" marker (or containing "-fr/") yields FR.
//  2. An explicit "lang" query value: "fr" in any casing yields FR, any other
//     non-empty value yields EN.
//  3. A "language" cookie equal to "FR" yields FR.
//  4. An Accept-Language header containing "fr" (case-insensitive) yields FR.
//  5. Otherwise EN.
//
// An EN cookie does not short-circuit step 4. A browser that now advertises
// French is still served French even if it once stored EN. This asymmetry is
// kept as the deployed site behaves; it needs product sign-off before anyone
// makes the cookie symmetric.
//
// The detector also classifies the client as automated (search engine or
// link-preview bot) via the useragent package. Classification never changes
// the resolved locale; it only changes how the canonical package
// communicates it.
//
// Paths for API endpoints, framework assets, files with an extension and a
// few static prefixes are excluded with Skip and must not be detected at all.
//
// # Usage
//
//	d := langdetect.New()
//	if !d.Skip(r.URL.Path) {
//	    res := d.FromRequest(r)
//	    _ = res.Locale    // locale.EN or locale.FR
//	    _ = res.Automated // crawler?
//	}
package langdetect
