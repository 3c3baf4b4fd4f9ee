// Package useragent classifies HTTP clients as automated crawlers or
// interactive users from their User-Agent string.
//
// Classification is a case-insensitive substring match against a fixed list
// of search engine and link-preview bots. It is intentionally narrow: a
// client only counts as a crawler when it identifies itself as one of the
// known indexers, which is what decides whether the site redirects it to a
// canonical URL or serves it the page directly.
//
// # Usage
//
//	if useragent.IsCrawler(r.UserAgent()) {
//	    // never redirect
//	}
//
//	d := useragent.NewDetector(useragent.WithPatterns("mybot"))
//	name := d.Name(r.UserAgent()) // "Googlebot", "Mybot", ...
package useragent
