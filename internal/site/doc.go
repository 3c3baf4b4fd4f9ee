// Package site assembles the bilingual portfolio: pages, the JSON content API,
// the sitemap and the no-JS language switch, served by one chi router.
//
// Page routes run behind canonical.Middleware, so every page URL carries an
// explicit lang marker and handlers read the resolved locale from the request.
// /api, /language, /fr aliases, health probes and static text endpoints bypass
// detection.
//
//	bag, _ := site.LoadLabels(os.DirFS(dir), "labels")
//	s := site.New(content.NewResolver(os.DirFS(dir)), bag, site.WithBaseURL("https://example.com"))
//	http.ListenAndServe(":8080", s.Handler())
//
// Run wires the same from a Config, including the optional listing cache
// (in-process LRU or Redis) and readiness checks.
package site

//go:generate templ generate -f layout.templ
