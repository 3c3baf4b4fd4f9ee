// Package content resolves locale-specific content records (blog posts and
// projects) from a filesystem.
//
// Each kind lives in its own directory. A file named <slug>.mdx belongs to
// EN and <slug>.fr.mdx to FR; both share the locale-free slug and together
// form a bilingual Pair. Every file starts with YAML front matter followed by
// an opaque body.
//
// Listings are sorted by publish date, newest first, and may be narrowed with
// a 1-based inclusive Range. A file that cannot be read or parsed is logged
// and left out; a missing directory is an empty listing. Neither is an error.
//
//	r := content.NewResolver(os.DirFS("./content"), content.WithLogger(log))
//	posts, _ := r.List(ctx, content.KindPost, locale.FR, content.NewRange(1, 3))
//	pair := r.GetBothLocales(ctx, content.KindProject, "folio")
//	if rec := pair.Pick(locale.FR); rec != nil { ... }
//
// Listings can be cached with WithCache. Cache keys include a fingerprint of
// the directory listing (names, sizes and modification times), so editing a
// file invalidates the entry on the next request.
package content
