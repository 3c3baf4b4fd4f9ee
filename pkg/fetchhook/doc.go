// Package fetchhook keeps locale-dependent views in step with a langsync.Store.
//
// ListView holds a list rendered server-side for one locale. When the store
// switches to another locale the view refetches the list through a Fetcher and
// swaps it in. Each fetch is tagged with the locale it was issued for; a fetch
// overtaken by a newer switch is cancelled and its result dropped. A failed
// fetch leaves the previous records in place.
//
// DetailView holds both locale variants of one item, embedded at render time,
// and exposes the one matching the current locale with a fallback to whichever
// side exists. Bodies are not refetched; pages that need a fresh server render
// on switch are reloaded by the langsync.Synchronizer (see langsync.WithHardReload).
//
// HTTPFetcher and HTTPItemFetcher read the site's JSON API.
package fetchhook
