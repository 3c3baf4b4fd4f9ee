// Package langsync keeps a client's current locale, the locale marker in its
// URL and its persisted preference in agreement.
//
// The package is split in three layers:
//
//   - Store is an injectable observable cell holding the current locale.
//   - Reduce is a pure function that turns the current State and an Event
//     (Mount, Navigate, Switch) into a Plan describing the mutations needed.
//   - Synchronizer executes plans against a Navigator (URL replacement and
//     reloads) and a PreferenceStore (the persisted "language" cookie).
//
// A Synchronizer never reacts to a mutation it performs itself. Every pass runs
// inside an idle -> reconciling -> idle cycle of a statemachine.Machine; events
// arriving while a pass is in flight are either recognised as self-caused and
// dropped, or queued and replayed once the pass settles. No timers are involved.
//
// Basic usage:
//
//	store := langsync.NewStore(locale.EN)
//	nav := langsync.NewMemoryNavigator(u)
//	prefs := langsync.NewMemoryPreference()
//
//	s := langsync.New(store, nav, prefs,
//		langsync.WithHardReload(langsync.DetailPages("/blog/", "/work/")),
//	)
//	defer s.Close()
//
//	initial := locale.FR
//	if err := s.Mount(ctx, u, &initial); err != nil {
//		return err
//	}
//
//	// A locale switcher only touches the store.
//	store.Set(locale.EN)
package langsync
