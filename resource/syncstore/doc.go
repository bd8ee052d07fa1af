// Package syncstore provides the generic synchronization engine that keeps a
// local, ordered resource collection consistent with a remote authority.
//
// A Store owns the authoritative local snapshot of one collection and applies
// mutations through the remote client it was constructed with:
//   - Load replaces the collection atomically with the server list
//   - Create appends the server-returned entity
//   - Update follows the write-then-read protocol: the acknowledged write is
//     followed by a get-by-id fetch and the canonical entity replaces the
//     local entry in place
//   - Delete removes the entry by identity, preserving relative order
//
// Failures never mutate the collection (last-known-good is preserved) and are
// surfaced unchanged; the engine performs no retries.
//
// An EditSession mediates between "nothing is being edited", "a new entity is
// being drafted" and "an existing entity is being edited". The tagged state
// makes simultaneous dual-mode sessions unrepresentable; drafts are copies and
// never shared by reference with the committed collection.
//
// Scheduling model: single-flow cooperative. Store and EditSession perform no
// internal locking; at most one in-flight mutating operation per collection is
// a documented caller precondition.
//
// Common usage pattern:
//
//	store, err := syncstore.New[library.Book, library.BookDraft](
//		remote,
//		syncstore.WithName("books"),
//		syncstore.WithLogger(logger),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	if err := store.Load(ctx); err != nil {
//		// collection unchanged, error carries the taxonomy class
//	}
package syncstore
