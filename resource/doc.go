// Package resource provides core abstractions and types for synchronizing
// local resource collections with a remote authority.
//
// This package defines the fundamental interfaces and types used across
// the synchronization engine, including the remote client contract, the
// remote error taxonomy, and common observability interfaces.
//
// The remote authority exposes one collection per entity type supporting
// list, get-by-id, create, update and delete. Failures are classified into
// four distinguishable classes:
//   - ErrTransport: connectivity or server failure, not attributable to the request
//   - ErrValidation: the remote authority rejected the payload's content
//   - ErrNotFound: the identity does not resolve
//   - ErrConflict: a domain rule was violated (e.g. returning a returned book)
//
// Common usage pattern:
//
//	store := syncstore.New[library.Author, library.AuthorDraft](remote)
//	if err := store.Load(ctx); err != nil {
//		if errors.Is(err, resource.ErrTransport) {
//			// backend unreachable, last-known-good collection is preserved
//		}
//	}
package resource
