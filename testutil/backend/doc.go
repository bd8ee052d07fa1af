// Package backend is a reference implementation of the remote authority the
// synchronization engine talks to: a gin HTTP server over a SQLite database
// exposing the four resource collections plus the borrow return action.
//
// It exists for the test suite (hermetic end-to-end scenarios over
// httptest.NewServer) and for local development via cmd/backend. It enforces
// the domain rules the engine deliberately leaves to the server: referential
// integrity of authorId/bookId/memberId, one open loan per book, and the
// one-way return transition. Denormalized fields (authorName, bookTitle,
// memberName) are computed by JOIN at read time, never stored.
package backend
