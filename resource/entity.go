package resource

import (
	"context"
)

// ID is a type alias for int64, representing a server-assigned entity identity.
type ID = int64

// Entity is implemented by every synchronized entity type.
// Identity returns the server-assigned id; it is zero for unsaved drafts
// and immutable once assigned.
type Entity interface {
	Identity() ID
}

// RemoteClient is the contract of the remote authority for one resource
// collection. T is the fully-populated entity as the server returns it,
// D is the draft/patch shape sent on writes (identity-less).
//
// All calls are blocking and honor context cancellation. Failures are
// reported through the error taxonomy of this package; implementations
// never retry.
type RemoteClient[T Entity, D any] interface {
	// List fetches the full collection in authoritative order.
	List(ctx context.Context) ([]T, error)

	// Get fetches the canonical representation of a single entity.
	Get(ctx context.Context, id ID) (T, error)

	// Create sends an identity-less draft and returns the fully-populated
	// entity, including the server-assigned id and any denormalized fields.
	Create(ctx context.Context, draft D) (T, error)

	// Update sends a patch keyed by id. The response shape is an
	// acknowledgement only and must not be relied upon; callers re-fetch
	// with Get to observe server-side computed fields.
	Update(ctx context.Context, id ID, patch D) error

	// Delete removes the entity keyed by id.
	Delete(ctx context.Context, id ID) error
}
