package library

import (
	"context"
	"errors"

	"github.com/libreshelf/library-console-go/resource"
	"github.com/libreshelf/library-console-go/resource/syncstore"
)

var ErrNilBorrowRemote = errors.New("nil borrow remote supplied")
var ErrCreatingBorrowFailed = errors.New("creating borrow record at remote authority failed")
var ErrReturningBorrowFailed = errors.New("returning borrow record at remote authority failed")

// BorrowStore specializes the generic store for borrow records.
//
// It differs from the generic engine in two places. Creation requires a full
// collection refresh instead of an optimistic append, because a successful
// borrow may affect availability state the client does not track. Return is a
// domain action outside plain CRUD; its acknowledged write is followed by a
// canonical re-fetch of the record, the same write-then-read discipline the
// generic Update follows, so the server-stamped return date is what the local
// collection holds.
type BorrowStore struct {
	store  *syncstore.Store[BorrowRecord, BorrowDraft]
	remote BorrowRemote
}

// NewBorrowStore creates a BorrowStore bound to the given remote with optional
// store configuration. The collection name defaults to "borrowrecords".
func NewBorrowStore(
	remote BorrowRemote,
	options ...syncstore.Option[BorrowRecord, BorrowDraft],
) (*BorrowStore, error) {

	if remote == nil {
		return nil, ErrNilBorrowRemote
	}

	combined := append(
		[]syncstore.Option[BorrowRecord, BorrowDraft]{
			syncstore.WithName[BorrowRecord, BorrowDraft]("borrowrecords"),
		},
		options...,
	)

	store, err := syncstore.New[BorrowRecord, BorrowDraft](remote, combined...)
	if err != nil {
		return nil, err
	}

	return &BorrowStore{
		store:  store,
		remote: remote,
	}, nil
}

// Load fetches the full collection from the remote authority.
func (bs *BorrowStore) Load(ctx context.Context) error {
	return bs.store.Load(ctx)
}

// CreateBorrow records a new borrowing of bookID by memberID, then reloads the
// full collection rather than appending locally. On failure the collection is
// untouched and the remote error propagates verbatim; the remote authority is
// the source of truth for domain rule violations such as a book already on
// loan, and no availability pre-validation happens here.
func (bs *BorrowStore) CreateBorrow(ctx context.Context, bookID resource.ID, memberID resource.ID) error {
	draft := BorrowDraft{
		BookID:   bookID,
		MemberID: memberID,
	}

	if _, err := bs.remote.Create(ctx, draft); err != nil {
		return errors.Join(ErrCreatingBorrowFailed, err)
	}

	return bs.store.Load(ctx)
}

// Return invokes the remote return action keyed by id, then re-fetches the
// canonical record and replaces the local entry in place. On failure the
// local entry is left unchanged and the error is surfaced; a double return is
// rejected by the remote authority with a conflict.
func (bs *BorrowStore) Return(ctx context.Context, id resource.ID) (BorrowRecord, error) {
	var empty BorrowRecord

	if err := bs.remote.Return(ctx, id); err != nil {
		return empty, errors.Join(ErrReturningBorrowFailed, err)
	}

	returned, err := bs.store.Refresh(ctx, id)
	if err != nil {
		return empty, errors.Join(ErrReturningBorrowFailed, err)
	}

	return returned, nil
}

// Delete removes the record at the remote authority and locally, permitted on
// both outstanding and returned records.
func (bs *BorrowStore) Delete(ctx context.Context, id resource.ID) error {
	return bs.store.Delete(ctx, id)
}

// All returns a copy of the local collection in presentation order.
func (bs *BorrowStore) All() []BorrowRecord {
	return bs.store.All()
}

// Find returns the local record with the given identity, if present.
func (bs *BorrowStore) Find(id resource.ID) (BorrowRecord, bool) {
	return bs.store.Find(id)
}

// Len returns the number of records in the local collection.
func (bs *BorrowStore) Len() int {
	return bs.store.Len()
}

// Ready reports whether the store has completed at least one successful Load.
func (bs *BorrowStore) Ready() bool {
	return bs.store.Ready()
}

// Outstanding returns the records whose books are still on loan,
// derived from the data on every call.
func (bs *BorrowStore) Outstanding() []BorrowRecord {
	return bs.filterByStatus(StatusOutstanding)
}

// Returned returns the records whose books have been returned,
// derived from the data on every call.
func (bs *BorrowStore) Returned() []BorrowRecord {
	return bs.filterByStatus(StatusReturned)
}

func (bs *BorrowStore) filterByStatus(status BorrowStatus) []BorrowRecord {
	filtered := make([]BorrowRecord, 0)

	for _, record := range bs.store.All() {
		if record.Status() == status {
			filtered = append(filtered, record)
		}
	}

	return filtered
}
