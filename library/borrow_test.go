package library_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libreshelf/library-console-go/library"
	"github.com/libreshelf/library-console-go/resource"
)

// fakeBorrowRemote is a remote authority double for borrow records. It stamps
// borrow and return dates server-side the way the real API does, and enforces
// the single-open-loan and single-return domain rules.
type fakeBorrowRemote struct {
	records []library.BorrowRecord
	nextID  resource.ID
	now     time.Time

	createErr error
	returnErr error

	listCalls   int
	getCalls    int
	returnCalls int
}

func newFakeBorrowRemote(initial ...library.BorrowRecord) *fakeBorrowRemote {
	r := &fakeBorrowRemote{
		records: initial,
		now:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	for _, record := range initial {
		if record.ID >= r.nextID {
			r.nextID = record.ID
		}
	}

	return r
}

func (r *fakeBorrowRemote) List(_ context.Context) ([]library.BorrowRecord, error) {
	r.listCalls++
	listed := make([]library.BorrowRecord, len(r.records))
	copy(listed, r.records)

	return listed, nil
}

func (r *fakeBorrowRemote) Get(_ context.Context, id resource.ID) (library.BorrowRecord, error) {
	r.getCalls++
	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}

	return library.BorrowRecord{}, resource.NewRemoteError(resource.ErrNotFound, "borrow record not found", 404)
}

func (r *fakeBorrowRemote) Create(_ context.Context, draft library.BorrowDraft) (library.BorrowRecord, error) {
	if r.createErr != nil {
		return library.BorrowRecord{}, r.createErr
	}

	for _, record := range r.records {
		if record.BookID == draft.BookID && record.ReturnDate == nil {
			return library.BorrowRecord{}, resource.NewRemoteError(resource.ErrConflict, "book is already borrowed", 409)
		}
	}

	r.nextID++
	created := library.BorrowRecord{
		ID:         r.nextID,
		BookID:     draft.BookID,
		MemberID:   draft.MemberID,
		BorrowDate: r.now,
	}
	r.records = append(r.records, created)

	return created, nil
}

func (r *fakeBorrowRemote) Update(_ context.Context, _ resource.ID, _ library.BorrowDraft) error {
	return resource.NewRemoteError(resource.ErrValidation, "borrow records cannot be updated", 400)
}

func (r *fakeBorrowRemote) Delete(_ context.Context, id resource.ID) error {
	for i, record := range r.records {
		if record.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}

	return resource.NewRemoteError(resource.ErrNotFound, "borrow record not found", 404)
}

func (r *fakeBorrowRemote) Return(_ context.Context, id resource.ID) error {
	r.returnCalls++
	if r.returnErr != nil {
		return r.returnErr
	}

	for i, record := range r.records {
		if record.ID == id {
			if record.ReturnDate != nil {
				return resource.NewRemoteError(resource.ErrConflict, "borrow record is already returned", 409)
			}

			returnedAt := r.now
			r.records[i].ReturnDate = &returnedAt

			return nil
		}
	}

	return resource.NewRemoteError(resource.ErrNotFound, "borrow record not found", 404)
}

func newBorrowStore(t *testing.T, remote *fakeBorrowRemote) *library.BorrowStore {
	t.Helper()

	store, err := library.NewBorrowStore(remote)
	require.NoError(t, err)
	require.NoError(t, store.Load(context.Background()))

	return store
}

func Test_NewBorrowStore_RejectsNilRemote(t *testing.T) {
	_, err := library.NewBorrowStore(nil)

	assert.ErrorIs(t, err, library.ErrNilBorrowRemote)
}

func Test_BorrowStore_CreateBorrow_ReloadsFullCollection(t *testing.T) {
	remote := newFakeBorrowRemote()
	store := newBorrowStore(t, remote)
	listCallsBefore := remote.listCalls

	err := store.CreateBorrow(context.Background(), 3, 5)

	require.NoError(t, err)
	assert.Equal(t, listCallsBefore+1, remote.listCalls, "a successful borrow reloads the collection")
	assert.Equal(t, 1, store.Len())

	created := store.All()[0]
	assert.Equal(t, resource.ID(3), created.BookID)
	assert.Equal(t, resource.ID(5), created.MemberID)
	assert.False(t, created.BorrowDate.IsZero(), "the borrow date is stamped by the authority")
	assert.Equal(t, library.StatusOutstanding, created.Status())
}

func Test_BorrowStore_CreateBorrow_ConflictLeavesCollectionUntouched(t *testing.T) {
	remote := newFakeBorrowRemote(library.BorrowRecord{
		ID: 1, BookID: 3, MemberID: 5, BorrowDate: time.Now(),
	})
	store := newBorrowStore(t, remote)
	listCallsBefore := remote.listCalls

	err := store.CreateBorrow(context.Background(), 3, 8)

	require.ErrorIs(t, err, library.ErrCreatingBorrowFailed)
	assert.ErrorIs(t, err, resource.ErrConflict)
	assert.Equal(t, "book is already borrowed", resource.RemoteMessage(err))
	assert.Equal(t, listCallsBefore, remote.listCalls, "a rejected borrow must not reload")
	assert.Equal(t, 1, store.Len())
}

func Test_BorrowStore_Return_RefetchesCanonicalRecord(t *testing.T) {
	remote := newFakeBorrowRemote(
		library.BorrowRecord{ID: 1, BookID: 3, MemberID: 5, BorrowDate: time.Now()},
		library.BorrowRecord{ID: 2, BookID: 4, MemberID: 5, BorrowDate: time.Now()},
	)
	store := newBorrowStore(t, remote)

	returned, err := store.Return(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, returned.ReturnDate, "the return date comes from the canonical re-read")
	assert.Equal(t, remote.now, *returned.ReturnDate)
	assert.Equal(t, 1, remote.returnCalls)
	assert.Equal(t, 1, remote.getCalls, "the return action is followed by a single re-fetch")

	local, found := store.Find(1)
	require.True(t, found)
	assert.Equal(t, library.StatusReturned, local.Status())

	// Order is untouched by the in-place replacement.
	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, resource.ID(1), all[0].ID)
	assert.Equal(t, resource.ID(2), all[1].ID)
}

func Test_BorrowStore_Return_DoubleReturn_ConflictWithoutLocalMutation(t *testing.T) {
	returnedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	remote := newFakeBorrowRemote(library.BorrowRecord{
		ID: 1, BookID: 3, MemberID: 5, BorrowDate: time.Now(), ReturnDate: &returnedAt,
	})
	store := newBorrowStore(t, remote)

	_, err := store.Return(context.Background(), 1)

	require.ErrorIs(t, err, library.ErrReturningBorrowFailed)
	assert.ErrorIs(t, err, resource.ErrConflict)
	assert.Equal(t, 0, remote.getCalls, "a rejected return must not trigger the re-read")

	local, found := store.Find(1)
	require.True(t, found)
	assert.Equal(t, returnedAt, *local.ReturnDate)
}

func Test_BorrowStore_Return_UnknownRecord_NotFound(t *testing.T) {
	store := newBorrowStore(t, newFakeBorrowRemote())

	_, err := store.Return(context.Background(), 42)

	require.ErrorIs(t, err, library.ErrReturningBorrowFailed)
	assert.ErrorIs(t, err, resource.ErrNotFound)
}

func Test_BorrowStore_FiltersDeriveStatusFromData(t *testing.T) {
	returnedAt := time.Now()
	remote := newFakeBorrowRemote(
		library.BorrowRecord{ID: 1, BookID: 3, MemberID: 5, BorrowDate: time.Now()},
		library.BorrowRecord{ID: 2, BookID: 4, MemberID: 5, BorrowDate: time.Now(), ReturnDate: &returnedAt},
		library.BorrowRecord{ID: 3, BookID: 6, MemberID: 8, BorrowDate: time.Now()},
	)
	store := newBorrowStore(t, remote)

	outstanding := store.Outstanding()
	require.Len(t, outstanding, 2)
	assert.Equal(t, resource.ID(1), outstanding[0].ID)
	assert.Equal(t, resource.ID(3), outstanding[1].ID)

	returned := store.Returned()
	require.Len(t, returned, 1)
	assert.Equal(t, resource.ID(2), returned[0].ID)
}

func Test_BorrowStore_Delete_AllowedOnReturnedRecords(t *testing.T) {
	returnedAt := time.Now()
	remote := newFakeBorrowRemote(library.BorrowRecord{
		ID: 1, BookID: 3, MemberID: 5, BorrowDate: time.Now(), ReturnDate: &returnedAt,
	})
	store := newBorrowStore(t, remote)

	err := store.Delete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}
