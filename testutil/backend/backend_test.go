package backend_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libreshelf/library-console-go/library"
	"github.com/libreshelf/library-console-go/resource"
	"github.com/libreshelf/library-console-go/testutil/backend"
)

// newTestConsole spins up the SQLite-backed API and a Console wired against it.
func newTestConsole(t *testing.T) *library.Console {
	t.Helper()

	b, err := backend.New(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	server := httptest.NewServer(b.Handler())
	t.Cleanup(server.Close)

	console, err := library.NewConsole(server.URL)
	require.NoError(t, err)
	require.NoError(t, console.LoadAll(context.Background()))

	return console
}

func createFixtures(t *testing.T, console *library.Console) (library.Author, library.Book, library.Member) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, console.AuthorSession.BeginCreate())
	console.AuthorSession.SetDraft(library.AuthorDraft{Name: "Stanisław Lem", Country: "Poland"})
	author, err := console.AuthorSession.Save(ctx)
	require.NoError(t, err)

	require.NoError(t, console.BookSession.BeginCreate())
	console.BookSession.SetDraft(library.BookDraft{
		Title: "Solaris", Genre: "SF", Year: 1961, AuthorID: author.ID,
	})
	book, err := console.BookSession.Save(ctx)
	require.NoError(t, err)

	require.NoError(t, console.MemberSession.BeginCreate())
	console.MemberSession.SetDraft(library.MemberDraft{
		Name: "Ada Lovelace", Email: "ada@example.org", PhoneNumber: "555-0100",
	})
	member, err := console.MemberSession.Save(ctx)
	require.NoError(t, err)

	return author, book, member
}

func Test_EndToEnd_AuthorBookMemberLifecycle(t *testing.T) {
	console := newTestConsole(t)
	ctx := context.Background()

	author, book, member := createFixtures(t, console)

	assert.NotZero(t, author.ID)
	assert.NotZero(t, member.ID)
	assert.Equal(t, "Stanisław Lem", book.AuthorName, "the server denormalizes the author name")

	// Update through an edit session: the committed entity reflects the
	// canonical re-read, including recomputed denormalized fields.
	require.NoError(t, console.BookSession.BeginEdit(book.ID))
	draft := console.BookSession.Draft()
	draft.Year = 1970
	console.BookSession.SetDraft(draft)

	updated, err := console.BookSession.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1970, updated.Year)
	assert.Equal(t, "Stanisław Lem", updated.AuthorName)

	local, found := console.Books.Find(book.ID)
	require.True(t, found)
	assert.Equal(t, 1970, local.Year)

	require.NoError(t, console.Books.Delete(ctx, book.ID))
	assert.Equal(t, 0, console.Books.Len())
}

func Test_EndToEnd_ValidationErrors_CarryServerMessage(t *testing.T) {
	console := newTestConsole(t)
	ctx := context.Background()

	require.NoError(t, console.AuthorSession.BeginCreate())
	console.AuthorSession.SetDraft(library.AuthorDraft{Name: ""})

	_, err := console.AuthorSession.Save(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrValidation)
	assert.Equal(t, "name is required", resource.RemoteMessage(err))

	// The failed save preserves the session for a corrected retry.
	console.AuthorSession.SetDraft(library.AuthorDraft{Name: "Stanisław Lem"})
	created, err := console.AuthorSession.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Stanisław Lem", created.Name)
}

func Test_EndToEnd_BookRequiresExistingAuthor(t *testing.T) {
	console := newTestConsole(t)

	require.NoError(t, console.BookSession.BeginCreate())
	console.BookSession.SetDraft(library.BookDraft{Title: "Orphaned", AuthorID: 999})

	_, err := console.BookSession.Save(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrValidation)
	assert.Equal(t, "author does not exist", resource.RemoteMessage(err))
}

func Test_EndToEnd_BorrowLifecycle(t *testing.T) {
	console := newTestConsole(t)
	ctx := context.Background()

	_, book, member := createFixtures(t, console)

	require.NoError(t, console.Borrows.CreateBorrow(ctx, book.ID, member.ID))
	require.Equal(t, 1, console.Borrows.Len())

	record := console.Borrows.All()[0]
	assert.Equal(t, "Solaris", record.BookTitle)
	assert.Equal(t, "Ada Lovelace", record.MemberName)
	assert.False(t, record.BorrowDate.IsZero())
	assert.Equal(t, library.StatusOutstanding, record.Status())
	assert.Len(t, console.Borrows.Outstanding(), 1)
	assert.Empty(t, console.Borrows.Returned())

	// Borrowing the same book again is a domain conflict.
	err := console.Borrows.CreateBorrow(ctx, book.ID, member.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrConflict)
	assert.Equal(t, "book is already borrowed", resource.RemoteMessage(err))
	assert.Equal(t, 1, console.Borrows.Len())

	returned, err := console.Borrows.Return(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, library.StatusReturned, returned.Status())
	assert.Empty(t, console.Borrows.Outstanding())
	assert.Len(t, console.Borrows.Returned(), 1)

	// A second return is rejected and the local record stays as-is.
	_, err = console.Borrows.Return(ctx, record.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrConflict)
	assert.Equal(t, "borrow record is already returned", resource.RemoteMessage(err))

	// The returned book can be borrowed again.
	require.NoError(t, console.Borrows.CreateBorrow(ctx, book.ID, member.ID))
	assert.Equal(t, 2, console.Borrows.Len())
	assert.Len(t, console.Borrows.Outstanding(), 1)
}

func Test_EndToEnd_BorrowValidation(t *testing.T) {
	console := newTestConsole(t)
	ctx := context.Background()

	_, book, member := createFixtures(t, console)

	err := console.Borrows.CreateBorrow(ctx, 999, member.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrValidation)
	assert.Equal(t, "book does not exist", resource.RemoteMessage(err))

	err = console.Borrows.CreateBorrow(ctx, book.ID, 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrValidation)
	assert.Equal(t, "member does not exist", resource.RemoteMessage(err))

	_, err = console.Borrows.Return(ctx, 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrNotFound)
	assert.Equal(t, "borrow record not found", resource.RemoteMessage(err))
}

func Test_EndToEnd_GetUnknownEntity_NotFound(t *testing.T) {
	console := newTestConsole(t)

	err := console.Authors.Delete(context.Background(), 999)

	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrNotFound)
	assert.Equal(t, "author not found", resource.RemoteMessage(err))
}
