package library

import (
	"context"

	"github.com/libreshelf/library-console-go/resource"
	"github.com/libreshelf/library-console-go/restclient"
)

// Collection paths below the API base URL.
const (
	PathAuthors       = "/authors"
	PathBooks         = "/books"
	PathMembers       = "/members"
	PathBorrowRecords = "/borrowrecords"

	borrowReturnAction = "return"
)

// BorrowRemote extends the generic remote contract with the borrow-specific
// return action. Returning an already-returned record or an unknown id is
// rejected by the remote authority; clients do not pre-check.
type BorrowRemote interface {
	resource.RemoteClient[BorrowRecord, BorrowDraft]
	Return(ctx context.Context, id resource.ID) error
}

// NewAuthorEndpoint creates the REST endpoint for the authors collection.
func NewAuthorEndpoint(
	baseURL string,
	options ...restclient.Option[Author, AuthorDraft],
) (*restclient.Endpoint[Author, AuthorDraft], error) {
	return restclient.NewEndpoint[Author, AuthorDraft](baseURL, PathAuthors, options...)
}

// NewBookEndpoint creates the REST endpoint for the books collection.
func NewBookEndpoint(
	baseURL string,
	options ...restclient.Option[Book, BookDraft],
) (*restclient.Endpoint[Book, BookDraft], error) {
	return restclient.NewEndpoint[Book, BookDraft](baseURL, PathBooks, options...)
}

// NewMemberEndpoint creates the REST endpoint for the members collection.
func NewMemberEndpoint(
	baseURL string,
	options ...restclient.Option[Member, MemberDraft],
) (*restclient.Endpoint[Member, MemberDraft], error) {
	return restclient.NewEndpoint[Member, MemberDraft](baseURL, PathMembers, options...)
}

// BorrowEndpoint is the REST endpoint for the borrow records collection,
// extended with the return action (PUT /borrowrecords/return/{id}).
type BorrowEndpoint struct {
	*restclient.Endpoint[BorrowRecord, BorrowDraft]
}

// NewBorrowEndpoint creates the REST endpoint for the borrow records collection.
func NewBorrowEndpoint(
	baseURL string,
	options ...restclient.Option[BorrowRecord, BorrowDraft],
) (*BorrowEndpoint, error) {

	endpoint, err := restclient.NewEndpoint[BorrowRecord, BorrowDraft](baseURL, PathBorrowRecords, options...)
	if err != nil {
		return nil, err
	}

	return &BorrowEndpoint{Endpoint: endpoint}, nil
}

// Return invokes the remote return action keyed by id.
func (be *BorrowEndpoint) Return(ctx context.Context, id resource.ID) error {
	return be.Action(ctx, borrowReturnAction, id)
}

// Ensure BorrowEndpoint implements BorrowRemote.
var _ BorrowRemote = (*BorrowEndpoint)(nil)
