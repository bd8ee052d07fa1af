package library

import (
	"errors"
	"strconv"
	"time"

	"github.com/libreshelf/library-console-go/resource"
)

var ErrNotANumber = errors.New("value is not a number")

// Author is a writer referenced by books via AuthorID.
type Author struct {
	ID      resource.ID `json:"id"`
	Name    string      `json:"name"`
	Country string      `json:"country,omitempty"`
}

// Identity returns the server-assigned id.
func (a Author) Identity() resource.ID { return a.ID }

// AuthorDraft is the identity-less shape sent on author writes.
type AuthorDraft struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// AuthorDraftFrom copies an author's committed fields into a fresh draft.
func AuthorDraftFrom(a Author) AuthorDraft {
	return AuthorDraft{
		Name:    a.Name,
		Country: a.Country,
	}
}

// Book is a catalogued title. AuthorName is denormalized by the server from
// AuthorID; drafts never carry it.
type Book struct {
	ID         resource.ID `json:"id"`
	Title      string      `json:"title"`
	Genre      string      `json:"genre"`
	Year       int         `json:"year"`
	AuthorID   resource.ID `json:"authorId"`
	AuthorName string      `json:"authorName,omitempty"`
}

// Identity returns the server-assigned id.
func (b Book) Identity() resource.ID { return b.ID }

// BookDraft is the identity-less shape sent on book writes.
type BookDraft struct {
	Title    string      `json:"title"`
	Genre    string      `json:"genre"`
	Year     int         `json:"year"`
	AuthorID resource.ID `json:"authorId"`
}

// BookDraftFrom copies a book's committed fields into a fresh draft.
func BookDraftFrom(b Book) BookDraft {
	return BookDraft{
		Title:    b.Title,
		Genre:    b.Genre,
		Year:     b.Year,
		AuthorID: b.AuthorID,
	}
}

// Member is a registered borrower.
type Member struct {
	ID          resource.ID `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
}

// Identity returns the server-assigned id.
func (m Member) Identity() resource.ID { return m.ID }

// MemberDraft is the identity-less shape sent on member writes.
type MemberDraft struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// MemberDraftFrom copies a member's committed fields into a fresh draft.
func MemberDraftFrom(m Member) MemberDraft {
	return MemberDraft{
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
	}
}

// BorrowRecord tracks one lending of a book to a member. BookTitle and
// MemberName are denormalized by the server. BorrowDate is set at creation and
// never mutated; ReturnDate, once set, is never unset.
type BorrowRecord struct {
	ID         resource.ID `json:"id"`
	BookID     resource.ID `json:"bookId"`
	BookTitle  string      `json:"bookTitle"`
	MemberID   resource.ID `json:"memberId"`
	MemberName string      `json:"memberName"`
	BorrowDate time.Time   `json:"borrowDate"`
	ReturnDate *time.Time  `json:"returnDate,omitempty"`
}

// Identity returns the server-assigned id.
func (r BorrowRecord) Identity() resource.ID { return r.ID }

// BorrowDraft is the shape sent to create a borrow record: the remote
// authority assigns the borrow date and denormalized names.
type BorrowDraft struct {
	BookID   resource.ID `json:"bookId"`
	MemberID resource.ID `json:"memberId"`
}

// BorrowDraftFrom copies a record's referenced identities into a fresh draft.
func BorrowDraftFrom(r BorrowRecord) BorrowDraft {
	return BorrowDraft{
		BookID:   r.BookID,
		MemberID: r.MemberID,
	}
}

// BorrowStatus is the derived lifecycle state of a BorrowRecord.
type BorrowStatus int

const (
	StatusOutstanding BorrowStatus = iota
	StatusReturned
)

// String returns the lowercase name of the status.
func (s BorrowStatus) String() string {
	if s == StatusReturned {
		return "returned"
	}
	return "outstanding"
}

// Status derives the lifecycle state from the record's data: a record is
// outstanding iff its return date is absent. The status is computed on every
// call and never stored, so it cannot go stale.
func (r BorrowRecord) Status() BorrowStatus {
	if r.ReturnDate == nil {
		return StatusOutstanding
	}
	return StatusReturned
}

// ParseID parses a textual identity field at the boundary where text becomes
// a field value. An unparsable value is a recoverable ErrNotANumber, never a
// silent coercion passed through to the remote authority.
func ParseID(s string) (resource.ID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Join(ErrNotANumber, err)
	}

	return id, nil
}

// ParseYear parses a textual year field; see ParseID for the error contract.
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Join(ErrNotANumber, err)
	}

	return year, nil
}
