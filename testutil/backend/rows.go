package backend

import (
	"database/sql"
	"time"

	"github.com/libreshelf/library-console-go/library"
)

type authorRow struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Country string `db:"country"`
}

func (r authorRow) toModel() library.Author {
	return library.Author{
		ID:      r.ID,
		Name:    r.Name,
		Country: r.Country,
	}
}

type bookRow struct {
	ID         int64  `db:"id"`
	Title      string `db:"title"`
	Genre      string `db:"genre"`
	Year       int    `db:"year"`
	AuthorID   int64  `db:"author_id"`
	AuthorName string `db:"author_name"`
}

func (r bookRow) toModel() library.Book {
	return library.Book{
		ID:         r.ID,
		Title:      r.Title,
		Genre:      r.Genre,
		Year:       r.Year,
		AuthorID:   r.AuthorID,
		AuthorName: r.AuthorName,
	}
}

type memberRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Email       string `db:"email"`
	PhoneNumber string `db:"phone_number"`
}

func (r memberRow) toModel() library.Member {
	return library.Member{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}

type borrowRow struct {
	ID         int64          `db:"id"`
	BookID     int64          `db:"book_id"`
	BookTitle  string         `db:"book_title"`
	MemberID   int64          `db:"member_id"`
	MemberName string         `db:"member_name"`
	BorrowDate string         `db:"borrow_date"`
	ReturnDate sql.NullString `db:"return_date"`
}

func (r borrowRow) toModel() library.BorrowRecord {
	record := library.BorrowRecord{
		ID:         r.ID,
		BookID:     r.BookID,
		BookTitle:  r.BookTitle,
		MemberID:   r.MemberID,
		MemberName: r.MemberName,
	}

	// Dates are stored as RFC 3339 strings written by this backend.
	if parsed, err := time.Parse(time.RFC3339, r.BorrowDate); err == nil {
		record.BorrowDate = parsed
	}

	if r.ReturnDate.Valid {
		if parsed, err := time.Parse(time.RFC3339, r.ReturnDate.String); err == nil {
			record.ReturnDate = &parsed
		}
	}

	return record
}
