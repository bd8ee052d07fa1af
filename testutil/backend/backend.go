package backend

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect import
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // driver import
)

var ErrOpeningDatabaseFailed = errors.New("opening sqlite database failed")
var ErrApplyingSchemaFailed = errors.New("applying database schema failed")

const (
	dialectSQLite = "sqlite3"

	tableAuthors       = "authors"
	tableBooks         = "books"
	tableMembers       = "members"
	tableBorrowRecords = "borrow_records"

	colID          = "id"
	colName        = "name"
	colCountry     = "country"
	colTitle       = "title"
	colGenre       = "genre"
	colYear        = "year"
	colAuthorID    = "author_id"
	colEmail       = "email"
	colPhoneNumber = "phone_number"
	colBookID      = "book_id"
	colMemberID    = "member_id"
	colBorrowDate  = "borrow_date"
	colReturnDate  = "return_date"

	msgInvalidID          = "invalid id"
	msgNameRequired       = "name is required"
	msgEmailRequired      = "email is required"
	msgTitleRequired      = "title is required"
	msgAuthorMissing      = "author does not exist"
	msgBookMissing        = "book does not exist"
	msgMemberMissing      = "member does not exist"
	msgBookAlreadyOnLoan  = "book is already borrowed"
	msgAlreadyReturned    = "borrow record is already returned"
	msgAuthorNotFound     = "author not found"
	msgBookNotFound       = "book not found"
	msgMemberNotFound     = "member not found"
	msgBorrowNotFound     = "borrow record not found"
)

const schema = `
CREATE TABLE IF NOT EXISTS authors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    country TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS books (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    genre TEXT NOT NULL DEFAULT '',
    year INTEGER NOT NULL DEFAULT 0,
    author_id INTEGER NOT NULL REFERENCES authors(id)
);
CREATE TABLE IF NOT EXISTS members (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone_number TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS borrow_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    book_id INTEGER NOT NULL REFERENCES books(id),
    member_id INTEGER NOT NULL REFERENCES members(id),
    borrow_date TEXT NOT NULL,
    return_date TEXT
);
`

// Backend serves the four resource collections over HTTP with SQLite storage.
type Backend struct {
	db      *sqlx.DB
	router  *gin.Engine
	dialect goqu.DialectWrapper
	now     func() time.Time
}

// New opens (or creates) the SQLite database at dsn, applies the schema, and
// registers all routes. Use ":memory:" for a throwaway test instance.
func New(dsn string) (*Backend, error) {
	db, openErr := sqlx.Connect(dialectSQLite, dsn)
	if openErr != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, openErr)
	}

	if _, schemaErr := db.Exec(schema); schemaErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrApplyingSchemaFailed, schemaErr)
	}

	gin.SetMode(gin.ReleaseMode)

	b := &Backend{
		db:      db,
		router:  gin.New(),
		dialect: goqu.Dialect(dialectSQLite),
		now:     time.Now,
	}

	b.registerRoutes()

	return b, nil
}

// Close closes the underlying database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Handler returns the HTTP handler, e.g. for httptest.NewServer.
func (b *Backend) Handler() http.Handler {
	return b.router
}

// Run serves the backend on addr until the listener fails.
func (b *Backend) Run(addr string) error {
	return b.router.Run(addr)
}

func (b *Backend) registerRoutes() {
	r := b.router

	r.GET("/authors", b.listAuthors)
	r.GET("/authors/:id", b.getAuthor)
	r.POST("/authors", b.createAuthor)
	r.PUT("/authors/:id", b.updateAuthor)
	r.DELETE("/authors/:id", b.deleteAuthor)

	r.GET("/books", b.listBooks)
	r.GET("/books/:id", b.getBook)
	r.POST("/books", b.createBook)
	r.PUT("/books/:id", b.updateBook)
	r.DELETE("/books/:id", b.deleteBook)

	r.GET("/members", b.listMembers)
	r.GET("/members/:id", b.getMember)
	r.POST("/members", b.createMember)
	r.PUT("/members/:id", b.updateMember)
	r.DELETE("/members/:id", b.deleteMember)

	r.GET("/borrowrecords", b.listBorrows)
	r.GET("/borrowrecords/:id", b.getBorrow)
	r.POST("/borrowrecords", b.createBorrow)
	r.PUT("/borrowrecords/return/:id", b.returnBorrow)
	r.DELETE("/borrowrecords/:id", b.deleteBorrow)
}

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

func pathID(c *gin.Context) (int64, bool) {
	id, parseErr := strconv.ParseInt(c.Param("id"), 10, 64)
	if parseErr != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorBody(msgInvalidID))
		return 0, false
	}

	return id, true
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
