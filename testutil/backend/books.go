package backend

import (
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library-console-go/library"
)

// bookSelect joins authors so authorName is always computed at read time.
func (b *Backend) bookSelect() *goqu.SelectDataset {
	return b.dialect.From(tableBooks).
		Join(goqu.T(tableAuthors), goqu.On(goqu.Ex{"authors.id": goqu.I("books.author_id")})).
		Select(
			goqu.I("books.id").As(colID),
			goqu.I("books.title").As(colTitle),
			goqu.I("books.genre").As(colGenre),
			goqu.I("books.year").As(colYear),
			goqu.I("books.author_id").As(colAuthorID),
			goqu.I("authors.name").As("author_name"),
		)
}

func (b *Backend) listBooks(c *gin.Context) {
	query, _, buildErr := b.bookSelect().
		Order(goqu.I("books.id").Asc()).
		ToSQL()
	if buildErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(buildErr.Error()))
		return
	}

	rows := make([]bookRow, 0)
	if selectErr := b.db.SelectContext(c.Request.Context(), &rows, query); selectErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(selectErr.Error()))
		return
	}

	books := make([]library.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, row.toModel())
	}

	c.JSON(http.StatusOK, books)
}

func (b *Backend) getBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	book, found, fetchErr := b.fetchBook(c, id)
	if fetchErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(fetchErr.Error()))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, errorBody(msgBookNotFound))
		return
	}

	c.JSON(http.StatusOK, book)
}

func (b *Backend) createBook(c *gin.Context) {
	var draft library.BookDraft
	if bindErr := c.ShouldBindJSON(&draft); bindErr != nil {
		c.JSON(http.StatusBadRequest, errorBody(bindErr.Error()))
		return
	}

	if !b.validateBookDraft(c, draft) {
		return
	}

	query, _, buildErr := b.dialect.Insert(tableBooks).
		Rows(goqu.Record{
			colTitle:    draft.Title,
			colGenre:    draft.Genre,
			colYear:     draft.Year,
			colAuthorID: draft.AuthorID,
		}).
		ToSQL()
	if buildErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(buildErr.Error()))
		return
	}

	result, execErr := b.db.ExecContext(c.Request.Context(), query)
	if execErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(execErr.Error()))
		return
	}

	id, _ := result.LastInsertId()

	created, _, fetchErr := b.fetchBook(c, id)
	if fetchErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(fetchErr.Error()))
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (b *Backend) updateBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var draft library.BookDraft
	if bindErr := c.ShouldBindJSON(&draft); bindErr != nil {
		c.JSON(http.StatusBadRequest, errorBody(bindErr.Error()))
		return
	}

	if !b.validateBookDraft(c, draft) {
		return
	}

	query, _, buildErr := b.dialect.Update(tableBooks).
		Set(goqu.Record{
			colTitle:    draft.Title,
			colGenre:    draft.Genre,
			colYear:     draft.Year,
			colAuthorID: draft.AuthorID,
		}).
		Where(goqu.Ex{colID: id}).
		ToSQL()
	if buildErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(buildErr.Error()))
		return
	}

	result, execErr := b.db.ExecContext(c.Request.Context(), query)
	if execErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(execErr.Error()))
		return
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, errorBody(msgBookNotFound))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (b *Backend) deleteBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	query, _, buildErr := b.dialect.Delete(tableBooks).
		Where(goqu.Ex{colID: id}).
		ToSQL()
	if buildErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(buildErr.Error()))
		return
	}

	result, execErr := b.db.ExecContext(c.Request.Context(), query)
	if execErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(execErr.Error()))
		return
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, errorBody(msgBookNotFound))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// validateBookDraft enforces the rules the client deliberately leaves to the
// server: a title is required and authorId must reference an existing author.
func (b *Backend) validateBookDraft(c *gin.Context, draft library.BookDraft) bool {
	if draft.Title == "" {
		c.JSON(http.StatusBadRequest, errorBody(msgTitleRequired))
		return false
	}

	exists, checkErr := b.rowExists(c, tableAuthors, draft.AuthorID)
	if checkErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(checkErr.Error()))
		return false
	}
	if !exists {
		c.JSON(http.StatusBadRequest, errorBody(msgAuthorMissing))
		return false
	}

	return true
}

func (b *Backend) fetchBook(c *gin.Context, id int64) (library.Book, bool, error) {
	query, _, buildErr := b.bookSelect().
		Where(goqu.Ex{"books.id": id}).
		ToSQL()
	if buildErr != nil {
		return library.Book{}, false, buildErr
	}

	var row bookRow
	getErr := b.db.GetContext(c.Request.Context(), &row, query)
	if getErr != nil {
		if isNoRows(getErr) {
			return library.Book{}, false, nil
		}
		return library.Book{}, false, getErr
	}

	return row.toModel(), true, nil
}

// rowExists reports whether table holds a row with the given id.
func (b *Backend) rowExists(c *gin.Context, table string, id int64) (bool, error) {
	query, _, buildErr := b.dialect.From(table).
		Select(goqu.COUNT(colID)).
		Where(goqu.Ex{colID: id}).
		ToSQL()
	if buildErr != nil {
		return false, buildErr
	}

	var count int
	if getErr := b.db.GetContext(c.Request.Context(), &count, query); getErr != nil {
		return false, getErr
	}

	return count > 0, nil
}
