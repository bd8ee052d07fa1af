package backend

import (
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library-console-go/library"
)

func (b *Backend) listAuthors(c *gin.Context) {
	query, _, buildErr := b.dialect.From(tableAuthors).
		Select(colID, colName, colCountry).
		Order(goqu.I(colID).Asc()).
		ToSQL()
	if buildErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(buildErr.Error()))
		return
	}

	rows := make([]authorRow, 0)
	if selectErr := b.db.SelectContext(c.Request.Context(), &rows, query); selectErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(selectErr.Error()))
		return
	}

	authors := make([]library.Author, 0, len(rows))
	for _, row := range rows {
		authors = append(authors, row.toModel())
	}

	c.JSON(http.StatusOK, authors)
}

func (b *Backend) getAuthor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	author, found, fetchErr := b.fetchAuthor(c, id)
	if fetchErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(fetchErr.Error()))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, errorBody(msgAuthorNotFound))
		return
	}

	c.JSON(http.StatusOK, author)
}

func (b *Backend) createAuthor(c *gin.Context) {
	var draft library.AuthorDraft
	if bindErr := c.ShouldBindJSON(&draft); bindErr != nil {
		c.JSON(http.StatusBadRequest, errorBody(bindErr.Error()))
		return
	}

	if draft.Name == "" {
		c.JSON(http.StatusBadRequest, errorBody(msgNameRequired))
		return
	}

	query, _, buildErr := b.dialect.Insert(tableAuthors).
		Rows(goqu.Record{colName: draft.Name, colCountry: draft.Country}).
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

	created, _, fetchErr := b.fetchAuthor(c, id)
	if fetchErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(fetchErr.Error()))
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (b *Backend) updateAuthor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var draft library.AuthorDraft
	if bindErr := c.ShouldBindJSON(&draft); bindErr != nil {
		c.JSON(http.StatusBadRequest, errorBody(bindErr.Error()))
		return
	}

	if draft.Name == "" {
		c.JSON(http.StatusBadRequest, errorBody(msgNameRequired))
		return
	}

	query, _, buildErr := b.dialect.Update(tableAuthors).
		Set(goqu.Record{colName: draft.Name, colCountry: draft.Country}).
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
		c.JSON(http.StatusNotFound, errorBody(msgAuthorNotFound))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (b *Backend) deleteAuthor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	query, _, buildErr := b.dialect.Delete(tableAuthors).
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
		c.JSON(http.StatusNotFound, errorBody(msgAuthorNotFound))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (b *Backend) fetchAuthor(c *gin.Context, id int64) (library.Author, bool, error) {
	query, _, buildErr := b.dialect.From(tableAuthors).
		Select(colID, colName, colCountry).
		Where(goqu.Ex{colID: id}).
		ToSQL()
	if buildErr != nil {
		return library.Author{}, false, buildErr
	}

	var row authorRow
	getErr := b.db.GetContext(c.Request.Context(), &row, query)
	if getErr != nil {
		if isNoRows(getErr) {
			return library.Author{}, false, nil
		}
		return library.Author{}, false, getErr
	}

	return row.toModel(), true, nil
}
