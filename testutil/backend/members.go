package backend

import (
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library-console-go/library"
)

func (b *Backend) listMembers(c *gin.Context) {
	query, _, buildErr := b.dialect.From(tableMembers).
		Select(colID, colName, colEmail, colPhoneNumber).
		Order(goqu.I(colID).Asc()).
		ToSQL()
	if buildErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(buildErr.Error()))
		return
	}

	rows := make([]memberRow, 0)
	if selectErr := b.db.SelectContext(c.Request.Context(), &rows, query); selectErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(selectErr.Error()))
		return
	}

	members := make([]library.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.toModel())
	}

	c.JSON(http.StatusOK, members)
}

func (b *Backend) getMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	member, found, fetchErr := b.fetchMember(c, id)
	if fetchErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(fetchErr.Error()))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, errorBody(msgMemberNotFound))
		return
	}

	c.JSON(http.StatusOK, member)
}

func (b *Backend) createMember(c *gin.Context) {
	var draft library.MemberDraft
	if bindErr := c.ShouldBindJSON(&draft); bindErr != nil {
		c.JSON(http.StatusBadRequest, errorBody(bindErr.Error()))
		return
	}

	if !validateMemberDraft(c, draft) {
		return
	}

	query, _, buildErr := b.dialect.Insert(tableMembers).
		Rows(goqu.Record{
			colName:        draft.Name,
			colEmail:       draft.Email,
			colPhoneNumber: draft.PhoneNumber,
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

	created, _, fetchErr := b.fetchMember(c, id)
	if fetchErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(fetchErr.Error()))
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (b *Backend) updateMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var draft library.MemberDraft
	if bindErr := c.ShouldBindJSON(&draft); bindErr != nil {
		c.JSON(http.StatusBadRequest, errorBody(bindErr.Error()))
		return
	}

	if !validateMemberDraft(c, draft) {
		return
	}

	query, _, buildErr := b.dialect.Update(tableMembers).
		Set(goqu.Record{
			colName:        draft.Name,
			colEmail:       draft.Email,
			colPhoneNumber: draft.PhoneNumber,
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
		c.JSON(http.StatusNotFound, errorBody(msgMemberNotFound))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (b *Backend) deleteMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	query, _, buildErr := b.dialect.Delete(tableMembers).
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
		c.JSON(http.StatusNotFound, errorBody(msgMemberNotFound))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func validateMemberDraft(c *gin.Context, draft library.MemberDraft) bool {
	if draft.Name == "" {
		c.JSON(http.StatusBadRequest, errorBody(msgNameRequired))
		return false
	}

	if draft.Email == "" {
		c.JSON(http.StatusBadRequest, errorBody(msgEmailRequired))
		return false
	}

	return true
}

func (b *Backend) fetchMember(c *gin.Context, id int64) (library.Member, bool, error) {
	query, _, buildErr := b.dialect.From(tableMembers).
		Select(colID, colName, colEmail, colPhoneNumber).
		Where(goqu.Ex{colID: id}).
		ToSQL()
	if buildErr != nil {
		return library.Member{}, false, buildErr
	}

	var row memberRow
	getErr := b.db.GetContext(c.Request.Context(), &row, query)
	if getErr != nil {
		if isNoRows(getErr) {
			return library.Member{}, false, nil
		}
		return library.Member{}, false, getErr
	}

	return row.toModel(), true, nil
}
