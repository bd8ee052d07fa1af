package backend

import (
	"net/http"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library-console-go/library"
)

func (b *Backend) borrowSelect() *goqu.SelectDataset {
	return b.dialect.From(tableBorrowRecords).
		Join(goqu.T(tableBooks), goqu.On(goqu.Ex{"books.id": goqu.I("borrow_records.book_id")})).
		Join(goqu.T(tableMembers), goqu.On(goqu.Ex{"members.id": goqu.I("borrow_records.member_id")})).
		Select(
			goqu.I("borrow_records.id").As(colID),
			goqu.I("borrow_records.book_id").As(colBookID),
			goqu.I("books.title").As("book_title"),
			goqu.I("borrow_records.member_id").As(colMemberID),
			goqu.I("members.name").As("member_name"),
			goqu.I("borrow_records.borrow_date").As(colBorrowDate),
			goqu.I("borrow_records.return_date").As(colReturnDate),
		)
}

func (b *Backend) listBorrows(c *gin.Context) {
	query, _, buildErr := b.borrowSelect().
		Order(goqu.I("borrow_records.id").Asc()).
		ToSQL()
	if buildErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(buildErr.Error()))
		return
	}

	rows := make([]borrowRow, 0)
	if selectErr := b.db.SelectContext(c.Request.Context(), &rows, query); selectErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(selectErr.Error()))
		return
	}

	records := make([]library.BorrowRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toModel())
	}

	c.JSON(http.StatusOK, records)
}

func (b *Backend) getBorrow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	record, found, fetchErr := b.fetchBorrow(c, id)
	if fetchErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(fetchErr.Error()))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, errorBody(msgBorrowNotFound))
		return
	}

	c.JSON(http.StatusOK, record)
}

func (b *Backend) createBorrow(c *gin.Context) {
	var draft library.BorrowDraft
	if bindErr := c.ShouldBindJSON(&draft); bindErr != nil {
		c.JSON(http.StatusBadRequest, errorBody(bindErr.Error()))
		return
	}

	bookExists, existsErr := b.rowExists(c, tableBooks, draft.BookID)
	if existsErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(existsErr.Error()))
		return
	}
	if !bookExists {
		c.JSON(http.StatusBadRequest, errorBody(msgBookMissing))
		return
	}

	memberExists, existsErr := b.rowExists(c, tableMembers, draft.MemberID)
	if existsErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(existsErr.Error()))
		return
	}
	if !memberExists {
		c.JSON(http.StatusBadRequest, errorBody(msgMemberMissing))
		return
	}

	onLoan, loanErr := b.bookOnLoan(c, draft.BookID)
	if loanErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(loanErr.Error()))
		return
	}
	if onLoan {
		c.JSON(http.StatusConflict, errorBody(msgBookAlreadyOnLoan))
		return
	}

	query, _, buildErr := b.dialect.Insert(tableBorrowRecords).
		Rows(goqu.Record{
			colBookID:     draft.BookID,
			colMemberID:   draft.MemberID,
			colBorrowDate: b.now().UTC().Format(time.RFC3339),
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

	created, _, fetchErr := b.fetchBorrow(c, id)
	if fetchErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(fetchErr.Error()))
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (b *Backend) returnBorrow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	record, found, fetchErr := b.fetchBorrow(c, id)
	if fetchErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(fetchErr.Error()))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, errorBody(msgBorrowNotFound))
		return
	}
	if record.ReturnDate != nil {
		c.JSON(http.StatusConflict, errorBody(msgAlreadyReturned))
		return
	}

	query, _, buildErr := b.dialect.Update(tableBorrowRecords).
		Set(goqu.Record{
			colReturnDate: b.now().UTC().Format(time.RFC3339),
		}).
		Where(goqu.Ex{colID: id}).
		ToSQL()
	if buildErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(buildErr.Error()))
		return
	}

	if _, execErr := b.db.ExecContext(c.Request.Context(), query); execErr != nil {
		c.JSON(http.StatusInternalServerError, errorBody(execErr.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (b *Backend) deleteBorrow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	query, _, buildErr := b.dialect.Delete(tableBorrowRecords).
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
		c.JSON(http.StatusNotFound, errorBody(msgBorrowNotFound))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// bookOnLoan reports whether the book has a borrow record without a return date.
func (b *Backend) bookOnLoan(c *gin.Context, bookID int64) (bool, error) {
	query, _, buildErr := b.dialect.From(tableBorrowRecords).
		Select(goqu.COUNT(colID)).
		Where(goqu.Ex{
			colBookID:     bookID,
			colReturnDate: nil,
		}).
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

func (b *Backend) fetchBorrow(c *gin.Context, id int64) (library.BorrowRecord, bool, error) {
	query, _, buildErr := b.borrowSelect().
		Where(goqu.Ex{"borrow_records.id": id}).
		ToSQL()
	if buildErr != nil {
		return library.BorrowRecord{}, false, buildErr
	}

	var row borrowRow
	getErr := b.db.GetContext(c.Request.Context(), &row, query)
	if getErr != nil {
		if isNoRows(getErr) {
			return library.BorrowRecord{}, false, nil
		}
		return library.BorrowRecord{}, false, getErr
	}

	return row.toModel(), true, nil
}
