package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/libreshelf/library-console-go/library"
)

const dateFormat = "2006-01-02"

func renderAuthors(out io.Writer, authors []library.Author) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOUNTRY")
	for _, a := range authors {
		fmt.Fprintf(w, "%d\t%s\t%s\n", a.ID, a.Name, a.Country)
	}
	_ = w.Flush()
}

func renderBooks(out io.Writer, books []library.Book) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tGENRE\tYEAR\tAUTHOR")
	for _, b := range books {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", b.ID, b.Title, b.Genre, b.Year, b.AuthorName)
	}
	_ = w.Flush()
}

func renderMembers(out io.Writer, members []library.Member) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, m := range members {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, m.PhoneNumber)
	}
	_ = w.Flush()
}

func renderBorrows(out io.Writer, records []library.BorrowRecord) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBOOK\tMEMBER\tBORROWED\tRETURNED\tSTATUS")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.BookTitle, r.MemberName,
			r.BorrowDate.Format(dateFormat), formatReturnDate(r.ReturnDate), r.Status())
	}
	_ = w.Flush()
}

func formatReturnDate(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return t.Format(dateFormat)
}
