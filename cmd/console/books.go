package main

import (
	"github.com/spf13/cobra"

	"github.com/libreshelf/library-console-go/library"
)

func booksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage books",
	}

	cmd.AddCommand(
		booksListCommand(),
		booksCreateCommand(),
		booksUpdateCommand(),
		booksDeleteCommand(),
	)

	return cmd
}

func booksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console, err := newConsole()
			if err != nil {
				return err
			}

			if err = console.Books.Load(cmd.Context()); err != nil {
				return err
			}

			renderBooks(cmd.OutOrStdout(), console.Books.All())

			return nil
		},
	}
}

func booksCreateCommand() *cobra.Command {
	var (
		title    string
		genre    string
		year     int
		authorID int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console, err := newConsole()
			if err != nil {
				return err
			}

			if err = console.BookSession.BeginCreate(); err != nil {
				return err
			}

			console.BookSession.SetDraft(library.BookDraft{
				Title:    title,
				Genre:    genre,
				Year:     year,
				AuthorID: authorID,
			})

			created, err := console.BookSession.Save(cmd.Context())
			if err != nil {
				return err
			}

			renderBooks(cmd.OutOrStdout(), []library.Book{created})

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&genre, "genre", "", "book genre")
	cmd.Flags().IntVar(&year, "year", 0, "publication year")
	cmd.Flags().Int64Var(&authorID, "author", 0, "author id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")

	return cmd
}

func booksUpdateCommand() *cobra.Command {
	var (
		title    string
		genre    string
		year     int
		authorID int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := library.ParseID(args[0])
			if err != nil {
				return err
			}

			console, err := newConsole()
			if err != nil {
				return err
			}

			if err = console.Books.Load(cmd.Context()); err != nil {
				return err
			}

			if err = console.BookSession.BeginEdit(id); err != nil {
				return err
			}

			draft := console.BookSession.Draft()
			if cmd.Flags().Changed("title") {
				draft.Title = title
			}
			if cmd.Flags().Changed("genre") {
				draft.Genre = genre
			}
			if cmd.Flags().Changed("year") {
				draft.Year = year
			}
			if cmd.Flags().Changed("author") {
				draft.AuthorID = authorID
			}
			console.BookSession.SetDraft(draft)

			updated, err := console.BookSession.Save(cmd.Context())
			if err != nil {
				return err
			}

			renderBooks(cmd.OutOrStdout(), []library.Book{updated})

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&genre, "genre", "", "book genre")
	cmd.Flags().IntVar(&year, "year", 0, "publication year")
	cmd.Flags().Int64Var(&authorID, "author", 0, "author id")

	return cmd
}

func booksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := library.ParseID(args[0])
			if err != nil {
				return err
			}

			console, err := newConsole()
			if err != nil {
				return err
			}

			if err = console.Books.Load(cmd.Context()); err != nil {
				return err
			}

			return console.Books.Delete(cmd.Context(), id)
		},
	}
}
