package main

import (
	"github.com/spf13/cobra"

	"github.com/libreshelf/library-console-go/library"
)

func borrowsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "borrows",
		Short: "Manage borrow records",
	}

	cmd.AddCommand(
		borrowsListCommand(),
		borrowsCreateCommand(),
		borrowsReturnCommand(),
		borrowsDeleteCommand(),
	)

	return cmd
}

func borrowsListCommand() *cobra.Command {
	var (
		outstandingOnly bool
		returnedOnly    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List borrow records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console, err := newConsole()
			if err != nil {
				return err
			}

			if err = console.Borrows.Load(cmd.Context()); err != nil {
				return err
			}

			records := console.Borrows.All()
			switch {
			case outstandingOnly:
				records = console.Borrows.Outstanding()
			case returnedOnly:
				records = console.Borrows.Returned()
			}

			renderBorrows(cmd.OutOrStdout(), records)

			return nil
		},
	}

	cmd.Flags().BoolVar(&outstandingOnly, "outstanding", false, "show only records without a return date")
	cmd.Flags().BoolVar(&returnedOnly, "returned", false, "show only returned records")
	cmd.MarkFlagsMutuallyExclusive("outstanding", "returned")

	return cmd
}

func borrowsCreateCommand() *cobra.Command {
	var (
		bookID   int64
		memberID int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Borrow a book for a member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console, err := newConsole()
			if err != nil {
				return err
			}

			if err = console.Borrows.Load(cmd.Context()); err != nil {
				return err
			}

			if err = console.Borrows.CreateBorrow(cmd.Context(), bookID, memberID); err != nil {
				return err
			}

			renderBorrows(cmd.OutOrStdout(), console.Borrows.All())

			return nil
		},
	}

	cmd.Flags().Int64Var(&bookID, "book", 0, "book id")
	cmd.Flags().Int64Var(&memberID, "member", 0, "member id")
	_ = cmd.MarkFlagRequired("book")
	_ = cmd.MarkFlagRequired("member")

	return cmd
}

func borrowsReturnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "return <id>",
		Short: "Mark a borrow record as returned",
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

			if err = console.Borrows.Load(cmd.Context()); err != nil {
				return err
			}

			returned, err := console.Borrows.Return(cmd.Context(), id)
			if err != nil {
				return err
			}

			renderBorrows(cmd.OutOrStdout(), []library.BorrowRecord{returned})

			return nil
		},
	}
}

func borrowsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a borrow record",
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

			if err = console.Borrows.Load(cmd.Context()); err != nil {
				return err
			}

			return console.Borrows.Delete(cmd.Context(), id)
		},
	}
}
