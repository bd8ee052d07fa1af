package main

import (
	"github.com/spf13/cobra"

	"github.com/libreshelf/library-console-go/library"
)

func authorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authors",
		Short: "Manage authors",
	}

	cmd.AddCommand(
		authorsListCommand(),
		authorsCreateCommand(),
		authorsUpdateCommand(),
		authorsDeleteCommand(),
	)

	return cmd
}

func authorsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console, err := newConsole()
			if err != nil {
				return err
			}

			if err = console.Authors.Load(cmd.Context()); err != nil {
				return err
			}

			renderAuthors(cmd.OutOrStdout(), console.Authors.All())

			return nil
		},
	}
}

func authorsCreateCommand() *cobra.Command {
	var (
		name    string
		country string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console, err := newConsole()
			if err != nil {
				return err
			}

			if err = console.AuthorSession.BeginCreate(); err != nil {
				return err
			}

			console.AuthorSession.SetDraft(library.AuthorDraft{Name: name, Country: country})

			created, err := console.AuthorSession.Save(cmd.Context())
			if err != nil {
				return err
			}

			renderAuthors(cmd.OutOrStdout(), []library.Author{created})

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "author name")
	cmd.Flags().StringVar(&country, "country", "", "author country")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func authorsUpdateCommand() *cobra.Command {
	var (
		name    string
		country string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing author",
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

			if err = console.Authors.Load(cmd.Context()); err != nil {
				return err
			}

			if err = console.AuthorSession.BeginEdit(id); err != nil {
				return err
			}

			draft := console.AuthorSession.Draft()
			if cmd.Flags().Changed("name") {
				draft.Name = name
			}
			if cmd.Flags().Changed("country") {
				draft.Country = country
			}
			console.AuthorSession.SetDraft(draft)

			updated, err := console.AuthorSession.Save(cmd.Context())
			if err != nil {
				return err
			}

			renderAuthors(cmd.OutOrStdout(), []library.Author{updated})

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "author name")
	cmd.Flags().StringVar(&country, "country", "", "author country")

	return cmd
}

func authorsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an author",
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

			if err = console.Authors.Load(cmd.Context()); err != nil {
				return err
			}

			return console.Authors.Delete(cmd.Context(), id)
		},
	}
}
