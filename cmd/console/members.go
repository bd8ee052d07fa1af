package main

import (
	"github.com/spf13/cobra"

	"github.com/libreshelf/library-console-go/library"
)

func membersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage members",
	}

	cmd.AddCommand(
		membersListCommand(),
		membersCreateCommand(),
		membersUpdateCommand(),
		membersDeleteCommand(),
	)

	return cmd
}

func membersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console, err := newConsole()
			if err != nil {
				return err
			}

			if err = console.Members.Load(cmd.Context()); err != nil {
				return err
			}

			renderMembers(cmd.OutOrStdout(), console.Members.All())

			return nil
		},
	}
}

func membersCreateCommand() *cobra.Command {
	var (
		name  string
		email string
		phone string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console, err := newConsole()
			if err != nil {
				return err
			}

			if err = console.MemberSession.BeginCreate(); err != nil {
				return err
			}

			console.MemberSession.SetDraft(library.MemberDraft{
				Name:        name,
				Email:       email,
				PhoneNumber: phone,
			})

			created, err := console.MemberSession.Save(cmd.Context())
			if err != nil {
				return err
			}

			renderMembers(cmd.OutOrStdout(), []library.Member{created})

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "member name")
	cmd.Flags().StringVar(&email, "email", "", "member email")
	cmd.Flags().StringVar(&phone, "phone", "", "member phone number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func membersUpdateCommand() *cobra.Command {
	var (
		name  string
		email string
		phone string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing member",
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

			if err = console.Members.Load(cmd.Context()); err != nil {
				return err
			}

			if err = console.MemberSession.BeginEdit(id); err != nil {
				return err
			}

			draft := console.MemberSession.Draft()
			if cmd.Flags().Changed("name") {
				draft.Name = name
			}
			if cmd.Flags().Changed("email") {
				draft.Email = email
			}
			if cmd.Flags().Changed("phone") {
				draft.PhoneNumber = phone
			}
			console.MemberSession.SetDraft(draft)

			updated, err := console.MemberSession.Save(cmd.Context())
			if err != nil {
				return err
			}

			renderMembers(cmd.OutOrStdout(), []library.Member{updated})

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "member name")
	cmd.Flags().StringVar(&email, "email", "", "member email")
	cmd.Flags().StringVar(&phone, "phone", "", "member phone number")

	return cmd
}

func membersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a member",
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

			if err = console.Members.Load(cmd.Context()); err != nil {
				return err
			}

			return console.Members.Delete(cmd.Context(), id)
		},
	}
}
