package cli

import (
	"github.com/spf13/cobra"
)

func NewCreateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <table>",
		Short: "Create an empty table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.Client().Create(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("created table %s\n", table.Name)
			return nil
		},
	}
}

func NewDropCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <table>",
		Short: "Drop a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Client().DropTable(args[0]); err != nil {
				return err
			}
			cmd.Printf("dropped table %s\n", args[0])
			return nil
		},
	}
}

func NewRenameCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <current> <new>",
		Short: "Rename a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Client().RenameTable(args[0], args[1]); err != nil {
				return err
			}
			cmd.Printf("renamed table %s to %s\n", args[0], args[1])
			return nil
		},
	}
}
