// Package cli implements the rowdb-cli command tree. Every command is
// a thin wrapper over the HTTP client; the shell command additionally
// runs the interactive SQL-ish loop.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/rowdb/rowdb/internal/client"
)

type RootOptions struct {
	Addr string
}

func (opts *RootOptions) Client() *client.Client {
	return client.New(opts.Addr)
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "rowdb-cli",
		Short:         "Client for the rowdb record store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Addr, "addr", "http://localhost:3000", "address of the rowdb server")

	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewDropCommand(opts))
	cmd.AddCommand(NewRenameCommand(opts))
	cmd.AddCommand(NewInsertColumnCommand(opts))
	cmd.AddCommand(NewInsertRowCommand(opts))
	cmd.AddCommand(NewSelectCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))

	return cmd
}
