package cli

import (
	"github.com/spf13/cobra"

	"github.com/rowdb/rowdb/internal/conn"
	"github.com/rowdb/rowdb/internal/db"
	"github.com/rowdb/rowdb/internal/sqlcmd"
)

func NewInsertColumnCommand(opts *RootOptions) *cobra.Command {
	var primary_key, non_null, unique bool

	cmd := &cobra.Command{
		Use:   "insert-column <table> <key>",
		Short: "Append a column to a table's schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, err := opts.Client().InsertColumn(conn.InsertColumnRequest{
				TableName:  args[0],
				Key:        args[1],
				PrimaryKey: primary_key,
				NonNull:    non_null,
				Unique:     unique,
			})
			if err != nil {
				return err
			}
			cmd.Printf("inserted column %s into %s\n", column.Key, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&primary_key, "primary-key", false, "column is the primary key (implies non-null and unique)")
	cmd.Flags().BoolVar(&non_null, "non-null", false, "column rejects null values")
	cmd.Flags().BoolVar(&unique, "unique", false, "column values must be unique")

	return cmd
}

func NewInsertRowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insert-row <table> <value>...",
		Short: "Append a row; values are typed by their literal form",
		Long: `Append a row to a table. Each argument is one cell, typed by its
literal form: NULL, integers, floats, true/false, anything else is a
string. Missing trailing values become NULL if the column allows it.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row := db.NewRow()
			for _, v := range args[1:] {
				row.AddValue(sqlcmd.Literal(v))
			}

			values, err := opts.Client().InsertRow(conn.InsertRowRequest{
				TableName: args[0],
				Row:       row,
			})
			if err != nil {
				return err
			}

			stored := db.NewRow()
			for _, v := range values {
				stored.AddValue(db.OptionalStrValue(v))
			}
			cmd.Printf("inserted %s\n", formatRow(stored))
			return nil
		},
	}
}
