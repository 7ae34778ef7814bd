package cli

import (
	"github.com/spf13/cobra"

	"github.com/rowdb/rowdb/internal/conn"
	"github.com/rowdb/rowdb/internal/query"
)

func whereCondition(where string) (*query.Condition, error) {
	if where == "" {
		return nil, nil
	}
	column, value, err := parseAssignment(where)
	if err != nil {
		return nil, err
	}
	return &query.Condition{Column: column, Value: value}, nil
}

func NewSelectCommand(opts *RootOptions) *cobra.Command {
	var columns []string
	var where string

	cmd := &cobra.Command{
		Use:   "select <table>",
		Short: "Select rows from a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			condition, err := whereCondition(where)
			if err != nil {
				return err
			}

			rows, err := opts.Client().Select(conn.SelectRequest{
				TableName: args[0],
				Columns:   columns,
				Condition: condition,
			})
			if err != nil {
				return err
			}
			printRows(cmd, rows)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to project, in order (default all)")
	cmd.Flags().StringVar(&where, "where", "", "equality condition, column=value")

	return cmd
}

func NewUpdateCommand(opts *RootOptions) *cobra.Command {
	var sets []string
	var where string

	cmd := &cobra.Command{
		Use:   "update <table>",
		Short: "Update matching rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			condition, err := whereCondition(where)
			if err != nil {
				return err
			}

			updates := make([]query.ColumnUpdate, len(sets))
			for i, set := range sets {
				column, value, err := parseAssignment(set)
				if err != nil {
					return err
				}
				updates[i] = query.ColumnUpdate{Column: column, Value: value}
			}

			confirmation, err := opts.Client().UpdateTable(conn.UpdateTableRequest{
				TableName: args[0],
				Condition: condition,
				Updates:   updates,
			})
			if err != nil {
				return err
			}
			cmd.Println(confirmation)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sets, "set", nil, "column=value assignment (repeatable)")
	cmd.Flags().StringVar(&where, "where", "", "equality condition, column=value (default: every row)")
	cmd.MarkFlagRequired("set")

	return cmd
}
