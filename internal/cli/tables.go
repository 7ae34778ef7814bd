package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rowdb/rowdb/internal/db"
)

func NewTablesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List all tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := opts.Client().Tables()
			if err != nil {
				return err
			}
			if len(tables) == 0 {
				cmd.Println("no tables")
				return nil
			}
			for _, t := range tables {
				cmd.Printf("%s (%d columns, %d rows)\n", t.Name, len(t.Columns), len(t.Rows))
			}
			return nil
		},
	}
}

func formatRow(row db.Row) string {
	cells := make([]string, len(row.Values))
	for i, v := range row.Values {
		s, ok := v.AsString()
		if !ok {
			s = "NULL"
		}
		cells[i] = s
	}
	return "[" + strings.Join(cells, ", ") + "]"
}

func printRows(cmd *cobra.Command, rows []db.Row) {
	if len(rows) == 0 {
		cmd.Println("no rows")
		return
	}
	for _, row := range rows {
		cmd.Println(formatRow(row))
	}
	cmd.Printf("%d rows\n", len(rows))
}

func parseAssignment(s string) (string, string, error) {
	key_value := strings.SplitN(s, "=", 2)
	if len(key_value) != 2 {
		return "", "", fmt.Errorf("expected column=value, got %q", s)
	}
	return strings.TrimSpace(key_value[0]), strings.TrimSpace(key_value[1]), nil
}
