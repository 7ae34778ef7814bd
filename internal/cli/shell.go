package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowdb/rowdb/internal/client"
	"github.com/rowdb/rowdb/internal/sqlcmd"
)

const shell_greeting = `Welcome to the interactive rowdb shell.
Available operations:
1. CREATE TABLE table_name (column TYPE, ...)
2. INSERT INTO table_name (column1, column2) VALUES (value1, value2)
3. SELECT column1, column2 FROM table_name [WHERE column = value]
4. UPDATE table_name SET column = value[, ...] [WHERE column = value]
5. RENAME TABLE old_table_name TO new_table_name
6. DROP TABLE table_name
Type 'exit' to quit.`

const shell_examples = `Example syntax:
  CREATE TABLE users (id INT, name STRING, email STRING)
  INSERT INTO users (id, name, email) VALUES (1, 'Alice', 'alice@example.com')
  SELECT id, name FROM users WHERE email = 'alice@example.com'
  UPDATE users SET name = 'Alice Smith' WHERE id = 1
  RENAME TABLE users TO customers
  DROP TABLE customers`

func NewShellCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive command shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.Client()
			if err := c.Ping(); err != nil {
				return fmt.Errorf("is the server on? %w", err)
			}

			cmd.Println(shell_greeting)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				cmd.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := scanner.Text()
				if len(line) == 0 {
					continue
				}

				stmt, err := sqlcmd.Parse(line)
				if err != nil {
					cmd.Println(err)
					cmd.Println(shell_examples)
					continue
				}
				if _, exit := stmt.(sqlcmd.ExitStmt); exit {
					return nil
				}

				if err := executeStatement(cmd, c, stmt); err != nil {
					cmd.Println(err)
				}
			}
		},
	}
}

func executeStatement(cmd *cobra.Command, c *client.Client, stmt sqlcmd.Statement) error {
	switch stmt := stmt.(type) {
	case sqlcmd.CreateTableStmt:
		table, err := c.CreateTable(stmt.Request)
		if err != nil {
			return err
		}
		cmd.Printf("created table %s with %d columns\n", table.Name, len(table.Columns))
	case sqlcmd.InsertRowStmt:
		if _, err := c.InsertRow(stmt.Request); err != nil {
			return err
		}
		cmd.Printf("inserted row into %s\n", stmt.Request.TableName)
	case sqlcmd.SelectStmt:
		rows, err := c.Select(stmt.Request)
		if err != nil {
			return err
		}
		printRows(cmd, rows)
	case sqlcmd.UpdateStmt:
		confirmation, err := c.UpdateTable(stmt.Request)
		if err != nil {
			return err
		}
		cmd.Println(confirmation)
	case sqlcmd.RenameTableStmt:
		if err := c.RenameTable(stmt.Request.CurrentName, stmt.Request.NewName); err != nil {
			return err
		}
		cmd.Printf("renamed table %s to %s\n", stmt.Request.CurrentName, stmt.Request.NewName)
	case sqlcmd.DropTableStmt:
		if err := c.DropTable(stmt.Request.Name); err != nil {
			return err
		}
		cmd.Printf("dropped table %s\n", stmt.Request.Name)
	default:
		return fmt.Errorf("unhandled statement %T", stmt)
	}
	return nil
}
