// Package sqlcmd parses the interactive shell's SQL-ish command lines
// into the same request objects the server consumes. It is a
// command-splitter, not a SQL grammar: six statement shapes, one
// equality condition, no expressions.
package sqlcmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rowdb/rowdb/internal/conn"
	"github.com/rowdb/rowdb/internal/db"
	"github.com/rowdb/rowdb/internal/query"
)

type Statement interface{ isStatement() }

type CreateTableStmt struct{ Request conn.CreateTableRequest }
type InsertRowStmt struct{ Request conn.InsertRowRequest }
type SelectStmt struct{ Request conn.SelectRequest }
type UpdateStmt struct{ Request conn.UpdateTableRequest }
type RenameTableStmt struct{ Request conn.RenameTableRequest }
type DropTableStmt struct{ Request conn.DropTableRequest }
type ExitStmt struct{}

func (CreateTableStmt) isStatement() {}
func (InsertRowStmt) isStatement()   {}
func (SelectStmt) isStatement()      {}
func (UpdateStmt) isStatement()      {}
func (RenameTableStmt) isStatement() {}
func (DropTableStmt) isStatement()   {}
func (ExitStmt) isStatement()        {}

// Parse turns one command line into a statement.
func Parse(command string) (Statement, error) {
	q := strings.TrimSpace(command)
	q = strings.TrimSuffix(q, ";")
	if q == "" {
		return nil, fmt.Errorf("empty command")
	}

	parts := strings.Fields(q)
	switch strings.ToUpper(parts[0]) {
	case "CREATE":
		return parseCreateTable(q, parts)
	case "INSERT":
		return parseInsertRow(q, parts)
	case "SELECT":
		return parseSelect(q, parts)
	case "UPDATE":
		return parseUpdate(q, parts)
	case "RENAME":
		return parseRenameTable(parts)
	case "DROP":
		return parseDropTable(parts)
	case "EXIT":
		return ExitStmt{}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", parts[0])
	}
}

// CREATE TABLE users (id INT, name STRING, email STRING)
//
// Column types are accepted for familiarity and then discarded:
// columns carry constraint flags, not types.
func parseCreateTable(q string, parts []string) (Statement, error) {
	if len(parts) < 3 || strings.ToUpper(parts[1]) != "TABLE" {
		return nil, fmt.Errorf("syntax: CREATE TABLE table_name (column TYPE, ...)")
	}
	table_name := parts[2]

	columns_part, err := parenthesized(q)
	if err != nil {
		return nil, err
	}

	req := conn.CreateTableRequest{Name: table_name}
	for _, col := range splitTrimmed(columns_part) {
		col_parts := strings.Fields(col)
		if len(col_parts) < 2 {
			return nil, fmt.Errorf("syntax error in column definition %q", col)
		}
		switch strings.ToUpper(col_parts[1]) {
		case "INT", "FLOAT", "STRING", "BOOL":
		default:
			return nil, fmt.Errorf("unsupported column type %q", col_parts[1])
		}
		req.InsertColumnRequests = append(req.InsertColumnRequests, conn.InsertColumnRequest{
			TableName: table_name,
			Key:       col_parts[0],
		})
	}
	if len(req.InsertColumnRequests) == 0 {
		return nil, fmt.Errorf("syntax: CREATE TABLE table_name (column TYPE, ...)")
	}

	return CreateTableStmt{req}, nil
}

// INSERT INTO users (id, name) VALUES (1, 'Alice')
func parseInsertRow(q string, parts []string) (Statement, error) {
	if len(parts) < 3 || strings.ToUpper(parts[1]) != "INTO" {
		return nil, fmt.Errorf("syntax: INSERT INTO table_name (columns) VALUES (values)")
	}
	table_name := parts[2]

	values_idx := strings.Index(strings.ToUpper(q), "VALUES")
	if values_idx == -1 {
		return nil, fmt.Errorf("syntax: INSERT INTO table_name (columns) VALUES (values)")
	}

	columns_part, err := parenthesized(q[:values_idx])
	if err != nil {
		return nil, err
	}
	values_part, err := parenthesized(q[values_idx:])
	if err != nil {
		return nil, err
	}

	columns := splitTrimmed(columns_part)
	values := splitTrimmed(values_part)
	if len(columns) != len(values) {
		return nil, fmt.Errorf("column count does not match value count")
	}

	row := db.NewRow()
	for _, v := range values {
		row.AddValue(Literal(v))
	}

	return InsertRowStmt{conn.InsertRowRequest{TableName: table_name, Row: row}}, nil
}

// SELECT id, name FROM users WHERE email = 'a@example.com'
// SELECT * FROM users
func parseSelect(q string, parts []string) (Statement, error) {
	from_idx := indexOfWord(parts, "FROM")
	if from_idx == -1 || from_idx == 1 {
		return nil, fmt.Errorf("syntax: SELECT columns FROM table_name [WHERE column = value]")
	}
	if from_idx+1 >= len(parts) {
		return nil, fmt.Errorf("syntax error: missing table name")
	}
	table_name := parts[from_idx+1]

	columns_part := strings.Join(parts[1:from_idx], " ")
	var columns []string
	if columns_part != "*" {
		columns = splitTrimmed(columns_part)
	}

	condition, err := parseWhere(parts)
	if err != nil {
		return nil, err
	}

	return SelectStmt{conn.SelectRequest{
		TableName: table_name,
		Columns:   columns,
		Condition: condition,
	}}, nil
}

// UPDATE users SET name = 'Alicia', age = 31 WHERE id = 1
func parseUpdate(q string, parts []string) (Statement, error) {
	set_idx := indexOfWord(parts, "SET")
	if len(parts) < 2 || set_idx == -1 {
		return nil, fmt.Errorf("syntax: UPDATE table_name SET column = value[, ...] [WHERE column = value]")
	}
	table_name := parts[1]

	where_idx := indexOfWord(parts, "WHERE")
	updates_end := len(parts)
	if where_idx != -1 {
		updates_end = where_idx
	}

	updates := []query.ColumnUpdate{}
	for _, update := range splitTrimmed(strings.Join(parts[set_idx+1:updates_end], " ")) {
		key_value := strings.SplitN(update, "=", 2)
		if len(key_value) != 2 {
			return nil, fmt.Errorf("syntax error in SET clause %q", update)
		}
		updates = append(updates, query.ColumnUpdate{
			Column: strings.TrimSpace(key_value[0]),
			Value:  unquote(strings.TrimSpace(key_value[1])),
		})
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("syntax error: empty SET clause")
	}

	condition, err := parseWhere(parts)
	if err != nil {
		return nil, err
	}

	return UpdateStmt{conn.UpdateTableRequest{
		TableName: table_name,
		Condition: condition,
		Updates:   updates,
	}}, nil
}

// RENAME TABLE users TO customers
func parseRenameTable(parts []string) (Statement, error) {
	if len(parts) != 5 || strings.ToUpper(parts[1]) != "TABLE" || strings.ToUpper(parts[3]) != "TO" {
		return nil, fmt.Errorf("syntax: RENAME TABLE old_name TO new_name")
	}
	return RenameTableStmt{conn.RenameTableRequest{
		CurrentName: parts[2],
		NewName:     parts[4],
	}}, nil
}

// DROP TABLE users
func parseDropTable(parts []string) (Statement, error) {
	if len(parts) != 3 || strings.ToUpper(parts[1]) != "TABLE" {
		return nil, fmt.Errorf("syntax: DROP TABLE table_name")
	}
	return DropTableStmt{conn.DropTableRequest{Name: parts[2]}}, nil
}

// parseWhere reads the trailing `WHERE column = value` clause, if any.
// The operator slot is required but only equality is understood.
func parseWhere(parts []string) (*query.Condition, error) {
	where_idx := indexOfWord(parts, "WHERE")
	if where_idx == -1 {
		return nil, nil
	}

	where_parts := parts[where_idx+1:]
	if len(where_parts) < 3 {
		return nil, fmt.Errorf("syntax error: incomplete WHERE clause")
	}

	return &query.Condition{
		Column: where_parts[0],
		Value:  unquote(strings.Join(where_parts[2:], " ")),
	}, nil
}

// Literal types a value by its written form: NULL, integer, float,
// true/false, otherwise a (possibly quoted) string.
func Literal(v string) db.Value {
	if v == "NULL" {
		return db.NullValue()
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return db.IntValue(i)
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return db.FloatValue(f)
	}
	if v == "true" {
		return db.BoolValue(true)
	}
	if v == "false" {
		return db.BoolValue(false)
	}
	return db.StrValue(unquote(v))
}

func parenthesized(s string) (string, error) {
	open := strings.Index(s, "(")
	if open == -1 {
		return "", fmt.Errorf("syntax error: missing opening parenthesis")
	}
	closing := strings.Index(s[open:], ")")
	if closing == -1 {
		return "", fmt.Errorf("syntax error: missing closing parenthesis")
	}
	return strings.TrimSpace(s[open+1 : open+closing]), nil
}

func splitTrimmed(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func indexOfWord(parts []string, word string) int {
	for i, p := range parts {
		if strings.ToUpper(p) == word {
			return i
		}
	}
	return -1
}

func unquote(s string) string {
	return strings.Trim(s, `"'`)
}
