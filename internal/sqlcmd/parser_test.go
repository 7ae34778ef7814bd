package sqlcmd_test

import (
	"testing"

	"github.com/rowdb/rowdb/internal/db"
	. "github.com/rowdb/rowdb/internal/sqlcmd"
	"gotest.tools/assert"
)

func TestParseCreateTable(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		stmt, err := Parse("CREATE TABLE users (id INT, name STRING, email STRING);")
		assert.NilError(t, err)

		req := stmt.(CreateTableStmt).Request
		assert.Equal(t, req.Name, "users")
		assert.Equal(t, len(req.InsertColumnRequests), 3)
		assert.Equal(t, req.InsertColumnRequests[0].Key, "id")
		assert.Equal(t, req.InsertColumnRequests[2].Key, "email")
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := Parse("CREATE TABLE users (id BLOB)")
		assert.ErrorContains(t, err, "unsupported column type")
	})

	t.Run("missing parenthesis", func(t *testing.T) {
		_, err := Parse("CREATE TABLE users id INT")
		assert.ErrorContains(t, err, "parenthesis")
	})

	t.Run("no columns", func(t *testing.T) {
		_, err := Parse("CREATE TABLE users ()")
		assert.ErrorContains(t, err, "CREATE TABLE")
	})
}

func TestParseInsertRow(t *testing.T) {
	t.Run("typed values", func(t *testing.T) {
		stmt, err := Parse("INSERT INTO users (id, name, score, active) VALUES (1, 'Alice', 9.5, true)")
		assert.NilError(t, err)

		req := stmt.(InsertRowStmt).Request
		assert.Equal(t, req.TableName, "users")
		assert.Equal(t, req.Row.Values[0], db.IntValue(1))
		assert.Equal(t, req.Row.Values[1], db.StrValue("Alice"))
		assert.Equal(t, req.Row.Values[2], db.FloatValue(9.5))
		assert.Equal(t, req.Row.Values[3], db.BoolValue(true))
	})

	t.Run("null literal", func(t *testing.T) {
		stmt, err := Parse("INSERT INTO users (id, name) VALUES (1, NULL)")
		assert.NilError(t, err)
		assert.Equal(t, stmt.(InsertRowStmt).Request.Row.Values[1], db.NullValue())
	})

	t.Run("count mismatch", func(t *testing.T) {
		_, err := Parse("INSERT INTO users (id, name) VALUES (1)")
		assert.ErrorContains(t, err, "column count does not match")
	})

	t.Run("missing values keyword", func(t *testing.T) {
		_, err := Parse("INSERT INTO users (id) (1)")
		assert.ErrorContains(t, err, "INSERT INTO")
	})
}

func TestParseSelect(t *testing.T) {
	t.Run("star", func(t *testing.T) {
		stmt, err := Parse("SELECT * FROM users")
		assert.NilError(t, err)

		req := stmt.(SelectStmt).Request
		assert.Equal(t, req.TableName, "users")
		assert.Assert(t, req.Columns == nil)
		assert.Assert(t, req.Condition == nil)
	})

	t.Run("projection and where", func(t *testing.T) {
		stmt, err := Parse("SELECT id, name FROM users WHERE email = 'a@example.com'")
		assert.NilError(t, err)

		req := stmt.(SelectStmt).Request
		assert.DeepEqual(t, req.Columns, []string{"id", "name"})
		assert.Equal(t, req.Condition.Column, "email")
		assert.Equal(t, req.Condition.Value, "a@example.com")
	})

	t.Run("quoted value with spaces", func(t *testing.T) {
		stmt, err := Parse("SELECT * FROM users WHERE name = 'Alice Smith'")
		assert.NilError(t, err)
		assert.Equal(t, stmt.(SelectStmt).Request.Condition.Value, "Alice Smith")
	})

	t.Run("missing from", func(t *testing.T) {
		_, err := Parse("SELECT id, name users")
		assert.ErrorContains(t, err, "SELECT columns FROM")
	})

	t.Run("incomplete where", func(t *testing.T) {
		_, err := Parse("SELECT * FROM users WHERE id =")
		assert.ErrorContains(t, err, "incomplete WHERE")
	})
}

func TestParseUpdate(t *testing.T) {
	t.Run("multiple sets with where", func(t *testing.T) {
		stmt, err := Parse("UPDATE users SET name = 'Alicia', age = 31 WHERE id = 1")
		assert.NilError(t, err)

		req := stmt.(UpdateStmt).Request
		assert.Equal(t, req.TableName, "users")
		assert.Equal(t, len(req.Updates), 2)
		assert.Equal(t, req.Updates[0].Column, "name")
		assert.Equal(t, req.Updates[0].Value, "Alicia")
		assert.Equal(t, req.Updates[1].Column, "age")
		assert.Equal(t, req.Updates[1].Value, "31")
		assert.Equal(t, req.Condition.Column, "id")
		assert.Equal(t, req.Condition.Value, "1")
	})

	t.Run("no where updates everything", func(t *testing.T) {
		stmt, err := Parse("UPDATE users SET name = 'x'")
		assert.NilError(t, err)
		assert.Assert(t, stmt.(UpdateStmt).Request.Condition == nil)
	})

	t.Run("missing set", func(t *testing.T) {
		_, err := Parse("UPDATE users name = 'x'")
		assert.ErrorContains(t, err, "UPDATE table_name SET")
	})

	t.Run("malformed assignment", func(t *testing.T) {
		_, err := Parse("UPDATE users SET name")
		assert.ErrorContains(t, err, "SET clause")
	})
}

func TestParseRenameAndDrop(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		stmt, err := Parse("RENAME TABLE users TO customers")
		assert.NilError(t, err)

		req := stmt.(RenameTableStmt).Request
		assert.Equal(t, req.CurrentName, "users")
		assert.Equal(t, req.NewName, "customers")
	})

	t.Run("rename syntax", func(t *testing.T) {
		_, err := Parse("RENAME users customers")
		assert.ErrorContains(t, err, "RENAME TABLE")
	})

	t.Run("drop", func(t *testing.T) {
		stmt, err := Parse("DROP TABLE users")
		assert.NilError(t, err)
		assert.Equal(t, stmt.(DropTableStmt).Request.Name, "users")
	})

	t.Run("drop syntax", func(t *testing.T) {
		_, err := Parse("DROP users")
		assert.ErrorContains(t, err, "DROP TABLE")
	})
}

func TestParseMisc(t *testing.T) {
	t.Run("exit", func(t *testing.T) {
		stmt, err := Parse("exit")
		assert.NilError(t, err)
		_, ok := stmt.(ExitStmt)
		assert.Assert(t, ok)
	})

	t.Run("empty command", func(t *testing.T) {
		_, err := Parse("   ")
		assert.ErrorContains(t, err, "empty command")
	})

	t.Run("unknown command", func(t *testing.T) {
		_, err := Parse("TRUNCATE users")
		assert.ErrorContains(t, err, "unknown command")
	})

	t.Run("keywords are case insensitive", func(t *testing.T) {
		stmt, err := Parse("select * from users where id = 1")
		assert.NilError(t, err)
		assert.Equal(t, stmt.(SelectStmt).Request.TableName, "users")
	})
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, Literal("NULL"), db.NullValue())
	assert.Equal(t, Literal("42"), db.IntValue(42))
	assert.Equal(t, Literal("-3"), db.IntValue(-3))
	assert.Equal(t, Literal("2.5"), db.FloatValue(2.5))
	assert.Equal(t, Literal("true"), db.BoolValue(true))
	assert.Equal(t, Literal("false"), db.BoolValue(false))
	assert.Equal(t, Literal(`"quoted"`), db.StrValue("quoted"))
	assert.Equal(t, Literal("bare"), db.StrValue("bare"))
}
