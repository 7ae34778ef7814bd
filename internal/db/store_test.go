package db_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	. "github.com/rowdb/rowdb/internal/db"
	"gotest.tools/assert"
)

func newMemStore() *Store {
	return NewStore(NewWriteSettings("", true, 1000))
}

func newUsersTable(name string) *Table {
	table := NewTable(name)
	table.AddColumn(Column{Key: "id", PrimaryKey: true, NonNull: true, Unique: true})
	table.AddColumn(Column{Key: "name"})
	return table
}

func TestStoreCreate(t *testing.T) {
	store := newMemStore()

	assert.NilError(t, store.Create(NewTable("a")))

	t.Run("duplicate name", func(t *testing.T) {
		err := store.Create(NewTable("a"))
		assert.ErrorContains(t, err, "already exists")
	})

	t.Run("get returns a copy", func(t *testing.T) {
		table, ok := store.Get("a")
		assert.Assert(t, ok)
		table.Name = "changed"

		again, ok := store.Get("a")
		assert.Assert(t, ok)
		assert.Equal(t, again.Name, "a")
	})

	t.Run("missing table", func(t *testing.T) {
		_, ok := store.Get("missing")
		assert.Assert(t, !ok)
	})
}

func TestStoreGetAll(t *testing.T) {
	store := newMemStore()
	store.Create(NewTable("c"))
	store.Create(NewTable("a"))
	store.Create(NewTable("b"))

	tables := store.GetAll()
	assert.Equal(t, len(tables), 3)
	// always listed in name order, independent of creation order
	assert.Equal(t, tables[0].Name, "a")
	assert.Equal(t, tables[1].Name, "b")
	assert.Equal(t, tables[2].Name, "c")
}

func TestStoreDrop(t *testing.T) {
	store := newMemStore()
	store.Create(NewTable("a"))

	dropped, err := store.Drop("a")
	assert.NilError(t, err)
	assert.Assert(t, dropped)

	dropped, err = store.Drop("a")
	assert.NilError(t, err)
	assert.Assert(t, !dropped)
}

func TestStoreRename(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		store := newMemStore()
		store.Create(newUsersTable("users"))

		renamed, err := store.Rename("users", "customers")
		assert.NilError(t, err)
		assert.Equal(t, renamed.Name, "customers")
		assert.Equal(t, len(renamed.Columns), 2)

		_, ok := store.Get("users")
		assert.Assert(t, !ok)
		_, ok = store.Get("customers")
		assert.Assert(t, ok)
	})

	t.Run("missing table", func(t *testing.T) {
		store := newMemStore()
		_, err := store.Rename("users", "customers")
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("name taken", func(t *testing.T) {
		store := newMemStore()
		store.Create(NewTable("a"))
		store.Create(NewTable("b"))

		_, err := store.Rename("a", "b")
		assert.ErrorContains(t, err, "already exists")
		// both tables survive a failed rename
		_, ok := store.Get("a")
		assert.Assert(t, ok)
	})
}

func TestStoreInsert(t *testing.T) {
	store := newMemStore()
	store.Create(newUsersTable("users"))

	t.Run("insert column", func(t *testing.T) {
		column, err := store.InsertColumn("users", Column{Key: "email"})
		assert.NilError(t, err)
		assert.Equal(t, column.Key, "email")

		_, err = store.InsertColumn("users", Column{Key: "email"})
		assert.ErrorContains(t, err, "already exists")

		_, err = store.InsertColumn("missing", Column{Key: "email"})
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("insert row pads to column count", func(t *testing.T) {
		row, err := store.InsertRow("users", NewRow(IntValue(1)))
		assert.NilError(t, err)
		assert.Equal(t, len(row.Values), 3)
		assert.Equal(t, row.Values[1], NullValue())

		_, err = store.InsertRow("missing", NewRow(IntValue(1)))
		assert.ErrorContains(t, err, "not found")
	})
}

func TestStoreReplaceTable(t *testing.T) {
	store := newMemStore()
	store.Create(newUsersTable("users"))
	store.InsertRow("users", NewRow(IntValue(1), StrValue("alice")))

	t.Run("rebuild substitutes as a unit", func(t *testing.T) {
		err := store.ReplaceTable("users", func(table *Table) (*Table, error) {
			table.Rows[0].Values[1] = StrValue("alicia")
			return table, nil
		})
		assert.NilError(t, err)

		table, _ := store.Get("users")
		assert.Equal(t, table.Rows[0].Values[1], StrValue("alicia"))
	})

	t.Run("rebuild failure leaves the table alone", func(t *testing.T) {
		err := store.ReplaceTable("users", func(table *Table) (*Table, error) {
			table.Rows[0].Values[1] = StrValue("bob")
			return nil, ErrColumnNotFound("nope")
		})
		assert.ErrorContains(t, err, "not found")

		table, _ := store.Get("users")
		assert.Equal(t, table.Rows[0].Values[1], StrValue("alicia"))
	})
}

func TestStoreSnapshot(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db.rowdb")
		store := NewStore(NewWriteSettings(path, false, 1000))

		store.Create(newUsersTable("users"))
		store.InsertRow("users", NewRow(IntValue(1), StrValue("alice")))

		tables, err := LoadTables(path)
		assert.NilError(t, err)
		assert.Equal(t, len(tables), 1)
		assert.Equal(t, tables[0].Name, "users")
		assert.Equal(t, len(tables[0].Columns), 2)
		assert.Equal(t, tables[0].Rows[0].Values[0], IntValue(1))
		assert.Equal(t, tables[0].Rows[0].Values[1], StrValue("alice"))
	})

	t.Run("reloaded on startup", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db.rowdb")
		store := NewStore(NewWriteSettings(path, false, 1000))
		store.Create(newUsersTable("users"))
		store.InsertRow("users", NewRow(IntValue(1), NullValue()))

		reopened := NewStore(NewWriteSettings(path, false, 1000))
		table, ok := reopened.Get("users")
		assert.Assert(t, ok)
		assert.Equal(t, len(table.Rows), 1)
		assert.Equal(t, table.Rows[0].Values[1], NullValue())
	})

	t.Run("corrupt snapshot starts empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db.rowdb")
		assert.NilError(t, os.WriteFile(path, []byte("{not json"), 0644))

		store := NewStore(NewWriteSettings(path, false, 1000))
		assert.Equal(t, len(store.GetAll()), 0)
	})

	t.Run("write failure surfaces but keeps the change", func(t *testing.T) {
		// a directory as the write path makes every snapshot write fail
		store := NewStore(NewWriteSettings(t.TempDir(), false, 1000))

		err := store.Create(NewTable("a"))
		assert.ErrorContains(t, err, "writing snapshot")

		_, ok := store.Get("a")
		assert.Assert(t, ok)
	})
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := newMemStore()
	table := NewTable("events")
	table.AddColumn(Column{Key: "n"})
	store.Create(table)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := store.InsertRow("events", NewRow(IntValue(int64(i*20+j))))
				if err != nil {
					t.Error(err)
				}
				store.GetAll()
			}
		}(i)
	}
	wg.Wait()

	got, _ := store.Get("events")
	assert.Equal(t, len(got.Rows), 200)
}
