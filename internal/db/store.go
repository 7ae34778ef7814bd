package db

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	wrap "github.com/pkg/errors"
	"github.com/rowdb/rowdb/pkg"
	sorted "github.com/tobshub/go-sortedmap"
)

type WriteSettings struct {
	WritePath     string
	InMem         bool
	WriteInterval time.Duration
}

func NewWriteSettings(write_path string, in_mem bool, write_interval_ms int) *WriteSettings {
	write_interval := time.Duration(write_interval_ms) * time.Millisecond
	if !in_mem && len(write_path) == 0 {
		pkg.FatalLog("Must either provide db path or use in-memory mode")
	}
	return &WriteSettings{write_path, in_mem, write_interval}
}

// Store is the single owner of every table. All access goes through the
// Locker; each exported operation is one critical section over the whole
// collection, including the snapshot write, so no caller can observe a
// half-applied logical operation.
type Store struct {
	Locker sync.RWMutex
	// table name -> table, iterated in name order
	tables *sorted.SortedMap[string, *Table]

	WriteSettings *WriteSettings
	LastChange    time.Time
}

func tableOrder(a, b *Table) bool { return a.Name < b.Name }

func NewStore(write_settings *WriteSettings) *Store {
	s := &Store{
		tables:        sorted.New[string, *Table](0, tableOrder),
		WriteSettings: write_settings,
	}

	if !write_settings.InMem {
		tables, err := LoadTables(write_settings.WritePath)
		if err != nil {
			// a missing or unreadable snapshot is recovered by
			// starting empty, never by refusing to serve
			pkg.WarnLog("starting with empty state:", err)
		} else {
			for _, t := range tables {
				s.tables.Insert(t.Name, t)
			}
			pkg.InfoLog("loaded", len(tables), "tables from", write_settings.WritePath)
		}
	}

	s.LastChange = time.Now()
	return s
}

func (s *Store) GetLocker() *sync.RWMutex { return &s.Locker }

// LoadTables reads a snapshot file: one JSON document holding the
// array of all tables.
func LoadTables(path string) ([]*Table, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, wrap.Wrapf(err, "reading snapshot %s", path)
	}

	tables := []*Table{}
	if err := json.Unmarshal(buf, &tables); err != nil {
		return nil, wrap.Wrapf(err, "parsing snapshot %s", path)
	}
	return tables, nil
}

// persist rewrites the whole snapshot in place. Callers must hold the
// lock. Truncate-then-write, the same trade-off the rest of the system
// makes: a crash mid-write loses the snapshot, not the process.
func (s *Store) persist() error {
	if s.WriteSettings.InMem {
		return nil
	}

	buf, err := json.Marshal(s.tablesLocked())
	if err != nil {
		return wrap.Wrap(err, "marshalling snapshot")
	}

	if err := os.WriteFile(s.WriteSettings.WritePath, buf, 0644); err != nil {
		return wrap.Wrapf(err, "writing snapshot %s", s.WriteSettings.WritePath)
	}

	pkg.DebugLog("wrote snapshot", s.WriteSettings.WritePath)
	return nil
}

// WriteToFile persists the current collection. Used by the background
// ticker and on shutdown; mutating operations persist on their own.
func (s *Store) WriteToFile() error {
	var err error
	pkg.RLockWrap(s, func() { err = s.persist() })
	return err
}

func (s *Store) ChangedSince(t time.Time) bool {
	var changed bool
	pkg.RLockWrap(s, func() { changed = s.LastChange.After(t) })
	return changed
}

func (s *Store) tablesLocked() []*Table {
	tables := []*Table{}
	iter, err := s.tables.IterCh()
	if err != nil {
		// empty collection
		return tables
	}
	defer iter.Close()
	for rec := range iter.Records() {
		tables = append(tables, rec.Val)
	}
	return tables
}

func (s *Store) Create(t *Table) error {
	s.Locker.Lock()
	defer s.Locker.Unlock()

	if !s.tables.Insert(t.Name, t) {
		return ErrTableAlreadyExists(t.Name)
	}
	s.LastChange = time.Now()
	return s.persist()
}

// Get returns a deep copy; absence is not an error at this layer.
func (s *Store) Get(name string) (*Table, bool) {
	s.Locker.RLock()
	defer s.Locker.RUnlock()

	t, ok := s.tables.Get(name)
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

func (s *Store) GetAll() []*Table {
	s.Locker.RLock()
	defer s.Locker.RUnlock()

	tables := s.tablesLocked()
	out := make([]*Table, len(tables))
	for i, t := range tables {
		out[i] = t.Clone()
	}
	return out
}

// Drop removes a table by name and reports whether one was removed.
func (s *Store) Drop(name string) (bool, error) {
	s.Locker.Lock()
	defer s.Locker.Unlock()

	if !s.tables.Delete(name) {
		return false, nil
	}
	s.LastChange = time.Now()
	return true, s.persist()
}

// Rename rebinds a table under a new name in one critical section, so
// concurrent readers never see a moment where neither name resolves.
func (s *Store) Rename(current_name, new_name string) (*Table, error) {
	s.Locker.Lock()
	defer s.Locker.Unlock()

	t, ok := s.tables.Get(current_name)
	if !ok {
		return nil, ErrTableNotFound(current_name)
	}
	if _, taken := s.tables.Get(new_name); taken {
		return nil, ErrTableAlreadyExists(new_name)
	}

	renamed := t.Clone()
	renamed.Name = new_name
	s.tables.Delete(current_name)
	s.tables.Insert(new_name, renamed)

	s.LastChange = time.Now()
	if err := s.persist(); err != nil {
		return nil, err
	}
	return renamed.Clone(), nil
}

func (s *Store) InsertColumn(table_name string, column Column) (Column, error) {
	s.Locker.Lock()
	defer s.Locker.Unlock()

	t, ok := s.tables.Get(table_name)
	if !ok {
		return Column{}, ErrTableNotFound(table_name)
	}
	if err := t.AddColumn(column); err != nil {
		return Column{}, err
	}

	s.LastChange = time.Now()
	if err := s.persist(); err != nil {
		return Column{}, err
	}
	return column, nil
}

func (s *Store) InsertRow(table_name string, row Row) (Row, error) {
	s.Locker.Lock()
	defer s.Locker.Unlock()

	t, ok := s.tables.Get(table_name)
	if !ok {
		return Row{}, ErrTableNotFound(table_name)
	}
	padded, err := t.AddRow(row)
	if err != nil {
		return Row{}, err
	}

	s.LastChange = time.Now()
	if err := s.persist(); err != nil {
		return Row{}, err
	}
	return padded, nil
}

// ReplaceTable hands a deep copy of the named table to rebuild and
// substitutes the table it returns for the stored one as a unit, so the
// snapshot only ever sees consistent tables.
func (s *Store) ReplaceTable(name string, rebuild func(*Table) (*Table, error)) error {
	s.Locker.Lock()
	defer s.Locker.Unlock()

	t, ok := s.tables.Get(name)
	if !ok {
		return ErrTableNotFound(name)
	}

	rebuilt, err := rebuild(t.Clone())
	if err != nil {
		return err
	}
	rebuilt.Name = t.Name
	s.tables.Replace(name, rebuilt)

	s.LastChange = time.Now()
	return s.persist()
}
