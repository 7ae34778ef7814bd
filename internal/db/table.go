package db

// Table is a named aggregate of an ordered column list and the rows
// stored against it. Column order is the authoritative index space for
// every row; rows never grow past the column count.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

func NewTable(name string) *Table {
	return &Table{Name: name, Columns: []Column{}, Rows: []Row{}}
}

// ColumnIndex resolves a column key to its position in the row index
// space.
func (t *Table) ColumnIndex(key string) (int, bool) {
	for i, c := range t.Columns {
		if c.Key == key {
			return i, true
		}
	}
	return 0, false
}

func (t *Table) AddColumn(column Column) error {
	if _, exists := t.ColumnIndex(column.Key); exists {
		return ErrDuplicateColumn(column.Key)
	}
	t.Columns = append(t.Columns, column)
	return nil
}

// AddRow appends a row, right-padding short rows with Null. The missing
// values are taken to belong to the trailing columns; if any of those
// trailing columns is non-null the insert fails and the table is left
// unchanged.
func (t *Table) AddRow(row Row) (Row, error) {
	if len(row.Values) > len(t.Columns) {
		return Row{}, ErrRowArityExceeded(len(row.Values), len(t.Columns))
	}

	padded := row.clone()
	for i := len(row.Values); i < len(t.Columns); i++ {
		if t.Columns[i].NonNull {
			return Row{}, ErrNonNullViolation(t.Columns[i].Key)
		}
		padded.AddValue(NullValue())
	}

	t.Rows = append(t.Rows, padded)
	return padded, nil
}

// Clone deep-copies the table so callers can hand it out or rebuild it
// without aliasing the stored one.
func (t *Table) Clone() *Table {
	out := NewTable(t.Name)
	out.Columns = make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		out.Columns[i] = c.clone()
	}
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = r.clone()
	}
	return out
}
