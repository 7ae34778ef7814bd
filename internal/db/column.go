package db

// Column describes one slot of a table's schema. A foreign key is an
// owned tree of sub-columns naming the referenced composite key; it
// never points back into another table's schema.
type Column struct {
	Key        string   `json:"key"`
	PrimaryKey bool     `json:"primary_key"`
	NonNull    bool     `json:"non_null"`
	Unique     bool     `json:"unique"`
	ForeignKey []Column `json:"foreign_key,omitempty"`
}

// NewColumn validates the constraint flags. A primary key that is not
// both non-null and unique is rejected; this is reachable from network
// input, so it is an error and never a panic.
func NewColumn(key string, primaryKey, nonNull, unique bool, foreignKey []Column) (Column, error) {
	if primaryKey && !(nonNull && unique) {
		return Column{}, ErrConstraintViolation("primary key column must be non-null and unique")
	}
	return Column{
		Key:        key,
		PrimaryKey: primaryKey,
		NonNull:    nonNull,
		Unique:     unique,
		ForeignKey: foreignKey,
	}, nil
}

func (c Column) clone() Column {
	out := c
	if c.ForeignKey != nil {
		out.ForeignKey = make([]Column, len(c.ForeignKey))
		for i, sub := range c.ForeignKey {
			out.ForeignKey[i] = sub.clone()
		}
	}
	return out
}
