package db

// Row is an ordered list of values aligned by position to the owning
// table's column order.
type Row struct {
	Values []Value `json:"values"`
}

func NewRow(values ...Value) Row {
	return Row{Values: values}
}

func (r *Row) AddValue(v Value) {
	r.Values = append(r.Values, v)
}

func (r Row) clone() Row {
	out := Row{Values: make([]Value, len(r.Values))}
	copy(out.Values, r.Values)
	return out
}

// Strings projects every value; Null cells come back as nil.
func (r Row) Strings() []*string {
	out := make([]*string, len(r.Values))
	for i, v := range r.Values {
		if s, ok := v.AsString(); ok {
			s := s
			out[i] = &s
		}
	}
	return out
}
