package db

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type ValueKind int

const (
	KindNull ValueKind = iota
	KindStr
	KindBool
	KindInt
	KindFloat
)

// Value is one cell of a row: a string, bool, 64-bit int, 64-bit float
// or null. The zero Value is Null.
type Value struct {
	Kind ValueKind

	str   string
	boolv bool
	intv  int64
	flt   float64
}

func StrValue(s string) Value    { return Value{Kind: KindStr, str: s} }
func BoolValue(b bool) Value     { return Value{Kind: KindBool, boolv: b} }
func IntValue(i int64) Value     { return Value{Kind: KindInt, intv: i} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, flt: f} }
func NullValue() Value           { return Value{Kind: KindNull} }

// OptionalStrValue maps an absent string to Null.
func OptionalStrValue(s *string) Value {
	if s == nil {
		return NullValue()
	}
	return StrValue(*s)
}

// AsString returns the canonical string projection of the value.
// It reports false only for Null; every other kind always projects.
func (v Value) AsString() (string, bool) {
	switch v.Kind {
	case KindStr:
		return v.str, true
	case KindBool:
		return strconv.FormatBool(v.boolv), true
	case KindInt:
		return strconv.FormatInt(v.intv, 10), true
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'f', -1, 64), true
	}
	return "", false
}

// String is AsString with Null shown as an empty string. Display only,
// condition matching goes through AsString.
func (v Value) String() string {
	s, _ := v.AsString()
	return s
}

var null_token = []byte(`"Null"`)

// Values travel as externally tagged variants:
// {"Str":s}, {"Bool":b}, {"Int":i}, {"Float":f} or the literal "Null".
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindStr:
		return json.Marshal(map[string]string{"Str": v.str})
	case KindBool:
		return json.Marshal(map[string]bool{"Bool": v.boolv})
	case KindInt:
		return json.Marshal(map[string]int64{"Int": v.intv})
	case KindFloat:
		return json.Marshal(map[string]float64{"Float": v.flt})
	}
	return null_token, nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), null_token) {
		*v = NullValue()
		return nil
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("invalid value literal %s", data)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("value literal must carry exactly one tag, got %s", data)
	}

	for tag, raw := range tagged {
		switch tag {
		case "Str":
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			*v = StrValue(s)
		case "Bool":
			var b bool
			if err := json.Unmarshal(raw, &b); err != nil {
				return err
			}
			*v = BoolValue(b)
		case "Int":
			var i int64
			if err := json.Unmarshal(raw, &i); err != nil {
				return err
			}
			*v = IntValue(i)
		case "Float":
			var f float64
			if err := json.Unmarshal(raw, &f); err != nil {
				return err
			}
			*v = FloatValue(f)
		default:
			return fmt.Errorf("unknown value tag %q", tag)
		}
	}
	return nil
}
