package models

import (
	"bytes"
	"encoding/json"
)

// RawRow is one result row with its column order preserved. Column sets
// vary per variant and per table, so rows stay dynamic; keeping the
// driver's column order makes repeated serialization of the same data
// byte-identical.
type RawRow struct {
	cols []string
	vals map[string]Value
}

func NewRawRow() RawRow {
	return RawRow{vals: make(map[string]Value)}
}

// Set stores a column value, appending the column at the end of the order
// if it was not present yet.
func (r *RawRow) Set(col string, v Value) {
	if r.vals == nil {
		r.vals = make(map[string]Value)
	}
	if _, ok := r.vals[col]; !ok {
		r.cols = append(r.cols, col)
	}
	r.vals[col] = v
}

// Get returns NULL for columns the row does not carry.
func (r RawRow) Get(col string) Value {
	return r.vals[col]
}

func (r RawRow) Has(col string) bool {
	_, ok := r.vals[col]
	return ok
}

func (r RawRow) Columns() []string { return r.cols }

func (r RawRow) Len() int { return len(r.cols) }

func (r RawRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.vals[col].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
