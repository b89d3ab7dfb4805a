package model

import (
	"bytes"
	"strconv"
)

// Number is a nullable numeric field. The source documents were
// produced by loosely typed tooling, so a rating may arrive as a JSON
// number, a quoted number, or be missing entirely. Absent and
// non-numeric values both decode to an invalid Number; they are never
// conflated with zero.
type Number struct {
	Value float64
	Valid bool
}

// Num builds a valid Number, mainly for tests and fixtures.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

var jsonNull = []byte("null")

func (n *Number) UnmarshalJSON(b []byte) error {
	n.Value, n.Valid = 0, false
	if bytes.Equal(b, jsonNull) {
		return nil
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		// Tolerate duck-typed garbage ("N/A", "") as missing data.
		return nil
	}
	n.Value, n.Valid = v, true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}
