package bank

import (
	"errors"
	"math"
)

// Record is one raw question object exactly as decoded from a bank. Values are
// JSON-compatible (string, float64, bool, nil, []any, map[string]any) so the
// merged artifact can be written back without losing unknown fields.
type Record map[string]any

// IDKey is the record field holding the question identifier.
const IDKey = "id"

// MaxID bounds the magnitude of a question id.
const MaxID = math.MaxInt32

// ID returns the record identifier, defaulting to 0 when absent. A present
// value that is not integral or lies outside ±MaxID reports ok=false.
func (r Record) ID() (id int, ok bool) {
	raw, exists := r[IDKey]
	if !exists || raw == nil {
		return 0, true
	}
	switch v := raw.(type) {
	case float64:
		if math.Trunc(v) != v || math.Abs(v) > MaxID {
			return 0, false
		}
		return int(v), true
	case int:
		if v > MaxID || v < -MaxID {
			return 0, false
		}
		return v, true
	case int64:
		if v > MaxID || v < -MaxID {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// Clone returns a shallow copy of the record. Nested values are shared; the
// pipeline only ever rewrites top-level keys.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}

// Origin tells where a merged record came from: the bank location, the
// record's position in that bank and the id it carried before renumbering.
type Origin struct {
	Source string
	Index  int
	ID     int
}

// Bank holds the records of one source in file order.
type Bank struct {
	source  Source
	records []Record
}

// NewBank wraps records and their origin.
func NewBank(src Source, records []Record) (Bank, error) {
	if src == nil {
		return Bank{}, errors.New("bank: source is required")
	}
	clone := make([]Record, len(records))
	copy(clone, records)
	return Bank{source: src, records: clone}, nil
}

// MustNewBank panics if the bank cannot be created. Useful for tests.
func MustNewBank(src Source, records []Record) Bank {
	b, err := NewBank(src, records)
	if err != nil {
		panic(err)
	}
	return b
}

// Source returns the origin metadata for the bank.
func (b Bank) Source() Source {
	return b.source
}

// Location returns the string identifier for the origin.
func (b Bank) Location() string {
	if b.source == nil {
		return ""
	}
	return b.source.Location()
}

// Records returns a copy of the record slice. Records themselves are shared.
func (b Bank) Records() []Record {
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Len reports the number of records in the bank.
func (b Bank) Len() int {
	return len(b.records)
}
