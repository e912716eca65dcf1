package tables

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ssargent/easytables/pkg/codec"
)

// Record is implemented by every generated record type.
type Record interface {
	// Key returns the record id the table is keyed by.
	Key() int32
	// Encode writes the record's fields in declaration order.
	Encode(e *codec.LineEncoder)
}

// Decoder builds one record from a line cursor.
type Decoder[T Record] func(buf *codec.DataBuffer) (T, error)

// Table maps record ids to decoded records of a single type.
type Table[T Record] struct {
	name   string
	decode Decoder[T]
	rows   map[int32]T
}

// NewTable creates an empty table.
func NewTable[T Record](name string, decode Decoder[T]) *Table[T] {
	return &Table[T]{
		name:   name,
		decode: decode,
		rows:   make(map[int32]T),
	}
}

// Name returns the table name used to fetch its text.
func (t *Table[T]) Name() string {
	return t.name
}

// Get returns the record with the given id and whether it exists.
func (t *Table[T]) Get(id int32) (T, bool) {
	r, ok := t.rows[id]
	return r, ok
}

// Len returns the number of records.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// All returns every record ordered by id.
func (t *Table[T]) All() []T {
	ids := make([]int32, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

// Load decodes text into the table, one record per non-empty line. A
// record with an id already present replaces the earlier one; the number of
// such replacements is returned. The first bad line aborts the load with a
// *LoadError.
func (t *Table[T]) Load(text string, delim byte) (int, error) {
	replaced := 0
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		buf := codec.NewDataBufferWithDelimiter(line, delim)
		rec, err := t.decode(buf)
		if err == nil {
			err = buf.Finish()
		}
		if err != nil {
			return replaced, &LoadError{Table: t.name, Line: i + 1, Err: err}
		}

		if _, ok := t.rows[rec.Key()]; ok {
			replaced++
		}
		t.rows[rec.Key()] = rec
	}
	return replaced, nil
}

// Text encodes the table back to its line format, ordered by id.
func (t *Table[T]) Text(delim byte) string {
	var sb strings.Builder
	for _, rec := range t.All() {
		e := codec.NewLineEncoderWithDelimiter(delim)
		rec.Encode(e)
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (t *Table[T]) lookup(id int32) (Record, bool) {
	r, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return r, true
}

func (t *Table[T]) records() []Record {
	all := t.All()
	out := make([]Record, len(all))
	for i, r := range all {
		out[i] = r
	}
	return out
}

// anyTable is the type-erased view the Manager uses to drive every table
// the same way.
type anyTable interface {
	Name() string
	Len() int
	Load(text string, delim byte) (int, error)
	Text(delim byte) string
	lookup(id int32) (Record, bool)
	records() []Record
}

// fieldError names the record field a decode failure happened in.
func fieldError(record, field string, err error) error {
	return fmt.Errorf("%s.%s: %w", record, field, err)
}
