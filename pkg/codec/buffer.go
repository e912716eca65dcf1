package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultDelimiter separates fields within a record line.
const DefaultDelimiter byte = ','

// Escape sequences used inside string fields. They are fixed regardless of
// the configured delimiter.
const (
	escapedNewline   = ";l/~"
	escapedDelimiter = ":l/~"
)

// CheckDelimiter reports whether d can separate fields without colliding
// with line breaks or the string escape sequences.
func CheckDelimiter(d byte) error {
	if d == '\n' || d == '\r' || strings.IndexByte(escapedNewline+escapedDelimiter, d) >= 0 {
		return fmt.Errorf("delimiter %q collides with line breaks or string escapes", d)
	}
	return nil
}

// DataBuffer is a forward-only cursor over the delimited tokens of a single
// record line. Each Read call consumes exactly one token (ReadCount consumes
// one token and validates it against what is left). A DataBuffer is not
// reusable and not safe for concurrent use.
type DataBuffer struct {
	data  string
	delim byte
	index int // byte offset of the next token; len(data)+1 once exhausted
	field int // tokens consumed so far
	total int // tokens on the line
}

// NewDataBuffer creates a cursor over line using DefaultDelimiter.
func NewDataBuffer(line string) *DataBuffer {
	return NewDataBufferWithDelimiter(line, DefaultDelimiter)
}

// NewDataBufferWithDelimiter creates a cursor over line using delim.
func NewDataBufferWithDelimiter(line string, delim byte) *DataBuffer {
	return &DataBuffer{data: line, delim: delim, total: strings.Count(line, delimString(delim)) + 1}
}

// Position returns the number of tokens consumed so far.
func (b *DataBuffer) Position() int {
	return b.field
}

// Remaining returns the number of tokens not yet consumed.
func (b *DataBuffer) Remaining() int {
	return b.total - b.field
}

// Finish verifies that every token on the line was consumed. A record that
// decodes cleanly but leaves tokens behind has drifted from its schema.
func (b *DataBuffer) Finish() error {
	if n := b.Remaining(); n > 0 {
		return &DecodeError{
			Kind:     "end",
			Position: b.field,
			Err:      ErrTrailingData,
			Detail:   strconv.Itoa(n) + " unread token(s)",
		}
	}
	return nil
}

func (b *DataBuffer) readRaw(kind string) (string, error) {
	if b.index > len(b.data) {
		return "", &DecodeError{Kind: kind, Position: b.field, Err: ErrUnexpectedEnd}
	}

	rest := b.data[b.index:]
	var token string
	if pos := strings.IndexByte(rest, b.delim); pos >= 0 {
		token = rest[:pos]
		b.index += pos + 1
	} else {
		token = rest
		b.index = len(b.data) + 1
	}
	b.field++
	return token, nil
}

func (b *DataBuffer) invalid(kind, token string, err error) error {
	de := &DecodeError{Kind: kind, Position: b.field - 1, Token: token, Err: ErrInvalidToken}
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		de.Detail = ne.Err.Error()
	}
	return de
}

// ReadInt reads a 32-bit signed integer.
func (b *DataBuffer) ReadInt() (int32, error) {
	token, err := b.readRaw("int")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return 0, b.invalid("int", token, err)
	}
	return int32(v), nil
}

// ReadLong reads a 64-bit signed integer.
func (b *DataBuffer) ReadLong() (int64, error) {
	token, err := b.readRaw("long")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, b.invalid("long", token, err)
	}
	return v, nil
}

// ReadFloat reads a 32-bit float.
func (b *DataBuffer) ReadFloat() (float32, error) {
	token, err := b.readRaw("float")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(token, 32)
	if err != nil {
		return 0, b.invalid("float", token, err)
	}
	return float32(v), nil
}

// ReadDouble reads a 64-bit float.
func (b *DataBuffer) ReadDouble() (float64, error) {
	token, err := b.readRaw("double")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, b.invalid("double", token, err)
	}
	return v, nil
}

// ReadBool reads a boolean. Spreadsheet exports write True/False, so the
// comparison ignores case.
func (b *DataBuffer) ReadBool() (bool, error) {
	token, err := b.readRaw("bool")
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(strings.ToLower(token))
	if err != nil {
		return false, b.invalid("bool", token, err)
	}
	return v, nil
}

// ReadString reads a string field and reverses the newline and delimiter
// escapes.
func (b *DataBuffer) ReadString() (string, error) {
	token, err := b.readRaw("string")
	if err != nil {
		return "", err
	}
	return unescape(token, b.delim), nil
}

// ReadCount reads the element count that prefixes a list or map. width is
// the number of tokens a single element occupies (2 for a scalar map entry).
// A negative count, or one that cannot fit in the rest of the line, fails
// instead of truncating.
func (b *DataBuffer) ReadCount(width int) (int, error) {
	if width < 1 {
		width = 1
	}
	token, err := b.readRaw("count")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, b.invalid("count", token, err)
	}
	if n < 0 {
		return 0, &DecodeError{Kind: "count", Position: b.field - 1, Token: token, Err: ErrInvalidCount}
	}
	if have := b.Remaining(); n > have/width {
		return 0, &DecodeError{
			Kind:     "count",
			Position: b.field - 1,
			Token:    token,
			Err:      ErrInvalidCount,
			Detail:   strconv.Itoa(n) + " element(s) of width " + strconv.Itoa(width) + ", " + strconv.Itoa(have) + " token(s) left",
		}
	}
	return n, nil
}

// ReadList reads a count followed by that many elements.
func ReadList[T any](b *DataBuffer, width int, read func() (T, error)) ([]T, error) {
	n, err := b.ReadCount(width)
	if err != nil {
		return nil, err
	}
	list := make([]T, 0, n)
	for i := 0; i < n; i++ {
		item, err := read()
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, nil
}

// ReadMap reads a count followed by that many key/value pairs. A repeated
// key keeps the last value.
func ReadMap[K comparable, V any](b *DataBuffer, width int, readKey func() (K, error), readValue func() (V, error)) (map[K]V, error) {
	n, err := b.ReadCount(width)
	if err != nil {
		return nil, err
	}
	m := make(map[K]V, n)
	for i := 0; i < n; i++ {
		key, err := readKey()
		if err != nil {
			return nil, err
		}
		value, err := readValue()
		if err != nil {
			return nil, err
		}
		m[key] = value
	}
	return m, nil
}

// ReadEnum reads an integer code and maps it through parse.
func ReadEnum[E ~int32](b *DataBuffer, parse func(int32) (E, error)) (E, error) {
	code, err := b.ReadInt()
	if err != nil {
		return 0, err
	}
	return parse(code)
}

func unescape(s string, delim byte) string {
	if !strings.Contains(s, "l/~") {
		return s
	}
	s = strings.ReplaceAll(s, escapedNewline, "\n")
	return strings.ReplaceAll(s, escapedDelimiter, delimString(delim))
}

func escape(s string, delim byte) string {
	s = strings.ReplaceAll(s, "\n", escapedNewline)
	return strings.ReplaceAll(s, delimString(delim), escapedDelimiter)
}

// delimString returns the delimiter as a one-byte string. string(byte)
// would UTF-8 encode bytes >= 0x80 as two bytes.
func delimString(delim byte) string {
	return string([]byte{delim})
}
