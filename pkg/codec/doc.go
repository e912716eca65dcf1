// Package codec provides the line codec used by EasyTables data files.
//
// Every table is exported as plain text, one record per line. A record line
// is a flat sequence of delimited tokens. Fields are positional: nothing in
// the line names them, so the reader must consume tokens in exactly the
// order the record type declares them.
//
// # Line Format
//
//	Hero: id, name, quality, skills List<int>, attribute Map<string,int>,
//	      weapon Struct<string name, int score>, state Enum<Locked=1,Available=2>
//
//	1,Arthur,3,2,2,5,2,agi,8,str,10,ExcaliburSword,99,2
//
//	id        1
//	name      Arthur
//	quality   3
//	skills    2 | 2,5
//	attribute 2 | agi,8,str,10
//	weapon    ExcaliburSword,99
//	state     2 (Available)
//
// Encoding rules:
//   - int and long: base-10 signed integers (32 and 64 bit)
//   - float and double: decimal floating point
//   - bool: true/false in any case, or 1/0
//   - string: raw text, with newlines written as ";l/~" and the delimiter
//     written as ":l/~"
//   - List<T>: element count followed by the elements
//   - Map<K,V>: pair count followed by key, value, key, value...
//   - Struct<...>: the struct's fields inlined in declaration order
//   - Enum<...>: the integer code of the variant
//
// The default delimiter is a comma. Any single byte that is not a line break
// and does not appear in the escape sequences may be used instead (see
// CheckDelimiter).
//
// # Usage
//
//	buf := codec.NewDataBuffer(line)
//	id, err := buf.ReadInt()
//	if err != nil {
//	    return err
//	}
//	skills, err := codec.ReadList(buf, 1, buf.ReadInt)
//	if err != nil {
//	    return err
//	}
//	if err := buf.Finish(); err != nil {
//	    return err // schema drift: tokens left over
//	}
//
// LineEncoder writes the same format. Map pairs are sorted by key so output
// is deterministic.
//
// # Error Handling
//
// Reads fail fast with *DecodeError. Its Err field is one of ErrUnexpectedEnd,
// ErrInvalidToken, ErrInvalidCount or ErrTrailingData, so callers can use
// errors.Is. Enumeration decoders return *UnknownEnumValueError, which matches
// ErrUnknownEnumValue. A count is checked against the tokens that remain
// before any element is read, so a line is never silently truncated.
//
// # Thread Safety
//
// A DataBuffer or LineEncoder belongs to one goroutine and one line.
package codec
