package codec

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by DecodeError. Match them with errors.Is.
var (
	ErrUnexpectedEnd    = errors.New("unexpected end of line")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidCount     = errors.New("invalid collection count")
	ErrTrailingData     = errors.New("trailing data after last field")
	ErrUnknownEnumValue = errors.New("unknown enum value")
)

// DecodeError reports a token that could not be read as the requested type.
type DecodeError struct {
	Kind     string // requested type: int, long, float, double, bool, string, count
	Position int    // zero-based token index within the line
	Token    string // raw token, empty when the line was exhausted
	Err      error  // one of the sentinel causes above
	Detail   string // optional conversion detail
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("decode %s at token %d", e.Kind, e.Position)
	if e.Token != "" {
		msg += fmt.Sprintf(" (%q)", e.Token)
	}
	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnknownEnumValueError is returned when an integer code has no variant in
// the named enumeration.
type UnknownEnumValueError struct {
	Enum string
	Code int32
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("%s: %s code %d", ErrUnknownEnumValue, e.Enum, e.Code)
}

// Is lets errors.Is(err, ErrUnknownEnumValue) match any UnknownEnumValueError.
func (e *UnknownEnumValueError) Is(target error) bool {
	return target == ErrUnknownEnumValue
}
