package tables

import (
	"fmt"

	"github.com/ssargent/easytables/pkg/codec"
)

// BuffKind classifies a buff.
type BuffKind int32

const (
	BuffKindPositive BuffKind = 1
	BuffKindNegative BuffKind = 2
	BuffKindControl  BuffKind = 3
)

// ParseBuffKind maps an integer code to a BuffKind.
func ParseBuffKind(code int32) (BuffKind, error) {
	switch k := BuffKind(code); k {
	case BuffKindPositive, BuffKindNegative, BuffKindControl:
		return k, nil
	}
	return 0, &codec.UnknownEnumValueError{Enum: "Buff.Kind", Code: code}
}

func (k BuffKind) String() string {
	switch k {
	case BuffKindPositive:
		return "Positive"
	case BuffKindNegative:
		return "Negative"
	case BuffKindControl:
		return "Control"
	}
	return fmt.Sprintf("BuffKind(%d)", int32(k))
}

func (k BuffKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *BuffKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Positive":
		*k = BuffKindPositive
	case "Negative":
		*k = BuffKindNegative
	case "Control":
		*k = BuffKindControl
	default:
		return fmt.Errorf("unknown buff kind %q", text)
	}
	return nil
}

// Buff is one row of the Buff table. Duration is in seconds; Value is the
// flat amount applied per tick; Modifiers scale named attributes.
type Buff struct {
	ID        int32              `json:"id"`
	Name      string             `json:"name"`
	Kind      BuffKind           `json:"kind"`
	Duration  float32            `json:"duration"`
	Stackable bool               `json:"stackable"`
	Value     int64              `json:"value"`
	Tags      []string           `json:"tags"`
	Modifiers map[string]float64 `json:"modifiers"`
}

// DecodeBuff reads a Buff in field order.
func DecodeBuff(buf *codec.DataBuffer) (*Buff, error) {
	var (
		b   Buff
		err error
	)
	if b.ID, err = buf.ReadInt(); err != nil {
		return nil, fieldError("Buff", "id", err)
	}
	if b.Name, err = buf.ReadString(); err != nil {
		return nil, fieldError("Buff", "name", err)
	}
	if b.Kind, err = codec.ReadEnum(buf, ParseBuffKind); err != nil {
		return nil, fieldError("Buff", "kind", err)
	}
	if b.Duration, err = buf.ReadFloat(); err != nil {
		return nil, fieldError("Buff", "duration", err)
	}
	if b.Stackable, err = buf.ReadBool(); err != nil {
		return nil, fieldError("Buff", "stackable", err)
	}
	if b.Value, err = buf.ReadLong(); err != nil {
		return nil, fieldError("Buff", "value", err)
	}
	if b.Tags, err = codec.ReadList(buf, 1, buf.ReadString); err != nil {
		return nil, fieldError("Buff", "tags", err)
	}
	if b.Modifiers, err = codec.ReadMap(buf, 2, buf.ReadString, buf.ReadDouble); err != nil {
		return nil, fieldError("Buff", "modifiers", err)
	}
	return &b, nil
}

func (b *Buff) Key() int32 {
	return b.ID
}

func (b *Buff) Encode(e *codec.LineEncoder) {
	e.WriteInt(b.ID)
	e.WriteString(b.Name)
	codec.WriteEnum(e, b.Kind)
	e.WriteFloat(b.Duration)
	e.WriteBool(b.Stackable)
	e.WriteLong(b.Value)
	codec.WriteList(e, b.Tags, e.WriteString)
	codec.WriteMap(e, b.Modifiers, e.WriteString, e.WriteDouble)
}

func (b *Buff) String() string {
	return fmt.Sprintf("Buff{id=%d name=%q kind=%s}", b.ID, b.Name, b.Kind)
}
