package codec

import (
	"math"
	"testing"
)

func TestLineEncoder_Primitives(t *testing.T) {
	e := NewLineEncoder()
	e.WriteInt(-3)
	e.WriteLong(math.MaxInt64)
	e.WriteFloat(0.1)
	e.WriteDouble(2.5)
	e.WriteBool(false)
	e.WriteString("a,b\nc")

	want := "-3,9223372036854775807,0.1,2.5,false,a:l/~b;l/~c"
	if got := e.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if e.Len() != 6 {
		t.Errorf("Len = %d, want 6", e.Len())
	}
}

func TestLineEncoder_RoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		delim byte
	}{
		{"comma", ','},
		{"pipe", '|'},
		{"tab", '\t'},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewLineEncoderWithDelimiter(tc.delim)
			e.WriteInt(1)
			e.WriteString("multi\nline|with,delims\t")
			e.WriteFloat(3.1415927)
			WriteList(e, []int64{5, -6}, e.WriteLong)
			WriteMap(e, map[string]float64{"b": 0.5, "a": 1.25}, e.WriteString, e.WriteDouble)
			WriteEnum(e, testEnum(2))

			b := NewDataBufferWithDelimiter(e.String(), tc.delim)
			id, err := b.ReadInt()
			if err != nil || id != 1 {
				t.Fatalf("id: %d, %v", id, err)
			}
			s, err := b.ReadString()
			if err != nil || s != "multi\nline|with,delims\t" {
				t.Fatalf("string: %q, %v", s, err)
			}
			f, err := b.ReadFloat()
			if err != nil || f != float32(3.1415927) {
				t.Fatalf("float: %v, %v", f, err)
			}
			list, err := ReadList(b, 1, b.ReadLong)
			if err != nil || len(list) != 2 || list[0] != 5 || list[1] != -6 {
				t.Fatalf("list: %v, %v", list, err)
			}
			m, err := ReadMap(b, 2, b.ReadString, b.ReadDouble)
			if err != nil || m["a"] != 1.25 || m["b"] != 0.5 {
				t.Fatalf("map: %v, %v", m, err)
			}
			v, err := ReadEnum(b, parseTestEnum)
			if err != nil || v != 2 {
				t.Fatalf("enum: %v, %v", v, err)
			}
			if err := b.Finish(); err != nil {
				t.Fatalf("finish: %v", err)
			}
		})
	}
}

func TestWriteMap_SortedKeys(t *testing.T) {
	e := NewLineEncoder()
	WriteMap(e, map[int32]int32{30: 3, 10: 1, 20: 2}, e.WriteInt, e.WriteInt)

	if got, want := e.String(), "3,10,1,20,2,30,3"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteList_Empty(t *testing.T) {
	e := NewLineEncoder()
	WriteList(e, []string(nil), e.WriteString)

	if got := e.String(); got != "0" {
		t.Errorf("got %q, want %q", got, "0")
	}
}
