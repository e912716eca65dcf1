package codec

import (
	"errors"
	"testing"
)

// FuzzDataBuffer_NoPanic feeds arbitrary lines through every read path and
// checks that failures are always typed decode errors.
func FuzzDataBuffer_NoPanic(f *testing.F) {
	f.Add("1,Arthur,3,2,2,5,2,agi,8,str,10,ExcaliburSword,99,2")
	f.Add("")
	f.Add(",,,")
	f.Add("99999999999999999999,-1,x")
	f.Add("2,a;l/~b,c:l/~d")

	f.Fuzz(func(t *testing.T, line string) {
		b := NewDataBuffer(line)
		for i := 0; i < 16; i++ {
			var err error
			switch i % 6 {
			case 0:
				_, err = b.ReadInt()
			case 1:
				_, err = b.ReadString()
			case 2:
				_, err = ReadList(b, 1, b.ReadLong)
			case 3:
				_, err = ReadMap(b, 2, b.ReadString, b.ReadDouble)
			case 4:
				_, err = b.ReadBool()
			case 5:
				_, err = b.ReadFloat()
			}
			if err != nil {
				var de *DecodeError
				if !errors.As(err, &de) {
					t.Fatalf("untyped error %T: %v", err, err)
				}
				return
			}
		}
	})
}

// FuzzLineEncoder_StringRoundTrip checks that any string free of the escape
// sequences survives encode and decode.
func FuzzLineEncoder_StringRoundTrip(f *testing.F) {
	f.Add("plain")
	f.Add("with,comma")
	f.Add("with\nnewline")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		if containsEscape(s) {
			t.Skip()
		}
		e := NewLineEncoder()
		e.WriteString(s)
		e.WriteInt(1)

		b := NewDataBuffer(e.String())
		got, err := b.ReadString()
		if err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Fatalf("got %q, want %q", got, s)
		}
		if _, err := b.ReadInt(); err != nil {
			t.Fatal(err)
		}
		if err := b.Finish(); err != nil {
			t.Fatal(err)
		}
	})
}

func containsEscape(s string) bool {
	for i := 0; i+len(escapedNewline) <= len(s); i++ {
		w := s[i : i+len(escapedNewline)]
		if w == escapedNewline || w == escapedDelimiter {
			return true
		}
	}
	return false
}
