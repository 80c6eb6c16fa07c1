package binread

import (
	"errors"
	"testing"
)

func TestReader_Scalars(t *testing.T) {
	t.Parallel()

	r := New([]byte{
		0x2A,                   // u8
		0x34, 0x12,             // u16
		0x78, 0x56, 0x34, 0x12, // u32
		0xFF, 0xFF, 0xFF, 0xFF, // i32 = -1
		0x00, 0x00, 0x80, 0x3F, // f32 = 1.0
	})

	if v, err := r.Uint8(); err != nil || v != 0x2A {
		t.Fatalf("Uint8 = %d, %v, want 42", v, err)
	}
	if v, err := r.Uint16(); err != nil || v != 0x1234 {
		t.Fatalf("Uint16 = %#x, %v, want 0x1234", v, err)
	}
	if v, err := r.Uint32(); err != nil || v != 0x12345678 {
		t.Fatalf("Uint32 = %#x, %v, want 0x12345678", v, err)
	}
	if v, err := r.Int32(); err != nil || v != -1 {
		t.Fatalf("Int32 = %d, %v, want -1", v, err)
	}
	if v, err := r.Float32(); err != nil || v != 1.0 {
		t.Fatalf("Float32 = %v, %v, want 1.0", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", r.Remaining())
	}
}

func TestReader_EOF(t *testing.T) {
	t.Parallel()

	r := New([]byte{0x01})
	if _, err := r.Uint32(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("Uint32 on short buffer: err = %v, want ErrUnexpectedEOF", err)
	}

	// A failed read must not advance the cursor.
	if r.Pos() != 0 {
		t.Fatalf("Pos after failed read = %d, want 0", r.Pos())
	}
}

func TestReader_String(t *testing.T) {
	t.Parallel()

	r := New([]byte{
		0x08, 0x00, 0x00, 0x00,
		'P', 'K', 'G', 'V', '0', '0', '1', '9',
		0x00,
		0xAB, // trailing data stays unread
	})

	s, err := r.String()
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if s != "PKGV0019" {
		t.Fatalf("String = %q, want PKGV0019", s)
	}
	if r.Pos() != 13 {
		t.Fatalf("Pos = %d, want 13", r.Pos())
	}
}

func TestReader_String_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"truncated length", []byte{0x08, 0x00}, ErrUnexpectedEOF},
		{"truncated body", []byte{0x08, 0x00, 0x00, 0x00, 'P', 'K'}, ErrUnexpectedEOF},
		{"missing null", []byte{0x02, 0x00, 0x00, 0x00, 'h', 'i'}, ErrUnexpectedEOF},
		{"bad terminator", []byte{0x02, 0x00, 0x00, 0x00, 'h', 'i', 0x7F}, ErrStringTerminator},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := New(tt.data).String(); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReader_CString(t *testing.T) {
	t.Parallel()

	r := New([]byte{'t', 'e', 'x', 0x00, 'x'})
	s, err := r.CString()
	if err != nil {
		t.Fatalf("CString: %v", err)
	}
	if s != "tex" || r.Pos() != 4 {
		t.Fatalf("CString = %q at %d, want \"tex\" at 4", s, r.Pos())
	}

	if _, err := r.CString(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("unterminated CString: err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestReader_BytesAndSkip(t *testing.T) {
	t.Parallel()

	r := New([]byte{1, 2, 3, 4, 5})
	if err := r.Skip(2); err != nil {
		t.Fatalf("Skip: %v", err)
	}

	b, err := r.Bytes(2)
	if err != nil || b[0] != 3 || b[1] != 4 {
		t.Fatalf("Bytes = %v, %v, want [3 4]", b, err)
	}

	if err := r.Skip(2); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("Skip past end: err = %v, want ErrUnexpectedEOF", err)
	}
}
