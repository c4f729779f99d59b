package bytebuf

import (
	"slices"
	"testing"
)

func TestFromBytesDoesNotAlias(t *testing.T) {
	src := []byte("hello")
	b := FromBytes(src)
	src[0] = 'j'

	if b.String() != "hello" {
		t.Errorf("expected hello, got %q", b.String())
	}
}

func TestAppendVariants(t *testing.T) {
	b := New(0)
	b.Append([]byte("ab"))
	b.AppendByte('c')
	b.AppendString("de")
	b.Extend(slices.Values([]byte("fg")))

	if got := b.String(); got != "abcdefg" {
		t.Errorf("expected abcdefg, got %q", got)
	}
	if b.Len() != 7 {
		t.Errorf("expected len 7, got %d", b.Len())
	}
}

func TestReplace(t *testing.T) {
	b := FromString("a long original string")
	b.Replace([]byte("short"))

	if got := b.String(); got != "short" {
		t.Errorf("expected short, got %q", got)
	}
}

func TestIntoBytesIsCopy(t *testing.T) {
	b := FromString("abc")
	out := b.IntoBytes()
	out[0] = 'x'

	if b.String() != "abc" {
		t.Errorf("IntoBytes should not alias the buffer, got %q", b.String())
	}
}

func TestToValidString(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii", []byte("plain"), "plain"},
		{"multibyte", []byte("héllo"), "héllo"},
		{"invalid byte", []byte{'a', 0xff, 'b'}, "a�b"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromBytes(tt.in).ToValidString()
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStringKeepsInvalidBytes(t *testing.T) {
	b := FromBytes([]byte{0xff, 0xfe})
	if got := b.String(); got != "\xff\xfe" {
		t.Errorf("String should not validate, got %q", got)
	}
}

func TestCloneAndEqual(t *testing.T) {
	a := FromString("same")
	c := a.Clone()
	if !a.Equal(c) {
		t.Error("clone should be equal")
	}
	c.AppendByte('!')
	if a.Equal(c) {
		t.Error("mutating the clone should not affect the original")
	}
	if a.Equal(nil) {
		t.Error("nil buffer should never be equal")
	}
}

func TestZeroValue(t *testing.T) {
	var b Buffer
	if !b.IsEmpty() {
		t.Error("zero buffer should be empty")
	}
	b.AppendString("x")
	if b.String() != "x" {
		t.Errorf("expected x, got %q", b.String())
	}
}

func TestTruncate(t *testing.T) {
	b := FromString("abcdef")
	b.Truncate(3)
	if b.String() != "abc" {
		t.Errorf("expected abc, got %q", b.String())
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range truncation")
		}
	}()
	b.Truncate(10)
}
