package common

import (
	"bytes"
	"testing"
)

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 7, 3); got != 7 {
		t.Errorf("expected first non-zero value 7, got %d", got)
	}
	if got := Coalesce("", "a", "b"); got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("expected zero value for all-zero input, got %d", got)
	}
}

func TestSliceToBytes(t *testing.T) {
	got := SliceToBytes([]uint32{0x04030201, 0x08070605})
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(got, want) {
		t.Errorf("unexpected bytes\ngot:  %v\nwant: %v", got, want)
	}

	if SliceToBytes([]float32(nil)) != nil {
		t.Error("expected nil for empty slice")
	}
}

func TestStructToBytes(t *testing.T) {
	type packed struct {
		A uint32
		B uint32
	}
	v := packed{A: 0x04030201, B: 0x08070605}

	got := StructToBytes(&v)
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(got, want) {
		t.Errorf("unexpected bytes\ngot:  %v\nwant: %v", got, want)
	}
}
