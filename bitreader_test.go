package gzdec

import (
	"testing"
)

func TestBitReader_ReadBitsLSBFirst(t *testing.T) {
	// Byte 0xb5 = 1011_0101. DEFLATE reads LSB first, so bit-by-bit this
	// is 1,0,1,0,1,1,0,1.
	br := newBitReader([]byte{0xb5})
	want := []uint32{1, 0, 1, 0, 1, 1, 0, 1}
	for i, w := range want {
		got := br.readBits(1)
		if got != w {
			t.Fatalf("bit %d: got %d, want %d", i, got, w)
		}
	}
}

func TestBitReader_MultiBitRead(t *testing.T) {
	// The first 3-bit field of 0x34 0x12 is the low 3 bits of 0x34, which
	// are 100 (value 4), matching LSB-first packing.
	br := newBitReader([]byte{0x34, 0x12})
	if v := br.readBits(3); v != 0x4 {
		t.Fatalf("first 3 bits = %#x, want 0x4", v)
	}
}

func TestBitReader_CrossesByteBoundary(t *testing.T) {
	br := newBitReader([]byte{0xff, 0x00})
	if v := br.readBits(4); v != 0xf {
		t.Fatalf("first nibble = %#x, want 0xf", v)
	}
	if v := br.readBits(8); v != 0x0f {
		t.Fatalf("spanning byte read = %#x, want 0x0f", v)
	}
}

func TestBitReader_ExhaustionReadsZero(t *testing.T) {
	br := newBitReader([]byte{0x01})
	if v := br.readBits(1); v != 1 {
		t.Fatalf("first bit = %d, want 1", v)
	}
	if br.isExhausted() {
		t.Fatalf("exhausted after only consuming 1 of 8 available bits")
	}
	// 7 remaining zero bits, then run past the end.
	if v := br.readBits(7); v != 0 {
		t.Fatalf("remaining 7 bits = %d, want 0", v)
	}
	if v := br.readBits(8); v != 0 {
		t.Fatalf("past-end read = %d, want 0", v)
	}
	if !br.isExhausted() {
		t.Fatalf("expected exhausted after reading past the end of input")
	}
}

func TestBitReader_DiscardToByteBoundary(t *testing.T) {
	br := newBitReader([]byte{0xff, 0xab})
	br.readBits(3)
	br.discardToByteBoundary()
	b, ok := br.readByte()
	if !ok || b != 0xab {
		t.Fatalf("readByte() = (%#x, %v), want (0xab, true)", b, ok)
	}
}

func TestBitReader_ReadByteRequiresByteBoundary(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected readByte to panic when bits are still buffered")
		}
	}()
	br := newBitReader([]byte{0xff})
	br.readBits(3)
	br.readByte()
}
