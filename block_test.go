package gzdec

import (
	"testing"

	"github.com/driverfury/gzdec/internal/huffman"
)

func TestReadCodeLengths_RepeatAtPositionZeroIsError(t *testing.T) {
	var cl huffman.Decoder
	// Single-symbol alphabet: symbol 16 gets the 1-bit code "0". Every
	// other CL symbol is absent.
	lengths := make([]byte, numCLSymbols)
	lengths[16] = 1
	if err := cl.Init(lengths); err != nil {
		t.Fatalf("Init: %v", err)
	}

	br := newBitReader([]byte{0x00})
	out := make([]byte, 4)
	if err := readCodeLengths(&br, &cl, out); err == nil {
		t.Fatalf("readCodeLengths accepted a repeat-previous symbol at position 0")
	}
}

func TestReadCodeLengths_SingleLiteralLengths(t *testing.T) {
	var cl huffman.Decoder
	// Symbols 0 and 1 of the CL alphabet both get 1-bit codes: 0 => "0",
	// 1 => "1". This lets the test drive two explicit length values
	// without needing any repeat symbol.
	lengths := make([]byte, numCLSymbols)
	lengths[0] = 1
	lengths[1] = 1
	if err := cl.Init(lengths); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Bits, LSB-first within the byte: 0, 1 -> byte value 0x02.
	br := newBitReader([]byte{0x02})
	out := make([]byte, 2)
	if err := readCodeLengths(&br, &cl, out); err != nil {
		t.Fatalf("readCodeLengths: %v", err)
	}
	if out[0] != 0 || out[1] != 1 {
		t.Fatalf("readCodeLengths = %v, want [0 1]", out)
	}
}

func TestInflateStoredBlock_LenNlenMismatch(t *testing.T) {
	// BFINAL=1, BTYPE=0 packed into the low 3 bits of the first byte
	// (0b001 read LSB-first is bit0=1,bit1=0,bit2=0, i.e. byte 0x01),
	// followed by a LEN/NLEN pair that does not complement.
	br := newBitReader([]byte{0x01, 0x05, 0x00, 0x00, 0x00})
	br.readBits(1) // BFINAL
	br.readBits(2) // BTYPE
	sink := newGrowableSink(0)
	if err := inflateStoredBlock(&br, sink); err == nil {
		t.Fatalf("inflateStoredBlock accepted a LEN/NLEN pair that does not complement")
	}
}

func TestOutputSink_BoundedRejectsOverflow(t *testing.T) {
	sink := newBoundedSink(make([]byte, 2))
	if err := sink.writeByte('a'); err != nil {
		t.Fatalf("writeByte: %v", err)
	}
	if err := sink.writeByte('b'); err != nil {
		t.Fatalf("writeByte: %v", err)
	}
	if err := sink.writeByte('c'); err == nil {
		t.Fatalf("writeByte into a full bounded sink unexpectedly succeeded")
	}
}

func TestOutputSink_CopyMatchHandlesOverlap(t *testing.T) {
	sink := newGrowableSink(0)
	for _, b := range []byte("ab") {
		if err := sink.writeByte(b); err != nil {
			t.Fatalf("writeByte: %v", err)
		}
	}
	// distance=1 length=4 from "ab" should extend with four more copies
	// of the last byte 'b', each reading the byte the loop just wrote.
	if err := sink.copyMatch(4, 1); err != nil {
		t.Fatalf("copyMatch: %v", err)
	}
	if string(sink.bytes()) != "abbbbb" {
		t.Fatalf("copyMatch result = %q, want %q", sink.bytes(), "abbbbb")
	}
}

func TestOutputSink_CopyMatchRejectsImpossibleDistance(t *testing.T) {
	sink := newGrowableSink(0)
	sink.writeByte('a')
	if err := sink.copyMatch(1, 5); err == nil {
		t.Fatalf("copyMatch accepted a distance exceeding bytes written so far")
	}
}
