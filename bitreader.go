package gzdec

import (
	"github.com/chronos-tachyon/assert"
)

// bitsPerByte is the width of the accumulator's feed unit.
const bitsPerByte = 8

// maxBitsPerRead is the widest single readBits request the block
// interpreter ever makes (the longest distance extra-bits field is 13
// bits); fill's assertion uses it as a sanity bound, with headroom.
const maxBitsPerRead = 16

// bitReader is a cursor over an immutable byte slice that yields bits in
// DEFLATE's bit order: LSB-first within each byte, bytes consumed in
// ascending address order. See RFC 1951 section 3.1.1.
//
// Once the cursor runs past the last byte of src, further reads return 0
// and exhausted is latched true. The block interpreter is responsible for
// noticing that the stream ran dry in the middle of something that still
// needed bits (RFC 1951 gives no explicit "end of stream" marker inside a
// block body).
type bitReader struct {
	src       []byte
	pos       int
	acc       uint32
	accLen    byte
	exhausted bool
}

func newBitReader(src []byte) bitReader {
	return bitReader{src: src}
}

// isExhausted reports whether the cursor has run past the end of src. This
// is sticky: once true, it stays true.
func (br *bitReader) isExhausted() bool {
	return br.exhausted
}

// bytePos returns the index of the next unconsumed byte of src, for use in
// corrupt-input error messages. Bits already pulled out of the in-flight
// byte are not reflected.
func (br *bitReader) bytePos() int {
	return br.pos
}

func (br *bitReader) fill(atLeast byte) bool {
	assert.Assertf(atLeast <= maxBitsPerRead, "atLeast %d > maxBitsPerRead %d", atLeast, maxBitsPerRead)

	for br.accLen < atLeast {
		if br.pos >= len(br.src) {
			br.exhausted = true
			return false
		}
		br.acc |= uint32(br.src[br.pos]) << br.accLen
		br.pos++
		br.accLen += bitsPerByte
	}
	return true
}

// ReadBit reads a single bit and satisfies internal/huffman's BitReader
// interface for the symbol-reader's bit-by-bit tree walk.
func (br *bitReader) ReadBit() uint32 {
	return br.readBits(1)
}

// readBits returns the value accumulated from n consecutive single-bit
// reads, least-significant bit first, per RFC 1951's bit-packing rule. On
// exhaustion, bits beyond the end of src read as zero.
func (br *bitReader) readBits(n byte) uint32 {
	br.fill(n)
	out := br.acc & bitMask(n)
	br.acc >>= n
	if br.accLen > n {
		br.accLen -= n
	} else {
		br.accLen = 0
	}
	return out
}

// discardToByteBoundary drops any partial byte still in the accumulator,
// so the next read starts at a byte boundary. Used before a stored block's
// LEN/NLEN fields, per RFC 1951 section 3.2.4.
func (br *bitReader) discardToByteBoundary() {
	br.acc = 0
	br.accLen = 0
}

// readByte reads one aligned byte directly from src, bypassing the bit
// accumulator. The caller must have discarded to a byte boundary first.
func (br *bitReader) readByte() (byte, bool) {
	assert.Assertf(br.accLen == 0, "readByte called with %d bits still buffered", br.accLen)
	if br.pos >= len(br.src) {
		br.exhausted = true
		return 0, false
	}
	ch := br.src[br.pos]
	br.pos++
	return ch, true
}

func bitMask(n byte) uint32 {
	if n == 0 {
		return 0
	}
	return (uint32(1) << n) - 1
}
