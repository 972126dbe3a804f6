// Package gzdec decodes a complete in-memory gzip (RFC 1952) or zlib
// (RFC 1950) member into its decompressed bytes. It has no streaming API:
// callers hand over the entire compressed buffer and get back the entire
// decompressed buffer (or a status explaining why that was not possible).
package gzdec

import (
	"encoding/binary"
	"hash"
	"hash/adler32"
	"hash/crc32"
)

// minGZIPMemberSize is the size of a gzip member's fixed framing alone: a
// 10-byte header and an 8-byte CRC32+ISIZE footer. Input shorter than this
// cannot hold a member; the DEFLATE stream between header and footer adds
// at least 2 more bytes (an empty fixed-Huffman final block is 10 bits).
const minGZIPMemberSize = 18

// Decode decompresses a complete gzip or zlib member and returns the
// decompressed payload along with the envelope Header recovered along the
// way. Only the first member is decoded; any bytes following it are
// ignored (see spec's multi-member non-goal).
func Decode(input []byte, opts ...Option) ([]byte, Header, error) {
	var o options
	o.reset()
	o.apply(opts)

	sizeHint, _ := PeekSize(input)
	sink := newGrowableSink(int(sizeHint))

	header, err := decode(input, sink, &o)
	return sink.bytes(), header, err
}

// DecodeInto decompresses a complete gzip or zlib member into the
// caller-supplied output slice, without allocating a new output buffer. It
// returns the number of bytes written. If output is too small to hold the
// full payload, it returns a DecodeError with Status StatusNoSpace; bytes
// already written to output up to that point should be considered
// undefined.
func DecodeInto(input []byte, output []byte, opts ...Option) (int, Header, error) {
	var o options
	o.reset()
	o.apply(opts)

	sink := newBoundedSink(output)
	header, err := decode(input, sink, &o)
	return sink.len(), header, err
}

// PeekSize reports the uncompressed size of a gzip member without
// decompressing it, by reading the trailing 4-byte little-endian ISIZE
// field (RFC 1952 section 2.3.1). Because ISIZE is the payload length
// modulo 2**32, this is exact only for payloads under 4 GiB; it is still
// useful as a capacity hint. PeekSize returns (0, false) if input is too
// short to be a valid gzip member, or if it is not a gzip member at all
// (zlib streams carry no equivalent size field).
func PeekSize(input []byte) (uint32, bool) {
	if len(input) < minGZIPMemberSize {
		return 0, false
	}
	if input[0] != 0x1f || input[1] != 0x8b {
		return 0, false
	}
	isize := binary.LittleEndian.Uint32(input[len(input)-4:])
	return isize, true
}

func decode(input []byte, sink *outputSink, o *options) (Header, error) {
	c := cursor{src: input}

	header, err := parseHeader(&c, o)
	if err != nil {
		return header, err
	}

	tracers := o.tracers
	emit := func(event Event) {
		for _, tr := range tracers {
			tr.OnEvent(event)
		}
	}

	emit(Event{Type: StreamBeginEvent, Format: header.Format})
	emit(Event{Type: StreamHeaderEvent, Format: header.Format, Header: &header})

	br := newBitReader(c.src[c.pos:])
	if err := inflate(&br, sink, emit); err != nil {
		// inflate's offsets count from the start of the DEFLATE data;
		// shift them to count from the start of input.
		if de, ok := err.(DecodeError); ok && de.Offset >= 0 {
			de.Offset += c.pos
			return header, de
		}
		return header, err
	}
	c.pos += br.bytePos()

	checksum := payloadChecksum(header.Format, sink.bytes())
	footer := &FooterEvent{}
	switch header.Format {
	case GZIPFormat:
		footer.CRC32 = Checksum32(checksum)
	case ZlibFormat:
		footer.Adler32 = Checksum32(checksum)
	}
	emit(Event{Type: StreamEndEvent, Format: header.Format, OutputBytesStream: uint64(sink.len()), Footer: footer})

	if err := parseFooter(&c, header, o, checksum, sink.len()); err != nil {
		return header, err
	}

	emit(Event{Type: StreamCloseEvent, Format: header.Format})

	return header, nil
}

// payloadChecksum computes the checksum the envelope's footer is expected
// to carry for the decompressed payload: CRC-32 (IEEE) for gzip, Adler-32
// for zlib. It is always computed, both to feed parseFooter's optional
// verification and to populate StreamEndEvent's FooterEvent for tracers;
// dummyHash32 only stands in for a format that carries no footer checksum
// at all.
func payloadChecksum(format Format, payload []byte) uint32 {
	var h hash.Hash32
	switch format {
	case GZIPFormat:
		h = crc32.NewIEEE()
	case ZlibFormat:
		h = adler32.New()
	default:
		h = dummyHash32{}
	}
	h.Write(payload)
	return h.Sum32()
}
