package gzdec

import (
	"encoding/binary"
	"hash/adler32"
	"hash/crc32"
	"time"
)

// Header is a collection of fields recovered from the envelope wrapping a
// gzip or zlib stream. Fields that the envelope in use does not carry (for
// example Comment under ZlibFormat) are left at their zero value.
type Header struct {
	Format       Format
	FileName     string
	Comment      string
	LastModified time.Time
	DataType     DataType
	OSType       OSType
	ExtraData    ExtraData
}

// ExtraData represents a collection of records in a gzip ExtraData header.
type ExtraData struct {
	Records []ExtraDataRecord
}

// ExtraDataRecord represents a single record in a gzip ExtraData header.
type ExtraDataRecord struct {
	ID    [2]byte
	Bytes []byte
}

// Parse parses the given bytes as an ExtraData field.
func (xd *ExtraData) Parse(raw []byte) {
	*xd = ExtraData{}

	index := uint(0)
	length := uint(len(raw))
	for (index + 4) <= length {
		var rec ExtraDataRecord
		rec.ID[0] = raw[index+0]
		rec.ID[1] = raw[index+1]
		recLen := uint(binary.LittleEndian.Uint16(raw[index+2 : index+4]))
		index += 4
		if index+recLen > length {
			break
		}
		if recLen > 0 {
			rec.Bytes = raw[index : index+recLen]
		}
		index += recLen
		xd.Records = append(xd.Records, rec)
	}
}

// AsBytes returns the binary representation of this ExtraData field.
func (xd *ExtraData) AsBytes() []byte {
	var length uint
	for _, rec := range xd.Records {
		recLen := uint(len(rec.Bytes))
		length += 4 + recLen
	}

	out := make([]byte, 0, length)
	for _, rec := range xd.Records {
		var tmp [2]byte
		binary.LittleEndian.PutUint16(tmp[:], uint16(len(rec.Bytes)))
		out = append(out, rec.ID[0], rec.ID[1], tmp[0], tmp[1])
		out = append(out, rec.Bytes...)
	}
	return out
}

// cursor is a plain byte-slice reader used for the byte-aligned envelope
// header and footer, which always precede and follow the bit-packed DEFLATE
// stream that bitReader walks.
type cursor struct {
	src []byte
	pos int
}

func (c *cursor) take(n int) ([]byte, bool) {
	if c.pos+n > len(c.src) {
		return nil, false
	}
	p := c.src[c.pos : c.pos+n]
	c.pos += n
	return p, true
}

func (c *cursor) takeU16LE() (uint16, bool) {
	p, ok := c.take(2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(p), true
}

func (c *cursor) takeU32LE() (uint32, bool) {
	p, ok := c.take(4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(p), true
}

func (c *cursor) takeU32BE() (uint32, bool) {
	p, ok := c.take(4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(p), true
}

// takeStringZ reads a NUL-terminated Latin-1 string, per RFC 1952 section
// 2.3.1 (FNAME, FCOMMENT).
func (c *cursor) takeStringZ() (string, bool) {
	start := c.pos
	for c.pos < len(c.src) {
		if c.src[c.pos] == 0 {
			str := string(c.src[start:c.pos])
			c.pos++
			return str, true
		}
		c.pos++
	}
	return "", false
}

// detectFormat sniffs the envelope format from the leading bytes of input,
// the way gzip(1) itself does.
func detectFormat(input []byte) Format {
	if len(input) >= 2 && input[0] == 0x1f && input[1] == 0x8b {
		return GZIPFormat
	}
	if len(input) >= 2 {
		u16 := binary.BigEndian.Uint16(input[0:2])
		if (input[0]&0x0f) == 0x08 && (u16%31) == 0 {
			return ZlibFormat
		}
	}
	return AutoFormat
}

// parseHeader consumes the envelope header from the front of c and returns
// the recovered Header, leaving c positioned at the first byte of the
// bit-packed DEFLATE stream.
func parseHeader(c *cursor, o *options) (Header, error) {
	format := o.format
	if format == AutoFormat {
		format = detectFormat(c.src[c.pos:])
	}

	switch format {
	case GZIPFormat:
		return parseHeaderGZIP(c, o)
	case ZlibFormat:
		return parseHeaderZlib(c, o)
	default:
		return Header{}, invalidMagicf("input does not begin with a recognized gzip or zlib envelope")
	}
}

func parseHeaderGZIP(c *cursor, o *options) (Header, error) {
	start := c.pos
	p, ok := c.take(10)
	if !ok {
		return Header{}, corruptf(start, "truncated gzip header: need 10 bytes, have %d", len(c.src)-start)
	}

	if p[0] != 0x1f || p[1] != 0x8b {
		return Header{}, invalidMagicf("invalid gzip magic bytes %#02x %#02x", p[0], p[1])
	}
	if p[2] != 0x08 {
		return Header{}, invalidMethodf(start+2, "invalid gzip compression method %#02x, expected 0x08 (DEFLATE)", p[2])
	}
	if (p[3] & 0xe0) != 0 {
		return Header{}, corruptf(start+3, "reserved gzip flag bits set: %#02x", p[3]&0xe0)
	}

	var header Header
	header.Format = GZIPFormat

	bitFTEXT := (p[3] & 0x01) != 0
	bitFHCRC := (p[3] & 0x02) != 0
	bitFEXTRA := (p[3] & 0x04) != 0
	bitFNAME := (p[3] & 0x08) != 0
	bitFCOMMENT := (p[3] & 0x10) != 0

	if bitFTEXT {
		header.DataType = TextData
	} else {
		header.DataType = BinaryData
	}

	mtime := binary.LittleEndian.Uint32(p[4:8])
	if mtime != 0 {
		header.LastModified = time.Unix(int64(mtime), 0)
	}

	header.OSType = gzipOSTypeDecodeTable[p[9]]

	headerCRC := crc32.NewIEEE()
	headerCRC.Write(p)

	if bitFEXTRA {
		xlen, ok := c.takeU16LE()
		if !ok {
			return Header{}, corruptf(c.pos, "truncated gzip FEXTRA length")
		}
		xdata, ok := c.take(int(xlen))
		if !ok {
			return Header{}, corruptf(c.pos, "truncated gzip FEXTRA data: need %d bytes", xlen)
		}
		headerCRC.Write(c.src[c.pos-2-len(xdata) : c.pos])
		header.ExtraData.Parse(xdata)
	}

	if bitFNAME {
		nameStart := c.pos
		str, ok := c.takeStringZ()
		if !ok {
			return Header{}, corruptf(nameStart, "truncated gzip FNAME: missing NUL terminator")
		}
		headerCRC.Write(c.src[nameStart:c.pos])
		header.FileName = str
	}

	if bitFCOMMENT {
		commentStart := c.pos
		str, ok := c.takeStringZ()
		if !ok {
			return Header{}, corruptf(commentStart, "truncated gzip FCOMMENT: missing NUL terminator")
		}
		headerCRC.Write(c.src[commentStart:c.pos])
		header.Comment = str
	}

	if bitFHCRC {
		expected, ok := c.takeU16LE()
		if !ok {
			return Header{}, corruptf(c.pos, "truncated gzip FHCRC")
		}
		if o.verifyHeaderCRC16 {
			computed := uint16(headerCRC.Sum32())
			if computed != expected {
				return Header{}, corruptf(c.pos-2, "invalid gzip header CRC-16: header says %#04x, computed %#04x", expected, computed)
			}
		}
	}

	return header, nil
}

func parseHeaderZlib(c *cursor, o *options) (Header, error) {
	start := c.pos
	p, ok := c.take(2)
	if !ok {
		return Header{}, corruptf(start, "truncated zlib header")
	}

	u16 := binary.BigEndian.Uint16(p)
	if mod := u16 % 31; mod != 0 {
		return Header{}, corruptf(start, "invalid zlib header checksum: %#04x mod 31 == %d, want 0", u16, mod)
	}

	method := p[0] & 0x0f
	if method != 0x08 {
		return Header{}, invalidMethodf(start, "invalid zlib compression method %#x, expected 0x8 (DEFLATE)", method)
	}

	var header Header
	header.Format = ZlibFormat

	bitFDICT := (p[1] & 0x20) != 0
	if bitFDICT {
		expectedAdler32, ok := c.takeU32BE()
		if !ok {
			return Header{}, corruptf(c.pos, "truncated zlib FDICT checksum")
		}
		if len(o.dict) == 0 {
			return Header{}, corruptf(c.pos-4, "zlib stream requires a preset dictionary with Adler-32 %#08x, none supplied", expectedAdler32)
		}
		computed := adler32.Checksum(o.dict)
		if computed != expectedAdler32 {
			return Header{}, corruptf(c.pos-4, "zlib stream requires a different preset dictionary: wants Adler-32 %#08x, supplied dictionary has %#08x", expectedAdler32, computed)
		}
	} else if len(o.dict) != 0 {
		return Header{}, corruptf(start, "zlib stream was not compressed with a preset dictionary, but one was supplied")
	}

	return header, nil
}

// parseFooter consumes the fixed-size trailer following the DEFLATE stream
// and, when requested, verifies it against the running checksum of the
// decompressed output.
func parseFooter(c *cursor, header Header, o *options, checksum uint32, outputLen int) error {
	switch header.Format {
	case GZIPFormat:
		return parseFooterGZIP(c, o, checksum, outputLen)
	case ZlibFormat:
		return parseFooterZlib(c, o, checksum)
	default:
		return nil
	}
}

func parseFooterGZIP(c *cursor, o *options, computedCRC32 uint32, outputLen int) error {
	start := c.pos
	expectedCRC32, ok := c.takeU32LE()
	if !ok {
		return corruptf(start, "truncated gzip footer: missing CRC-32")
	}
	isize, ok := c.takeU32LE()
	if !ok {
		return corruptf(c.pos, "truncated gzip footer: missing ISIZE")
	}

	if o.verifyChecksum && expectedCRC32 != computedCRC32 {
		return corruptf(start, "invalid gzip CRC-32: footer says %#08x, computed %#08x", expectedCRC32, computedCRC32)
	}
	if isize != uint32(outputLen) {
		return corruptf(start+4, "invalid gzip ISIZE: footer says %d (mod 2**32), decoded %d bytes", isize, uint32(outputLen))
	}
	return nil
}

func parseFooterZlib(c *cursor, o *options, computedAdler32 uint32) error {
	start := c.pos
	expected, ok := c.takeU32BE()
	if !ok {
		return corruptf(start, "truncated zlib footer: missing Adler-32")
	}
	if o.verifyChecksum && expected != computedAdler32 {
		return corruptf(start, "invalid zlib Adler-32: footer says %#08x, computed %#08x", expected, computedAdler32)
	}
	return nil
}
