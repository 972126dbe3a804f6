package gzdec

import (
	"github.com/driverfury/gzdec/internal/huffman"
)

// fixedLitLenDecoder and fixedDistDecoder are the pre-agreed BTYPE=1 trees,
// built once and shared by every fixed-Huffman block. RFC 1951 section 3.2.6
// fixes both code-length vectors, so there is nothing block-specific to
// rebuild.
var (
	fixedLitLenDecoder huffman.Decoder
	fixedDistDecoder   huffman.Decoder
)

func init() {
	if err := fixedLitLenDecoder.Init(fixedLitLenCodeLengths()); err != nil {
		panic(err)
	}
	if err := fixedDistDecoder.Init(fixedDistCodeLengths()); err != nil {
		panic(err)
	}
}

const (
	endOfBlockSymbol = 256
	minLengthSymbol  = 257
	maxLengthSymbol  = 285
)

// inflate decodes a complete DEFLATE stream (a sequence of one or more
// blocks, the last marked BFINAL) from br into sink, per RFC 1951 section
// 3.2.3.
func inflate(br *bitReader, sink *outputSink, emit func(Event)) error {
	for {
		bfinal := br.readBits(1)
		rawBType := br.readBits(2)
		if rawBType > 2 {
			return corruptf(br.bytePos(), "reserved DEFLATE block type 3")
		}
		blockType := BlockType(rawBType + 1)
		emit(Event{Type: BlockBeginEvent, Block: &BlockEvent{Type: blockType, IsFinal: bfinal == 1}})

		var err error
		switch rawBType {
		case 0:
			err = inflateStoredBlock(br, sink)
		case 1:
			err = inflateHuffmanBlock(br, sink, &fixedLitLenDecoder, &fixedDistDecoder)
		case 2:
			err = inflateDynamicBlock(br, sink, emit)
		}
		if err != nil {
			return err
		}

		emit(Event{Type: BlockEndEvent, Block: &BlockEvent{Type: blockType, IsFinal: bfinal == 1}})

		if br.isExhausted() {
			return corruptf(br.bytePos(), "DEFLATE stream ended in the middle of a block")
		}
		if bfinal == 1 {
			return nil
		}
	}
}

func inflateStoredBlock(br *bitReader, sink *outputSink) error {
	br.discardToByteBoundary()

	lenLo, ok := br.readByte()
	if !ok {
		return corruptf(br.bytePos(), "truncated stored block: missing LEN")
	}
	lenHi, ok := br.readByte()
	if !ok {
		return corruptf(br.bytePos(), "truncated stored block: missing LEN")
	}
	nlenLo, ok := br.readByte()
	if !ok {
		return corruptf(br.bytePos(), "truncated stored block: missing NLEN")
	}
	nlenHi, ok := br.readByte()
	if !ok {
		return corruptf(br.bytePos(), "truncated stored block: missing NLEN")
	}

	length := uint16(lenLo) | uint16(lenHi)<<8
	nlength := uint16(nlenLo) | uint16(nlenHi)<<8
	if length != ^nlength {
		return corruptf(br.bytePos(), "stored block LEN %#04x does not complement NLEN %#04x", length, nlength)
	}

	for i := uint16(0); i < length; i++ {
		b, ok := br.readByte()
		if !ok {
			return corruptf(br.bytePos(), "truncated stored block: need %d bytes, got %d", length, i)
		}
		if err := sink.writeByte(b); err != nil {
			return positionError(err, br.bytePos())
		}
	}
	return nil
}

func inflateHuffmanBlock(br *bitReader, sink *outputSink, litLen, dist *huffman.Decoder) error {
	for {
		sym, ok := litLen.Decode(br)
		if !ok {
			return corruptf(br.bytePos(), "invalid literal/length Huffman code")
		}

		switch {
		case sym < endOfBlockSymbol:
			if err := sink.writeByte(byte(sym)); err != nil {
				return positionError(err, br.bytePos())
			}
		case sym == endOfBlockSymbol:
			return nil
		case sym <= maxLengthSymbol:
			length, err := decodeLength(br, sym)
			if err != nil {
				return err
			}

			distSym, ok := dist.Decode(br)
			if !ok {
				return corruptf(br.bytePos(), "invalid distance Huffman code")
			}
			distance, err := decodeDistance(br, distSym)
			if err != nil {
				return err
			}

			if err := sink.copyMatch(length, distance); err != nil {
				return positionError(err, br.bytePos())
			}
		default:
			return corruptf(br.bytePos(), "invalid literal/length symbol %d", sym)
		}
	}
}

func decodeLength(br *bitReader, sym huffman.Symbol) (int, error) {
	idx := int(sym) - minLengthSymbol
	if idx < 0 || idx >= len(lengthBase) {
		return 0, corruptf(br.bytePos(), "invalid length symbol %d", sym)
	}
	extra := lengthExtraBits[idx]
	base := int(lengthBase[idx])
	return base + int(br.readBits(extra)), nil
}

func decodeDistance(br *bitReader, sym huffman.Symbol) (int, error) {
	idx := int(sym)
	if idx < 0 || idx >= len(distBase) {
		return 0, corruptf(br.bytePos(), "reserved or invalid distance symbol %d", sym)
	}
	extra := distExtraBits[idx]
	base := int(distBase[idx])
	return base + int(br.readBits(extra)), nil
}

func inflateDynamicBlock(br *bitReader, sink *outputSink, emit func(Event)) error {
	hlit := int(br.readBits(5)) + 257
	hdist := int(br.readBits(5)) + 1
	hclen := int(br.readBits(4)) + 4

	var clLengths [numCLSymbols]byte
	for i := 0; i < hclen; i++ {
		clLengths[clPermutation[i]] = byte(br.readBits(3))
	}

	var clDecoder huffman.Decoder
	if err := clDecoder.Init(clLengths[:]); err != nil {
		return corruptf(br.bytePos(), "invalid code-length Huffman tree: %v", err)
	}

	total := hlit + hdist
	lengths := make([]byte, total)
	if err := readCodeLengths(br, &clDecoder, lengths); err != nil {
		return err
	}

	var litLenDecoder, distDecoder huffman.Decoder
	if err := litLenDecoder.Init(lengths[:hlit]); err != nil {
		return corruptf(br.bytePos(), "invalid literal/length Huffman tree: %v", err)
	}
	if err := distDecoder.Init(lengths[hlit:]); err != nil {
		return corruptf(br.bytePos(), "invalid distance Huffman tree: %v", err)
	}

	emit(Event{Type: BlockTreesEvent, Trees: &TreesEvent{
		CodeCount:          numCLSymbols,
		LiteralLengthCount: uint16(hlit),
		DistanceCount:      uint16(hdist),
		CodeSizes:          SizeList(append([]byte(nil), clLengths[:]...)),
		LiteralLengthSizes: SizeList(append([]byte(nil), lengths[:hlit]...)),
		DistanceSizes:      SizeList(append([]byte(nil), lengths[hlit:]...)),
	}})

	return inflateHuffmanBlock(br, sink, &litLenDecoder, &distDecoder)
}

// readCodeLengths decodes the HLIT+HDIST code-length values for a dynamic
// block's combined literal/length and distance alphabets, expanding the CL
// alphabet's three repeat symbols (16, 17, 18) per RFC 1951 section 3.2.7.
func readCodeLengths(br *bitReader, clDecoder *huffman.Decoder, lengths []byte) error {
	count := len(lengths)
	i := 0
	for i < count {
		sym, ok := clDecoder.Decode(br)
		if !ok {
			return corruptf(br.bytePos(), "invalid code-length Huffman code")
		}

		var value byte
		var repeat int
		switch {
		case sym <= 15:
			value = byte(sym)
			repeat = 1
		case sym == 16:
			if i == 0 {
				return corruptf(br.bytePos(), "code-length repeat symbol 16 with no previous code length")
			}
			value = lengths[i-1]
			repeat = 3 + int(br.readBits(2))
		case sym == 17:
			value = 0
			repeat = 3 + int(br.readBits(3))
		case sym == 18:
			value = 0
			repeat = 11 + int(br.readBits(7))
		default:
			return corruptf(br.bytePos(), "invalid code-length symbol %d", sym)
		}

		if i+repeat > count {
			return corruptf(br.bytePos(), "code-length repeat overruns alphabet: %d values requested at offset %d of %d", repeat, i, count)
		}
		for ; repeat > 0; repeat-- {
			lengths[i] = value
			i++
		}
	}
	return nil
}
