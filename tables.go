package gzdec

// Alphabet sizes, per RFC 1951 section 3.2.5-3.2.7.
const (
	numLitLenSymbols = 288 // 0-255 literal, 256 end-of-block, 257-285 length, 286-287 unused
	numDistSymbols   = 32  // 0-29 defined, 30-31 reserved
	numCLSymbols     = 19  // code-length-of-code-lengths alphabet
)

// clPermutation gives the order in which the HCLEN+4 code lengths for the
// CL alphabet are transmitted in a dynamic block header (RFC 1951 section
// 3.2.7).
var clPermutation = [numCLSymbols]byte{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// fixedLitLenCodeLengths is the pre-agreed code-length vector for BTYPE=1
// (fixed Huffman) blocks, per RFC 1951 section 3.2.6.
func fixedLitLenCodeLengths() []byte {
	cl := make([]byte, numLitLenSymbols)
	for i := 0; i <= 143; i++ {
		cl[i] = 8
	}
	for i := 144; i <= 255; i++ {
		cl[i] = 9
	}
	for i := 256; i <= 279; i++ {
		cl[i] = 7
	}
	for i := 280; i <= 287; i++ {
		cl[i] = 8
	}
	return cl
}

// fixedDistCodeLengths is the pre-agreed distance code-length vector for
// BTYPE=1 blocks: every one of the 32 symbols gets length 5.
func fixedDistCodeLengths() []byte {
	cl := make([]byte, numDistSymbols)
	for i := range cl {
		cl[i] = 5
	}
	return cl
}

// lengthBase and lengthExtraBits implement the length table of RFC 1951
// section 3.2.5, indexed by (symbol - 257).
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtraBits = [29]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase and distExtraBits implement the distance table of RFC 1951
// section 3.2.5, indexed by symbol (0-29; 30 and 31 are reserved).
var distBase = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtraBits = [30]byte{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}
