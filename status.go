package gzdec

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// Status is the outcome of a decode attempt, per spec section 6.
type Status byte

const (
	// StatusOK indicates a successful decode; the output is valid.
	StatusOK Status = iota

	// StatusInvalidMagic indicates that the first two bytes of the input
	// are not the gzip magic number 0x1f 0x8b.
	StatusInvalidMagic

	// StatusInvalidMethod indicates that the gzip CM byte is not 8
	// (DEFLATE).
	StatusInvalidMethod

	// StatusInvalidFile indicates any other malformed-input condition:
	// a bad block header, a bad Huffman table, an impossible distance,
	// an unknown symbol, an NLEN/LEN mismatch, or truncated input
	// observed as a structural failure.
	StatusInvalidFile

	// StatusNoSpace indicates that the caller-provided output region
	// (DecodeInto only) is too small to hold the decompressed payload.
	StatusNoSpace
)

var statusData = []enumhelper.EnumData{
	{GoName: "StatusOK", Name: "ok"},
	{GoName: "StatusInvalidMagic", Name: "invalid-magic"},
	{GoName: "StatusInvalidMethod", Name: "invalid-method"},
	{GoName: "StatusInvalidFile", Name: "invalid-file"},
	{GoName: "StatusNoSpace", Name: "no-space"},
}

// IsValid returns true if s is a valid Status constant.
func (s Status) IsValid() bool {
	return s >= StatusOK && s <= StatusNoSpace
}

// GoString returns the Go string representation of this Status constant.
func (s Status) GoString() string {
	return enumhelper.DereferenceEnumData("Status", statusData, uint(s)).GoName
}

// String returns the string representation of this Status constant.
func (s Status) String() string {
	return enumhelper.DereferenceEnumData("Status", statusData, uint(s)).Name
}

// MarshalJSON returns the JSON representation of this Status constant.
func (s Status) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("Status", statusData, uint(s))
}

var _ fmt.GoStringer = Status(0)
var _ fmt.Stringer = Status(0)
