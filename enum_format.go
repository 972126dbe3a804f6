package gzdec

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// Format indicates the envelope a Decode call expects to find wrapping the
// DEFLATE stream.
type Format byte

const (
	// AutoFormat requests that Decode autodetect the envelope, the way
	// gzip's own "magic sniffing" works: a leading 0x1f 0x8b selects
	// GZIPFormat, a CMF/FLG pair with a valid zlib checksum selects
	// ZlibFormat, otherwise the input is rejected.
	AutoFormat Format = iota

	// ZlibFormat indicates that a zlib stream (RFC 1950) is in use.
	ZlibFormat

	// GZIPFormat indicates that a gzip stream (RFC 1952) is in use. This
	// is the format spec.md describes; ZlibFormat and AutoFormat are
	// extensions.
	GZIPFormat
)

var formatData = []enumhelper.EnumData{
	{GoName: "AutoFormat", Name: "auto", Aliases: []string{strDefault}},
	{GoName: "ZlibFormat", Name: "zlib"},
	{GoName: "GZIPFormat", Name: "gzip"},
}

// IsValid returns true if f is a valid Format constant.
func (f Format) IsValid() bool {
	return f >= AutoFormat && f <= GZIPFormat
}

// GoString returns the Go string representation of this Format constant.
func (f Format) GoString() string {
	return enumhelper.DereferenceEnumData("Format", formatData, uint(f)).GoName
}

// String returns the string representation of this Format constant.
func (f Format) String() string {
	return enumhelper.DereferenceEnumData("Format", formatData, uint(f)).Name
}

// MarshalJSON returns the JSON representation of this Format constant.
func (f Format) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("Format", formatData, uint(f))
}

// Parse parses a string representation of a Format constant.
func (f *Format) Parse(str string) error {
	value, err := enumhelper.ParseEnum("Format", formatData, str)
	*f = Format(value)
	return err
}

var _ fmt.GoStringer = Format(0)
var _ fmt.Stringer = Format(0)
