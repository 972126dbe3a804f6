package gzdec

import (
	"hash"
)

const strDefault = "default"

// type dummyHash32 {{{

// dummyHash32 is a hash.Hash32 that discards everything written to it and
// always reports a zero sum. payloadChecksum uses it for a Format that is
// neither gzip nor zlib and so carries no footer checksum, so that it has a
// hash to run without a special case at the call site.
type dummyHash32 struct{}

func (dummyHash32) Reset()                      {}
func (dummyHash32) BlockSize() int              { return 4 }
func (dummyHash32) Size() int                   { return 4 }
func (dummyHash32) Write(p []byte) (int, error) { return len(p), nil }
func (dummyHash32) Sum(p []byte) []byte         { return append(p, 0, 0, 0, 0) }
func (dummyHash32) Sum32() uint32               { return 0 }

var _ hash.Hash32 = dummyHash32{}

// }}}
