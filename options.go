package gzdec

import (
	"github.com/chronos-tachyon/assert"
)

// Option represents a configuration option for Decode and DecodeInto.
type Option func(*options)

type options struct {
	format            Format
	dict              []byte
	tracers           []Tracer
	verifyChecksum    bool
	verifyHeaderCRC16 bool
}

func (o *options) reset() {
	*o = options{
		format: AutoFormat,
	}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithFormat specifies the envelope Format that Decode should expect. The
// default, AutoFormat, sniffs the leading bytes the way gzip(1) itself
// does: 0x1f 0x8b selects GZIPFormat, anything that parses as a valid
// zlib CMF/FLG pair selects ZlibFormat.
func WithFormat(format Format) Option {
	assert.Assertf(format.IsValid(), "invalid Format %d", uint(format))
	return func(o *options) { o.format = format }
}

// WithDictionary specifies the preset dictionary of a zlib stream (RFC 1950
// section 2.2). Decode checks the dictionary's Adler-32 against the
// stream's FDICT field and rejects a stream whose FDICT presence or value
// does not match. The dictionary's bytes are not placed in the
// back-reference window: a match that reaches before the first output byte
// fails with StatusInvalidFile. Ignored for gzip, which has no
// preset-dictionary mechanism. Pass nil to stop assuming one.
func WithDictionary(dict []byte) Option {
	assert.Assert(dict == nil || len(dict) > 0, "invalid zero-length dictionary; specify nil to omit the dictionary entirely")
	if dict != nil {
		tmp := make([]byte, len(dict))
		copy(tmp, dict)
		dict = tmp
	}
	return func(o *options) { o.dict = dict }
}

// WithTracers specifies the list of Tracer instances which will receive
// Events as decompression proceeds. Completely replaces any previous list.
func WithTracers(tracers ...Tracer) Option {
	for _, tr := range tracers {
		assert.NotNil(&tr)
	}
	if len(tracers) == 0 {
		tracers = nil
	} else {
		tmp := make([]Tracer, len(tracers))
		copy(tmp, tracers)
		tracers = tmp
	}
	return func(o *options) { o.tracers = tracers }
}

// WithVerifyChecksum enables or disables verification of the payload
// checksum found in the stream footer (CRC-32 for gzip, Adler-32 for
// zlib) against a checksum computed over the decompressed output. Off by
// default, matching spec.md's treatment of checksum verification as
// optional rather than core to decoding.
func WithVerifyChecksum(verify bool) Option {
	return func(o *options) { o.verifyChecksum = verify }
}

// WithVerifyHeaderCRC16 enables or disables verification of a gzip
// FHCRC header checksum, when present, against a CRC-16 computed over
// the preceding header bytes. Off by default. Ignored for zlib, which has
// no header checksum.
func WithVerifyHeaderCRC16(verify bool) Option {
	return func(o *options) { o.verifyHeaderCRC16 = verify }
}
