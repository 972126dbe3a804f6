package gzdec

import (
	"errors"
	"fmt"
)

// errNoSpace and errBadDistance are sentinels outputSink returns for
// conditions it cannot itself turn into a positioned DecodeError: it has no
// access to the bit reader's position. positionError translates them at the
// call site, where that position is available.
var errNoSpace = errors.New("gzdec: output buffer is full")
var errBadDistance = errors.New("gzdec: back-reference distance exceeds output produced so far")

func positionError(err error, offset int) error {
	switch {
	case errors.Is(err, errNoSpace):
		return noSpacef(offset, "output buffer is full")
	case errors.Is(err, errBadDistance):
		return corruptf(offset, "back-reference distance exceeds output produced so far")
	default:
		return err
	}
}

// DecodeError is returned when a decode attempt fails for any reason other
// than success. Status classifies the failure per spec section 6; Offset
// is the byte offset into the input at which the problem was detected. A
// negative Offset marks a failure with no input position, and Error then
// leaves the offset out of the message.
type DecodeError struct {
	Status  Status
	Offset  int
	Problem string
}

// Error fulfills the error interface.
func (err DecodeError) Error() string {
	if err.Offset < 0 {
		return fmt.Sprintf("gzdec: %s: %s", err.Status, err.Problem)
	}
	return fmt.Sprintf("gzdec: %s at/near byte offset %d: %s", err.Status, err.Offset, err.Problem)
}

var _ error = DecodeError{}

func invalidMagicf(format string, v ...interface{}) error {
	return DecodeError{Status: StatusInvalidMagic, Offset: 0, Problem: fmt.Sprintf(format, v...)}
}

func invalidMethodf(offset int, format string, v ...interface{}) error {
	return DecodeError{Status: StatusInvalidMethod, Offset: offset, Problem: fmt.Sprintf(format, v...)}
}

func corruptf(offset int, format string, v ...interface{}) error {
	return DecodeError{Status: StatusInvalidFile, Offset: offset, Problem: fmt.Sprintf(format, v...)}
}

func noSpacef(offset int, format string, v ...interface{}) error {
	return DecodeError{Status: StatusNoSpace, Offset: offset, Problem: fmt.Sprintf(format, v...)}
}
