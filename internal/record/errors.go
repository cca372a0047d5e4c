package record

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRecord   = errors.New("malformed record")
	ErrInvalidHexDigit   = errors.New("invalid hex digit")
	ErrUnknownRecordType = errors.New("unknown record type")
	ErrChecksumMismatch  = errors.New("checksum mismatch")
)

// MalformedError reports a structural problem: a missing start marker or a
// line too short or too long for its declared byte count.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMalformedRecord, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformedRecord }

// InvalidHexDigitError names the fixed-width field holding a non-hex
// character.
type InvalidHexDigitError struct {
	Field  string
	Offset int
}

func (e *InvalidHexDigitError) Error() string {
	return fmt.Sprintf("%v in %s field at offset %d", ErrInvalidHexDigit, e.Field, e.Offset)
}

func (e *InvalidHexDigitError) Unwrap() error { return ErrInvalidHexDigit }

type UnknownRecordTypeError struct {
	Code byte
}

func (e *UnknownRecordTypeError) Error() string {
	return fmt.Sprintf("%v: 0x%02X", ErrUnknownRecordType, e.Code)
}

func (e *UnknownRecordTypeError) Unwrap() error { return ErrUnknownRecordType }

// ChecksumMismatchError carries the computed (Want) and stored (Got) sums.
type ChecksumMismatchError struct {
	Want byte
	Got  byte
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("%v (sum = %02X != %02X)", ErrChecksumMismatch, e.Want, e.Got)
}

func (e *ChecksumMismatchError) Unwrap() error { return ErrChecksumMismatch }
