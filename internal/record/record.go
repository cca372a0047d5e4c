package record

import (
	"encoding/hex"
	"fmt"
)

// RecordType is the closed set of Intel HEX record types understood by the
// decoder.
type RecordType byte

const (
	Data      RecordType = 0x00 // payload loaded at Address
	EndOfFile RecordType = 0x01 // terminator
)

func (t RecordType) String() string {
	switch t {
	case Data:
		return "Data"
	case EndOfFile:
		return "EndOfFile"
	default:
		return fmt.Sprintf("RecordType(0x%02X)", byte(t))
	}
}

func parseRecordType(code byte) (RecordType, error) {
	switch RecordType(code) {
	case Data, EndOfFile:
		return RecordType(code), nil
	default:
		return 0, &UnknownRecordTypeError{Code: code}
	}
}

// Record is one decoded Intel HEX line.
type Record struct {
	ByteCount uint8
	Address   uint16
	Type      RecordType
	Data      []byte
	Checksum  uint8
}

const (
	startMarker   = ':'
	headerLen     = 9 // ":BBAAAATT"
	digitsPerByte = 2
)

// Field names reported by InvalidHexDigitError.
const (
	FieldByteCount  = "byte count"
	FieldAddress    = "address"
	FieldRecordType = "record type"
	FieldData       = "data"
	FieldChecksum   = "checksum"
)

// Decode parses a single line of the form :BBAAAATTDD...DDCC. The checksum
// field is read but not verified; see DecodeVerified.
func Decode(line string) (Record, error) {
	if len(line) == 0 || line[0] != startMarker {
		return Record{}, &MalformedError{Reason: "missing start marker"}
	}
	if len(line) < headerLen {
		return Record{}, &MalformedError{Reason: fmt.Sprintf("record header truncated: %d characters", len(line))}
	}

	count, err := hexByte(line, 1, FieldByteCount)
	if err != nil {
		return Record{}, err
	}
	hi, err := hexByte(line, 3, FieldAddress)
	if err != nil {
		return Record{}, err
	}
	lo, err := hexByte(line, 5, FieldAddress)
	if err != nil {
		return Record{}, err
	}
	code, err := hexByte(line, 7, FieldRecordType)
	if err != nil {
		return Record{}, err
	}
	typ, err := parseRecordType(code)
	if err != nil {
		return Record{}, err
	}

	dataEnd := headerLen + int(count)*digitsPerByte
	if dataEnd+digitsPerByte > len(line) {
		return Record{}, &MalformedError{Reason: fmt.Sprintf("line length %d shorter than declared %d data bytes require (%d)", len(line), count, dataEnd+digitsPerByte)}
	}
	if dataEnd+digitsPerByte < len(line) {
		return Record{}, &MalformedError{Reason: fmt.Sprintf("trailing characters after checksum at offset %d", dataEnd+digitsPerByte)}
	}
	checksum, err := hexByte(line, dataEnd, FieldChecksum)
	if err != nil {
		return Record{}, err
	}

	data := make([]byte, count)
	for i := range data {
		b, err := hexByte(line, headerLen+i*digitsPerByte, FieldData)
		if err != nil {
			return Record{}, err
		}
		data[i] = b
	}

	return Record{
		ByteCount: count,
		Address:   uint16(hi)<<8 | uint16(lo),
		Type:      typ,
		Data:      data,
		Checksum:  checksum,
	}, nil
}

// DecodeVerified decodes the line and rejects it when the checksum field
// does not match the record contents.
func DecodeVerified(line string) (Record, error) {
	rec, err := Decode(line)
	if err != nil {
		return Record{}, err
	}
	if err := rec.Verify(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Sum returns the two's complement of the low byte of the sum of all fields
// preceding the checksum.
func (r Record) Sum() uint8 {
	sum := r.ByteCount + byte(r.Address>>8) + byte(r.Address) + byte(r.Type)
	for _, b := range r.Data {
		sum += b
	}
	return -sum
}

// Verify compares the stored checksum with Sum.
func (r Record) Verify() error {
	if want := r.Sum(); want != r.Checksum {
		return &ChecksumMismatchError{Want: want, Got: r.Checksum}
	}
	return nil
}

// End returns the address one past the last data byte. It may exceed the
// 16-bit address space.
func (r Record) End() int {
	return int(r.Address) + len(r.Data)
}

func hexByte(line string, offset int, field string) (byte, error) {
	var dst [1]byte
	if _, err := hex.Decode(dst[:], []byte(line[offset:offset+digitsPerByte])); err != nil {
		return 0, &InvalidHexDigitError{Field: field, Offset: offset}
	}
	return dst[0], nil
}
