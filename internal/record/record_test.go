package record

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecodeEndOfFile(t *testing.T) {
	rec, err := Decode(":00000001FF")
	require.NoError(t, err)
	want := Record{ByteCount: 0, Address: 0, Type: EndOfFile, Data: []byte{}, Checksum: 0xFF}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

// The reference decoder iterated data bytes from index 1 and dropped the
// first byte of every payload.
func TestDecodeKeepsFirstDataByte(t *testing.T) {
	rec, err := Decode(":03000000010203F5")
	require.NoError(t, err)
	require.Equal(t, Data, rec.Type)
	require.Len(t, rec.Data, 3)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, rec.Data)
	require.Equal(t, uint8(0xF5), rec.Checksum)
}

func TestDecodeData(t *testing.T) {
	rec, err := DecodeVerified(":10246200464C5549442050524F46494C4500464C33")
	require.NoError(t, err)
	require.Equal(t, uint8(0x10), rec.ByteCount)
	require.Equal(t, uint16(0x2462), rec.Address)
	require.Equal(t, Data, rec.Type)
	require.Equal(t, "FLUID PROFILE\x00FL", string(rec.Data))
	require.Equal(t, uint8(0x33), rec.Checksum)
	require.Equal(t, 0x2472, rec.End())
}

func TestDecodeLowercase(t *testing.T) {
	rec, err := DecodeVerified(":0100100000ef")
	require.NoError(t, err)
	require.Equal(t, uint16(0x0010), rec.Address)
	require.Equal(t, []byte{0x00}, rec.Data)
}

func TestDecodeEndOfFileIgnoresPayload(t *testing.T) {
	rec, err := DecodeVerified(":02000001AABB98")
	require.NoError(t, err)
	require.Equal(t, EndOfFile, rec.Type)
	require.Equal(t, []byte{0xAA, 0xBB}, rec.Data)
}

func TestDecodeByteCountMatchesData(t *testing.T) {
	for n := 0; n <= 255; n++ {
		var sb strings.Builder
		sum := byte(n) + 0x12 + 0x34
		for i := 0; i < n; i++ {
			fmt.Fprintf(&sb, "%02X", byte(i*7))
			sum += byte(i * 7)
		}
		line := fmt.Sprintf(":%02X123400%s%02X", n, sb.String(), -sum)
		rec, err := DecodeVerified(line)
		require.NoError(t, err, "byte count %d", n)
		require.Len(t, rec.Data, n)
		require.Equal(t, int(rec.ByteCount), len(rec.Data))
		for i, b := range rec.Data {
			require.Equal(t, byte(i*7), b, "byte %d of %d", i, n)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":             "",
		"no colon":          "00000001FF",
		"other marker":      ";00000001FF",
		"short header":      ":000000",
		"truncated data":    ":0300000001F5",
		"missing checksum":  ":03000000010203",
		"trailing":          ":00000001FFAA",
		"trailing carriage": ":00000001FF\r",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(line)
			require.ErrorIs(t, err, ErrMalformedRecord)
			var malformed *MalformedError
			require.ErrorAs(t, err, &malformed)
			require.NotEmpty(t, malformed.Reason)
		})
	}
}

func TestDecodeInvalidHexDigit(t *testing.T) {
	cases := []struct {
		line  string
		field string
	}{
		{":0G000001FF", FieldByteCount},
		{":00zz0001FF", FieldAddress},
		{":000000x1FF", FieldRecordType},
		{":01000000ZZFE", FieldData},
		{":00000001QQ", FieldChecksum},
		{":00-10001FF", FieldAddress},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			_, err := Decode(tc.line)
			require.ErrorIs(t, err, ErrInvalidHexDigit)
			var hexErr *InvalidHexDigitError
			require.ErrorAs(t, err, &hexErr)
			require.Equal(t, tc.field, hexErr.Field)
			require.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestDecodeUnknownRecordType(t *testing.T) {
	for _, line := range []string{":020000040800F2", ":00000002FE", ":000000FF01", ":0400000501000000F6"} {
		_, err := Decode(line)
		require.ErrorIs(t, err, ErrUnknownRecordType, line)
		var typeErr *UnknownRecordTypeError
		require.True(t, errors.As(err, &typeErr))
		require.Equal(t, line[7:9], fmt.Sprintf("%02X", typeErr.Code))
	}
}

func TestDecodeVerifiedChecksumMismatch(t *testing.T) {
	_, err := DecodeVerified(":03000000010203F5")
	require.ErrorIs(t, err, ErrChecksumMismatch)
	var sumErr *ChecksumMismatchError
	require.ErrorAs(t, err, &sumErr)
	require.Equal(t, byte(0xF7), sumErr.Want)
	require.Equal(t, byte(0xF5), sumErr.Got)

	_, err = DecodeVerified(":03000000010203F7")
	require.NoError(t, err)
}

func TestRecordTypeString(t *testing.T) {
	require.Equal(t, "Data", Data.String())
	require.Equal(t, "EndOfFile", EndOfFile.String())
	require.Equal(t, "RecordType(0x04)", RecordType(4).String())
}
