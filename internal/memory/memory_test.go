package memory

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func implementations(size int) map[string]Memory {
	return map[string]Memory{
		"flat":   NewFlat(size),
		"sparse": NewSparse(size),
	}
}

func TestZeroInitialised(t *testing.T) {
	for name, mem := range implementations(16) {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, 16, mem.Size())
			for addr := 0; addr < 16; addr++ {
				require.Equal(t, byte(0), mem.Read8(addr), "address %d", addr)
			}
			for addr := 0; addr <= 16; addr++ {
				for count := 0; addr+count <= 16; count++ {
					require.Equal(t, make([]byte, count), mem.ReadRange(addr, count))
				}
			}
		})
	}
}

func TestWriteThenRead(t *testing.T) {
	for name, mem := range implementations(1024) {
		t.Run(name, func(t *testing.T) {
			mem.Write8(0, 0xAA)
			mem.Write8(1023, 0x55)
			payload := bytes.Repeat([]byte{1, 2, 3, 4, 5}, 100)
			mem.WriteRange(250, payload)

			require.Equal(t, byte(0xAA), mem.Read8(0))
			require.Equal(t, byte(0x55), mem.Read8(1023))
			require.Equal(t, payload, mem.ReadRange(250, len(payload)))
			require.Equal(t, byte(0), mem.Read8(249))
			require.Equal(t, byte(0), mem.Read8(750))
			require.Equal(t, []byte{0, 1, 2}, mem.ReadRange(249, 3))
		})
	}
}

func TestReadRangeReturnsCopy(t *testing.T) {
	for name, mem := range implementations(8) {
		t.Run(name, func(t *testing.T) {
			mem.WriteRange(0, []byte{1, 2, 3})
			out := mem.ReadRange(0, 3)
			out[0] = 9
			require.Equal(t, byte(1), mem.Read8(0))
		})
	}
}

func TestOutOfRangePanics(t *testing.T) {
	for name, mem := range implementations(16) {
		t.Run(name, func(t *testing.T) {
			require.Panics(t, func() { mem.Read8(16) })
			require.Panics(t, func() { mem.Read8(-1) })
			require.Panics(t, func() { mem.ReadRange(10, 7) })
			require.Panics(t, func() { mem.ReadRange(-1, 2) })
			require.Panics(t, func() { mem.ReadRange(0, -1) })
			require.Panics(t, func() { mem.Write8(16, 1) })
			require.Panics(t, func() { mem.WriteRange(15, []byte{1, 2}) })
			require.NotPanics(t, func() { mem.ReadRange(16, 0) })
			require.NotPanics(t, func() { mem.WriteRange(14, []byte{1, 2}) })
		})
	}
}

func TestNegativeSizePanics(t *testing.T) {
	require.Panics(t, func() { NewFlat(-1) })
	require.Panics(t, func() { NewSparse(-1) })
}

func TestSparseAllocatesTouchedPages(t *testing.T) {
	mem := NewSparse(0x10000)
	require.Equal(t, 0, mem.Pages())
	require.Equal(t, make([]byte, 300), mem.ReadRange(0x8000, 300))
	require.Equal(t, 0, mem.Pages())

	mem.WriteRange(0x01FE, []byte{1, 2, 3, 4})
	require.Equal(t, 2, mem.Pages())
	mem.Write8(0xFFFF, 7)
	require.Equal(t, 3, mem.Pages())
	require.Equal(t, []byte{0, 1, 2, 3, 4, 0}, mem.ReadRange(0x01FD, 6))
}
