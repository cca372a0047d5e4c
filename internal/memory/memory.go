// Package memory provides fixed-size byte-addressable stores that decoded
// records are loaded into.
package memory

import "fmt"

// Memory is a byte store with a fixed size. Addresses run from 0 to
// Size()-1 and every address reads as zero until written. Accessing an
// address outside that range panics.
//
// Implementations do no locking; callers serialise writes.
type Memory interface {
	// Size returns the number of addressable bytes.
	Size() int

	// Read8 returns the byte at addr.
	Read8(addr int) byte

	// ReadRange returns a copy of the count bytes starting at addr.
	ReadRange(addr, count int) []byte

	// Write8 stores value at addr.
	Write8(addr int, value byte)

	// WriteRange stores data starting at addr.
	WriteRange(addr int, data []byte)
}

func checkAddr(size, addr int) {
	if addr < 0 || addr >= size {
		panic(fmt.Sprintf("memory: address 0x%X out of range [0, 0x%X)", addr, size))
	}
}

func checkRange(size, addr, count int) {
	if addr < 0 || count < 0 || addr > size || count > size-addr {
		panic(fmt.Sprintf("memory: range 0x%X+%d out of range [0, 0x%X)", addr, count, size))
	}
}

func checkSize(size int) {
	if size < 0 {
		panic(fmt.Sprintf("memory: negative size %d", size))
	}
}
