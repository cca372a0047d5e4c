package memory

// Flat is a Memory backed by one contiguous zero-initialised buffer.
type Flat struct {
	bytes []byte
}

var _ Memory = (*Flat)(nil)

func NewFlat(size int) *Flat {
	checkSize(size)
	return &Flat{bytes: make([]byte, size)}
}

func (m *Flat) Size() int { return len(m.bytes) }

func (m *Flat) Read8(addr int) byte {
	checkAddr(len(m.bytes), addr)
	return m.bytes[addr]
}

func (m *Flat) ReadRange(addr, count int) []byte {
	checkRange(len(m.bytes), addr, count)
	out := make([]byte, count)
	copy(out, m.bytes[addr:addr+count])
	return out
}

func (m *Flat) Write8(addr int, value byte) {
	checkAddr(len(m.bytes), addr)
	m.bytes[addr] = value
}

func (m *Flat) WriteRange(addr int, data []byte) {
	checkRange(len(m.bytes), addr, len(data))
	copy(m.bytes[addr:], data)
}
