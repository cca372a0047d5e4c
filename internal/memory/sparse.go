package memory

import "github.com/google/btree"

const pageSize = 256

type page struct {
	index int
	data  [pageSize]byte
}

func pageLess(a, b *page) bool { return a.index < b.index }

// Sparse is a Memory that only allocates the 256-byte pages that have been
// written. Pages are kept in a B-tree ordered by page index; absent pages
// read as zero.
type Sparse struct {
	size  int
	pages *btree.BTreeG[*page]
}

var _ Memory = (*Sparse)(nil)

func NewSparse(size int) *Sparse {
	checkSize(size)
	return &Sparse{
		size:  size,
		pages: btree.NewG[*page](2, pageLess),
	}
}

func (m *Sparse) Size() int { return m.size }

// Pages returns the number of allocated pages.
func (m *Sparse) Pages() int { return m.pages.Len() }

func (m *Sparse) Read8(addr int) byte {
	checkAddr(m.size, addr)
	p, ok := m.pages.Get(&page{index: addr / pageSize})
	if !ok {
		return 0
	}
	return p.data[addr%pageSize]
}

func (m *Sparse) ReadRange(addr, count int) []byte {
	checkRange(m.size, addr, count)
	out := make([]byte, count)
	if count == 0 {
		return out
	}
	first := &page{index: addr / pageSize}
	last := &page{index: (addr+count-1)/pageSize + 1}
	m.pages.AscendRange(first, last, func(p *page) bool {
		start := max(addr, p.index*pageSize)
		end := min(addr+count, (p.index+1)*pageSize)
		copy(out[start-addr:end-addr], p.data[start-p.index*pageSize:])
		return true
	})
	return out
}

func (m *Sparse) Write8(addr int, value byte) {
	checkAddr(m.size, addr)
	m.page(addr / pageSize).data[addr%pageSize] = value
}

func (m *Sparse) WriteRange(addr int, data []byte) {
	checkRange(m.size, addr, len(data))
	for len(data) > 0 {
		p := m.page(addr / pageSize)
		n := copy(p.data[addr%pageSize:], data)
		data = data[n:]
		addr += n
	}
}

func (m *Sparse) page(index int) *page {
	if p, ok := m.pages.Get(&page{index: index}); ok {
		return p
	}
	p := &page{index: index}
	m.pages.ReplaceOrInsert(p)
	return p
}
