package scheme

// DefaultPageSize is the capacity, in blocks, of a freshly allocated
// page when the allocator is not satisfying an oversized request.
// spec.md names 8 KiB as the default page size for a bytes-oriented
// heap; this Go rendition allocates Go values rather than raw bytes,
// so the budget is expressed in blocks-per-page instead, chosen to
// keep the same "many small pages, rarely resized" shape.
const DefaultPageSize = 512

// page is a fixed-capacity, append-only slice of blocks. The
// allocator bumps cursor as it hands out blocks; once the page is full
// the heap appends a new one.
type page struct {
	blocks []*Block
	cursor int
}

func newPage(capacity int) *page {
	if capacity < 1 {
		capacity = DefaultPageSize
	}
	return &page{blocks: make([]*Block, capacity)}
}

func (p *page) remaining() int { return len(p.blocks) - p.cursor }

func (p *page) bump(b *Block) {
	p.blocks[p.cursor] = b
	p.cursor++
}

// Heap is an ordered sequence of pages supporting bump allocation and
// whole-heap swap. Two Heaps (from-space and to-space) back a
// Context; the allocator itself never moves memory, only the
// collector does.
type Heap struct {
	pages    []*page
	pageSize int
	live     int // count of blocks allocated since the last reset
}

// NewHeap constructs an empty Heap whose pages default to pageSize
// blocks (DefaultPageSize when pageSize <= 0).
func NewHeap(pageSize int) *Heap {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Heap{pageSize: pageSize}
}

// alloc bump-allocates room for one block, growing the page list if
// necessary, and returns the empty Block to be filled in by the
// caller.
func (h *Heap) alloc() *Block {
	if len(h.pages) == 0 || h.pages[len(h.pages)-1].remaining() == 0 {
		h.pages = append(h.pages, newPage(h.pageSize))
	}
	b := &Block{}
	h.pages[len(h.pages)-1].bump(b)
	h.live++
	return b
}

// reset drops all pages, freeing everything the heap held. Used after
// a collection swaps to-space into from-space; the dead from-space is
// discarded wholesale rather than page-by-page, since Go's GC reclaims
// the underlying memory once no Value in to-space still references it.
func (h *Heap) reset() {
	h.pages = h.pages[:0]
	h.live = 0
}

// Live reports the number of blocks currently allocated in the heap.
func (h *Heap) Live() int { return h.live }

// total reports how many blocks have been allocated so far, across
// all pages. Used by the collector's linear to-space scan, which must
// observe blocks appended mid-scan (table reshapes, forwarded pairs).
func (h *Heap) total() int {
	n := 0
	for _, p := range h.pages {
		n += p.cursor
	}
	return n
}

// at returns the block at global allocation index i (0-based, across
// all pages in order).
func (h *Heap) at(i int) *Block {
	for _, p := range h.pages {
		if i < p.cursor {
			return p.blocks[i]
		}
		i -= p.cursor
	}
	return nil
}
