package mem

import (
	"fmt"
	"sort"
)

// Heap implements a sparse integer-addressed memory of integer cells.
// Any signed address is valid to store into; loading an address that was
// never stored is an error rather than an implicit zero.
type Heap struct {
	// Limit specifies how many distinct cells may be stored, past which any
	// store into a new address results in an error. Zero means no limit.
	Limit uint

	cells map[int64]int64
}

// LimitError indicates that a store would exceed the heap's cell Limit.
type LimitError struct {
	Addr  int64
	Limit uint
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("heap limit of %v cells exceeded by store @%v", lim.Limit, lim.Addr)
}

// MissingError indicates a load from an address that was never stored.
type MissingError struct {
	Addr int64
}

func (miss MissingError) Error() string {
	return fmt.Sprintf("no heap value @%v", miss.Addr)
}

// Len returns the number of cells stored so far.
func (h *Heap) Len() int { return len(h.cells) }

// Load returns the value stored at addr, or a MissingError.
func (h *Heap) Load(addr int64) (int64, error) {
	val, defined := h.cells[addr]
	if !defined {
		return 0, MissingError{addr}
	}
	return val, nil
}

// Stor stores val at addr, overwriting any prior value.
// Returns a LimitError if addr is a new cell and Limit is already reached;
// the heap is left unchanged in that case.
func (h *Heap) Stor(addr, val int64) error {
	if h.cells == nil {
		h.cells = make(map[int64]int64)
	}
	if _, defined := h.cells[addr]; !defined {
		if lim := h.Limit; lim != 0 && uint(len(h.cells)) >= lim {
			return LimitError{addr, lim}
		}
	}
	h.cells[addr] = val
	return nil
}

// Addrs returns all stored addresses in ascending order.
func (h *Heap) Addrs() []int64 {
	addrs := make([]int64, 0, len(h.cells))
	for addr := range h.cells {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
