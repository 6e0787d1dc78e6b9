package device

import "github.com/kamstrup/intmap"

// DescriptorHeap is a fixed-capacity table of texture slots.
type DescriptorHeap struct {
	slots    *intmap.Map[uint32, Texture]
	capacity uint32
}

// NewDescriptorHeap creates a heap with slots 0..capacity-1.
func NewDescriptorHeap(capacity uint32) *DescriptorHeap {
	return &DescriptorHeap{
		slots:    intmap.New[uint32, Texture](int(capacity)),
		capacity: capacity,
	}
}

// Capacity returns the number of slots.
func (h *DescriptorHeap) Capacity() uint32 {
	return h.capacity
}

// Len returns the number of occupied slots.
func (h *DescriptorHeap) Len() int {
	return h.slots.Len()
}

// Put stores tex in slot, disposing whatever occupied it before.
func (h *DescriptorHeap) Put(slot uint32, tex Texture) error {
	if slot >= h.capacity {
		return ErrSlotOutOfRange
	}
	if old, ok := h.slots.Get(slot); ok && old != tex {
		old.Dispose()
	}
	h.slots.Put(slot, tex)
	return nil
}

// Get returns the texture in slot.
func (h *DescriptorHeap) Get(slot uint32) (Texture, bool) {
	return h.slots.Get(slot)
}

// Release disposes every texture and empties the heap.
func (h *DescriptorHeap) Release() {
	for slot := range h.capacity {
		if tex, ok := h.slots.Get(slot); ok {
			tex.Dispose()
			h.slots.Del(slot)
		}
	}
}
