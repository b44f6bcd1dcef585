package recordstore

import "memory_mapping/internal/model"

// window is a circular buffer of the most recently added memories.
type window struct {
	entries []model.Memory
	write   int
	count   int
}

func newWindow(capacity int) *window {
	return &window{entries: make([]model.Memory, capacity)}
}

// push overwrites the oldest entry once the buffer is full.
func (w *window) push(memory model.Memory) {
	w.entries[w.write] = memory
	if w.write++; w.write >= len(w.entries) {
		w.write = 0
	}
	if w.count < len(w.entries) {
		w.count++
	}
}

func (w *window) len() int {
	return w.count
}

// snapshot returns the buffered entries oldest first.
func (w *window) snapshot() []model.Memory {
	result := make([]model.Memory, 0, w.count)
	start := w.write - w.count
	if start < 0 {
		start += len(w.entries)
	}
	for i := 0; i < w.count; i++ {
		result = append(result, w.entries[(start+i)%len(w.entries)])
	}
	return result
}
