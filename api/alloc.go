package api

// Mallocer interface for memory accounting. Indexes charge every node
// they create against a Mallocer and return it on delete, so that a
// group of indexes sharing one Mallocer can check, before mutating,
// whether a multi-step operation can complete.
type Mallocer interface {
	// Alloc charge `n` bytes. Return ErrorOutofMemory, without
	// charging anything, if capacity is exhausted.
	Alloc(n int64) error

	// Free return `n` bytes back to the arena.
	Free(n int64)

	// Fits return whether all of `sizes` can be allocated together.
	Fits(sizes ...int64) bool

	// Info of memory accounting for this arena.
	Info() (capacity, allocated, available int64)
}
