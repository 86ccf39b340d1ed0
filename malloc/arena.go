package malloc

import "fmt"

import "github.com/bnclabs/colosseum/api"
import s "github.com/bnclabs/gosettings"

// Arena implement api.Mallocer for a fixed capacity of bytes.
type Arena struct {
	// statistics
	n_allocs int64
	n_frees  int64
	n_ooms   int64

	allocated int64

	// configuration
	capacity int64
}

// NewArena create a new memory arena.
func NewArena(setts s.Settings) *Arena {
	arena := &Arena{capacity: setts.Int64("capacity")}
	if cp := arena.capacity; cp > Maxarenasize {
		panic(fmt.Errorf("arena cannot exceed %v bytes (%v)", Maxarenasize, cp))
	} else if cp <= 0 {
		panic(fmt.Errorf("arena capacity must be positive (%v)", cp))
	}
	return arena
}

// Alloc implement api.Mallocer{} interface.
func (arena *Arena) Alloc(n int64) error {
	if n < 0 {
		panic(fmt.Errorf("Alloc(): negative size %v", n))
	}
	n = align(n)
	if arena.allocated+n > arena.capacity {
		arena.n_ooms++
		return api.ErrorOutofMemory
	}
	arena.allocated += n
	arena.n_allocs++
	return nil
}

// Free implement api.Mallocer{} interface.
func (arena *Arena) Free(n int64) {
	n = align(n)
	if n > arena.allocated {
		fmsg := "Free(): freeing %v bytes, only %v allocated"
		panic(fmt.Errorf(fmsg, n, arena.allocated))
	}
	arena.allocated -= n
	arena.n_frees++
}

// Fits implement api.Mallocer{} interface.
func (arena *Arena) Fits(sizes ...int64) bool {
	total := int64(0)
	for _, n := range sizes {
		total += align(n)
	}
	return arena.allocated+total <= arena.capacity
}

// Info implement api.Mallocer{} interface.
func (arena *Arena) Info() (capacity, allocated, available int64) {
	return arena.capacity, arena.allocated, arena.capacity - arena.allocated
}

// Stats return memory accounting and operation counts.
func (arena *Arena) Stats() map[string]interface{} {
	return map[string]interface{}{
		"capacity":  arena.capacity,
		"allocated": arena.allocated,
		"available": arena.capacity - arena.allocated,
		"n_allocs":  arena.n_allocs,
		"n_frees":   arena.n_frees,
		"n_ooms":    arena.n_ooms,
	}
}

func align(n int64) int64 {
	if rem := n % Alignment; rem > 0 {
		return n + (Alignment - rem)
	}
	return n
}
