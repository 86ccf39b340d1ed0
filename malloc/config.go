package malloc

import "fmt"

import s "github.com/bnclabs/gosettings"

// Alignment every allocation is rounded up to a multiple of Alignment.
const Alignment = int64(8)

// Maxarenasize maximum size of a memory arena.
const Maxarenasize = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Defaultsettings for arena.
//
// "capacity" (int64, default: <capacity>)
//		Total bytes that can be allocated from the arena.
func Defaultsettings(capacity int64) s.Settings {
	if capacity <= 0 {
		panic(fmt.Errorf("capacity(%v) must be positive", capacity))
	}
	return s.Settings{"capacity": capacity}
}
