package colosseum

import "github.com/bnclabs/colosseum/malloc"
import s "github.com/bnclabs/gosettings"
import sigar "github.com/cloudfoundry/gosigar"

// Fallback capacity when free memory cannot be learnt from the system.
const defaultCapacity = int64(1024 * 1024 * 1024)

// Defaultsettings for a registry instance.
//
// "arena.capacity" (int64, default: free system memory)
//		Bytes available to all indexes of the registry, nodes of
//		the identifier index, the level index, the trainer
//		directory and every trainer's index are charged to it.
//
// "validate" (bool, default: false)
//		Walk and verify all indexes after every mutation. Useful
//		for testing, makes every mutation O(n).
//
func Defaultsettings() s.Settings {
	capacity := defaultCapacity
	if _, _, free := getsysmem(); free > 0 {
		capacity = int64(free)
	}
	if capacity > malloc.Maxarenasize {
		capacity = malloc.Maxarenasize
	}
	return s.Settings{
		"arena.capacity": capacity,
		"validate":       false,
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	if err := mem.Get(); err != nil {
		return 0, 0, 0
	}
	return mem.Total, mem.Used, mem.Free
}
