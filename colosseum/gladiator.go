package colosseum

import "fmt"

// Gladiator as held by the registry's indexes. Trainer is a handle
// into the trainer directory, it is set only on entries of the
// identifier index, level indexes carry just {Level, ID}.
type Gladiator struct {
	ID      int
	Level   int
	Trainer int
}

func (g Gladiator) String() string {
	if g.Trainer > 0 {
		return fmt.Sprintf("{%v,%v,%v}", g.ID, g.Level, g.Trainer)
	}
	return fmt.Sprintf("{%v,%v}", g.ID, g.Level)
}

// levelkey return the entry for level indexes.
func (g Gladiator) levelkey() Gladiator {
	return Gladiator{ID: g.ID, Level: g.Level}
}

func cmpint(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// byid order gladiators by identifier.
func byid(a, b Gladiator) int {
	return cmpint(a.ID, b.ID)
}

// bylevel order gladiators by level, ties broken by identifier.
func bylevel(a, b Gladiator) int {
	if c := cmpint(a.Level, b.Level); c != 0 {
		return c
	}
	return cmpint(a.ID, b.ID)
}
