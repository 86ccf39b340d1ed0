package colosseum

import "fmt"

type colstats struct {
	n_trainers int64
	n_buys     int64
	n_frees    int64
	n_levelups int64
	n_upgrades int64
	n_updates  int64
	n_relevels int64
	n_queries  int64
	n_exports  int64
	n_success  int64
	n_failures int64
	n_invalids int64
	n_ooms     int64
}

// Stats return operation counters, index statistics and arena
// accounting for this registry.
func (col *Colosseum) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"n_trainers": col.n_trainers,
		"n_buys":     col.n_buys,
		"n_frees":    col.n_frees,
		"n_levelups": col.n_levelups,
		"n_upgrades": col.n_upgrades,
		"n_updates":  col.n_updates,
		"n_relevels": col.n_relevels,
		"n_queries":  col.n_queries,
		"n_exports":  col.n_exports,
		"n_success":  col.n_success,
		"n_failures": col.n_failures,
		"n_invalids": col.n_invalids,
		"n_ooms":     col.n_ooms,
		"n_count":    col.byid.Count(),
	}
	stats["byid"] = col.byid.Stats()
	stats["bylevel"] = col.bylevel.Stats()
	stats["trainers.count"] = col.trainers.Count()
	stats["trainers.memory"] = col.trainers.Memory()
	stats["arena"] = col.arena.Stats()
	return stats
}

// Validate all indexes against each other, panics on the first
// inconsistency:
//
//   * each index is a well formed LLRB tree.
//   * every gladiator in the identifier index has its level key in
//     the level index and in its trainer's index.
//   * level index and trainer indexes hold nothing else.
//   * arena allocation equals the memory held by all indexes.
func (col *Colosseum) Validate() {
	col.byid.Validate()
	col.bylevel.Validate()
	count := col.trainers.validate()

	n := col.byid.Count()
	if x := col.bylevel.Count(); x != n {
		fmsg := "Validate(): %v level index has %v, identifier index %v"
		panic(fmt.Errorf(fmsg, col.logprefix, x, n))
	} else if count != n {
		fmsg := "Validate(): %v trainer indexes have %v, identifier index %v"
		panic(fmt.Errorf(fmsg, col.logprefix, count, n))
	}

	col.byid.Range(nil, nil, "both", func(g Gladiator) bool {
		if g.Level <= 0 {
			panic(fmt.Errorf("Validate(): %v invalid level", g))
		} else if !col.bylevel.Has(g.levelkey()) {
			panic(fmt.Errorf("Validate(): %v missing in level index", g))
		} else if !col.trainers.Has(g.Trainer) {
			panic(fmt.Errorf("Validate(): %v trainer missing", g))
		} else if !col.trainers.HasGladiator(g.Trainer, g.ID, g.Level) {
			panic(fmt.Errorf("Validate(): %v missing in trainer index", g))
		}
		return true
	})

	memory := col.byid.Count() * col.byid.Nodesize()
	memory += col.bylevel.Count() * col.bylevel.Nodesize()
	memory += col.trainers.Memory()
	if _, allocated, _ := col.arena.Info(); allocated != memory {
		fmsg := "Validate(): %v arena allocated %v, indexes hold %v"
		panic(fmt.Errorf(fmsg, col.logprefix, allocated, memory))
	}
}
