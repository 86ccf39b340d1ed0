package llrb

import "fmt"

import "github.com/bnclabs/colosseum/lib"

type llrbstats struct {
	n_count   int64 // number of items in the tree
	n_lookups int64
	n_ranges  int64
	n_exports int64
	n_inserts int64
	n_deletes int64
	n_nodes   int64
	n_frees   int64
	n_ooms    int64
}

// Stats return tree statistics and memory accounting.
func (llrb *LLRB[T]) Stats() map[string]interface{} {
	stats := llrb.stattree(map[string]interface{}{})
	stats["node.size"] = llrb.nodesize
	stats["item.size"] = llrb.itemsize
	stats["memory"] = llrb.n_count * llrb.nodesize
	stats["h_upsertdepth"] = llrb.h_upsertdepth.Fullstats()
	return stats
}

// Fullstats include height histogram and black depth, computed by
// walking the full tree.
func (llrb *LLRB[T]) Fullstats() map[string]interface{} {
	stats := llrb.Stats()
	h_height := lib.NewHistogramInt64(1, 256, 1)
	llrb.heightStats(llrb.root, 1 /*depth*/, h_height)
	stats["h_height"] = h_height.Fullstats()
	stats["n_blacks"] = llrb.countblacks(llrb.root, 0)

	if x := h_height.Samples(); x != llrb.n_count {
		fmsg := "expected h_height.samples:%v to be same as Count():%v"
		panic(fmt.Errorf(fmsg, x, llrb.n_count))
	}
	return stats
}

func (llrb *LLRB[T]) stattree(stats map[string]interface{}) map[string]interface{} {
	stats["n_count"] = llrb.n_count
	stats["n_lookups"] = llrb.n_lookups
	stats["n_ranges"] = llrb.n_ranges
	stats["n_exports"] = llrb.n_exports
	stats["n_inserts"] = llrb.n_inserts
	stats["n_deletes"] = llrb.n_deletes
	stats["n_nodes"] = llrb.n_nodes
	stats["n_frees"] = llrb.n_frees
	stats["n_ooms"] = llrb.n_ooms
	return stats
}

func (llrb *LLRB[T]) heightStats(nd *Llrbnode[T], depth int64, h *lib.HistogramInt64) {
	if nd == nil {
		return
	}
	h.Add(depth)
	llrb.heightStats(nd.left, depth+1, h)
	llrb.heightStats(nd.right, depth+1, h)
}

func (llrb *LLRB[T]) countblacks(nd *Llrbnode[T], count int) int {
	if nd != nil {
		if !isred(nd) {
			count++
		}
		x := llrb.countblacks(nd.left, count)
		y := llrb.countblacks(nd.right, count)
		if x != y {
			fmsg := "countblacks(): no. of blacks {left,right} : {%v,%v}"
			panic(fmt.Errorf(fmsg, x, y))
		}
		return x
	}
	return count
}
