package llrb

import "errors"
import "fmt"
import "math"

import "github.com/bnclabs/colosseum/lib"

// height of the tree cannot exceed a certain limit. For example if the tree
// holds 1-million entries, a fully balanced tree shall have a height of 20
// levels. maxheight provide some breathing space on top of ideal height.
func maxheight(entries int64) float64 {
	if entries < 5 {
		return (3 * (math.Log2(float64(entries)) + 1)) // 3x breathing space.
	}
	return 2 * math.Log2(float64(entries)) // 2x breathing space
}

// LLRB rule, from sedgewick's paper.
var errRedafterred = errors.New("consecutive red spotted")

// LLRB rule, red links lean left.
var errRightred = errors.New("right leaning red spotted")

// LLRB rule, from sedgewick's paper.
func unbalancedblacks(lblacks, rblacks int64) error {
	return fmt.Errorf("unbalancedblacks {%v,%v}", lblacks, rblacks)
}

// Validate walk the full tree to confirm the sort order, the LLRB
// coloring rules, the height bound and the book-keeping counts.
// Panics on failure.
func (llrb *LLRB[T]) Validate() {
	if isred(llrb.root) {
		panic(fmt.Errorf("validate(): %v root is red", llrb.logprefix))
	}

	h := lib.NewHistogramInt64(1, 256, 1)
	llrb.validatetree(llrb.root, false /*fromred*/, 0 /*blacks*/, 1 /*depth*/, h)
	if n := h.Samples(); n != llrb.n_count {
		fmsg := "validate(): %v walked %v nodes, count is %v"
		panic(fmt.Errorf(fmsg, llrb.logprefix, n, llrb.n_count))
	}

	// `h_height`.max should not exceed certain limit
	if h.Samples() > 8 {
		entries := llrb.n_count
		if float64(h.Max()) > maxheight(entries) {
			fmsg := "validate(): max height %v exceeds log2(%v)"
			panic(fmt.Errorf(fmsg, float64(h.Max()), entries))
		}
	}

	llrb.validatestats()
}

func (llrb *LLRB[T]) validatetree(
	nd *Llrbnode[T], fromred bool, blacks, depth int64,
	h *lib.HistogramInt64) (nblacks int64) {

	if nd == nil {
		return blacks
	}

	h.Add(depth)
	if fromred && isred(nd) {
		panic(errRedafterred)
	}
	if isred(nd.right) {
		panic(errRightred)
	}
	if !isred(nd) {
		blacks++
	}

	lblacks := llrb.validatetree(nd.left, isred(nd), blacks, depth+1, h)
	rblacks := llrb.validatetree(nd.right, isred(nd), blacks, depth+1, h)
	if lblacks != rblacks {
		panic(unbalancedblacks(lblacks, rblacks))
	}

	if nd.left != nil && llrb.cmp(nd.left.item, nd.item) >= 0 {
		fmsg := "validate(): sort order, left node %v is >= node %v"
		panic(fmt.Errorf(fmsg, nd.left.item, nd.item))
	}
	if nd.right != nil && llrb.cmp(nd.right.item, nd.item) <= 0 {
		fmsg := "validate(): sort order, right node %v is <= node %v"
		panic(fmt.Errorf(fmsg, nd.right.item, nd.item))
	}
	return lblacks
}

func (llrb *LLRB[T]) validatestats() {
	// n_count should match (n_inserts - n_deletes)
	n_count := llrb.n_count
	n_inserts, n_deletes := llrb.n_inserts, llrb.n_deletes
	if n_count != (n_inserts - n_deletes) {
		fmsg := "validatestats(): n_count:%v != (n_inserts:%v - n_deletes:%v)"
		panic(fmt.Errorf(fmsg, n_count, n_inserts, n_deletes))
	}
	// n_nodes should match n_inserts
	if n_nodes := llrb.n_nodes; n_inserts != n_nodes {
		fmsg := "validatestats(): n_inserts:%v != n_nodes:%v"
		panic(fmt.Errorf(fmsg, n_inserts, n_nodes))
	}
	// n_deletes should match n_frees
	if n_frees := llrb.n_frees; n_deletes != n_frees {
		fmsg := "validatestats(): n_deletes:%v != n_frees:%v"
		panic(fmt.Errorf(fmsg, n_deletes, n_frees))
	}
}
