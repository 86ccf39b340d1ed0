package llrb

import "fmt"
import "io"
import "strings"
import "unsafe"

import "github.com/bnclabs/colosseum/api"
import "github.com/bnclabs/colosseum/lib"
import humanize "github.com/dustin/go-humanize"

// LLRB manage a single instance of in-memory sorted index using
// left-leaning-red-black tree.
type LLRB[T any] struct { // tree container
	llrbstats
	h_upsertdepth *lib.HistogramInt64

	name      string
	root      *Llrbnode[T]
	cmp       func(a, b T) int
	arena     api.Mallocer
	nodesize  int64
	itemsize  int64
	dead      bool
	logprefix string
}

// NewLLRB a new instance of in-memory sorted index. `cmp` shall define
// a strict total order over items, returning a negative number, zero,
// or a positive number when a is less than, equal to, or greater
// than b. Nodes are charged against `arena`.
func NewLLRB[T any](name string, cmp func(a, b T) int, arena api.Mallocer) *LLRB[T] {
	if cmp == nil {
		panic("NewLLRB(): nil comparator")
	} else if arena == nil {
		panic("NewLLRB(): nil arena")
	}
	llrb := &LLRB[T]{name: name, cmp: cmp, arena: arena}
	llrb.logprefix = fmt.Sprintf("LLRB [%s]", name)
	llrb.nodesize = Nodesize[T]()
	llrb.itemsize = int64(unsafe.Sizeof(*new(T)))
	llrb.h_upsertdepth = lib.NewHistogramInt64(1, 64, 1)

	fmsg := "%v started, node %v item %v\n"
	nsz, isz := uint64(llrb.nodesize), uint64(llrb.itemsize)
	debugf(fmsg, llrb.logprefix, humanize.Bytes(nsz), humanize.Bytes(isz))
	return llrb
}

// Nodesize return the bytes charged to an arena for every node of an
// LLRB holding items of type T.
func Nodesize[T any]() int64 {
	return int64(unsafe.Sizeof(Llrbnode[T]{}))
}

// ID return the name of this index.
func (llrb *LLRB[T]) ID() string {
	return llrb.name
}

// Count return number of items in the index.
func (llrb *LLRB[T]) Count() int64 {
	return llrb.n_count
}

// Nodesize return the number of bytes charged to the arena for every
// item held by this index.
func (llrb *LLRB[T]) Nodesize() int64 {
	return llrb.nodesize
}

// Isactive return false after Destroy.
func (llrb *LLRB[T]) Isactive() bool {
	return !llrb.dead
}

// Dotdump to convert whole tree into dot script that can be visualized
// using graphviz.
func (llrb *LLRB[T]) Dotdump(buffer io.Writer) {
	lines := []string{
		"digraph llrb {",
		"  node[shape=record];\n",
		"}",
	}
	io.WriteString(buffer, strings.Join(lines[:len(lines)-1], "\n"))
	llrb.root.dotdump(buffer)
	io.WriteString(buffer, lines[len(lines)-1])
}

// Destroy return memory of all nodes back to the arena. Index
// cannot be used after destroy.
func (llrb *LLRB[T]) Destroy() {
	if llrb.dead {
		panic("Destroy(): already dead tree")
	}
	if llrb.n_count > 0 {
		llrb.arena.Free(llrb.n_count * llrb.nodesize)
		llrb.n_frees += llrb.n_count
	}
	llrb.root, llrb.n_count, llrb.dead = nil, 0, true
	debugf("%v destroyed\n", llrb.logprefix)
}

//---- reader methods

// Has return whether an item comparing equal to key is present.
func (llrb *LLRB[T]) Has(key T) bool {
	_, ok := llrb.Get(key)
	return ok
}

// Get return the stored item comparing equal to key. Stored item
// may carry fields that don't participate in the ordering.
func (llrb *LLRB[T]) Get(key T) (item T, ok bool) {
	llrb.n_lookups++
	nd := llrb.root
	for nd != nil {
		switch cmp := llrb.cmp(key, nd.item); {
		case cmp < 0:
			nd = nd.left
		case cmp > 0:
			nd = nd.right
		default:
			return nd.item, true
		}
	}
	return item, false
}

// Min return the smallest item in the index.
func (llrb *LLRB[T]) Min() (item T, ok bool) {
	llrb.n_lookups++
	nd := llrb.root
	if nd == nil {
		return item, false
	}
	for nd.left != nil {
		nd = nd.left
	}
	return nd.item, true
}

// Max return the largest item in the index.
func (llrb *LLRB[T]) Max() (item T, ok bool) {
	llrb.n_lookups++
	nd := llrb.root
	if nd == nil {
		return item, false
	}
	for nd.right != nil {
		nd = nd.right
	}
	return nd.item, true
}

//---- writer methods

// Insert item into the index. Return api.ErrorKeyExists if an item
// comparing equal is already present, api.ErrorOutofMemory if arena
// cannot supply a new node. Index is left untouched on error.
func (llrb *LLRB[T]) Insert(item T) error {
	if llrb.Has(item) {
		return api.ErrorKeyExists
	}
	if err := llrb.arena.Alloc(llrb.nodesize); err != nil {
		llrb.n_ooms++
		warnf("%v Insert(): %v\n", llrb.logprefix, err)
		return err
	}
	root := llrb.insert(llrb.root, 1 /*depth*/, item)
	root.black = true
	llrb.root = root
	llrb.n_count++
	llrb.n_inserts++
	return nil
}

func (llrb *LLRB[T]) insert(nd *Llrbnode[T], depth int64, item T) *Llrbnode[T] {
	if nd == nil {
		llrb.h_upsertdepth.Add(depth)
		llrb.n_nodes++
		return &Llrbnode[T]{item: item}
	}

	switch cmp := llrb.cmp(item, nd.item); {
	case cmp < 0:
		nd.left = llrb.insert(nd.left, depth+1, item)
	case cmp > 0:
		nd.right = llrb.insert(nd.right, depth+1, item)
	default:
		panic("insert(): duplicate item, call the programmer")
	}
	return llrb.walkuprot23(nd)
}

// Delete item comparing equal to key and return the stored item.
// Return api.ErrorKeyMissing if no such item is present.
func (llrb *LLRB[T]) Delete(key T) (T, error) {
	if !llrb.Has(key) {
		var zero T
		return zero, api.ErrorKeyMissing
	}
	root, deleted := llrb.delete(llrb.root, key)
	if deleted == nil {
		panic("Delete(): missing item after lookup, call the programmer")
	}
	if root != nil {
		root.black = true
	}
	llrb.root = root
	llrb.arena.Free(llrb.nodesize)
	llrb.n_count--
	llrb.n_deletes++
	llrb.n_frees++
	return *deleted, nil
}

// using 2-3 trees, return the new subtree root and a pointer to
// a copy of the deleted item.
func (llrb *LLRB[T]) delete(nd *Llrbnode[T], key T) (*Llrbnode[T], *T) {
	var deleted *T

	if nd == nil {
		return nil, nil
	}

	if llrb.cmp(key, nd.item) < 0 {
		if nd.left == nil { // key not present. Nothing to delete
			return nd, nil
		}
		if !isred(nd.left) && !isred(nd.left.left) {
			nd = llrb.moveredleft(nd)
		}
		nd.left, deleted = llrb.delete(nd.left, key)

	} else {
		if isred(nd.left) {
			nd = llrb.rotateright(nd)
		}
		// If key equals nd.item and no right children at nd.
		if llrb.cmp(key, nd.item) == 0 && nd.right == nil {
			item := nd.item
			return nil, &item
		}
		if nd.right != nil && !isred(nd.right) && !isred(nd.right.left) {
			nd = llrb.moveredright(nd)
		}
		// If key equals nd.item, and (from above) nd.right != nil
		if llrb.cmp(key, nd.item) == 0 {
			var subdeleted *T
			nd.right, subdeleted = llrb.deletemin(nd.right)
			if subdeleted == nil {
				panic("delete(): fatal logic, call the programmer")
			}
			item := nd.item
			deleted, nd.item = &item, *subdeleted
		} else { // Else, key is bigger than nd.item
			nd.right, deleted = llrb.delete(nd.right, key)
		}
	}
	return llrb.fixup(nd), deleted
}

// using 2-3 trees
func (llrb *LLRB[T]) deletemin(nd *Llrbnode[T]) (*Llrbnode[T], *T) {
	var deleted *T

	if nd == nil {
		return nil, nil
	}
	if nd.left == nil {
		item := nd.item
		return nil, &item
	}
	if !isred(nd.left) && !isred(nd.left.left) {
		nd = llrb.moveredleft(nd)
	}
	nd.left, deleted = llrb.deletemin(nd.left)
	return llrb.fixup(nd), deleted
}

// rotation routines for 2-3 algorithm

func (llrb *LLRB[T]) walkuprot23(nd *Llrbnode[T]) *Llrbnode[T] {
	if isred(nd.right) && !isred(nd.left) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	return nd
}

func (llrb *LLRB[T]) rotateleft(nd *Llrbnode[T]) *Llrbnode[T] {
	y := nd.right
	if y.black {
		panic("rotateleft(): rotating a black link ? call the programmer")
	}
	nd.right = y.left
	y.left = nd
	y.black = nd.black
	nd.black = false
	return y
}

func (llrb *LLRB[T]) rotateright(nd *Llrbnode[T]) *Llrbnode[T] {
	x := nd.left
	if x.black {
		panic("rotateright(): rotating a black link ? call the programmer")
	}
	nd.left = x.right
	x.right = nd
	x.black = nd.black
	nd.black = false
	return x
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB[T]) flip(nd *Llrbnode[T]) {
	nd.left.togglelink()
	nd.right.togglelink()
	nd.togglelink()
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB[T]) moveredleft(nd *Llrbnode[T]) *Llrbnode[T] {
	llrb.flip(nd)
	if isred(nd.right.left) {
		nd.right = llrb.rotateright(nd.right)
		nd = llrb.rotateleft(nd)
		llrb.flip(nd)
	}
	return nd
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB[T]) moveredright(nd *Llrbnode[T]) *Llrbnode[T] {
	llrb.flip(nd)
	if isred(nd.left.left) {
		nd = llrb.rotateright(nd)
		llrb.flip(nd)
	}
	return nd
}

func (llrb *LLRB[T]) fixup(nd *Llrbnode[T]) *Llrbnode[T] {
	if isred(nd.right) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	return nd
}
