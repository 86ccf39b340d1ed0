package llrb

import "fmt"

// Range iterate over items between low and high, in ascending order,
// until callb returns false. Nil low or nil high is unbounded on that
// side. incl can be "both", "low", "high", "none", to include or
// exclude the bounds.
func (llrb *LLRB[T]) Range(low, high *T, incl string, callb func(T) bool) {
	var skip bool
	incl, skip = llrb.fixrangeargs(low, high, incl)
	if skip || callb == nil {
		return
	}
	llrb.n_ranges++
	llrb.dorange(llrb.root, low, high, incl, callb)
}

// Export return all items in ascending order. Memory for the returned
// slice is charged against the arena while it is being populated, if
// the arena cannot hold it api.ErrorOutofMemory is returned. An empty
// index returns a nil slice and nil error.
func (llrb *LLRB[T]) Export() ([]T, error) {
	if llrb.n_count == 0 {
		return nil, nil
	}
	size := llrb.n_count * llrb.itemsize
	if err := llrb.arena.Alloc(size); err != nil {
		llrb.n_ooms++
		warnf("%v Export(): %v items %v\n", llrb.logprefix, llrb.n_count, err)
		return nil, err
	}
	defer llrb.arena.Free(size)

	items := make([]T, 0, llrb.n_count)
	llrb.dorange(llrb.root, nil, nil, "both", func(item T) bool {
		items = append(items, item)
		return true
	})
	if int64(len(items)) != llrb.n_count {
		fmsg := "Export(): exported %v items, expected %v"
		panic(fmt.Errorf(fmsg, len(items), llrb.n_count))
	}
	llrb.n_exports++
	return items, nil
}

func (llrb *LLRB[T]) fixrangeargs(low, high *T, incl string) (string, bool) {
	switch incl {
	case "both", "low", "high", "none":
	default:
		panic(fmt.Errorf("Range(): invalid incl %q", incl))
	}
	if low != nil && high != nil {
		cmp := llrb.cmp(*low, *high)
		if cmp > 0 {
			return incl, true
		} else if cmp == 0 && incl != "both" {
			return incl, true
		}
	}
	return incl, false
}

func (llrb *LLRB[T]) dorange(
	nd *Llrbnode[T], lk, hk *T, incl string, callb func(T) bool) bool {

	if nd == nil {
		return true
	}
	if hk != nil && llrb.abovehigh(nd.item, *hk, incl) {
		return llrb.dorange(nd.left, lk, hk, incl, callb)
	}
	if lk != nil && llrb.belowlow(nd.item, *lk, incl) {
		return llrb.dorange(nd.right, lk, hk, incl, callb)
	}
	if !llrb.dorange(nd.left, lk, hk, incl, callb) {
		return false
	}
	if !callb(nd.item) {
		return false
	}
	return llrb.dorange(nd.right, lk, hk, incl, callb)
}

func (llrb *LLRB[T]) abovehigh(item, hk T, incl string) bool {
	if incl == "both" || incl == "high" {
		return llrb.cmp(item, hk) > 0
	}
	return llrb.cmp(item, hk) >= 0
}

func (llrb *LLRB[T]) belowlow(item, lk T, incl string) bool {
	if incl == "both" || incl == "low" {
		return llrb.cmp(item, lk) < 0
	}
	return llrb.cmp(item, lk) <= 0
}
