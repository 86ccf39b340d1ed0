package llrb

import "fmt"
import "io"

// Llrbnode defines a node in LLRB tree.
type Llrbnode[T any] struct {
	left  *Llrbnode[T]
	right *Llrbnode[T]
	black bool
	item  T
}

func isred[T any](nd *Llrbnode[T]) bool {
	return nd != nil && !nd.black
}

func isblack[T any](nd *Llrbnode[T]) bool {
	return nd == nil || nd.black
}

func (nd *Llrbnode[T]) togglelink() {
	nd.black = !nd.black
}

func (nd *Llrbnode[T]) dotdump(buffer io.Writer) {
	if nd == nil {
		return
	}
	whatcolor := func(childnd *Llrbnode[T]) string {
		if isblack(childnd) {
			return "black"
		}
		return "red"
	}

	fmt.Fprintf(buffer, "  %q;\n", fmt.Sprintf("%v", nd.item))
	if nd.left != nil {
		fmsg := "  %q -> %q [color=%v];\n"
		k, lk := fmt.Sprintf("%v", nd.item), fmt.Sprintf("%v", nd.left.item)
		fmt.Fprintf(buffer, fmsg, k, lk, whatcolor(nd.left))
	}
	if nd.right != nil {
		fmsg := "  %q -> %q [color=%v];\n"
		k, rk := fmt.Sprintf("%v", nd.item), fmt.Sprintf("%v", nd.right.item)
		fmt.Fprintf(buffer, fmsg, k, rk, whatcolor(nd.right))
	}
	nd.left.dotdump(buffer)
	nd.right.dotdump(buffer)
}
