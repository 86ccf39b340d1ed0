// Package llrb implement a self-balancing version of binary-tree, called,
// LLRB (Left Leaning Red Black), over items of any type ordered by an
// application supplied comparator.
//
//   * Each item shall be unique within the index, as per comparator.
//   * Every node is charged against an api.Mallocer, insert fails with
//     api.ErrorOutofMemory when the arena is exhausted.
//   * Items are stored by value. Changing the ordering fields of an
//     item means delete followed by insert.
//   * Instances are not thread safe, reads and writes shall be
//     serialized by the application.
//
package llrb
