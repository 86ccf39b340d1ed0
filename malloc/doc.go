// Package malloc supplies memory accounting for in-memory indexes.
// Types and functions exported by this package are not thread safe.
//
// Arena is a budget of bytes that a group of indexes draw from during
// their existence. Every allocation is rounded up to Alignment, and
// an allocation that would take the arena beyond its capacity fails
// with api.ErrorOutofMemory without charging anything. Arenas can be
// created with following settings:
//
//   capacity : size of arena in bytes, cannot exceed Maxarenasize.
package malloc
