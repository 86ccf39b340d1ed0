// Package lib provide small helpers that are not tied up with any
// particular index or registry. They shall not depend on anything
// other than the standard library.
package lib
