// Package diff classifies two snapshots of a dataset into added, removed
// and modified records.
//
// Records are indexed by an id field. Duplicate ids within one snapshot are
// resolved last-write-wins while keeping the position of the first
// occurrence, so result ordering follows the input order. Records without
// an id are ignored.
//
// Equality is deep structural equality. Nested arrays and objects are
// compared as whole values: a change anywhere inside a nested field reports
// the entire field with its old and new value.
//
// Cache memoizes results per (dataset, version A, version B) with an LRU
// bounded in size and age, and collapses concurrent identical requests.
package diff
