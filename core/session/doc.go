// Package session holds the data a render pass reads: the loaded release
// bundle and the translation catalog.
//
// A Session is built once and never mutated. A forced reload builds a new
// Session and swaps it into the Holder; renders in flight keep the one
// they started with.
package session
