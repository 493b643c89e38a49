// Package compare diffs the item catalog of two release versions.
//
// Both bundles are read from the configured catalog source and compared
// record by record on their id attribute (core/diff). Results are kept in
// an in-memory LRU keyed by dataset and versions, so repeated views of the
// same pair only pay for the first comparison.
//
// # Routes
//
//	GET /versions                     available release versions
//	GET /compare?a=&b=                diff as JSON
//	GET /compare/view?a=&b=&lang=     translated HTML view
package compare
