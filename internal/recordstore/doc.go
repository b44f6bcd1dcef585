// Package recordstore keeps the append-only memory log together with the two
// views derived from it: a fixed-size window of the latest records and a
// per-owner index of sequence numbers.
//
// A Store is not safe for concurrent use. Callers serialize access; see
// store/memory for the mutex-guarded adapter used by the service.
package recordstore
