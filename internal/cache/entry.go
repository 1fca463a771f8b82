package cache

// entryState is the per-key state cell: Empty -> Loaded -> Empty
// (eviction resets it to Empty rather than removing the registration).
// The manager never assigns stateLoading; an in-flight load is tracked
// by the manager's singleflight group instead.
type entryState uint8

const (
	stateEmpty entryState = iota
	stateLoading
	stateLoaded
)

// entry is one registered cache slot. borrows is the explicit
// "active borrow" counter spec.md §9 calls for in languages without
// a reference-counted smart pointer: Get increments it, and the
// handle's Release decrements it. idleTicks counts consecutive
// eviction-scan ticks during which borrows was zero.
type entry struct {
	folder    string
	state     entryState
	payload   any
	idleTicks int
	borrows   int64
}
