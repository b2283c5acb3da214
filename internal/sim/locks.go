package sim

import "sync"

// lockSet partitions the store into independently lockable regions.
//
// Global acquisition order, the only one permitted anywhere in the
// project:
//
//	names → buildings → storages → users → transfers
//
// A caller may skip locks it does not need, but must take the ones it
// does need in this order and release before taking an earlier one.
// "buildings" also covers the ownership indices; "users" covers wealth
// and the personal-storage reference; "names" covers the name→user map.
// The store's text interner is not covered here; it synchronizes itself.
type lockSet struct {
	names     sync.Mutex
	buildings sync.Mutex
	storages  sync.Mutex
	users     sync.Mutex
	transfers sync.Mutex
}
