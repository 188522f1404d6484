package service

import "sync"

// LockRegistry hands out one mutex per employee so that read-determine-write
// sequences for the same employee serialize while different employees never
// contend.  The registry is owned by whatever service instance it is injected
// into, not process-wide, so tests can run with isolated registries.
//
// Entries are created lazily and never removed.  The map grows with the
// number of distinct employees seen over the process lifetime, which is fine
// at kiosk scale.
type LockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLockRegistry() *LockRegistry {
	return &LockRegistry{locks: make(map[string]*sync.Mutex)}
}

// For returns the mutex for the given employee, creating it on first use.
func (r *LockRegistry) For(employeeID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[employeeID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[employeeID] = l
	}
	return l
}
