package workspace

import "sync"

// keyedMutex serializes writers per key. Chat mutations lock the chat id
// so concurrent organize calls interleave per chat instead of racing on
// read-modify-write.
//
// Locks are created on demand and never collected; the population is
// bounded by the number of chats touched in one process lifetime, which
// is small for this workload.
type keyedMutex struct {
	m  map[string]*sync.Mutex
	mu sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{m: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use, and returns
// the unlock function.
func (km *keyedMutex) Lock(key string) func() {
	km.mu.Lock()
	lock, ok := km.m[key]
	if !ok {
		lock = &sync.Mutex{}
		km.m[key] = lock
	}
	km.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
