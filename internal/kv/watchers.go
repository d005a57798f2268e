package kv

import "sync"

// Watchers is the change-callback registry shared by Repository implementations.
// The zero value is ready to use.
type Watchers struct {
	mu   sync.RWMutex
	next int
	fns  map[string]map[int]func(string)
}

func (w *Watchers) Add(key string, fn func(key string)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fns == nil {
		w.fns = make(map[string]map[int]func(string))
	}
	if w.fns[key] == nil {
		w.fns[key] = make(map[int]func(string))
	}
	id := w.next
	w.next++
	w.fns[key][id] = fn

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.fns[key], id)
		if len(w.fns[key]) == 0 {
			delete(w.fns, key)
		}
	}
}

// Notify calls every watcher of key outside the lock.
func (w *Watchers) Notify(key string) {
	w.mu.RLock()
	fns := make([]func(string), 0, len(w.fns[key]))
	for _, fn := range w.fns[key] {
		fns = append(fns, fn)
	}
	w.mu.RUnlock()

	for _, fn := range fns {
		fn(key)
	}
}
