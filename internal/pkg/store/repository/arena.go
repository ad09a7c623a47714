package repository

import (
	"sync"

	"credverify/internal/pkg/txn"
)

// Arena is a generic in-memory record store indexed by a stable identifier.
// Each component owns exactly one arena per record type and is its only
// writer; mutations performed inside a Tx register undo actions so an aborted
// operation leaves the arena untouched. Records are held by value, so
// rollback snapshots are plain copies.
type Arena[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewArena[K comparable, V any]() *Arena[K, V] {
	return &Arena[K, V]{items: make(map[K]V)}
}

// Insert adds a new record. It reports false without mutating anything when a
// record with the same key already exists.
func (a *Arena[K, V]) Insert(tx *txn.Tx, key K, value V) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.items[key]; exists {
		return false
	}
	a.items[key] = value
	tx.OnRollback(func() {
		a.mu.Lock()
		delete(a.items, key)
		a.mu.Unlock()
	})
	return true
}

// Get returns a copy of the record for key.
func (a *Arena[K, V]) Get(key K) (V, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	value, ok := a.items[key]
	return value, ok
}

// Update replaces an existing record. It reports false when no record exists
// for key.
func (a *Arena[K, V]) Update(tx *txn.Tx, key K, value V) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	previous, exists := a.items[key]
	if !exists {
		return false
	}
	a.items[key] = value
	tx.OnRollback(func() {
		a.mu.Lock()
		a.items[key] = previous
		a.mu.Unlock()
	})
	return true
}

// Upsert inserts or replaces the record for key.
func (a *Arena[K, V]) Upsert(tx *txn.Tx, key K, value V) {
	a.mu.Lock()
	defer a.mu.Unlock()
	previous, existed := a.items[key]
	a.items[key] = value
	tx.OnRollback(func() {
		a.mu.Lock()
		if existed {
			a.items[key] = previous
		} else {
			delete(a.items, key)
		}
		a.mu.Unlock()
	})
}

// Delete retires the record for key. It reports false when no record exists.
func (a *Arena[K, V]) Delete(tx *txn.Tx, key K) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	previous, exists := a.items[key]
	if !exists {
		return false
	}
	delete(a.items, key)
	tx.OnRollback(func() {
		a.mu.Lock()
		a.items[key] = previous
		a.mu.Unlock()
	})
	return true
}

// Len returns the number of live records.
func (a *Arena[K, V]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.items)
}
