package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"credverify/internal/pkg/txn"
)

func TestArenaInsertAndGet(t *testing.T) {
	arena := NewArena[uint64, string]()
	tx := txn.Begin()

	assert.True(t, arena.Insert(tx, 1, "first"))
	tx.Commit()

	got, ok := arena.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "first", got)
	assert.Equal(t, 1, arena.Len())
}

func TestArenaInsertDuplicateFails(t *testing.T) {
	arena := NewArena[uint64, string]()
	tx := txn.Begin()

	assert.True(t, arena.Insert(tx, 1, "first"))
	assert.False(t, arena.Insert(tx, 1, "second"))

	got, _ := arena.Get(1)
	assert.Equal(t, "first", got)
}

func TestArenaInsertRollsBack(t *testing.T) {
	arena := NewArena[uint64, string]()
	tx := txn.Begin()

	arena.Insert(tx, 1, "first")
	tx.Rollback()

	_, ok := arena.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, arena.Len())
}

func TestArenaUpdateMissingFails(t *testing.T) {
	arena := NewArena[uint64, string]()
	tx := txn.Begin()

	assert.False(t, arena.Update(tx, 1, "value"))
}

func TestArenaUpdateRollsBackToPrevious(t *testing.T) {
	arena := NewArena[uint64, string]()

	setup := txn.Begin()
	arena.Insert(setup, 1, "original")
	setup.Commit()

	tx := txn.Begin()
	assert.True(t, arena.Update(tx, 1, "changed"))
	tx.Rollback()

	got, _ := arena.Get(1)
	assert.Equal(t, "original", got)
}

func TestArenaUpsertRollback(t *testing.T) {
	arena := NewArena[string, int]()

	// Upsert of a new key rolls back to absence.
	tx := txn.Begin()
	arena.Upsert(tx, "a", 1)
	tx.Rollback()
	_, ok := arena.Get("a")
	assert.False(t, ok)

	// Upsert of an existing key rolls back to the previous value.
	setup := txn.Begin()
	arena.Upsert(setup, "a", 1)
	setup.Commit()

	tx = txn.Begin()
	arena.Upsert(tx, "a", 2)
	tx.Rollback()

	got, _ := arena.Get("a")
	assert.Equal(t, 1, got)
}

func TestArenaDeleteRollsBack(t *testing.T) {
	arena := NewArena[uint64, string]()

	setup := txn.Begin()
	arena.Insert(setup, 1, "keep")
	setup.Commit()

	tx := txn.Begin()
	assert.True(t, arena.Delete(tx, 1))
	_, ok := arena.Get(1)
	assert.False(t, ok)

	tx.Rollback()
	got, ok := arena.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "keep", got)
}

func TestArenaInterleavedMutationsUnwindCleanly(t *testing.T) {
	arena := NewArena[uint64, string]()

	setup := txn.Begin()
	arena.Insert(setup, 1, "one")
	setup.Commit()

	tx := txn.Begin()
	arena.Update(tx, 1, "one-changed")
	arena.Insert(tx, 2, "two")
	arena.Delete(tx, 1)
	tx.Rollback()

	got, ok := arena.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "one", got)
	_, ok = arena.Get(2)
	assert.False(t, ok)
}
