package txn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollbackRunsInReverseOrder(t *testing.T) {
	tx := Begin()

	var order []int
	tx.OnRollback(func() { order = append(order, 1) })
	tx.OnRollback(func() { order = append(order, 2) })
	tx.OnRollback(func() { order = append(order, 3) })

	tx.Rollback()

	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestCommitRunsHooksInOrderAndSkipsUndo(t *testing.T) {
	tx := Begin()

	var undone bool
	var hooks []int
	tx.OnRollback(func() { undone = true })
	tx.OnCommit(func() { hooks = append(hooks, 1) })
	tx.OnCommit(func() { hooks = append(hooks, 2) })

	tx.Commit()

	assert.False(t, undone)
	assert.Equal(t, []int{1, 2}, hooks)
}

func TestRollbackDiscardsCommitHooks(t *testing.T) {
	tx := Begin()

	var published bool
	tx.OnCommit(func() { published = true })

	tx.Rollback()

	assert.False(t, published)
}

func TestCommitThenRollbackIsNoOp(t *testing.T) {
	tx := Begin()

	var undone bool
	tx.OnRollback(func() { undone = true })

	tx.Commit()
	tx.Rollback()

	assert.False(t, undone)
}

func TestRollbackIsIdempotent(t *testing.T) {
	tx := Begin()

	count := 0
	tx.OnRollback(func() { count++ })

	tx.Rollback()
	tx.Rollback()

	assert.Equal(t, 1, count)
}
