// Package txn provides the unit-of-work boundary that reproduces the
// all-or-nothing semantics of a cross-component state transition. Every
// mutating entrypoint begins a Tx, threads it through each store and
// collaborator it touches, and either commits or rolls the whole thing back.
package txn

// Tx collects undo actions from every store mutation performed inside one
// operation, plus hooks to run only after the operation commits (event
// publication, archival). A Tx is not safe for concurrent use; operations
// are serialized by the platform entrypoint.
type Tx struct {
	undo     []func()
	onCommit []func()
	done     bool
}

func Begin() *Tx {
	return &Tx{}
}

// OnRollback registers an undo action. Undo actions run in reverse order of
// registration so interleaved mutations unwind cleanly.
func (t *Tx) OnRollback(fn func()) {
	t.undo = append(t.undo, fn)
}

// OnCommit registers a hook that runs only if the operation commits. Nothing
// observable may escape an aborted operation, so event publication and
// archive writes always go through here.
func (t *Tx) OnCommit(fn func()) {
	t.onCommit = append(t.onCommit, fn)
}

// Commit finalizes the operation and runs commit hooks in registration order.
func (t *Tx) Commit() {
	if t.done {
		return
	}
	t.done = true
	for _, fn := range t.onCommit {
		fn()
	}
	t.undo = nil
	t.onCommit = nil
}

// Rollback unwinds every registered mutation in reverse order and discards
// the commit hooks.
func (t *Tx) Rollback() {
	if t.done {
		return
	}
	t.done = true
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	t.onCommit = nil
}
