package loans

import (
	"sync"

	"credverify/internal/pkg/store/models"
	"credverify/internal/pkg/store/repository"
	"credverify/internal/pkg/txn"
)

// LoanRepository owns the loan arena and the monotonically increasing loan id
// counter. Only the loan ledger mutates it. Loans are never deleted; terminal
// loans stay as historical records.
type LoanRepository struct {
	arena *repository.Arena[uint64, models.Loan]

	mu     sync.Mutex
	nextID uint64
}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{arena: repository.NewArena[uint64, models.Loan]()}
}

// NextID allocates the next loan identifier. The counter participates in the
// Tx so an aborted creation does not burn ids.
func (r *LoanRepository) NextID(tx *txn.Tx) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	tx.OnRollback(func() {
		r.mu.Lock()
		r.nextID--
		r.mu.Unlock()
	})
	return id
}

func (r *LoanRepository) Insert(tx *txn.Tx, loan models.Loan) bool {
	return r.arena.Insert(tx, loan.ID, loan)
}

func (r *LoanRepository) Get(loanID uint64) (models.Loan, bool) {
	return r.arena.Get(loanID)
}

func (r *LoanRepository) Update(tx *txn.Tx, loan models.Loan) bool {
	return r.arena.Update(tx, loan.ID, loan)
}

func (r *LoanRepository) Count() int {
	return r.arena.Len()
}
