package collateral

import (
	"sync"

	"credverify/internal/pkg/store/models"
	"credverify/internal/pkg/store/repository"
	"credverify/internal/pkg/txn"
)

// CollateralRepository owns the collateral record arena plus the per-asset
// reservation totals the fee sweep computes against. Only the collateral
// escrow mutates it.
//
// The reservation of a record starts at its locked amount, drops by the fee
// portion when a withdrawal-with-fee is authorized (the fee becomes sweepable
// residual), and is released entirely when the record is retired.
type CollateralRepository struct {
	arena *repository.Arena[uint64, models.CollateralRecord]

	mu       sync.Mutex
	reserved map[string]int64
}

func NewCollateralRepository() *CollateralRepository {
	return &CollateralRepository{
		arena:    repository.NewArena[uint64, models.CollateralRecord](),
		reserved: make(map[string]int64),
	}
}

// Insert stores a new record and reserves its locked amount. Reports false
// when a record for the same loan id already exists.
func (r *CollateralRepository) Insert(tx *txn.Tx, record models.CollateralRecord) bool {
	if !r.arena.Insert(tx, record.LoanID, record) {
		return false
	}
	r.adjustReserved(tx, record.Asset, record.LockedAmount)
	return true
}

func (r *CollateralRepository) Get(loanID uint64) (models.CollateralRecord, bool) {
	return r.arena.Get(loanID)
}

func (r *CollateralRepository) Update(tx *txn.Tx, record models.CollateralRecord) bool {
	return r.arena.Update(tx, record.LoanID, record)
}

// Retire removes a record terminally and releases the given reservation.
func (r *CollateralRepository) Retire(tx *txn.Tx, loanID uint64, asset string, reservedAmount int64) bool {
	if !r.arena.Delete(tx, loanID) {
		return false
	}
	r.adjustReserved(tx, asset, -reservedAmount)
	return true
}

// ReleaseReservation reduces the reserved total without touching the record,
// used when a fee portion is carved out at authorization time.
func (r *CollateralRepository) ReleaseReservation(tx *txn.Tx, asset string, amount int64) {
	r.adjustReserved(tx, asset, -amount)
}

// ReservedTotal returns the amount of asset still owed to record owners and
// therefore not sweepable.
func (r *CollateralRepository) ReservedTotal(asset string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reserved[asset]
}

func (r *CollateralRepository) adjustReserved(tx *txn.Tx, asset string, delta int64) {
	r.mu.Lock()
	r.reserved[asset] += delta
	r.mu.Unlock()
	tx.OnRollback(func() {
		r.mu.Lock()
		r.reserved[asset] -= delta
		r.mu.Unlock()
	})
}
