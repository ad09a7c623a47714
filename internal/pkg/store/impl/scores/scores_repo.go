package scores

import (
	"credverify/internal/pkg/store/models"
	"credverify/internal/pkg/store/repository"
	"credverify/internal/pkg/txn"
)

// ScoreRepository owns the per-borrower score arena. Records are created
// lazily on a borrower's first event and never destroyed.
type ScoreRepository struct {
	arena *repository.Arena[string, models.ScoreRecord]
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{arena: repository.NewArena[string, models.ScoreRecord]()}
}

func (r *ScoreRepository) Get(borrower string) (models.ScoreRecord, bool) {
	return r.arena.Get(borrower)
}

func (r *ScoreRepository) Upsert(tx *txn.Tx, record models.ScoreRecord) {
	r.arena.Upsert(tx, record.Borrower, record)
}
