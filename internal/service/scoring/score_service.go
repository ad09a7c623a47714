// Package scoring owns the per-borrower score records and the deterministic
// recomputation that turns accumulated counters into a bounded score.
package scoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"credverify/internal/pkg/consts"
	"credverify/internal/pkg/logger"
	pkgmodels "credverify/internal/pkg/models"
	"credverify/internal/pkg/money"
	"credverify/internal/pkg/store/impl/scores"
	"credverify/internal/pkg/store/models"
	"credverify/internal/pkg/txn"
	"credverify/internal/service/interfaces"
)

const (
	onTimePaymentPoints   = 5
	latePaymentPenalty    = 15
	paymentDeltaCap       = 300
	completionBonusCap    = 150
	defaultPenalty        = 75
	terminationPenalty    = 10
	completionBonusBase   = 10
	completionYearPoints  = 5
	completionYearCap     = 50
	completionSizeDivisor = 1000
	completionSizeCap     = 50
)

type ScoreService struct {
	identity          string
	ledgerIdentity    string
	processorIdentity string

	repo      *scores.ScoreRepository
	publisher interfaces.EventPublisherInterface
	now       func() time.Time
}

func NewScoreService(identity string, repo *scores.ScoreRepository, publisher interfaces.EventPublisherInterface) *ScoreService {
	return &ScoreService{
		identity:  identity,
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// RegisterCollaborators wires the identities allowed to submit events: the
// payment processor for payments, the loan ledger for everything else.
func (s *ScoreService) RegisterCollaborators(ledgerIdentity, processorIdentity string) {
	s.ledgerIdentity = ledgerIdentity
	s.processorIdentity = processorIdentity
}

// SetClock overrides the time source, for tests.
func (s *ScoreService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ScoreService) Identity() string {
	return s.identity
}

func (s *ScoreService) RecordPayment(ctx context.Context, tx *txn.Tx, caller string, borrower string, onTime bool) error {
	if caller != s.processorIdentity || s.processorIdentity == "" {
		return consts.ErrorNotPaymentProcessor
	}
	record := s.getOrCreate(borrower)
	if onTime {
		record.OnTimePayments++
	} else {
		record.LatePayments++
	}
	s.apply(ctx, tx, record)
	return nil
}

func (s *ScoreService) RecordCompletion(ctx context.Context, tx *txn.Tx, caller string, borrower string, loan models.Loan) error {
	if caller != s.ledgerIdentity || s.ledgerIdentity == "" {
		return consts.ErrorNotLoanLedger
	}
	record := s.getOrCreate(borrower)
	record.LoansCompleted++
	record.CompletionBonus += completionBonus(loan)
	s.apply(ctx, tx, record)
	return nil
}

func (s *ScoreService) RecordDefault(ctx context.Context, tx *txn.Tx, caller string, borrower string) error {
	if caller != s.ledgerIdentity || s.ledgerIdentity == "" {
		return consts.ErrorNotLoanLedger
	}
	record := s.getOrCreate(borrower)
	record.LoansDefaulted++
	s.apply(ctx, tx, record)
	return nil
}

func (s *ScoreService) RecordTermination(ctx context.Context, tx *txn.Tx, caller string, borrower string) error {
	if caller != s.ledgerIdentity || s.ledgerIdentity == "" {
		return consts.ErrorNotLoanLedger
	}
	record := s.getOrCreate(borrower)
	record.LoansTerminatedEarly++
	s.apply(ctx, tx, record)
	return nil
}

// ScoreData returns the base score with zeroed counters for a borrower with
// no history rather than failing.
func (s *ScoreService) ScoreData(ctx context.Context, borrower string) models.ScoreRecord {
	record, ok := s.repo.Get(borrower)
	if !ok {
		return models.ScoreRecord{Borrower: borrower, Score: models.BaseScore}
	}
	return record
}

func (s *ScoreService) getOrCreate(borrower string) models.ScoreRecord {
	record, ok := s.repo.Get(borrower)
	if !ok {
		record = models.ScoreRecord{Borrower: borrower, Score: models.BaseScore}
	}
	return record
}

// apply recomputes and persists the record. The timestamp refreshes on every
// qualifying event; the score-updated event fires only when the value moved.
func (s *ScoreService) apply(ctx context.Context, tx *txn.Tx, record models.ScoreRecord) {
	previous := record.Score
	record.Score = Recompute(record)
	record.LastUpdated = s.now()
	s.repo.Upsert(tx, record)

	if record.Score != previous && s.publisher != nil {
		event := pkgmodels.LoanEventMessage{
			EventID:   uuid.New().String(),
			EventType: pkgmodels.EventScoreUpdated,
			Borrower:  record.Borrower,
			Score:     record.Score,
			Timestamp: record.LastUpdated,
		}
		tx.OnCommit(func() {
			s.publisher.PublishLoanEvent(ctx, event)
			logger.CtxDebug(ctx, "score updated",
				slog.String("borrower", event.Borrower),
				slog.Int64("score", event.Score))
		})
	}
}

// Recompute is the pure scoring function of the accumulated counters:
// base 350, plus the payment delta clamped to +/-300, plus the completion
// bonus capped at 150, minus 75 per default and 10 per early termination,
// with the total clamped to [300, 850].
func Recompute(record models.ScoreRecord) int64 {
	paymentDelta := record.OnTimePayments*onTimePaymentPoints - record.LatePayments*latePaymentPenalty
	paymentDelta = money.Clamp(paymentDelta, -paymentDeltaCap, paymentDeltaCap)

	bonus := money.Min(record.CompletionBonus, completionBonusCap)

	score := models.BaseScore + paymentDelta + bonus -
		record.LoansDefaulted*defaultPenalty -
		record.LoansTerminatedEarly*terminationPenalty

	return money.Clamp(score, models.ScoreFloor, models.ScoreCeiling)
}

// completionBonus values one completed loan: a flat base, points per term
// year, and points per thousand units of principal, each capped.
func completionBonus(loan models.Loan) int64 {
	yearPoints := money.Min(loan.TermYears()*completionYearPoints, completionYearCap)
	sizePoints := money.Min(loan.PrincipalAmount/completionSizeDivisor, completionSizeCap)
	return completionBonusBase + yearPoints + sizePoints
}
