// Package ledger owns the loan records and the loan state machine. It is the
// only component permitted to instruct the collateral escrow on releases and
// claims and to declare a loan complete, defaulted or terminated.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"credverify/internal/pkg/consts"
	"credverify/internal/pkg/logger"
	pkgmodels "credverify/internal/pkg/models"
	"credverify/internal/pkg/store/impl/loans"
	"credverify/internal/pkg/store/models"
	"credverify/internal/pkg/txn"
	"credverify/internal/service/interfaces"
)

// Terms are the origination parameters applied to every new loan.
type Terms struct {
	AnnualRateBps          int64
	TermPeriods            int64
	PeriodLength           time.Duration
	GracePeriod            time.Duration
	EarlyTerminationFeeBps int64
}

type LedgerService struct {
	identity string
	repo     *loans.LoanRepository

	escrow         interfaces.CollateralEscrowInterface
	escrowIdentity string

	scoresEngine interfaces.CreditScoreEngineInterface

	payments          interfaces.PaymentProcessorInterface
	processorIdentity string

	issuer    interfaces.AchievementIssuerInterface
	archive   interfaces.LoanArchiveInterface
	publisher interfaces.EventPublisherInterface

	mu               sync.RWMutex
	terms            Terms
	platformTreasury string

	now func() time.Time
}

func NewLedgerService(identity string, repo *loans.LoanRepository, terms Terms, platformTreasury string, publisher interfaces.EventPublisherInterface) *LedgerService {
	return &LedgerService{
		identity:         identity,
		repo:             repo,
		terms:            terms,
		platformTreasury: platformTreasury,
		publisher:        publisher,
		now:              time.Now,
	}
}

// RegisterCollaborators wires the components the ledger orchestrates. The
// escrow identity gates CreateFromCollateral; the processor identity gates
// ApplyPayment.
func (s *LedgerService) RegisterCollaborators(
	escrowIdentity string, escrow interfaces.CollateralEscrowInterface,
	processorIdentity string, payments interfaces.PaymentProcessorInterface,
	scoresEngine interfaces.CreditScoreEngineInterface,
	issuer interfaces.AchievementIssuerInterface,
	archive interfaces.LoanArchiveInterface,
) {
	s.escrowIdentity = escrowIdentity
	s.escrow = escrow
	s.processorIdentity = processorIdentity
	s.payments = payments
	s.scoresEngine = scoresEngine
	s.issuer = issuer
	s.archive = archive
}

func (s *LedgerService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *LedgerService) Identity() string {
	return s.identity
}

// SetEarlyTerminationFee updates the fee applied by future terminations.
func (s *LedgerService) SetEarlyTerminationFee(feeBps int64) error {
	if feeBps < 0 || feeBps > 10000 {
		return consts.ErrorInvalidFee
	}
	s.mu.Lock()
	s.terms.EarlyTerminationFeeBps = feeBps
	s.mu.Unlock()
	return nil
}

func (s *LedgerService) EarlyTerminationFeeBps() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terms.EarlyTerminationFeeBps
}

// CreateFromCollateral opens a loan against freshly locked collateral.
// Callable only by the collateral escrow, which already holds the funds.
// Pending collapses into Active inside this same operation.
func (s *LedgerService) CreateFromCollateral(ctx context.Context, tx *txn.Tx, caller string, borrower, asset string, amount int64) (uint64, error) {
	if s.escrowIdentity == "" || caller != s.escrowIdentity {
		return 0, consts.ErrorNotCollateralEscrow
	}
	if amount <= 0 {
		return 0, consts.ErrorInvalidAmount
	}
	if s.payments == nil || asset != s.payments.PaymentAsset() {
		return 0, consts.ErrorUnsupportedAsset
	}

	s.mu.RLock()
	terms := s.terms
	s.mu.RUnlock()

	now := s.now()
	loan := models.Loan{
		ID:               s.repo.NextID(tx),
		Borrower:         borrower,
		Asset:            asset,
		CollateralAmount: amount,
		PrincipalAmount:  amount,
		AnnualRateBps:    terms.AnnualRateBps,
		StartTime:        now,
		TermPeriods:      terms.TermPeriods,
		PeriodLength:     terms.PeriodLength,
		NextDueDate:      now.Add(terms.PeriodLength),
		Status:           models.StatusActive,
	}
	s.repo.Insert(tx, loan)

	if err := s.escrow.StoreInfo(ctx, tx, s.identity, loan.ID, borrower, asset, amount); err != nil {
		return 0, err
	}

	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventLoanCreated,
		LoanID:    loan.ID,
		Borrower:  borrower,
		Asset:     asset,
		Amount:    amount,
	})
	logger.CtxInfo(ctx, "loan created",
		slog.Uint64("loan_id", loan.ID),
		slog.String("borrower", borrower),
		slog.Int64("principal", amount))
	return loan.ID, nil
}

// ApplyPayment records a settled payment split. Callable only by the payment
// processor. Reaching full principal triggers the completion sequence inside
// the same operation.
func (s *LedgerService) ApplyPayment(ctx context.Context, tx *txn.Tx, caller string, loanID uint64, principalPaid, interestPaid int64) error {
	if s.processorIdentity == "" || caller != s.processorIdentity {
		return consts.ErrorNotPaymentProcessor
	}
	loan, ok := s.repo.Get(loanID)
	if !ok {
		return consts.ErrorLoanNotFound
	}
	if loan.Status != models.StatusActive {
		return consts.ErrorLoanNotActive
	}
	if loan.TotalPaidPrincipal+principalPaid > loan.PrincipalAmount {
		return consts.ErrorPrincipalExceeded
	}

	loan.PaymentsMade++
	loan.TotalPaidPrincipal += principalPaid
	loan.TotalPaidInterest += interestPaid
	loan.NextDueDate = loan.NextDueDate.Add(loan.PeriodLength)
	s.repo.Update(tx, loan)

	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventLoanUpdated,
		LoanID:    loan.ID,
		Borrower:  loan.Borrower,
		Asset:     loan.Asset,
		Amount:    principalPaid + interestPaid,
	})

	if loan.TotalPaidPrincipal >= loan.PrincipalAmount {
		return s.complete(ctx, tx, loan)
	}
	return nil
}

// complete runs the completion sequence: PaidInFull, full collateral release,
// score credit, achievement issuance, archival.
func (s *LedgerService) complete(ctx context.Context, tx *txn.Tx, loan models.Loan) error {
	if err := s.transition(tx, &loan, models.StatusPaidInFull); err != nil {
		return err
	}

	if err := s.escrow.AuthorizeFullWithdrawal(ctx, tx, s.identity, loan.ID, loan.Borrower, loan.Asset); err != nil {
		return err
	}
	if err := s.scoresEngine.RecordCompletion(ctx, tx, s.identity, loan.Borrower, loan); err != nil {
		return err
	}

	finalScore := s.scoresEngine.ScoreData(ctx, loan.Borrower).Score
	if s.issuer != nil {
		owner := loan.Borrower
		loanID := loan.ID
		metadataRef := fmt.Sprintf("loans/%d", loanID)
		tx.OnCommit(func() {
			recordID, err := s.issuer.Issue(ctx, owner, loanID, finalScore, metadataRef)
			if err != nil {
				logger.CtxError(ctx, "achievement issuance failed", err, slog.Uint64("loan_id", loanID))
				return
			}
			logger.CtxInfo(ctx, "achievement record issued",
				slog.Uint64("loan_id", loanID),
				slog.String("record_id", recordID))
		})
	}

	s.archiveLoan(ctx, tx, loan)
	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventLoanCompleted,
		LoanID:    loan.ID,
		Borrower:  loan.Borrower,
		Asset:     loan.Asset,
		Amount:    loan.TotalPaidPrincipal,
		Score:     finalScore,
	})
	logger.CtxInfo(ctx, "loan paid in full", slog.Uint64("loan_id", loan.ID))
	return nil
}

// RequestEarlyTermination lets the borrower close out early, paying the
// configured fee out of the collateral.
func (s *LedgerService) RequestEarlyTermination(ctx context.Context, tx *txn.Tx, caller string, loanID uint64) error {
	loan, ok := s.repo.Get(loanID)
	if !ok {
		return consts.ErrorLoanNotFound
	}
	if caller != loan.Borrower {
		return consts.ErrorNotBorrower
	}
	if loan.Status != models.StatusActive {
		return consts.ErrorLoanNotActive
	}

	if err := s.transition(tx, &loan, models.StatusEarlyTerminated); err != nil {
		return err
	}

	if err := s.escrow.AuthorizeWithdrawalWithFee(ctx, tx, s.identity, loan.ID, s.EarlyTerminationFeeBps()); err != nil {
		return err
	}
	if err := s.scoresEngine.RecordTermination(ctx, tx, s.identity, loan.Borrower); err != nil {
		return err
	}

	s.archiveLoan(ctx, tx, loan)
	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventLoanTerminated,
		LoanID:    loan.ID,
		Borrower:  loan.Borrower,
		Asset:     loan.Asset,
	})
	logger.CtxInfo(ctx, "loan terminated early", slog.Uint64("loan_id", loan.ID))
	return nil
}

// MarkDefaulted is callable by anyone once the grace period past the due
// date has elapsed. The collateral is forfeited to the platform treasury.
func (s *LedgerService) MarkDefaulted(ctx context.Context, tx *txn.Tx, caller string, loanID uint64) error {
	loan, ok := s.repo.Get(loanID)
	if !ok {
		return consts.ErrorLoanNotFound
	}
	if loan.Status != models.StatusActive {
		return consts.ErrorLoanNotActive
	}

	s.mu.RLock()
	grace := s.terms.GracePeriod
	treasury := s.platformTreasury
	s.mu.RUnlock()

	if !s.now().After(loan.NextDueDate.Add(grace)) {
		return consts.ErrorGracePeriodNotElapsed
	}

	if err := s.transition(tx, &loan, models.StatusDefaulted); err != nil {
		return err
	}

	if err := s.scoresEngine.RecordDefault(ctx, tx, s.identity, loan.Borrower); err != nil {
		return err
	}
	if err := s.escrow.ClaimDefaulted(ctx, tx, s.identity, loan.ID, treasury); err != nil {
		return err
	}

	s.archiveLoan(ctx, tx, loan)
	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventLoanDefaulted,
		LoanID:    loan.ID,
		Borrower:  loan.Borrower,
		Asset:     loan.Asset,
		Amount:    loan.CollateralAmount,
	})
	logger.CtxWarn(ctx, "loan defaulted",
		slog.Uint64("loan_id", loan.ID),
		slog.String("marked_by", caller))
	return nil
}

func (s *LedgerService) LoanDetails(ctx context.Context, loanID uint64) (models.Loan, error) {
	loan, ok := s.repo.Get(loanID)
	if !ok {
		return models.Loan{}, consts.ErrorLoanNotFound
	}
	return loan, nil
}

// transition validates the move against the status table and persists it.
func (s *LedgerService) transition(tx *txn.Tx, loan *models.Loan, target models.LoanStatus) error {
	if !loan.Status.CanTransitionTo(target) {
		return consts.ErrorInvalidStatusTransition
	}
	loan.Status = target
	s.repo.Update(tx, *loan)
	return nil
}

func (s *LedgerService) archiveLoan(ctx context.Context, tx *txn.Tx, loan models.Loan) {
	if s.archive == nil {
		return
	}
	doc := models.ArchivedLoan{
		GUID:               uuid.New().String(),
		LoanID:             loan.ID,
		Borrower:           loan.Borrower,
		Asset:              loan.Asset,
		CollateralAmount:   loan.CollateralAmount,
		PrincipalAmount:    loan.PrincipalAmount,
		AnnualRateBps:      loan.AnnualRateBps,
		TermPeriods:        loan.TermPeriods,
		PaymentsMade:       loan.PaymentsMade,
		TotalPaidPrincipal: loan.TotalPaidPrincipal,
		TotalPaidInterest:  loan.TotalPaidInterest,
		FinalStatus:        string(loan.Status),
		StartTime:          loan.StartTime,
		ClosedAt:           s.now(),
	}
	tx.OnCommit(func() {
		if err := s.archive.ArchiveLoan(ctx, doc); err != nil {
			logger.CtxError(ctx, "failed to archive terminal loan", err, slog.Uint64("loan_id", doc.LoanID))
		}
	})
}

func (s *LedgerService) emit(ctx context.Context, tx *txn.Tx, event pkgmodels.LoanEventMessage) {
	if s.publisher == nil {
		return
	}
	event.EventID = uuid.New().String()
	event.Timestamp = s.now()
	tx.OnCommit(func() {
		s.publisher.PublishLoanEvent(ctx, event)
	})
}
