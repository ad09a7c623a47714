// Package payments accepts borrower payments, computes the interest and
// principal split with the late surcharge, settles funds to the treasury and
// reports the outcome to the loan ledger and the credit score engine.
package payments

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"credverify/internal/pkg/consts"
	"credverify/internal/pkg/logger"
	pkgmodels "credverify/internal/pkg/models"
	"credverify/internal/pkg/money"
	"credverify/internal/pkg/store/models"
	"credverify/internal/pkg/txn"
	"credverify/internal/service/interfaces"
)

type PaymentService struct {
	identity     string
	paymentAsset string

	ledger       interfaces.LoanLedgerInterface
	scoresEngine interfaces.CreditScoreEngineInterface
	assets       interfaces.AssetTransferInterface
	publisher    interfaces.EventPublisherInterface

	mu       sync.RWMutex
	treasury string

	now func() time.Time
}

func NewPaymentService(identity, paymentAsset, treasury string, assets interfaces.AssetTransferInterface, publisher interfaces.EventPublisherInterface) *PaymentService {
	return &PaymentService{
		identity:     identity,
		paymentAsset: paymentAsset,
		treasury:     treasury,
		assets:       assets,
		publisher:    publisher,
		now:          time.Now,
	}
}

func (s *PaymentService) RegisterCollaborators(ledger interfaces.LoanLedgerInterface, scoresEngine interfaces.CreditScoreEngineInterface) {
	s.ledger = ledger
	s.scoresEngine = scoresEngine
}

func (s *PaymentService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *PaymentService) Identity() string {
	return s.identity
}

// PaymentAsset is the single asset accepted for payments; the ledger
// validates new loans against it.
func (s *PaymentService) PaymentAsset() string {
	return s.paymentAsset
}

func (s *PaymentService) SetTreasury(treasury string) error {
	if treasury == "" {
		return consts.ErrorInvalidIdentity
	}
	s.mu.Lock()
	s.treasury = treasury
	s.mu.Unlock()
	return nil
}

func (s *PaymentService) Treasury() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.treasury
}

// MakePayment settles one payment: it computes the interest due for the
// current period (surcharged when late), splits the submitted amount, pulls
// exactly the usable portion from the payer, forwards it to the treasury and
// notifies the ledger and the score engine.
func (s *PaymentService) MakePayment(ctx context.Context, tx *txn.Tx, payer string, loanID uint64, amount int64) (pkgmodels.PaymentReceipt, error) {
	treasury := s.Treasury()
	if treasury == "" {
		return pkgmodels.PaymentReceipt{}, consts.ErrorTreasuryNotConfigured
	}
	loan, err := s.ledger.LoanDetails(ctx, loanID)
	if err != nil {
		return pkgmodels.PaymentReceipt{}, err
	}
	if loan.Status != models.StatusActive {
		return pkgmodels.PaymentReceipt{}, consts.ErrorLoanNotActive
	}
	if amount <= 0 {
		return pkgmodels.PaymentReceipt{}, consts.ErrorInvalidAmount
	}

	now := s.now()
	interestDue := s.interestDue(&loan, now)
	if amount < interestDue {
		return pkgmodels.PaymentReceipt{}, consts.ErrorPaymentBelowInterestDue
	}

	interestComponent := money.Min(amount, interestDue)
	principalComponent := amount - interestComponent
	if cap := loan.RemainingPrincipal(); principalComponent > cap {
		// Excess beyond the outstanding principal is never pulled.
		principalComponent = cap
	}
	pulled := interestComponent + principalComponent
	onTime := !now.After(loan.NextDueDate)

	if err := s.assets.TransferFrom(ctx, tx, loan.Asset, payer, s.identity, s.identity, pulled); err != nil {
		return pkgmodels.PaymentReceipt{}, err
	}
	if err := s.assets.Transfer(ctx, tx, loan.Asset, s.identity, treasury, pulled); err != nil {
		return pkgmodels.PaymentReceipt{}, err
	}

	if err := s.ledger.ApplyPayment(ctx, tx, s.identity, loanID, principalComponent, interestComponent); err != nil {
		return pkgmodels.PaymentReceipt{}, err
	}
	if err := s.scoresEngine.RecordPayment(ctx, tx, s.identity, loan.Borrower, onTime); err != nil {
		return pkgmodels.PaymentReceipt{}, err
	}

	completed := loan.TotalPaidPrincipal+principalComponent >= loan.PrincipalAmount
	receipt := pkgmodels.PaymentReceipt{
		LoanID:        loanID,
		Payer:         payer,
		AmountPulled:  pulled,
		PrincipalPaid: principalComponent,
		InterestPaid:  interestComponent,
		OnTime:        onTime,
		LoanCompleted: completed,
	}

	if s.publisher != nil {
		event := pkgmodels.SettlementEventMessage{
			EventID:       uuid.New().String(),
			LoanID:        loanID,
			Borrower:      loan.Borrower,
			Payer:         payer,
			Asset:         loan.Asset,
			AmountPulled:  pulled,
			PrincipalPaid: principalComponent,
			InterestPaid:  interestComponent,
			OnTime:        onTime,
			Timestamp:     now,
		}
		tx.OnCommit(func() {
			s.publisher.PublishSettlementEvent(ctx, event)
		})
	}

	logger.CtxInfo(ctx, "payment settled",
		slog.Uint64("loan_id", loanID),
		slog.Int64("pulled", pulled),
		slog.Int64("principal", principalComponent),
		slog.Int64("interest", interestComponent),
		slog.Bool("on_time", onTime))
	return receipt, nil
}

// ExpectedPayment is a pure projection of the current period's dues. It
// returns zeros for a non-Active loan and splits the remaining principal
// evenly across the remaining periods.
func (s *PaymentService) ExpectedPayment(ctx context.Context, loanID uint64) (pkgmodels.ExpectedPayment, error) {
	loan, err := s.ledger.LoanDetails(ctx, loanID)
	if err != nil {
		return pkgmodels.ExpectedPayment{}, err
	}
	if loan.Status != models.StatusActive {
		return pkgmodels.ExpectedPayment{LoanID: loanID}, nil
	}

	now := s.now()
	interestDue := s.interestDue(&loan, now)
	principalDue := money.EvenSplit(loan.RemainingPrincipal(), loan.RemainingPeriods())

	return pkgmodels.ExpectedPayment{
		LoanID:       loanID,
		TotalDue:     interestDue + principalDue,
		PrincipalDue: principalDue,
		InterestDue:  interestDue,
		Late:         now.After(loan.NextDueDate),
	}, nil
}

// interestDue is the period interest on the remaining principal, surcharged
// by 10% when the due date has passed.
func (s *PaymentService) interestDue(loan *models.Loan, now time.Time) int64 {
	interest := money.PeriodInterest(loan.RemainingPrincipal(), loan.AnnualRateBps)
	if now.After(loan.NextDueDate) {
		interest = money.WithLateSurcharge(interest)
	}
	return interest
}
