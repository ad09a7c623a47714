package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"credverify/internal/pkg/assets"
	"credverify/internal/pkg/consts"
	pkgmodels "credverify/internal/pkg/models"
	"credverify/internal/pkg/store/impl/collateral"
	"credverify/internal/pkg/store/impl/loans"
	"credverify/internal/pkg/store/impl/scores"
	"credverify/internal/pkg/store/models"
	"credverify/internal/pkg/txn"
	"credverify/internal/service/escrow"
	"credverify/internal/service/scoring"
)

const (
	escrowID    = "escrow"
	ledgerID    = "ledger"
	processorID = "processor"
	engineID    = "engine"
	adminID     = "admin"
	treasuryID  = "treasury"
	testAsset   = "USDX"
)

var testStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type stubPayments struct {
	asset string
}

func (p *stubPayments) MakePayment(ctx context.Context, tx *txn.Tx, payer string, loanID uint64, amount int64) (pkgmodels.PaymentReceipt, error) {
	return pkgmodels.PaymentReceipt{}, nil
}

func (p *stubPayments) ExpectedPayment(ctx context.Context, loanID uint64) (pkgmodels.ExpectedPayment, error) {
	return pkgmodels.ExpectedPayment{}, nil
}

func (p *stubPayments) PaymentAsset() string {
	return p.asset
}

type stubIssuer struct {
	issued int
	owner  string
	score  int64
}

func (i *stubIssuer) Issue(ctx context.Context, owner string, loanID uint64, finalScore int64, metadataRef string) (string, error) {
	i.issued++
	i.owner = owner
	i.score = finalScore
	return "record-1", nil
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) ArchiveLoan(ctx context.Context, doc models.ArchivedLoan) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

type fixture struct {
	ledger      *LedgerService
	escrow      *escrow.EscrowService
	scoring     *scoring.ScoreService
	assetLedger *assets.Ledger
	issuer      *stubIssuer
	archive     *MockArchive
	now         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		assetLedger: assets.NewLedger(),
		issuer:      &stubIssuer{},
		archive:     &MockArchive{},
		now:         testStart,
	}
	clock := func() time.Time { return f.now }

	f.escrow = escrow.NewEscrowService(escrowID, adminID, collateral.NewCollateralRepository(), f.assetLedger, nil)
	f.escrow.AddSupportedAsset(testAsset)
	f.escrow.SetClock(clock)

	terms := Terms{
		AnnualRateBps:          800,
		TermPeriods:            12,
		PeriodLength:           30 * 24 * time.Hour,
		GracePeriod:            7 * 24 * time.Hour,
		EarlyTerminationFeeBps: 200,
	}
	f.ledger = NewLedgerService(ledgerID, loans.NewLoanRepository(), terms, treasuryID, nil)
	f.ledger.SetClock(clock)

	f.scoring = scoring.NewScoreService(engineID, scores.NewScoreRepository(), nil)
	f.scoring.RegisterCollaborators(ledgerID, processorID)
	f.scoring.SetClock(clock)

	f.escrow.RegisterLoanLedger(ledgerID, f.ledger)
	f.ledger.RegisterCollaborators(
		escrowID, f.escrow,
		processorID, &stubPayments{asset: testAsset},
		f.scoring, f.issuer, f.archive)
	return f
}

func (f *fixture) openLoan(t *testing.T, borrower string, amount int64) uint64 {
	t.Helper()
	f.assetLedger.Mint(testAsset, borrower, amount)
	f.assetLedger.Approve(context.Background(), testAsset, borrower, escrowID, amount)

	tx := txn.Begin()
	loanID, err := f.escrow.Deposit(context.Background(), tx, testAsset, amount, borrower)
	require.NoError(t, err)
	tx.Commit()
	return loanID
}

func TestCreateFromCollateralRejectsWrongCaller(t *testing.T) {
	f := newFixture(t)
	tx := txn.Begin()

	_, err := f.ledger.CreateFromCollateral(context.Background(), tx, "intruder", "alice", testAsset, 1200)
	assert.ErrorIs(t, err, consts.ErrorNotCollateralEscrow)
}

func TestCreateFromCollateralRejectsWrongAsset(t *testing.T) {
	f := newFixture(t)
	tx := txn.Begin()

	_, err := f.ledger.CreateFromCollateral(context.Background(), tx, escrowID, "alice", "DOGE", 1200)
	assert.ErrorIs(t, err, consts.ErrorUnsupportedAsset)
}

func TestNewLoanIsActiveWithScheduledDueDate(t *testing.T) {
	f := newFixture(t)
	loanID := f.openLoan(t, "alice", 1200)

	loan, err := f.ledger.LoanDetails(context.Background(), loanID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, loan.Status)
	assert.Equal(t, int64(1200), loan.PrincipalAmount)
	assert.Equal(t, int64(800), loan.AnnualRateBps)
	assert.Equal(t, testStart.Add(30*24*time.Hour), loan.NextDueDate)
}

func TestApplyPaymentRejectsWrongCaller(t *testing.T) {
	f := newFixture(t)
	loanID := f.openLoan(t, "alice", 1200)
	tx := txn.Begin()

	err := f.ledger.ApplyPayment(context.Background(), tx, "intruder", loanID, 100, 8)
	assert.ErrorIs(t, err, consts.ErrorNotPaymentProcessor)
}

func TestApplyPaymentRejectsPrincipalOverrun(t *testing.T) {
	f := newFixture(t)
	loanID := f.openLoan(t, "alice", 1200)
	tx := txn.Begin()

	err := f.ledger.ApplyPayment(context.Background(), tx, processorID, loanID, 1201, 8)
	assert.ErrorIs(t, err, consts.ErrorPrincipalExceeded)
}

func TestApplyPaymentAdvancesSchedule(t *testing.T) {
	f := newFixture(t)
	loanID := f.openLoan(t, "alice", 1200)

	tx := txn.Begin()
	require.NoError(t, f.ledger.ApplyPayment(context.Background(), tx, processorID, loanID, 100, 8))
	tx.Commit()

	loan, err := f.ledger.LoanDetails(context.Background(), loanID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, loan.Status)
	assert.Equal(t, int64(1), loan.PaymentsMade)
	assert.Equal(t, int64(100), loan.TotalPaidPrincipal)
	assert.Equal(t, int64(8), loan.TotalPaidInterest)
	assert.Equal(t, testStart.Add(2*30*24*time.Hour), loan.NextDueDate)
}

func TestFullRepaymentRunsCompletionSequence(t *testing.T) {
	f := newFixture(t)
	f.archive.On("ArchiveLoan", mock.Anything, mock.MatchedBy(func(doc models.ArchivedLoan) bool {
		return doc.FinalStatus == string(models.StatusPaidInFull)
	})).Return(nil)
	loanID := f.openLoan(t, "alice", 1200)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		tx := txn.Begin()
		require.NoError(t, f.ledger.ApplyPayment(ctx, tx, processorID, loanID, 100, 8))
		tx.Commit()
	}

	loan, err := f.ledger.LoanDetails(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaidInFull, loan.Status)

	// Full withdrawal is authorized for the borrower.
	record, err := f.escrow.RecordInfo(ctx, loanID)
	require.NoError(t, err)
	assert.True(t, record.WithdrawalAuthorized)
	assert.Equal(t, int64(1200), record.AuthorizedAmount)

	// Base 350 plus the completion bonus of 16.
	assert.Equal(t, int64(366), f.scoring.ScoreData(ctx, "alice").Score)

	assert.Equal(t, 1, f.issuer.issued)
	assert.Equal(t, "alice", f.issuer.owner)
	assert.Equal(t, int64(366), f.issuer.score)
	f.archive.AssertNumberOfCalls(t, "ArchiveLoan", 1)
}

func TestApplyPaymentRejectsTerminalLoan(t *testing.T) {
	f := newFixture(t)
	f.archive.On("ArchiveLoan", mock.Anything, mock.Anything).Return(nil)
	loanID := f.openLoan(t, "alice", 1200)
	ctx := context.Background()

	tx := txn.Begin()
	require.NoError(t, f.ledger.RequestEarlyTermination(ctx, tx, "alice", loanID))
	tx.Commit()

	tx = txn.Begin()
	err := f.ledger.ApplyPayment(ctx, tx, processorID, loanID, 100, 8)
	assert.ErrorIs(t, err, consts.ErrorLoanNotActive)
}

func TestEarlyTerminationBorrowerOnly(t *testing.T) {
	f := newFixture(t)
	loanID := f.openLoan(t, "alice", 1200)
	tx := txn.Begin()

	err := f.ledger.RequestEarlyTermination(context.Background(), tx, "bob", loanID)
	assert.ErrorIs(t, err, consts.ErrorNotBorrower)
}

func TestEarlyTerminationAuthorizesNetOfFee(t *testing.T) {
	f := newFixture(t)
	f.archive.On("ArchiveLoan", mock.Anything, mock.MatchedBy(func(doc models.ArchivedLoan) bool {
		return doc.FinalStatus == string(models.StatusEarlyTerminated)
	})).Return(nil)
	loanID := f.openLoan(t, "alice", 1200)
	ctx := context.Background()

	tx := txn.Begin()
	require.NoError(t, f.ledger.RequestEarlyTermination(ctx, tx, "alice", loanID))
	tx.Commit()

	loan, err := f.ledger.LoanDetails(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEarlyTerminated, loan.Status)

	// 200 bps of 1200 = 24 kept as fee.
	record, err := f.escrow.RecordInfo(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, int64(1176), record.AuthorizedAmount)

	// 350 - 10 termination penalty.
	assert.Equal(t, int64(340), f.scoring.ScoreData(ctx, "alice").Score)
	f.archive.AssertNumberOfCalls(t, "ArchiveLoan", 1)
}

func TestMarkDefaultedRespectsGracePeriod(t *testing.T) {
	f := newFixture(t)
	loanID := f.openLoan(t, "alice", 1200)
	ctx := context.Background()

	// Exactly at the boundary: default requires strictly after due date + grace.
	f.now = testStart.Add(37 * 24 * time.Hour)
	tx := txn.Begin()
	err := f.ledger.MarkDefaulted(ctx, tx, "anyone", loanID)
	assert.ErrorIs(t, err, consts.ErrorGracePeriodNotElapsed)
}

func TestMarkDefaultedForfeitsCollateral(t *testing.T) {
	f := newFixture(t)
	f.archive.On("ArchiveLoan", mock.Anything, mock.MatchedBy(func(doc models.ArchivedLoan) bool {
		return doc.FinalStatus == string(models.StatusDefaulted)
	})).Return(nil)
	loanID := f.openLoan(t, "alice", 1200)
	ctx := context.Background()

	f.now = testStart.Add(37*24*time.Hour + time.Second)
	tx := txn.Begin()
	require.NoError(t, f.ledger.MarkDefaulted(ctx, tx, "anyone", loanID))
	tx.Commit()

	loan, err := f.ledger.LoanDetails(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDefaulted, loan.Status)

	assert.Equal(t, int64(1200), f.assetLedger.BalanceOf(ctx, testAsset, treasuryID))

	// 350 - 75 clamps at the floor.
	assert.Equal(t, models.ScoreFloor, f.scoring.ScoreData(ctx, "alice").Score)
	f.archive.AssertNumberOfCalls(t, "ArchiveLoan", 1)
}

func TestMarkDefaultedRejectsTerminalLoan(t *testing.T) {
	f := newFixture(t)
	f.archive.On("ArchiveLoan", mock.Anything, mock.Anything).Return(nil)
	loanID := f.openLoan(t, "alice", 1200)
	ctx := context.Background()

	f.now = testStart.Add(37*24*time.Hour + time.Second)
	tx := txn.Begin()
	require.NoError(t, f.ledger.MarkDefaulted(ctx, tx, "anyone", loanID))
	tx.Commit()

	tx = txn.Begin()
	err := f.ledger.MarkDefaulted(ctx, tx, "anyone", loanID)
	assert.ErrorIs(t, err, consts.ErrorLoanNotActive)
}

func TestSetEarlyTerminationFeeValidatesBps(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.ledger.SetEarlyTerminationFee(-1), consts.ErrorInvalidFee)
	assert.ErrorIs(t, f.ledger.SetEarlyTerminationFee(10001), consts.ErrorInvalidFee)
	require.NoError(t, f.ledger.SetEarlyTerminationFee(500))
	assert.Equal(t, int64(500), f.ledger.EarlyTerminationFeeBps())
}

func TestLoanDetailsUnknownLoan(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.LoanDetails(context.Background(), 999)
	assert.ErrorIs(t, err, consts.ErrorLoanNotFound)
}
