package interfaces

import (
	"context"
	"time"

	"credverify/internal/pkg/models"
	storemodels "credverify/internal/pkg/store/models"
	"credverify/internal/pkg/txn"
)

// Every mutating cross-component call carries the caller's identity and the
// operation's Tx. Callees verify the caller against the identity registered
// at wiring time (an explicit allow-list per callee) and register their
// mutations on the Tx so the whole operation aborts as one unit.

type CollateralEscrowInterface interface {
	Deposit(ctx context.Context, tx *txn.Tx, asset string, amount int64, depositor string) (uint64, error)
	StoreInfo(ctx context.Context, tx *txn.Tx, caller string, loanID uint64, owner, asset string, amount int64) error
	AuthorizeFullWithdrawal(ctx context.Context, tx *txn.Tx, caller string, loanID uint64, owner, asset string) error
	AuthorizeWithdrawalWithFee(ctx context.Context, tx *txn.Tx, caller string, loanID uint64, feeBps int64) error
	Withdraw(ctx context.Context, tx *txn.Tx, caller string, loanID uint64) (int64, error)
	ClaimDefaulted(ctx context.Context, tx *txn.Tx, caller string, loanID uint64, recipient string) error
	SweepFees(ctx context.Context, tx *txn.Tx, caller string, asset, recipient string) (int64, error)
	LockedCollateral(ctx context.Context, loanID uint64) (int64, error)
	RecordInfo(ctx context.Context, loanID uint64) (storemodels.CollateralRecord, error)
	IsSupportedAsset(asset string) bool
}

type LoanLedgerInterface interface {
	CreateFromCollateral(ctx context.Context, tx *txn.Tx, caller string, borrower, asset string, amount int64) (uint64, error)
	ApplyPayment(ctx context.Context, tx *txn.Tx, caller string, loanID uint64, principalPaid, interestPaid int64) error
	RequestEarlyTermination(ctx context.Context, tx *txn.Tx, caller string, loanID uint64) error
	MarkDefaulted(ctx context.Context, tx *txn.Tx, caller string, loanID uint64) error
	LoanDetails(ctx context.Context, loanID uint64) (storemodels.Loan, error)
}

type PaymentProcessorInterface interface {
	MakePayment(ctx context.Context, tx *txn.Tx, payer string, loanID uint64, amount int64) (models.PaymentReceipt, error)
	ExpectedPayment(ctx context.Context, loanID uint64) (models.ExpectedPayment, error)
	PaymentAsset() string
}

type CreditScoreEngineInterface interface {
	RecordPayment(ctx context.Context, tx *txn.Tx, caller string, borrower string, onTime bool) error
	RecordCompletion(ctx context.Context, tx *txn.Tx, caller string, borrower string, loan storemodels.Loan) error
	RecordDefault(ctx context.Context, tx *txn.Tx, caller string, borrower string) error
	RecordTermination(ctx context.Context, tx *txn.Tx, caller string, borrower string) error
	ScoreData(ctx context.Context, borrower string) storemodels.ScoreRecord
}

// AssetTransferInterface is the fungible-asset collaborator consumed by the
// escrow and the payment processor. Standard semantics are assumed: no
// rebasing, no transfer fees, failures abort the whole operation.
type AssetTransferInterface interface {
	Transfer(ctx context.Context, tx *txn.Tx, asset, from, to string, amount int64) error
	TransferFrom(ctx context.Context, tx *txn.Tx, asset, owner, spender, to string, amount int64) error
	BalanceOf(ctx context.Context, asset, holder string) int64
	Allowance(ctx context.Context, asset, owner, spender string) int64
}

// AssetSupplyInterface is the bring-up surface of the asset collaborator:
// credit new units to a holder and grant pull allowances to the custodial
// spenders. Both act immediately, outside any operation Tx.
type AssetSupplyInterface interface {
	Mint(asset, to string, amount int64)
	Approve(ctx context.Context, asset, owner, spender string, amount int64)
	BalanceOf(ctx context.Context, asset, holder string) int64
}

// AchievementIssuerInterface is the external collaborator that mints the
// non-transferable achievement record, invoked once per completed loan.
type AchievementIssuerInterface interface {
	Issue(ctx context.Context, owner string, loanID uint64, finalScore int64, metadataRef string) (string, error)
}

// EventPublisherInterface fans lifecycle and settlement events out to the
// configured brokers. Publication happens on commit only.
type EventPublisherInterface interface {
	PublishLoanEvent(ctx context.Context, event models.LoanEventMessage)
	PublishSettlementEvent(ctx context.Context, event models.SettlementEventMessage)
}

// LoanArchiveInterface persists the historical export of terminal loans.
type LoanArchiveInterface interface {
	ArchiveLoan(ctx context.Context, doc storemodels.ArchivedLoan) error
}

// PaymentGuardInterface rejects duplicate in-flight operations per borrower.
type PaymentGuardInterface interface {
	CheckEntryExists(ctx context.Context, borrower string) (bool, error)
	CreateEntry(ctx context.Context, borrower string, ttl time.Duration) error
	DeleteEntry(ctx context.Context, borrower string) error
}
