package interfaces

import (
	"context"

	"credverify/internal/pkg/models"
	storemodels "credverify/internal/pkg/store/models"
)

// PlatformInterface is the transactional façade the HTTP layer talks to.
type PlatformInterface interface {
	Deposit(ctx context.Context, depositor, asset string, amount int64) (uint64, error)
	MakePayment(ctx context.Context, payer string, loanID uint64, amount int64) (models.PaymentReceipt, error)
	Withdraw(ctx context.Context, owner string, loanID uint64) (int64, error)
	RequestEarlyTermination(ctx context.Context, borrower string, loanID uint64) error
	MarkDefaulted(ctx context.Context, caller string, loanID uint64) error
	SweepFees(ctx context.Context, caller, asset, recipient string) (int64, error)
	SetTreasury(ctx context.Context, caller, treasury string) error
	SetEarlyTerminationFee(ctx context.Context, caller string, feeBps int64) error
	AddSupportedAsset(ctx context.Context, caller, asset string) error
	MintAsset(ctx context.Context, caller, asset, to string, amount int64) error
	ApproveSpender(ctx context.Context, owner, asset, spender string, amount int64) error
	AssetBalance(ctx context.Context, asset, holder string) int64
	LoanDetails(ctx context.Context, loanID uint64) (storemodels.Loan, error)
	ExpectedPayment(ctx context.Context, loanID uint64) (models.ExpectedPayment, error)
	ScoreData(ctx context.Context, borrower string) storemodels.ScoreRecord
	LockedCollateral(ctx context.Context, loanID uint64) (int64, error)
	CollateralRecord(ctx context.Context, loanID uint64) (storemodels.CollateralRecord, error)
}
