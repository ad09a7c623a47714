// Package platform is the unit-of-work boundary in front of the four
// components. Every mutating entrypoint runs under the system lock inside a
// single transaction: either the whole cascade of component calls lands, or
// every store is rolled back to where it started.
package platform

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"credverify/internal/pkg/consts"
	"credverify/internal/pkg/logger"
	"credverify/internal/pkg/models"
	storemodels "credverify/internal/pkg/store/models"
	"credverify/internal/pkg/txn"
	"credverify/internal/service/escrow"
	"credverify/internal/service/interfaces"
	"credverify/internal/service/ledger"
	"credverify/internal/service/payments"
	"credverify/internal/service/scoring"
)

type Platform struct {
	mu sync.Mutex

	escrow   *escrow.EscrowService
	ledger   *ledger.LedgerService
	payments *payments.PaymentService
	scores   *scoring.ScoreService

	supply   interfaces.AssetSupplyInterface
	guard    interfaces.PaymentGuardInterface
	guardTTL time.Duration

	admin string
}

func NewPlatform(
	escrowSvc *escrow.EscrowService,
	ledgerSvc *ledger.LedgerService,
	paymentsSvc *payments.PaymentService,
	scoresSvc *scoring.ScoreService,
	supply interfaces.AssetSupplyInterface,
	guard interfaces.PaymentGuardInterface,
	guardTTL time.Duration,
	admin string,
) *Platform {
	return &Platform{
		escrow:   escrowSvc,
		ledger:   ledgerSvc,
		payments: paymentsSvc,
		scores:   scoresSvc,
		supply:   supply,
		guard:    guard,
		guardTTL: guardTTL,
		admin:    admin,
	}
}

// run executes fn inside a fresh transaction under the system lock.
func (p *Platform) run(ctx context.Context, fn func(tx *txn.Tx) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx := txn.Begin()
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	tx.Commit()
	return nil
}

// Deposit locks collateral and opens the matching loan.
func (p *Platform) Deposit(ctx context.Context, depositor, asset string, amount int64) (uint64, error) {
	var loanID uint64
	err := p.run(ctx, func(tx *txn.Tx) error {
		id, err := p.escrow.Deposit(ctx, tx, asset, amount, depositor)
		if err != nil {
			return err
		}
		loanID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return loanID, nil
}

// MakePayment settles one payment against a loan. A per-payer guard entry
// rejects a second payment while one is still in flight.
func (p *Platform) MakePayment(ctx context.Context, payer string, loanID uint64, amount int64) (models.PaymentReceipt, error) {
	if p.guard != nil {
		exists, err := p.guard.CheckEntryExists(ctx, payer)
		if err != nil {
			return models.PaymentReceipt{}, err
		}
		if exists {
			return models.PaymentReceipt{}, consts.ErrorTransactionInProgress
		}
		if err := p.guard.CreateEntry(ctx, payer, p.guardTTL); err != nil {
			return models.PaymentReceipt{}, err
		}
		defer func() {
			if err := p.guard.DeleteEntry(ctx, payer); err != nil {
				logger.CtxWarn(ctx, "Failed to clear payment guard entry, waiting for TTL",
					slog.String("payer", payer))
			}
		}()
	}

	var receipt models.PaymentReceipt
	err := p.run(ctx, func(tx *txn.Tx) error {
		r, err := p.payments.MakePayment(ctx, tx, payer, loanID, amount)
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		return models.PaymentReceipt{}, err
	}
	return receipt, nil
}

// Withdraw releases authorized collateral back to its owner.
func (p *Platform) Withdraw(ctx context.Context, owner string, loanID uint64) (int64, error) {
	var released int64
	err := p.run(ctx, func(tx *txn.Tx) error {
		amount, err := p.escrow.Withdraw(ctx, tx, owner, loanID)
		if err != nil {
			return err
		}
		released = amount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

// RequestEarlyTermination closes an active loan at the borrower's request.
func (p *Platform) RequestEarlyTermination(ctx context.Context, borrower string, loanID uint64) error {
	return p.run(ctx, func(tx *txn.Tx) error {
		return p.ledger.RequestEarlyTermination(ctx, tx, borrower, loanID)
	})
}

// MarkDefaulted flags a loan whose grace period has elapsed. Any caller may
// trigger it; the ledger verifies the timing.
func (p *Platform) MarkDefaulted(ctx context.Context, caller string, loanID uint64) error {
	return p.run(ctx, func(tx *txn.Tx) error {
		return p.ledger.MarkDefaulted(ctx, tx, caller, loanID)
	})
}

// SweepFees moves accumulated fee residue to the recipient. Admin only.
func (p *Platform) SweepFees(ctx context.Context, caller, asset, recipient string) (int64, error) {
	var swept int64
	err := p.run(ctx, func(tx *txn.Tx) error {
		amount, err := p.escrow.SweepFees(ctx, tx, caller, asset, recipient)
		if err != nil {
			return err
		}
		swept = amount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return swept, nil
}

// SetTreasury points payment settlement at a new treasury identity. Admin only.
func (p *Platform) SetTreasury(ctx context.Context, caller, treasury string) error {
	if caller != p.admin {
		return consts.ErrorNotAdmin
	}
	return p.payments.SetTreasury(treasury)
}

// SetEarlyTerminationFee updates the fee charged on early loan closure. Admin only.
func (p *Platform) SetEarlyTerminationFee(ctx context.Context, caller string, feeBps int64) error {
	if caller != p.admin {
		return consts.ErrorNotAdmin
	}
	return p.ledger.SetEarlyTerminationFee(feeBps)
}

// AddSupportedAsset whitelists a collateral asset. Admin only.
func (p *Platform) AddSupportedAsset(ctx context.Context, caller, asset string) error {
	if caller != p.admin {
		return consts.ErrorNotAdmin
	}
	p.escrow.AddSupportedAsset(asset)
	return nil
}

// MintAsset credits new units to a holder. Admin only; this is how borrower
// accounts are funded on a fresh deployment.
func (p *Platform) MintAsset(ctx context.Context, caller, asset, to string, amount int64) error {
	if caller != p.admin {
		return consts.ErrorNotAdmin
	}
	if asset == "" || to == "" {
		return consts.ErrorInvalidIdentity
	}
	if amount <= 0 {
		return consts.ErrorInvalidAmount
	}
	p.supply.Mint(asset, to, amount)
	logger.CtxInfo(ctx, "asset minted",
		slog.String("asset", asset),
		slog.String("to", to),
		slog.Int64("amount", amount))
	return nil
}

// ApproveSpender sets the caller's pull allowance for a spender, typically
// the collateral escrow before a deposit or the payment processor before a
// payment. Zero revokes.
func (p *Platform) ApproveSpender(ctx context.Context, owner, asset, spender string, amount int64) error {
	if owner == "" || asset == "" || spender == "" {
		return consts.ErrorInvalidIdentity
	}
	if amount < 0 {
		return consts.ErrorInvalidAmount
	}
	p.supply.Approve(ctx, asset, owner, spender, amount)
	return nil
}

// Read-side views. These never mutate, so they bypass the transaction.

func (p *Platform) AssetBalance(ctx context.Context, asset, holder string) int64 {
	return p.supply.BalanceOf(ctx, asset, holder)
}

func (p *Platform) LoanDetails(ctx context.Context, loanID uint64) (storemodels.Loan, error) {
	return p.ledger.LoanDetails(ctx, loanID)
}

func (p *Platform) ExpectedPayment(ctx context.Context, loanID uint64) (models.ExpectedPayment, error) {
	return p.payments.ExpectedPayment(ctx, loanID)
}

func (p *Platform) ScoreData(ctx context.Context, borrower string) storemodels.ScoreRecord {
	return p.scores.ScoreData(ctx, borrower)
}

func (p *Platform) LockedCollateral(ctx context.Context, loanID uint64) (int64, error) {
	return p.escrow.LockedCollateral(ctx, loanID)
}

func (p *Platform) CollateralRecord(ctx context.Context, loanID uint64) (storemodels.CollateralRecord, error) {
	return p.escrow.RecordInfo(ctx, loanID)
}
