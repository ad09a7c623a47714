// Package escrow custodies deposited collateral per loan and gates its
// release. Only the registered loan ledger may store records, authorize
// withdrawals, or claim defaulted collateral.
package escrow

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
	"credverify/internal/pkg/store/impl/collateral"
	"credverify/internal/pkg/store/models"
	"credverify/internal/pkg/txn"
	"credverify/internal/service/interfaces"
)

type EscrowService struct {
	identity string
	admin    string

	repo   *collateral.CollateralRepository
	assets interfaces.AssetTransferInterface

	ledger         interfaces.LoanLedgerInterface
	ledgerIdentity string

	assetMu         sync.RWMutex
	supportedAssets map[string]bool

	publisher interfaces.EventPublisherInterface
	now       func() time.Time
}

func NewEscrowService(identity, admin string, repo *collateral.CollateralRepository, assets interfaces.AssetTransferInterface, publisher interfaces.EventPublisherInterface) *EscrowService {
	return &EscrowService{
		identity:        identity,
		admin:           admin,
		repo:            repo,
		assets:          assets,
		supportedAssets: make(map[string]bool),
		publisher:       publisher,
		now:             time.Now,
	}
}

// RegisterLoanLedger wires the orchestrator: the only identity allowed to
// call StoreInfo, the authorization functions and ClaimDefaulted.
func (s *EscrowService) RegisterLoanLedger(identity string, ledger interfaces.LoanLedgerInterface) {
	s.ledgerIdentity = identity
	s.ledger = ledger
}

func (s *EscrowService) AddSupportedAsset(asset string) {
	s.assetMu.Lock()
	s.supportedAssets[asset] = true
	s.assetMu.Unlock()
}

func (s *EscrowService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *EscrowService) Identity() string {
	return s.identity
}

func (s *EscrowService) IsSupportedAsset(asset string) bool {
	s.assetMu.RLock()
	defer s.assetMu.RUnlock()
	return s.supportedAssets[asset]
}

// Deposit pulls collateral from the depositor into custody and notifies the
// loan ledger, which creates the loan and calls back into StoreInfo inside
// the same Tx. Returns the new loan id.
func (s *EscrowService) Deposit(ctx context.Context, tx *txn.Tx, asset string, amount int64, depositor string) (uint64, error) {
	if amount <= 0 {
		return 0, consts.ErrorInvalidAmount
	}
	if !s.IsSupportedAsset(asset) {
		return 0, consts.ErrorUnsupportedAsset
	}
	if s.ledger == nil {
		return 0, consts.ErrorOrchestratorNotConfigured
	}

	if err := s.assets.TransferFrom(ctx, tx, asset, depositor, s.identity, s.identity, amount); err != nil {
		return 0, err
	}

	loanID, err := s.ledger.CreateFromCollateral(ctx, tx, s.identity, depositor, asset, amount)
	if err != nil {
		return 0, err
	}

	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventCollateralDeposited,
		LoanID:    loanID,
		Borrower:  depositor,
		Asset:     asset,
		Amount:    amount,
	})
	return loanID, nil
}

// StoreInfo records custody of a loan's collateral. Callable only by the
// loan ledger; fails on duplicate loan ids.
func (s *EscrowService) StoreInfo(ctx context.Context, tx *txn.Tx, caller string, loanID uint64, owner, asset string, amount int64) error {
	if err := s.requireLedger(caller); err != nil {
		return err
	}
	if amount <= 0 {
		return consts.ErrorInvalidAmount
	}
	if owner == "" || asset == "" {
		return consts.ErrorInvalidIdentity
	}

	record := models.CollateralRecord{
		LoanID:       loanID,
		Asset:        asset,
		LockedAmount: amount,
		Owner:        owner,
	}
	if !s.repo.Insert(tx, record) {
		return consts.ErrorDuplicateRecord
	}
	return nil
}

// AuthorizeFullWithdrawal releases the entire locked amount to the owner on
// loan completion. Authorization can be set at most once per record.
func (s *EscrowService) AuthorizeFullWithdrawal(ctx context.Context, tx *txn.Tx, caller string, loanID uint64, owner, asset string) error {
	if err := s.requireLedger(caller); err != nil {
		return err
	}
	record, ok := s.repo.Get(loanID)
	if !ok {
		return consts.ErrorCollateralRecordNotFound
	}
	if record.Owner != owner || record.Asset != asset {
		return consts.ErrorCollateralMismatch
	}
	if record.WithdrawalAuthorized {
		return consts.ErrorAlreadyAuthorized
	}

	record.WithdrawalAuthorized = true
	record.AuthorizedAmount = record.LockedAmount
	s.repo.Update(tx, record)

	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventWithdrawalAuthorized,
		LoanID:    loanID,
		Borrower:  record.Owner,
		Asset:     record.Asset,
		Amount:    record.AuthorizedAmount,
	})
	return nil
}

// AuthorizeWithdrawalWithFee releases locked minus fee on early termination.
// The fee portion stays in custody and becomes sweepable residual.
func (s *EscrowService) AuthorizeWithdrawalWithFee(ctx context.Context, tx *txn.Tx, caller string, loanID uint64, feeBps int64) error {
	if err := s.requireLedger(caller); err != nil {
		return err
	}
	if feeBps < 0 || feeBps > money.BpsDenominator {
		return consts.ErrorInvalidFee
	}
	record, ok := s.repo.Get(loanID)
	if !ok {
		return consts.ErrorCollateralRecordNotFound
	}
	if record.WithdrawalAuthorized {
		return consts.ErrorAlreadyAuthorized
	}

	fee := money.Fee(record.LockedAmount, feeBps)
	record.WithdrawalAuthorized = true
	record.AuthorizedAmount = record.LockedAmount - fee
	s.repo.Update(tx, record)
	s.repo.ReleaseReservation(tx, record.Asset, fee)

	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventWithdrawalAuthorized,
		LoanID:    loanID,
		Borrower:  record.Owner,
		Asset:     record.Asset,
		Amount:    record.AuthorizedAmount,
	})
	return nil
}

// Withdraw pays out the authorized amount to the record owner. The record is
// retired before any funds move so it can never be drained twice.
func (s *EscrowService) Withdraw(ctx context.Context, tx *txn.Tx, caller string, loanID uint64) (int64, error) {
	record, ok := s.repo.Get(loanID)
	if !ok {
		return 0, consts.ErrorCollateralRecordNotFound
	}
	if caller != record.Owner {
		return 0, consts.ErrorNotRecordOwner
	}
	if !record.WithdrawalAuthorized {
		return 0, consts.ErrorWithdrawalNotAuthorized
	}

	// Retire first, transfer second. A full-fee authorization leaves nothing
	// to pay out; the record is still retired.
	s.repo.Retire(tx, loanID, record.Asset, record.AuthorizedAmount)
	if record.AuthorizedAmount > 0 {
		if err := s.assets.Transfer(ctx, tx, record.Asset, s.identity, record.Owner, record.AuthorizedAmount); err != nil {
			return 0, err
		}
	}

	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventCollateralWithdrawn,
		LoanID:    loanID,
		Borrower:  record.Owner,
		Asset:     record.Asset,
		Amount:    record.AuthorizedAmount,
	})
	return record.AuthorizedAmount, nil
}

// ClaimDefaulted forfeits the full locked amount to the recipient. Callable
// only by the loan ledger, and only while no withdrawal was ever authorized.
func (s *EscrowService) ClaimDefaulted(ctx context.Context, tx *txn.Tx, caller string, loanID uint64, recipient string) error {
	if err := s.requireLedger(caller); err != nil {
		return err
	}
	record, ok := s.repo.Get(loanID)
	if !ok {
		return consts.ErrorCollateralRecordNotFound
	}
	if record.WithdrawalAuthorized {
		return consts.ErrorAlreadyAuthorized
	}

	s.repo.Retire(tx, loanID, record.Asset, record.LockedAmount)
	if err := s.assets.Transfer(ctx, tx, record.Asset, s.identity, recipient, record.LockedAmount); err != nil {
		return err
	}

	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventCollateralClaimed,
		LoanID:    loanID,
		Borrower:  record.Owner,
		Asset:     record.Asset,
		Amount:    record.LockedAmount,
	})
	return nil
}

// SweepFees moves the escrow's residual balance of asset (accumulated fee
// remainders) to the recipient. Sweeping a zero balance is a documented
// no-op, the only silent one in the system.
func (s *EscrowService) SweepFees(ctx context.Context, tx *txn.Tx, caller string, asset, recipient string) (int64, error) {
	if caller != s.admin {
		return 0, consts.ErrorNotAdmin
	}
	residual := s.assets.BalanceOf(ctx, asset, s.identity) - s.repo.ReservedTotal(asset)
	if residual <= 0 {
		logger.CtxDebug(ctx, "fee sweep skipped, no residual balance", slog.String("asset", asset))
		return 0, nil
	}
	if err := s.assets.Transfer(ctx, tx, asset, s.identity, recipient, residual); err != nil {
		return 0, err
	}

	s.emit(ctx, tx, pkgmodels.LoanEventMessage{
		EventType: pkgmodels.EventFeesSwept,
		Asset:     asset,
		Amount:    residual,
	})
	return residual, nil
}

func (s *EscrowService) LockedCollateral(ctx context.Context, loanID uint64) (int64, error) {
	record, ok := s.repo.Get(loanID)
	if !ok {
		return 0, consts.ErrorCollateralRecordNotFound
	}
	return record.LockedAmount, nil
}

func (s *EscrowService) RecordInfo(ctx context.Context, loanID uint64) (models.CollateralRecord, error) {
	record, ok := s.repo.Get(loanID)
	if !ok {
		return models.CollateralRecord{}, consts.ErrorCollateralRecordNotFound
	}
	return record, nil
}

func (s *EscrowService) requireLedger(caller string) error {
	if s.ledgerIdentity == "" || caller != s.ledgerIdentity {
		return consts.ErrorNotLoanLedger
	}
	return nil
}

func (s *EscrowService) emit(ctx context.Context, tx *txn.Tx, event pkgmodels.LoanEventMessage) {
	if s.publisher == nil {
		return
	}
	event.EventID = uuid.New().String()
	event.Timestamp = s.now()
	tx.OnCommit(func() {
		s.publisher.PublishLoanEvent(ctx, event)
	})
}
