package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"credverify/internal/pkg/consts"
	"credverify/internal/pkg/txn"
)

func TestTransferMovesBalance(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	ledger.Mint("USDX", "alice", 1000)

	tx := txn.Begin()
	err := ledger.Transfer(ctx, tx, "USDX", "alice", "bob", 400)
	tx.Commit()

	assert.NoError(t, err)
	assert.Equal(t, int64(600), ledger.BalanceOf(ctx, "USDX", "alice"))
	assert.Equal(t, int64(400), ledger.BalanceOf(ctx, "USDX", "bob"))
}

func TestTransferInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	ledger.Mint("USDX", "alice", 100)

	tx := txn.Begin()
	err := ledger.Transfer(ctx, tx, "USDX", "alice", "bob", 400)
	tx.Rollback()

	assert.ErrorIs(t, err, consts.ErrorInsufficientBalance)
	assert.Equal(t, int64(100), ledger.BalanceOf(ctx, "USDX", "alice"))
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	ledger.Mint("USDX", "alice", 1000)
	ledger.Mint("USDX", "bob", 1000)

	tx := txn.Begin()
	assert.ErrorIs(t, ledger.Transfer(ctx, tx, "USDX", "alice", "bob", -400), consts.ErrorInvalidAmount)
	assert.ErrorIs(t, ledger.Transfer(ctx, tx, "USDX", "alice", "bob", 0), consts.ErrorInvalidAmount)
	tx.Rollback()

	assert.Equal(t, int64(1000), ledger.BalanceOf(ctx, "USDX", "alice"))
	assert.Equal(t, int64(1000), ledger.BalanceOf(ctx, "USDX", "bob"))
}

func TestTransferFromRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	ledger.Mint("USDX", "alice", 1000)
	ledger.Mint("USDX", "escrow", 500)
	ledger.Approve(ctx, "USDX", "alice", "escrow", 500)

	tx := txn.Begin()
	assert.ErrorIs(t, ledger.TransferFrom(ctx, tx, "USDX", "alice", "escrow", "escrow", -300), consts.ErrorInvalidAmount)
	assert.ErrorIs(t, ledger.TransferFrom(ctx, tx, "USDX", "alice", "escrow", "escrow", 0), consts.ErrorInvalidAmount)
	tx.Rollback()

	assert.Equal(t, int64(1000), ledger.BalanceOf(ctx, "USDX", "alice"))
	assert.Equal(t, int64(500), ledger.BalanceOf(ctx, "USDX", "escrow"))
	assert.Equal(t, int64(500), ledger.Allowance(ctx, "USDX", "alice", "escrow"))
}

func TestTransferFromConsumesAllowance(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	ledger.Mint("USDX", "alice", 1000)
	ledger.Approve(ctx, "USDX", "alice", "escrow", 500)

	tx := txn.Begin()
	err := ledger.TransferFrom(ctx, tx, "USDX", "alice", "escrow", "escrow", 300)
	tx.Commit()

	assert.NoError(t, err)
	assert.Equal(t, int64(700), ledger.BalanceOf(ctx, "USDX", "alice"))
	assert.Equal(t, int64(300), ledger.BalanceOf(ctx, "USDX", "escrow"))
	assert.Equal(t, int64(200), ledger.Allowance(ctx, "USDX", "alice", "escrow"))
}

func TestTransferFromWithoutAllowance(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	ledger.Mint("USDX", "alice", 1000)

	tx := txn.Begin()
	err := ledger.TransferFrom(ctx, tx, "USDX", "alice", "escrow", "escrow", 300)
	tx.Rollback()

	assert.ErrorIs(t, err, consts.ErrorInsufficientAllowance)
	assert.Equal(t, int64(1000), ledger.BalanceOf(ctx, "USDX", "alice"))
}

func TestRollbackRestoresBalancesAndAllowance(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	ledger.Mint("USDX", "alice", 1000)
	ledger.Approve(ctx, "USDX", "alice", "escrow", 500)

	tx := txn.Begin()
	assert.NoError(t, ledger.TransferFrom(ctx, tx, "USDX", "alice", "escrow", "escrow", 300))
	assert.NoError(t, ledger.Transfer(ctx, tx, "USDX", "escrow", "treasury", 100))
	tx.Rollback()

	assert.Equal(t, int64(1000), ledger.BalanceOf(ctx, "USDX", "alice"))
	assert.Equal(t, int64(0), ledger.BalanceOf(ctx, "USDX", "escrow"))
	assert.Equal(t, int64(0), ledger.BalanceOf(ctx, "USDX", "treasury"))
	assert.Equal(t, int64(500), ledger.Allowance(ctx, "USDX", "alice", "escrow"))
}
