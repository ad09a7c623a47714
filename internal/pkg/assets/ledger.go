// Package assets holds the in-process stand-in for the fungible-asset
// collaborator. It implements the standard transfer surface (transfer,
// transferFrom, balanceOf, allowance) over in-memory balances and
// participates in the operation Tx so a failed downstream validation also
// unwinds any funds already moved.
package assets

import (
	"context"
	"sync"

	"credverify/internal/pkg/consts"
	"credverify/internal/pkg/txn"
)

type balanceKey struct {
	asset  string
	holder string
}

type allowanceKey struct {
	asset   string
	owner   string
	spender string
}

type Ledger struct {
	mu         sync.Mutex
	balances   map[balanceKey]int64
	allowances map[allowanceKey]int64
}

func NewLedger() *Ledger {
	return &Ledger{
		balances:   make(map[balanceKey]int64),
		allowances: make(map[allowanceKey]int64),
	}
}

// Mint credits new units to a holder, used at bring-up and in tests.
func (l *Ledger) Mint(asset, to string, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[balanceKey{asset, to}] += amount
}

// Approve lets spender pull up to amount from owner via TransferFrom.
func (l *Ledger) Approve(ctx context.Context, asset, owner, spender string, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.allowances[allowanceKey{asset, owner, spender}] = amount
}

func (l *Ledger) Transfer(ctx context.Context, tx *txn.Tx, asset, from, to string, amount int64) error {
	if amount <= 0 {
		return consts.ErrorInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	fromKey := balanceKey{asset, from}
	toKey := balanceKey{asset, to}
	if l.balances[fromKey] < amount {
		return consts.ErrorInsufficientBalance
	}
	l.balances[fromKey] -= amount
	l.balances[toKey] += amount
	tx.OnRollback(func() {
		l.mu.Lock()
		l.balances[fromKey] += amount
		l.balances[toKey] -= amount
		l.mu.Unlock()
	})
	return nil
}

func (l *Ledger) TransferFrom(ctx context.Context, tx *txn.Tx, asset, owner, spender, to string, amount int64) error {
	if amount <= 0 {
		return consts.ErrorInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	allowKey := allowanceKey{asset, owner, spender}
	fromKey := balanceKey{asset, owner}
	toKey := balanceKey{asset, to}

	if l.allowances[allowKey] < amount {
		return consts.ErrorInsufficientAllowance
	}
	if l.balances[fromKey] < amount {
		return consts.ErrorInsufficientBalance
	}
	l.allowances[allowKey] -= amount
	l.balances[fromKey] -= amount
	l.balances[toKey] += amount
	tx.OnRollback(func() {
		l.mu.Lock()
		l.allowances[allowKey] += amount
		l.balances[fromKey] += amount
		l.balances[toKey] -= amount
		l.mu.Unlock()
	})
	return nil
}

func (l *Ledger) BalanceOf(ctx context.Context, asset, holder string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[balanceKey{asset, holder}]
}

func (l *Ledger) Allowance(ctx context.Context, asset, owner, spender string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowances[allowanceKey{asset, owner, spender}]
}
