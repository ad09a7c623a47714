package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoanStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusActive))
	assert.True(t, StatusActive.CanTransitionTo(StatusPaidInFull))
	assert.True(t, StatusActive.CanTransitionTo(StatusDefaulted))
	assert.True(t, StatusActive.CanTransitionTo(StatusEarlyTerminated))

	assert.False(t, StatusPending.CanTransitionTo(StatusPaidInFull))
	assert.False(t, StatusActive.CanTransitionTo(StatusPending))
	assert.False(t, StatusPaidInFull.CanTransitionTo(StatusActive))
	assert.False(t, StatusDefaulted.CanTransitionTo(StatusActive))
	assert.False(t, StatusEarlyTerminated.CanTransitionTo(StatusDefaulted))
}

func TestLoanStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusPaidInFull.IsTerminal())
	assert.True(t, StatusDefaulted.IsTerminal())
	assert.True(t, StatusEarlyTerminated.IsTerminal())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
	assert.False(t, LoanStatus("").IsTerminal())
}

func TestRemainingPrincipal(t *testing.T) {
	loan := Loan{PrincipalAmount: 1200, TotalPaidPrincipal: 500}
	assert.Equal(t, int64(700), loan.RemainingPrincipal())
}

func TestRemainingPeriodsNeverBelowOne(t *testing.T) {
	loan := Loan{TermPeriods: 12, PaymentsMade: 4}
	assert.Equal(t, int64(8), loan.RemainingPeriods())

	loan.PaymentsMade = 12
	assert.Equal(t, int64(1), loan.RemainingPeriods())

	loan.PaymentsMade = 15
	assert.Equal(t, int64(1), loan.RemainingPeriods())
}

func TestTermYears(t *testing.T) {
	assert.Equal(t, int64(1), (&Loan{TermPeriods: 12}).TermYears())
	assert.Equal(t, int64(0), (&Loan{TermPeriods: 6}).TermYears())
	assert.Equal(t, int64(2), (&Loan{TermPeriods: 30}).TermYears())
}
