package models

import (
	"time"
)

// LoanStatus is the closed set of loan states. Pending exists only
// transiently: creation collapses it into Active inside the same operation.
// PaidInFull, Defaulted and EarlyTerminated are terminal.
type LoanStatus string

const (
	StatusPending         LoanStatus = "PENDING"
	StatusActive          LoanStatus = "ACTIVE"
	StatusPaidInFull      LoanStatus = "PAID_IN_FULL"
	StatusDefaulted       LoanStatus = "DEFAULTED"
	StatusEarlyTerminated LoanStatus = "EARLY_TERMINATED"
)

// validTransitions is the explicit transition table checked on every status
// mutation. Terminal states have no outgoing edges.
var validTransitions = map[LoanStatus][]LoanStatus{
	StatusPending: {StatusActive},
	StatusActive:  {StatusPaidInFull, StatusDefaulted, StatusEarlyTerminated},
}

// CanTransitionTo reports whether moving from s to target is permitted.
func (s LoanStatus) CanTransitionTo(target LoanStatus) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further mutation of the loan is permitted.
func (s LoanStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0 && s != ""
}

// Loan is the authoritative loan record, owned and mutated exclusively by the
// loan ledger. Amounts are int64 base units of the collateral asset; the
// principal always equals the collateral amount (1:1 ratio).
type Loan struct {
	ID                 uint64        `json:"loanId"`
	Borrower           string        `json:"borrower"`
	Asset              string        `json:"asset"`
	CollateralAmount   int64         `json:"collateralAmount"`
	PrincipalAmount    int64         `json:"principalAmount"`
	AnnualRateBps      int64         `json:"annualRateBps"`
	StartTime          time.Time     `json:"startTime"`
	TermPeriods        int64         `json:"termPeriods"`
	PeriodLength       time.Duration `json:"periodLength"`
	NextDueDate        time.Time     `json:"nextDueDate"`
	Status             LoanStatus    `json:"status"`
	PaymentsMade       int64         `json:"paymentsMade"`
	TotalPaidPrincipal int64         `json:"totalPaidPrincipal"`
	TotalPaidInterest  int64         `json:"totalPaidInterest"`
}

// RemainingPrincipal returns the principal not yet repaid.
func (l *Loan) RemainingPrincipal() int64 {
	return l.PrincipalAmount - l.TotalPaidPrincipal
}

// RemainingPeriods returns the number of scheduled periods left, never less
// than one so projections stay well-defined on the final period.
func (l *Loan) RemainingPeriods() int64 {
	remaining := l.TermPeriods - l.PaymentsMade
	if remaining < 1 {
		return 1
	}
	return remaining
}

// TermYears is the loan term expressed in whole years, used by the completion
// bonus. Twelve periods count as one year.
func (l *Loan) TermYears() int64 {
	return l.TermPeriods / 12
}
