package models

import "time"

// Event types published on the loan lifecycle topic.
const (
	EventCollateralDeposited  = "COLLATERAL_DEPOSITED"
	EventLoanCreated          = "LOAN_CREATED"
	EventLoanUpdated          = "LOAN_UPDATED"
	EventLoanCompleted        = "LOAN_COMPLETED"
	EventLoanDefaulted        = "LOAN_DEFAULTED"
	EventLoanTerminated       = "LOAN_TERMINATED"
	EventWithdrawalAuthorized = "WITHDRAWAL_AUTHORIZED"
	EventCollateralWithdrawn  = "COLLATERAL_WITHDRAWN"
	EventCollateralClaimed    = "COLLATERAL_CLAIMED"
	EventFeesSwept            = "FEES_SWEPT"
	EventScoreUpdated         = "SCORE_UPDATED"
)

// LoanEventMessage is the Pub/Sub payload for lifecycle and score events.
type LoanEventMessage struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	LoanID    uint64    `json:"loanId,omitempty"`
	Borrower  string    `json:"borrower,omitempty"`
	Asset     string    `json:"asset,omitempty"`
	Amount    int64     `json:"amount,omitempty"`
	Score     int64     `json:"score,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SettlementEventMessage is the Kafka payload emitted for every accepted
// payment, keyed by loan id.
type SettlementEventMessage struct {
	EventID       string    `json:"eventId"`
	LoanID        uint64    `json:"loanId"`
	Borrower      string    `json:"borrower"`
	Payer         string    `json:"payer"`
	Asset         string    `json:"asset"`
	AmountPulled  int64     `json:"amountPulled"`
	PrincipalPaid int64     `json:"principalPaid"`
	InterestPaid  int64     `json:"interestPaid"`
	OnTime        bool      `json:"onTime"`
	Timestamp     time.Time `json:"timestamp"`
}

// AchievementIssueMessage requests issuance of the non-transferable
// achievement record for a completed loan.
type AchievementIssueMessage struct {
	RecordID    string    `json:"recordId"`
	Owner       string    `json:"owner"`
	LoanID      uint64    `json:"loanId"`
	FinalScore  int64     `json:"finalScore"`
	MetadataRef string    `json:"metadataRef"`
	Timestamp   time.Time `json:"timestamp"`
}
