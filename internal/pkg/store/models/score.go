package models

import "time"

const (
	// ScoreFloor and ScoreCeiling bound every recomputed score.
	ScoreFloor   int64 = 300
	ScoreCeiling int64 = 850

	// BaseScore is assigned on a borrower's first interaction.
	BaseScore int64 = 350
)

// ScoreRecord is the per-borrower creditworthiness state, owned and mutated
// exclusively by the credit score engine. Counts only ever increase; the
// score stays within [ScoreFloor, ScoreCeiling]; the record is never
// destroyed once created.
type ScoreRecord struct {
	Borrower             string    `json:"borrower"`
	Score                int64     `json:"score"`
	OnTimePayments       int64     `json:"onTimePayments"`
	LatePayments         int64     `json:"latePayments"`
	LoansCompleted       int64     `json:"loansCompleted"`
	LoansDefaulted       int64     `json:"loansDefaulted"`
	LoansTerminatedEarly int64     `json:"loansTerminatedEarly"`
	CompletionBonus      int64     `json:"completionBonus"`
	LastUpdated          time.Time `json:"lastUpdated"`
}
