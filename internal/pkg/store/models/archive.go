package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArchivedLoan is the write-only historical export of a loan that reached a
// terminal state. It is never read back into the state machine; the in-memory
// loan record stays authoritative.
type ArchivedLoan struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	GUID               string             `bson:"GUID"`
	LoanID             uint64             `bson:"loanId"`
	Borrower           string             `bson:"borrower"`
	Asset              string             `bson:"asset"`
	CollateralAmount   int64              `bson:"collateralAmount"`
	PrincipalAmount    int64              `bson:"principalAmount"`
	AnnualRateBps      int64              `bson:"annualRateBps"`
	TermPeriods        int64              `bson:"termPeriods"`
	PaymentsMade       int64              `bson:"paymentsMade"`
	TotalPaidPrincipal int64              `bson:"totalPaidPrincipal"`
	TotalPaidInterest  int64              `bson:"totalPaidInterest"`
	FinalStatus        string             `bson:"finalStatus"`
	StartTime          time.Time          `bson:"startTime"`
	ClosedAt           time.Time          `bson:"closedAt"`
}
