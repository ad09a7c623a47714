package models

// ExpectedPayment is the pure projection of what a payment on the current
// period would look like, late surcharge included when applicable. All three
// figures are zero when the loan is not Active.
type ExpectedPayment struct {
	LoanID       uint64 `json:"loanId"`
	TotalDue     int64  `json:"totalDue"`
	PrincipalDue int64  `json:"principalDue"`
	InterestDue  int64  `json:"interestDue"`
	Late         bool   `json:"late"`
}

// PaymentReceipt describes an accepted payment: the amount actually pulled
// from the payer and its split. PrincipalPaid + InterestPaid always equals
// AmountPulled.
type PaymentReceipt struct {
	LoanID        uint64 `json:"loanId"`
	Payer         string `json:"payer"`
	AmountPulled  int64  `json:"amountPulled"`
	PrincipalPaid int64  `json:"principalPaid"`
	InterestPaid  int64  `json:"interestPaid"`
	OnTime        bool   `json:"onTime"`
	LoanCompleted bool   `json:"loanCompleted"`
}

// Request payloads for the HTTP surface.

type DepositRequest struct {
	Depositor string `json:"depositor" binding:"required"`
	Asset     string `json:"asset" binding:"required"`
	Amount    int64  `json:"amount" binding:"required"`
}

type PaymentRequest struct {
	Payer  string `json:"payer" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
}

type TerminationRequest struct {
	Borrower string `json:"borrower" binding:"required"`
}

type WithdrawRequest struct {
	Owner string `json:"owner" binding:"required"`
}

type SweepFeesRequest struct {
	Asset     string `json:"asset" binding:"required"`
	Recipient string `json:"recipient" binding:"required"`
}

type SetTreasuryRequest struct {
	Treasury string `json:"treasury" binding:"required"`
}

type SetTerminationFeeRequest struct {
	FeeBps int64 `json:"feeBps"`
}

type AddSupportedAssetRequest struct {
	Asset string `json:"asset" binding:"required"`
}

type MintAssetRequest struct {
	Asset  string `json:"asset" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
}

type ApproveSpenderRequest struct {
	Asset   string `json:"asset" binding:"required"`
	Spender string `json:"spender" binding:"required"`
	Amount  int64  `json:"amount"`
}
