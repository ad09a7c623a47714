package consts

// Component identities. Cross-component calls are authorized by comparing
// the caller's identity string against the registered collaborator.
const (
	CollateralEscrowIdentity  = "credverify-collateral-escrow"
	LoanLedgerIdentity        = "credverify-loan-ledger"
	PaymentProcessorIdentity  = "credverify-payment-processor"
	CreditScoreEngineIdentity = "credverify-credit-score-engine"
)
