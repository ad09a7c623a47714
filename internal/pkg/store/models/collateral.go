package models

// CollateralRecord is the custody record for one loan's collateral, owned and
// mutated exclusively by the collateral escrow. LockedAmount never changes
// after storage; the authorization fields are set at most once; a terminal
// withdrawal or claim retires the record entirely.
type CollateralRecord struct {
	LoanID               uint64 `json:"loanId"`
	Asset                string `json:"asset"`
	LockedAmount         int64  `json:"lockedAmount"`
	Owner                string `json:"owner"`
	WithdrawalAuthorized bool   `json:"withdrawalAuthorized"`
	AuthorizedAmount     int64  `json:"authorizedAmount"`
}
