package consts

import "credverify/internal/pkg/models"

var (
	// Validation errors - rejected before any state mutation.
	ErrorInvalidAmount = &models.CustomError{
		Code:    "CREDVERIFY_VALIDATION_AMOUNT_INVALID",
		Message: "Amount must be greater than zero",
	}
	ErrorUnsupportedAsset = &models.CustomError{
		Code:    "CREDVERIFY_VALIDATION_ASSET_NOT_SUPPORTED",
		Message: "Asset is not on the supported asset list",
	}
	ErrorInvalidIdentity = &models.CustomError{
		Code:    "CREDVERIFY_VALIDATION_IDENTITY_INVALID",
		Message: "Identity must not be empty",
	}
	ErrorInvalidFee = &models.CustomError{
		Code:    "CREDVERIFY_VALIDATION_FEE_BPS_INVALID",
		Message: "Fee basis points must not exceed 10000",
	}

	// Authorization errors - caller is not the registered collaborator.
	ErrorNotLoanLedger = &models.CustomError{
		Code:    "CREDVERIFY_AUTH_CALLER_NOT_LOAN_LEDGER",
		Message: "Caller is not the registered loan ledger",
	}
	ErrorNotCollateralEscrow = &models.CustomError{
		Code:    "CREDVERIFY_AUTH_CALLER_NOT_COLLATERAL_ESCROW",
		Message: "Caller is not the registered collateral escrow",
	}
	ErrorNotPaymentProcessor = &models.CustomError{
		Code:    "CREDVERIFY_AUTH_CALLER_NOT_PAYMENT_PROCESSOR",
		Message: "Caller is not the registered payment processor",
	}
	ErrorNotBorrower = &models.CustomError{
		Code:    "CREDVERIFY_AUTH_CALLER_NOT_BORROWER",
		Message: "Caller is not the loan borrower",
	}
	ErrorNotRecordOwner = &models.CustomError{
		Code:    "CREDVERIFY_AUTH_CALLER_NOT_RECORD_OWNER",
		Message: "Caller is not the collateral record owner",
	}
	ErrorNotAdmin = &models.CustomError{
		Code:    "CREDVERIFY_AUTH_CALLER_NOT_ADMIN",
		Message: "Caller is not the platform administrator",
	}

	// Configuration errors.
	ErrorOrchestratorNotConfigured = &models.CustomError{
		Code:    "CREDVERIFY_CONFIG_LOAN_LEDGER_NOT_REGISTERED",
		Message: "No loan ledger registered with the collateral escrow",
	}
	ErrorTreasuryNotConfigured = &models.CustomError{
		Code:    "CREDVERIFY_CONFIG_TREASURY_NOT_REGISTERED",
		Message: "No treasury identity configured",
	}

	// State errors - record exists but the operation is not valid for it.
	ErrorLoanNotFound = &models.CustomError{
		Code:    "CREDVERIFY_STATE_LOAN_NOT_FOUND",
		Message: "Loan does not exist",
	}
	ErrorLoanNotActive = &models.CustomError{
		Code:    "CREDVERIFY_STATE_LOAN_NOT_ACTIVE",
		Message: "Loan is not in Active status",
	}
	ErrorInvalidStatusTransition = &models.CustomError{
		Code:    "CREDVERIFY_STATE_INVALID_STATUS_TRANSITION",
		Message: "Loan status transition not permitted",
	}
	ErrorGracePeriodNotElapsed = &models.CustomError{
		Code:    "CREDVERIFY_STATE_GRACE_PERIOD_NOT_ELAPSED",
		Message: "Grace period has not elapsed past the due date",
	}
	ErrorDuplicateRecord = &models.CustomError{
		Code:    "CREDVERIFY_STATE_COLLATERAL_RECORD_DUPLICATE",
		Message: "Collateral record already exists for this loan",
	}
	ErrorCollateralRecordNotFound = &models.CustomError{
		Code:    "CREDVERIFY_STATE_COLLATERAL_RECORD_NOT_FOUND",
		Message: "Collateral record does not exist or is retired",
	}
	ErrorCollateralMismatch = &models.CustomError{
		Code:    "CREDVERIFY_STATE_COLLATERAL_RECORD_MISMATCH",
		Message: "Owner or asset does not match the stored collateral record",
	}
	ErrorAlreadyAuthorized = &models.CustomError{
		Code:    "CREDVERIFY_STATE_WITHDRAWAL_ALREADY_AUTHORIZED",
		Message: "Withdrawal authorization was already set for this record",
	}
	ErrorWithdrawalNotAuthorized = &models.CustomError{
		Code:    "CREDVERIFY_STATE_WITHDRAWAL_NOT_AUTHORIZED",
		Message: "No withdrawal authorization set for this record",
	}
	ErrorPrincipalExceeded = &models.CustomError{
		Code:    "CREDVERIFY_STATE_PRINCIPAL_EXCEEDED",
		Message: "Payment would exceed the loan principal",
	}
	ErrorTransactionInProgress = &models.CustomError{
		Code:    "CREDVERIFY_STATE_DUPLICATE_REQUEST",
		Message: "Another operation for this borrower is in progress",
	}

	// Payment errors.
	ErrorPaymentBelowInterestDue = &models.CustomError{
		Code:    "CREDVERIFY_PAYMENT_BELOW_INTEREST_DUE",
		Message: "Payment does not cover the interest due for the current period",
	}

	// Insufficient-resource errors surfaced by the asset collaborator.
	ErrorInsufficientBalance = &models.CustomError{
		Code:    "CREDVERIFY_ASSET_INSUFFICIENT_BALANCE",
		Message: "Holder balance is insufficient for the transfer",
	}
	ErrorInsufficientAllowance = &models.CustomError{
		Code:    "CREDVERIFY_ASSET_INSUFFICIENT_ALLOWANCE",
		Message: "Spender allowance is insufficient for the transfer",
	}
)
