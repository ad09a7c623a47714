package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"credverify/internal/pkg/consts"
	"credverify/internal/pkg/models"
	"credverify/internal/pkg/utils"
)

// CallerIdentityHeader carries the identity the platform authorizes admin
// and default-flagging calls against.
const CallerIdentityHeader = "X-Caller-Identity"

func callerIdentity(c *gin.Context) string {
	return c.GetHeader(CallerIdentityHeader)
}

var statusByError = map[*models.CustomError]int{
	consts.ErrorInvalidAmount:             http.StatusBadRequest,
	consts.ErrorInvalidFee:                http.StatusBadRequest,
	consts.ErrorInvalidIdentity:           http.StatusBadRequest,
	consts.ErrorUnsupportedAsset:          http.StatusBadRequest,
	consts.ErrorPaymentBelowInterestDue:   http.StatusBadRequest,
	consts.ErrorNotAdmin:                  http.StatusForbidden,
	consts.ErrorNotBorrower:               http.StatusForbidden,
	consts.ErrorNotRecordOwner:            http.StatusForbidden,
	consts.ErrorNotLoanLedger:             http.StatusForbidden,
	consts.ErrorNotCollateralEscrow:       http.StatusForbidden,
	consts.ErrorNotPaymentProcessor:       http.StatusForbidden,
	consts.ErrorLoanNotFound:              http.StatusNotFound,
	consts.ErrorCollateralRecordNotFound:  http.StatusNotFound,
	consts.ErrorDuplicateRecord:           http.StatusConflict,
	consts.ErrorAlreadyAuthorized:         http.StatusConflict,
	consts.ErrorTransactionInProgress:     http.StatusConflict,
	consts.ErrorLoanNotActive:             http.StatusConflict,
	consts.ErrorInvalidStatusTransition:   http.StatusConflict,
	consts.ErrorGracePeriodNotElapsed:     http.StatusConflict,
	consts.ErrorWithdrawalNotAuthorized:   http.StatusConflict,
	consts.ErrorPrincipalExceeded:         http.StatusConflict,
	consts.ErrorCollateralMismatch:        http.StatusConflict,
	consts.ErrorInsufficientBalance:       http.StatusConflict,
	consts.ErrorInsufficientAllowance:     http.StatusConflict,
	consts.ErrorTreasuryNotConfigured:     http.StatusServiceUnavailable,
	consts.ErrorOrchestratorNotConfigured: http.StatusServiceUnavailable,
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	for sentinel, s := range statusByError {
		if errors.Is(err, sentinel) {
			status = s
			break
		}
	}
	c.JSON(status, gin.H{
		"code":  utils.GetErrorCode(err),
		"error": err.Error(),
	})
}
