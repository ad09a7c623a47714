package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"credverify/internal/pkg/models"
	"credverify/internal/service/interfaces"
)

type LoanHandler struct {
	platform interfaces.PlatformInterface
}

func NewLoanHandler(platform interfaces.PlatformInterface) *LoanHandler {
	return &LoanHandler{platform: platform}
}

// LoanDetails returns the full loan record.
func (h *LoanHandler) LoanDetails(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan, err := h.platform.LoanDetails(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// ExpectedPayment projects what the next payment would look like.
func (h *LoanHandler) ExpectedPayment(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expected, err := h.platform.ExpectedPayment(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expected)
}

// RequestEarlyTermination closes an active loan at the borrower's request,
// charging the configured early termination fee out of the collateral.
func (h *LoanHandler) RequestEarlyTermination(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body models.TerminationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.platform.RequestEarlyTermination(c.Request.Context(), body.Borrower, loanID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loanId": loanID, "status": "EARLY_TERMINATED"})
}

// MarkDefaulted flags a loan whose grace period has elapsed. Any caller may
// invoke it; the ledger verifies timing.
func (h *LoanHandler) MarkDefaulted(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.platform.MarkDefaulted(c.Request.Context(), callerIdentity(c), loanID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loanId": loanID, "status": "DEFAULTED"})
}
