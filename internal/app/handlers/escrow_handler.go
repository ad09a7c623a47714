package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"credverify/internal/pkg/consts"
	"credverify/internal/pkg/models"
	"credverify/internal/service/interfaces"
)

type EscrowHandler struct {
	platform interfaces.PlatformInterface
}

func NewEscrowHandler(platform interfaces.PlatformInterface) *EscrowHandler {
	return &EscrowHandler{platform: platform}
}

// Deposit locks collateral and opens the matching loan in one step.
func (h *EscrowHandler) Deposit(c *gin.Context) {
	var body models.DepositRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loanID, err := h.platform.Deposit(c.Request.Context(), body.Depositor, body.Asset, body.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"loanId": loanID})
}

// Withdraw releases authorized collateral back to its owner.
func (h *EscrowHandler) Withdraw(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body models.WithdrawRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	released, err := h.platform.Withdraw(c.Request.Context(), body.Owner, loanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loanId": loanID, "released": released})
}

// CollateralRecord returns the escrow record for a loan.
func (h *EscrowHandler) CollateralRecord(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.platform.CollateralRecord(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func parseLoanID(c *gin.Context) (uint64, error) {
	loanID, err := strconv.ParseUint(c.Param("LoanId"), 10, 64)
	if err != nil {
		return 0, consts.ErrorLoanNotFound
	}
	return loanID, nil
}
