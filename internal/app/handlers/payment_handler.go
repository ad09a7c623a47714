package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"credverify/internal/pkg/models"
	"credverify/internal/service/interfaces"
)

type PaymentHandler struct {
	platform interfaces.PlatformInterface
}

func NewPaymentHandler(platform interfaces.PlatformInterface) *PaymentHandler {
	return &PaymentHandler{platform: platform}
}

// MakePayment settles one payment against a loan and returns the receipt.
func (h *PaymentHandler) MakePayment(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body models.PaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.platform.MakePayment(c.Request.Context(), body.Payer, loanID, body.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
