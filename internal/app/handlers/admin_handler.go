package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"credverify/internal/pkg/models"
	"credverify/internal/service/interfaces"
)

// AdminHandler groups the operator-only endpoints. Every call is authorized
// against the X-Caller-Identity header by the platform.
type AdminHandler struct {
	platform interfaces.PlatformInterface
}

func NewAdminHandler(platform interfaces.PlatformInterface) *AdminHandler {
	return &AdminHandler{platform: platform}
}

func (h *AdminHandler) SetTreasury(c *gin.Context) {
	var body models.SetTreasuryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.platform.SetTreasury(c.Request.Context(), callerIdentity(c), body.Treasury); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"treasury": body.Treasury})
}

func (h *AdminHandler) SetEarlyTerminationFee(c *gin.Context) {
	var body models.SetTerminationFeeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.platform.SetEarlyTerminationFee(c.Request.Context(), callerIdentity(c), body.FeeBps); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feeBps": body.FeeBps})
}

func (h *AdminHandler) AddSupportedAsset(c *gin.Context) {
	var body models.AddSupportedAssetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.platform.AddSupportedAsset(c.Request.Context(), callerIdentity(c), body.Asset); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": body.Asset})
}

func (h *AdminHandler) SweepFees(c *gin.Context) {
	var body models.SweepFeesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	swept, err := h.platform.SweepFees(c.Request.Context(), callerIdentity(c), body.Asset, body.Recipient)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": body.Asset, "swept": swept})
}
