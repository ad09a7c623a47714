package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"credverify/internal/pkg/models"
	"credverify/internal/service/interfaces"
)

// AssetHandler exposes the bring-up surface of the asset collaborator:
// minting test units into borrower accounts and granting pull allowances to
// the custodial spenders. Without these no deposit or payment can clear.
type AssetHandler struct {
	platform interfaces.PlatformInterface
}

func NewAssetHandler(platform interfaces.PlatformInterface) *AssetHandler {
	return &AssetHandler{platform: platform}
}

// Mint credits new units to a holder. Admin only.
func (h *AssetHandler) Mint(c *gin.Context) {
	var body models.MintAssetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.platform.MintAsset(c.Request.Context(), callerIdentity(c), body.Asset, body.To, body.Amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": body.Asset, "to": body.To, "amount": body.Amount})
}

// Approve sets the caller's allowance for a spender. The owner is taken from
// the caller identity header, never from the body.
func (h *AssetHandler) Approve(c *gin.Context) {
	var body models.ApproveSpenderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.platform.ApproveSpender(c.Request.Context(), callerIdentity(c), body.Asset, body.Spender, body.Amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": body.Asset, "spender": body.Spender, "amount": body.Amount})
}

// Balance returns a holder's balance of an asset.
func (h *AssetHandler) Balance(c *gin.Context) {
	asset := c.Param("Asset")
	holder := c.Param("Holder")

	balance := h.platform.AssetBalance(c.Request.Context(), asset, holder)
	c.JSON(http.StatusOK, gin.H{"asset": asset, "holder": holder, "balance": balance})
}
