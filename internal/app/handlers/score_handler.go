package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"credverify/internal/service/interfaces"
)

type ScoreHandler struct {
	platform interfaces.PlatformInterface
}

func NewScoreHandler(platform interfaces.PlatformInterface) *ScoreHandler {
	return &ScoreHandler{platform: platform}
}

// ScoreData returns the borrower's score record. A borrower the engine has
// never seen gets the base score with zeroed counters.
func (h *ScoreHandler) ScoreData(c *gin.Context) {
	borrower := c.Param("Borrower")
	if borrower == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "borrower is required"})
		return
	}
	c.JSON(http.StatusOK, h.platform.ScoreData(c.Request.Context(), borrower))
}
