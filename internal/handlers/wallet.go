package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetWallet(wallets Wallets) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := wallets.Wallet(c.Request.Context(), c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, w)
	}
}

// SyncWallet recomputes the caller's earnings from completed bookings.
func SyncWallet(wallets Wallets) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := wallets.SyncWallet(c.Request.Context(), c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, w)
	}
}
