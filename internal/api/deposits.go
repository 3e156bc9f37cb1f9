package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"betpool/internal/ledger"
	"betpool/internal/pix"
	"betpool/internal/store"
)

// DepositRequest is a deposit intent. The agent is the channel that will
// confirm the out-of-band PIX payment.
type DepositRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Agent  string  `json:"agent" binding:"required"`
}

// RequestDepositHandler records a PENDING deposit and returns the mock PIX
// payload built from the agent's payout key.
func RequestDepositHandler(deposits *ledger.DepositService, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := sessionUsername(c)
		if !ok {
			return
		}
		var req DepositRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tx, err := deposits.Request(c.Request.Context(), username, req.Amount, req.Agent)
		if err != nil {
			respondError(c, err)
			return
		}
		// The payout key comes from the fielding agent; a missing agent or
		// empty key still yields a (useless) payload, as the original flow did.
		var pixKey string
		if agent, err := users.FindByUsername(c.Request.Context(), req.Agent); err == nil {
			pixKey = agent.PixKey
		}
		c.JSON(http.StatusCreated, gin.H{
			"transaction": tx,
			"pixPayload":  pix.Payload(pixKey, username),
		})
	}
}

// ApproveDepositHandler resolves a PENDING deposit and credits the balance.
func ApproveDepositHandler(deposits *ledger.DepositService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deposits.Approve(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deposit approved"})
	}
}

// RejectDepositHandler resolves a PENDING deposit with no balance effect.
func RejectDepositHandler(deposits *ledger.DepositService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deposits.Reject(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deposit rejected"})
	}
}

// ListPendingDepositsHandler returns the session agent's open requests.
func ListPendingDepositsHandler(deposits *ledger.DepositService) gin.HandlerFunc {
	return func(c *gin.Context) {
		agent, ok := sessionUsername(c)
		if !ok {
			return
		}
		list, err := deposits.ListPendingByAgent(c.Request.Context(), agent)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": list})
	}
}

// ListMyDepositsHandler returns the session user's own request history.
func ListMyDepositsHandler(deposits *ledger.DepositService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := sessionUsername(c)
		if !ok {
			return
		}
		list, err := deposits.ListByUsername(c.Request.Context(), username)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": list})
	}
}
