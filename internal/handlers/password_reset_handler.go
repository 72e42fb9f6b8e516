package handlers

import (
	"errors"
	"net/http"

	"moodyme/backend/internal/passwordreset"
	mmlog "moodyme/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// resetCoordinator owns the reset credential lifecycle. It is injected once
// at process start via InitPasswordReset; tests substitute their own.
var resetCoordinator *passwordreset.Coordinator

// InitPasswordReset wires the coordinator the reset handlers delegate to.
func InitPasswordReset(coord *passwordreset.Coordinator) {
	resetCoordinator = coord
}

type ForgotPasswordPayload struct {
	Email string `json:"email" binding:"required,email"`
}

// forgotPasswordMessage is returned for known and unknown emails alike, so the
// response never reveals whether an account exists.
const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

// ForgotPasswordHandler starts the password reset flow.
func ForgotPasswordHandler(c *gin.Context) {
	log := mmlog.L.Named("ForgotPasswordHandler")
	var payload ForgotPasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := resetCoordinator.RequestReset(c.Request.Context(), payload.Email); err != nil {
		// Generation exhaustion and store failures are server-side problems;
		// detail stays in the logs, the caller gets a generic error.
		log.Error("Password reset request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

type ResetPasswordPayload struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// ResetPasswordHandler redeems a reset code and sets the new password.
func ResetPasswordHandler(c *gin.Context) {
	log := mmlog.L.Named("ResetPasswordHandler")
	var payload ResetPasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	err := resetCoordinator.RedeemReset(c.Request.Context(), payload.Token, payload.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully."})
	case errors.Is(err, passwordreset.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reset token"})
	case errors.Is(err, passwordreset.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token has expired"})
	case errors.Is(err, passwordreset.ErrTokenAlreadyUsed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token has already been used"})
	default:
		log.Error("Password reset redemption failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
