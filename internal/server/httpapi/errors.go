package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgUnauthorized       = "Unauthorized"
	msgForbidden          = "Forbidden"
	msgEmailTaken         = "User with this email already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgPassengersOnly     = "Only passengers can request rides"
	msgRideNotFound       = "Ride not found"

	msgRegisterFailed = "Failed to register user"
	msgLoginFailed    = "Failed to login"
	msgLogoutFailed   = "Failed to logout"
	msgMeFailed       = "Failed to load user"
	msgRideFailed     = "Failed to request ride"
	msgRideLoadFailed = "Failed to load ride"
	msgUploadFailed   = "Failed to create upload URL"
)

// fail writes the JSON error for err. Unclassified errors are logged and
// answered with internalMsg only.
func (h *Handler) fail(c *gin.Context, err error, internalMsg string) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.Is(err, common.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": msgEmailTaken})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
	case errors.Is(err, common.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": msgForbidden})
	default:
		h.log.Error(c.Request.Context(), internalMsg,
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
