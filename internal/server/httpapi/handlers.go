package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/dmitrijs2005/qdrive/internal/server/auth"
	"github.com/dmitrijs2005/qdrive/internal/server/services"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, msgRegisterFailed)
		return
	}

	h.log.Info(c.Request.Context(), "user registered", "user_id", user.ID, "role", user.Role)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
}

func (h *Handler) login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
			return
		}
		h.fail(c, err, msgLoginFailed)
		return
	}

	h.setSessionCookie(c.Writer, sess.Token)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": sess.User})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), auth.ClaimsFromContext(c.Request.Context())); err != nil {
		h.fail(c, err, msgLogoutFailed)
		return
	}
	h.clearSessionCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *Handler) me(c *gin.Context) {
	claims := auth.ClaimsFromContext(c.Request.Context())
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), claims.Subject)
	if err != nil {
		h.fail(c, err, msgMeFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) requestRide(c *gin.Context) {
	var in services.RideRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.fail(c, services.ErrInvalidCoordinates, msgRideFailed)
		return
	}

	ride, err := h.rides.RequestRide(c.Request.Context(), auth.ClaimsFromContext(c.Request.Context()), in)
	if err != nil {
		if errors.Is(err, common.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": msgPassengersOnly})
			return
		}
		h.fail(c, err, msgRideFailed)
		return
	}

	h.log.Info(c.Request.Context(), "ride requested", "ride_id", ride.ID, "passenger_id", ride.PassengerID)
	c.JSON(http.StatusCreated, gin.H{"message": "Ride requested successfully", "ride": ride})
}

func (h *Handler) getRide(c *gin.Context) {
	ride, err := h.rides.GetRide(c.Request.Context(), auth.ClaimsFromContext(c.Request.Context()), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgRideNotFound})
			return
		}
		h.fail(c, err, msgRideLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ride": ride})
}

func (h *Handler) profilePictureUpload(c *gin.Context) {
	claims := auth.ClaimsFromContext(c.Request.Context())
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
		return
	}

	out, err := h.profile.CreateProfilePictureUpload(c.Request.Context(), claims.Subject)
	if err != nil {
		h.fail(c, err, msgUploadFailed)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
