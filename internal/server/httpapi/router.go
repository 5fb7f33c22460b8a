package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/qdrive/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Routes builds the gin engine with every API route and page.
func (h *Handler) Routes() *gin.Engine {
	mode := h.opts.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.Recovery(), h.AccessLog(), h.Gatekeeper())

	r.GET("/health", h.health)

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.POST("/auth/logout", h.logout)
		api.GET("/auth/me", h.me)
		api.POST("/rides/request", h.RequireRole(models.RolePassenger, msgPassengersOnly), h.requestRide)
		api.GET("/rides/:id", h.getRide)
		api.POST("/users/me/profile-picture", h.profilePictureUpload)
	}

	h.registerPages(r)

	r.NoRoute(func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	})

	return r
}
