package main

import (
	"property-platform/internal/httpapi"
	"property-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")

	// Token issuance. These are the only endpoints that touch credentials.
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// Everything below requires a verified bearer token.
	protected := v1.Group("")
	protected.Use(authMW)
	{
		protected.GET("/me", h.Me)
		protected.PATCH("/me", h.UpdateMe)

		// Resolved building scope for the caller. Handlers serving
		// building-scoped data run the same resolver before querying.
		protected.GET("/me/buildings", h.MyBuildings)

		// Renter invitations. The handler itself allows apartment owners
		// through, so there is no role middleware on the invite route.
		protected.POST("/apartments/:id/invite", h.InviteRenter)
		protected.POST("/invitations/:token/accept", h.AcceptInvitation)

		// ADMIN routes
		admin := protected.Group("/admin")
		admin.Use(rbac.RequireAnyRole(rbac.RoleAdmin))
		{
			admin.GET("/ping", func(c *gin.Context) {
				c.JSON(200, gin.H{"status": "ok"})
			})
		}
	}
}
