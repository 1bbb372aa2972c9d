package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mertdogan/estately/internal/handler"
	"github.com/mertdogan/estately/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	listingHandler *handler.ListingHandler,
	authMiddleware *middleware.AuthMiddleware,
	authRateLimit gin.HandlerFunc,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Public routes
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (Public, rate limited on the credential endpoints)
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", authRateLimit, authHandler.SignUp)
		authGroup.POST("/signin", authRateLimit, authHandler.SignIn)
		authGroup.POST("/google", authRateLimit, authHandler.Google)
		authGroup.GET("/signout", authHandler.SignOut)
	}

	// Listing routes (reads public, mutations owner-scoped)
	listingGroup := r.Group("/api/listing")
	{
		listingGroup.GET("/get/:id", listingHandler.Get)
		listingGroup.GET("/get", listingHandler.Search)

		protected := listingGroup.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			protected.POST("/create", listingHandler.Create)
			protected.POST("/update/:id", listingHandler.Update)
			protected.DELETE("/delete/:id", listingHandler.Delete)
		}
	}

	// User routes (all authenticated, owner-scoped where mutating)
	userGroup := r.Group("/api/user")
	userGroup.Use(authMiddleware.RequireAuth())
	{
		userGroup.POST("/update/:id", userHandler.UpdateUser)
		userGroup.DELETE("/delete/:id", userHandler.DeleteUser)
		userGroup.GET("/listings/:id", userHandler.GetUserListings)
		userGroup.GET("/:id", userHandler.GetUser)
	}

	return r
}
