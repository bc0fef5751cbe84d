package api

import "github.com/gin-gonic/gin"

// RegisterRoutes configures all API routes on the given router
func (a *API) RegisterRoutes(router *gin.Engine) {
	// Root endpoint - API discovery
	router.GET("/", a.handleRoot)

	v1 := router.Group("/v1")
	{
		v1.GET("/health", a.handleHealth)
		v1.GET("/version", a.handleVersion)

		// Credential checks are throttled per client
		authGroup := v1.Group("/auth")
		authGroup.Use(a.rateLimitAuth())
		{
			authGroup.POST("/register", a.handleRegister)
			authGroup.POST("/login", a.handleLogin)
		}

		users := v1.Group("/users")
		{
			users.GET("", a.handleListUsers)
			users.GET("/:id", a.handleGetUser)
			users.DELETE("/:id", a.handleDeleteUser)
			users.POST("/:id/logout", a.handleLogout)
			users.GET("/:id/roles", a.handleUserRoles)
			users.PUT("/:id/roles/:roleId", a.handleAssignRole)
			users.DELETE("/:id/roles/:roleId", a.handleRemoveRole)
		}

		roles := v1.Group("/roles")
		{
			roles.GET("", a.handleListRoles)
			roles.GET("/:id", a.handleGetRole)
		}

		schema := v1.Group("/migrations")
		{
			schema.POST("", a.handleMigrate)
			schema.GET("/status", a.handleMigrationStatus)
		}
	}
}
