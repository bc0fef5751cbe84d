package api

import (
	"net/http"
	"time"

	"github.com/bitswalk/acs/src/common/version"
	"github.com/gin-gonic/gin"
)

// handleRoot returns API discovery information
//
// @Summary      API discovery
// @Description  Returns the API name, version and main endpoints
// @Tags         base
// @Produce      json
// @Success      200  {object}  APIInfo
// @Router       / [get]
func (a *API) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, APIInfo{
		Name:        "acs",
		Description: "Account Console API",
		Version:     a.version.Version,
		APIVersions: []string{"v1"},
		Endpoints: APIInfoEndpoints{
			Health:     "/v1/health",
			Version:    "/v1/version",
			Register:   "/v1/auth/register",
			Login:      "/v1/auth/login",
			Users:      "/v1/users",
			Roles:      "/v1/roles",
			Migrations: "/v1/migrations",
		},
	})
}

// handleHealth returns the current health status of the server
//
// @Summary      Health check
// @Tags         base
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /v1/health [get]
func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion returns version and build information for the server
//
// @Summary      Version information
// @Tags         base
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /v1/version [get]
func (a *API) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Version:   a.version.Version,
		BuildDate: a.version.BuildDate,
		GitCommit: a.version.GitCommit,
		GoVersion: version.GoVersion(),
	})
}
