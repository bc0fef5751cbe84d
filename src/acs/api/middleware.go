package api

import (
	"net/http"
	"strconv"

	"github.com/bitswalk/acs/src/common/errors"
	"github.com/gin-gonic/gin"
)

// rateLimitAuth returns middleware that rate-limits register and login
func (a *API) rateLimitAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.rateLimiter == nil {
			c.Next()
			return
		}
		key := "ip:" + c.ClientIP()
		if !a.rateLimiter.Allow(key) {
			log.Warn("Auth rate limit exceeded", "client", c.ClientIP(), "path", c.FullPath())
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errors.ErrRateLimited.ToResponse())
			return
		}
		c.Next()
	}
}

// respondError writes err as a JSON error body with its mapped status.
// Errors without a mapping are logged and reported as internal errors.
func respondError(c *gin.Context, err error) {
	status := errors.GetHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, errors.NewResponse(err))
}

// paramID parses a positive integer path parameter
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errors.ErrInvalidID.
			WithMessagef("%s must be a positive integer", name).ToResponse())
		return 0, false
	}
	return id, true
}
