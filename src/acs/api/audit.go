package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// auditEvent is a security-relevant account or role change
type auditEvent struct {
	// Action identifies the operation (e.g. "auth.login", "role.assign")
	Action string
	// UserID is the account acted on, 0 when unknown
	UserID int64
	// UserName is the account name when known
	UserName string
	// Resource identifies a secondary target (e.g. "role:2")
	Resource string
	// Detail provides optional extra context
	Detail string
	// Success indicates whether the operation succeeded
	Success bool
}

// audit emits a structured entry tagged audit=true. Passwords never reach it.
func audit(c *gin.Context, event auditEvent) {
	status := "success"
	if !event.Success {
		status = "failure"
	}

	args := []any{
		"audit", true,
		"action", event.Action,
		"status", status,
		"client_ip", c.ClientIP(),
	}
	if event.UserID != 0 {
		args = append(args, "user_id", strconv.FormatInt(event.UserID, 10))
	}
	if event.UserName != "" {
		args = append(args, "user_name", event.UserName)
	}
	if event.Resource != "" {
		args = append(args, "resource", event.Resource)
	}
	if event.Detail != "" {
		args = append(args, "detail", event.Detail)
	}

	log.Info("audit", args...)
}
