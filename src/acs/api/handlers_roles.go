package api

import (
	"net/http"
	"strconv"

	"github.com/bitswalk/acs/src/common/errors"
	"github.com/gin-gonic/gin"
)

// handleListRoles lists every role
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Success      200  {array}   auth.Role
// @Failure      500  {object}  errors.Response
// @Router       /v1/roles [get]
func (a *API) handleListRoles(c *gin.Context) {
	roles, err := a.roles.Roles().GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// handleGetRole returns one role
//
// @Summary      Get role
// @Tags         roles
// @Produce      json
// @Param        id   path      int  true  "Role ID"
// @Success      200  {object}  auth.Role
// @Failure      400  {object}  errors.Response
// @Failure      404  {object}  errors.Response
// @Router       /v1/roles/{id} [get]
func (a *API) handleGetRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	role, err := a.roles.Roles().GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if role == nil {
		c.JSON(http.StatusNotFound, errors.ErrRoleNotFound.ToResponse())
		return
	}
	c.JSON(http.StatusOK, role)
}

// handleUserRoles lists the roles held by a user
//
// @Summary      List a user's roles
// @Tags         roles
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   auth.Role
// @Failure      400  {object}  errors.Response
// @Failure      404  {object}  errors.Response
// @Router       /v1/users/{id}/roles [get]
func (a *API) handleUserRoles(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, errors.ErrUserNotFound.ToResponse())
		return
	}

	roles, err := a.roles.RolesForUser(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// handleAssignRole links a user to a role
//
// @Summary      Assign role
// @Tags         roles
// @Produce      json
// @Param        id      path      int  true  "User ID"
// @Param        roleId  path      int  true  "Role ID"
// @Success      201     {object}  AssignmentResponse
// @Failure      400     {object}  errors.Response
// @Failure      404     {object}  errors.Response
// @Failure      409     {object}  errors.Response
// @Router       /v1/users/{id}/roles/{roleId} [put]
func (a *API) handleAssignRole(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	roleID, ok := paramID(c, "roleId")
	if !ok {
		return
	}

	assigned, err := a.roles.AssignRole(c.Request.Context(), userID, roleID)
	if err != nil {
		respondError(c, err)
		return
	}
	audit(c, auditEvent{Action: "role.assign", UserID: userID, Resource: roleResource(roleID), Success: assigned})
	if !assigned {
		c.JSON(http.StatusConflict, errors.ErrRoleAlreadyAssigned.ToResponse())
		return
	}
	c.JSON(http.StatusCreated, AssignmentResponse{UserID: userID, RoleID: roleID, Assigned: true})
}

// handleRemoveRole unlinks a user from a role
//
// @Summary      Remove role
// @Tags         roles
// @Param        id      path  int  true  "User ID"
// @Param        roleId  path  int  true  "Role ID"
// @Success      204
// @Failure      400     {object}  errors.Response
// @Failure      404     {object}  errors.Response
// @Router       /v1/users/{id}/roles/{roleId} [delete]
func (a *API) handleRemoveRole(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	roleID, ok := paramID(c, "roleId")
	if !ok {
		return
	}

	removed, err := a.roles.RemoveRole(c.Request.Context(), userID, roleID)
	if err != nil {
		respondError(c, err)
		return
	}
	audit(c, auditEvent{Action: "role.remove", UserID: userID, Resource: roleResource(roleID), Success: removed})
	if !removed {
		c.JSON(http.StatusNotFound, errors.ErrRoleNotAssigned.ToResponse())
		return
	}
	c.Status(http.StatusNoContent)
}

func roleResource(id int64) string {
	return "role:" + strconv.FormatInt(id, 10)
}
