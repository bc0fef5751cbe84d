package api

import (
	"net/http"

	"github.com/bitswalk/acs/src/acs/auth"
	"github.com/bitswalk/acs/src/common/errors"
	"github.com/gin-gonic/gin"
)

// handleRegister creates an account
//
// @Summary      Register an account
// @Description  Creates an account with a bcrypt-hashed password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      CredentialsRequest  true  "Credentials"
// @Success      201   {object}  RegisterResponse
// @Failure      400   {object}  errors.Response
// @Failure      409   {object}  errors.Response
// @Failure      429   {object}  errors.Response
// @Router       /v1/auth/register [post]
func (a *API) handleRegister(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrInvalidJSON.WithCause(err).ToResponse())
		return
	}

	created, err := a.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	username := auth.NormalizeUsername(req.Username)
	audit(c, auditEvent{Action: "auth.register", UserName: username, Success: created})
	if !created {
		c.JSON(http.StatusConflict, errors.ErrUserAlreadyExists.ToResponse())
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{Username: username, Created: true})
}

// handleLogin verifies credentials and marks the account logged in
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      CredentialsRequest  true  "Credentials"
// @Success      200   {object}  auth.User
// @Failure      400   {object}  errors.Response
// @Failure      401   {object}  errors.Response
// @Failure      429   {object}  errors.Response
// @Router       /v1/auth/login [post]
func (a *API) handleLogin(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrInvalidJSON.WithCause(err).ToResponse())
		return
	}

	user, err := a.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		audit(c, auditEvent{Action: "auth.login", UserName: auth.NormalizeUsername(req.Username), Detail: "invalid credentials"})
		c.JSON(http.StatusUnauthorized, errors.ErrInvalidCredentials.ToResponse())
		return
	}

	audit(c, auditEvent{Action: "auth.login", UserID: user.ID, UserName: user.UserName, Success: true})
	c.JSON(http.StatusOK, user)
}

// handleLogout clears the logged-in flag
//
// @Summary      Log out
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  LogoutResponse
// @Failure      400  {object}  errors.Response
// @Failure      404  {object}  errors.Response
// @Router       /v1/users/{id}/logout [post]
func (a *API) handleLogout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	found, err := a.users.Logout(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, errors.ErrUserNotFound.ToResponse())
		return
	}

	audit(c, auditEvent{Action: "auth.logout", UserID: id, Success: true})
	c.JSON(http.StatusOK, LogoutResponse{ID: id, IsLogged: false})
}

// handleListUsers lists every account
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   auth.User
// @Failure      500  {object}  errors.Response
// @Router       /v1/users [get]
func (a *API) handleListUsers(c *gin.Context) {
	users, err := a.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// handleGetUser returns one account
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  auth.User
// @Failure      400  {object}  errors.Response
// @Failure      404  {object}  errors.Response
// @Router       /v1/users/{id} [get]
func (a *API) handleGetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := a.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, errors.ErrUserNotFound.ToResponse())
		return
	}
	c.JSON(http.StatusOK, user)
}

// handleDeleteUser removes an account and its role associations
//
// @Summary      Delete user
// @Tags         users
// @Param        id   path      int  true  "User ID"
// @Success      204
// @Failure      400  {object}  errors.Response
// @Failure      404  {object}  errors.Response
// @Router       /v1/users/{id} [delete]
func (a *API) handleDeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	deleted, err := a.users.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, errors.ErrUserNotFound.ToResponse())
		return
	}
	audit(c, auditEvent{Action: "user.delete", UserID: id, Success: true})
	c.Status(http.StatusNoContent)
}
