package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"usersvc/models"
	"usersvc/store"
)

func (a *app) setupRoutes(r *gin.Engine) {
	users := r.Group("/api/users")
	users.POST("/register", a.registerHandler)
	users.POST("/login", a.loginHandler)
	users.POST("/refreshtoken", a.refreshTokenHandler)
	users.POST("/logout", a.verifyToken(), a.logoutHandler)
	users.GET("", a.verifyToken(), a.listUsersHandler)
	users.GET("/:id", a.verifyToken(), a.getUserHandler)
	users.PATCH("/:id", a.verifyToken(), a.updateUserHandler)
	users.DELETE("/:id", a.authGate(models.IsNot(models.RoleUser), "Action forbidden."), a.deleteUserHandler)

	r.GET("/metrics", gin.WrapH(a.metrics.handler()))
}

func (a *app) registerHandler(c *gin.Context) {
	var req struct {
		Name     string       `json:"name"`
		Username string       `json:"username" binding:"required"`
		Password string       `json:"password" binding:"required"`
		Role     *models.Role `json:"role"`
		Position string       `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	role := models.RoleUser
	if req.Role != nil {
		if !req.Role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Role '%d' does not exist!", int(*req.Role))})
			return
		}
		role = *req.Role
	}
	_, err := a.Register(RegisterRequest{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Role:     role,
		Position: req.Position,
	})
	switch {
	case errors.Is(err, ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed! Username is already in use!"})
	case err != nil:
		a.log.Error("register user", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user. Please check application log."})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "User was registered successfully!"})
	}
}

func (a *app) loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	res, err := a.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, ErrUnknownUsername):
		a.metrics.logins.WithLabelValues("unknown_username").Inc()
		c.JSON(http.StatusNotFound, gin.H{"message": "Username is not registered. Check the username again."})
	case errors.Is(err, ErrInvalidCredentials):
		a.metrics.logins.WithLabelValues("bad_password").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password."})
	case err != nil:
		a.metrics.logins.WithLabelValues("error").Inc()
		a.log.Error("login", "username", req.Username, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to login. Please check application log."})
	default:
		a.metrics.logins.WithLabelValues("success").Inc()
		c.JSON(http.StatusOK, gin.H{
			"id":           res.User.ID,
			"username":     res.User.Username,
			"accessToken":  res.AccessToken,
			"refreshToken": res.RefreshToken,
		})
	}
}

func (a *app) refreshTokenHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Refresh Token is required!"})
		return
	}
	res, err := a.Refresh(req.RefreshToken)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Refresh token is not in database!"})
	case errors.Is(err, ErrRefreshExpired):
		c.JSON(http.StatusForbidden, gin.H{"message": "Refresh token was expired. Please make a new signin request"})
	case err != nil:
		a.log.Error("refresh token", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate access token. Please check application log."})
	default:
		a.metrics.refreshes.Inc()
		c.JSON(http.StatusOK, gin.H{
			"accessToken":  res.AccessToken,
			"refreshToken": res.RefreshToken,
		})
	}
}

func (a *app) logoutHandler(c *gin.Context) {
	user, claims := subject(c)
	if err := a.Logout(user, claims); err != nil {
		a.log.Error("logout", "user", user.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to logout. Please check application log."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User was logged out successfully."})
}

func (a *app) listUsersHandler(c *gin.Context) {
	users, err := a.store.Users()
	if err != nil {
		a.log.Error("list users", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users. Please check application log."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Users was fetched successfully.", "data": users})
}

func (a *app) getUserHandler(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found. Invalid ID."})
		return
	}
	user, err := a.store.UserByID(id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
	case err != nil:
		a.log.Error("get user", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user. Please check application log."})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "User was fetched successfully.", "data": user})
	}
}

func (a *app) updateUserHandler(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}
	var req struct {
		Name     *string      `json:"name"`
		Username *string      `json:"username"`
		Password *string      `json:"password"`
		Role     *models.Role `json:"role"`
		Position *string      `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Role != nil && !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Role '%d' does not exist!", int(*req.Role))})
		return
	}
	if req.Username != nil {
		if _, err := a.store.UserByUsername(*req.Username); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed! Username is already in use!"})
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			a.log.Error("update user: duplicate check", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user. Please check application log."})
			return
		}
	}
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			a.log.Error("update user: hash password", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user. Please check application log."})
			return
		}
		fields["password"] = string(hash)
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.Position != nil {
		fields["position"] = *req.Position
	}
	if err := a.store.UpdateUser(id, fields); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed! Username is already in use!"})
			return
		}
		a.log.Error("update user", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user. Please check application log."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User was updated successfully."})
}

func (a *app) deleteUserHandler(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}
	err := a.store.DeleteUser(id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
	case err != nil:
		a.log.Error("delete user", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user. Please check application log."})
	default:
		// No session should survive the account.
		if err := a.refresh.Revoke(id); err != nil {
			a.log.Error("delete user: revoke refresh token", "id", id, "err", err)
		}
		c.JSON(http.StatusOK, gin.H{"message": "User was deleted successfully."})
	}
}
