package controller

import (
	"net/http"

	"github.com/lukafrizz/content-api/database/model"
	"github.com/lukafrizz/content-api/web/middleware"
	"github.com/lukafrizz/content-api/web/service"

	"github.com/gin-gonic/gin"
)

// AuthController serves registration, login and account self-service.
type AuthController struct {
	users  service.UserService
	tokens *service.TokenService
}

func NewAuthController(g *gin.RouterGroup, tokens *service.TokenService) *AuthController {
	c := &AuthController{tokens: tokens}

	g.POST("/register", c.register)
	g.POST("/login", c.login)

	authed := g.Group("")
	authed.Use(middleware.AuthRequired(tokens))
	{
		authed.GET("/profile", c.profile)
		authed.PUT("/profile", c.updateProfile)
		authed.PUT("/change-password", c.changePassword)
		authed.GET("/verify", c.verify)
	}

	return c
}

type registerReq struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (a *AuthController) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonBindError(c, err)
		return
	}

	user, err := a.users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		jsonServiceError(c, err, "registration")
		return
	}

	token, err := a.tokens.Issue(user.Id, user.Role)
	if err != nil {
		jsonServiceError(c, err, "token issuance")
		return
	}

	jsonData(c, http.StatusCreated, "user registered", gin.H{
		"user":  user,
		"token": token,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonBindError(c, err)
		return
	}

	user, err := a.users.Authenticate(req.Email, req.Password)
	if err != nil {
		jsonServiceError(c, err, "login")
		return
	}

	token, err := a.tokens.Issue(user.Id, user.Role)
	if err != nil {
		jsonServiceError(c, err, "token issuance")
		return
	}

	jsonData(c, http.StatusOK, "login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

func (a *AuthController) profile(c *gin.Context) {
	user, err := a.users.GetUser(currentUserID(c))
	if err != nil {
		jsonServiceError(c, err, "user")
		return
	}
	jsonData(c, http.StatusOK, "", user)
}

type updateProfileReq struct {
	Username *string        `json:"username" binding:"omitempty,min=3,max=30"`
	Email    *string        `json:"email" binding:"omitempty,email"`
	Profile  *model.Profile `json:"profile"`
}

func (a *AuthController) updateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonBindError(c, err)
		return
	}

	user, err := a.users.UpdateProfile(currentUserID(c), req.Username, req.Email, req.Profile)
	if err != nil {
		jsonServiceError(c, err, "profile update")
		return
	}
	jsonData(c, http.StatusOK, "profile updated", user)
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (a *AuthController) changePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonBindError(c, err)
		return
	}

	err := a.users.ChangePassword(currentUserID(c), req.CurrentPassword, req.NewPassword)
	if err == service.ErrInvalidCredentials {
		// Wrong current password is a bad request here, not an auth failure.
		jsonError(c, http.StatusBadRequest, "current password is incorrect")
		return
	}
	if err != nil {
		jsonServiceError(c, err, "password change")
		return
	}
	jsonMsg(c, "password changed")
}

func (a *AuthController) verify(c *gin.Context) {
	roleVal, _ := c.Get(middleware.CtxRole)
	jsonData(c, http.StatusOK, "token valid", gin.H{
		"userId": currentUserID(c),
		"role":   roleVal,
	})
}
