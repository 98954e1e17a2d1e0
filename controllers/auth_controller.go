package controllers

import (
	"github.com/gin-gonic/gin"

	"pos-backend/pkg/resp"
	"pos-backend/services"
	"pos-backend/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// POST /register/
func (ctl *AuthController) Register(c *gin.Context) {
	var req services.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.auth.Register(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, userView(user), "usuário criado com sucesso")
}

// POST /token/
func (ctl *AuthController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	pair, user, err := ctl.auth.Login(req.Username, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user":    userView(user),
	})
}

// POST /token/refresh/
func (ctl *AuthController) Refresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	access, err := ctl.auth.Refresh(req.Refresh)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"access": access})
}

// GET /user/
func (ctl *AuthController) Profile(c *gin.Context) {
	user, err := ctl.auth.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	view := userView(user)
	// The profile endpoint reports the effective role: a cashier who is
	// also admin answers as admin only.
	view["is_caixa"] = user.IsCashier() && !user.IsAdmin()
	resp.OK(c, view)
}
