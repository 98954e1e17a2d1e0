package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pos-backend/entity"
	"pos-backend/pkg/resp"
	"pos-backend/services"
)

// userView is the wire shape for an operator account. Capabilities go
// out as the legacy group names the frontend has always consumed.
func userView(u *entity.User) gin.H {
	return gin.H{
		"id":           u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"first_name":   u.FirstName,
		"last_name":    u.LastName,
		"full_name":    u.FullName(),
		"is_active":    u.IsActive,
		"is_superuser": u.IsSuperuser,
		"is_admin":     u.IsAdmin(),
		"is_caixa":     u.IsCashier(),
		"groups":       u.Capabilities.GroupNames(),
	}
}

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// GET /users/
func (ctl *UserController) List(c *gin.Context) {
	users, err := ctl.users.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	resp.OK(c, views)
}

// GET /users/:id/
func (ctl *UserController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	user, err := ctl.users.Get(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, userView(user))
}

// POST /users/
func (ctl *UserController) Create(c *gin.Context) {
	var req services.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.users.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, userView(user), "usuário criado com sucesso")
}

// PATCH /users/:id/
func (ctl *UserController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.users.Update(uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, userView(user), "usuário atualizado com sucesso")
}

// DELETE /users/:id/
func (ctl *UserController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.users.Delete(uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, nil, "usuário removido com sucesso")
}
