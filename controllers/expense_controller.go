package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pos-backend/pkg/resp"
	"pos-backend/services"
	"pos-backend/utils"
)

type ExpenseController struct {
	expenses *services.ExpenseService
}

func NewExpenseController(expenses *services.ExpenseService) *ExpenseController {
	return &ExpenseController{expenses: expenses}
}

// GET /expenses/
func (ctl *ExpenseController) List(c *gin.Context) {
	expenses, err := ctl.expenses.List(
		c.Query("start_date"), c.Query("end_date"), c.Query("category"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, expenses)
}

// GET /expenses/:id/
func (ctl *ExpenseController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	expense, err := ctl.expenses.Get(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, expense)
}

// POST /expenses/
func (ctl *ExpenseController) Create(c *gin.Context) {
	var req services.ExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	expense, err := ctl.expenses.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, expense, "despesa registrada com sucesso")
}

// PATCH /expenses/:id/
func (ctl *ExpenseController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.ExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	expense, err := ctl.expenses.Update(uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, expense, "despesa atualizada com sucesso")
}

// DELETE /expenses/:id/
func (ctl *ExpenseController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.expenses.Delete(uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, nil, "despesa removida com sucesso")
}
