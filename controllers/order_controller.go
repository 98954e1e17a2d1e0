package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pos-backend/pkg/resp"
	"pos-backend/services"
	"pos-backend/utils"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// GET /orders/
func (ctl *OrderController) List(c *gin.Context) {
	orders, err := ctl.orders.List(utils.CurrentGrant(c), c.Query("payment_status"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

// GET /orders/:id/
func (ctl *OrderController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	order, err := ctl.orders.Get(utils.CurrentGrant(c), uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// POST /orders/
func (ctl *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := ctl.orders.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order, "pedido criado com sucesso")
}

// PATCH /orders/:id/
func (ctl *OrderController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.UpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := ctl.orders.Update(utils.CurrentGrant(c), uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, order, "pedido atualizado com sucesso")
}

// DELETE /orders/:id/?include_paid=true
func (ctl *OrderController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	includePaid := c.Query("include_paid") == "true"

	if err := ctl.orders.Delete(utils.CurrentGrant(c), uint(id), includePaid); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, nil, "pedido removido com sucesso")
}

// POST /orders/bulk_delete/
func (ctl *OrderController) BulkDelete(c *gin.Context) {
	var req services.BulkDeleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	res, err := ctl.orders.BulkDelete(utils.CurrentGrant(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, res, "pedidos removidos com sucesso")
}

// POST /orders/:id/add_item/
func (ctl *OrderController) AddItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.AddItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := ctl.orders.AddItem(utils.CurrentGrant(c), uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, item, "item adicionado ao pedido")
}

// PATCH /order-items/:id/
func (ctl *OrderController) UpdateItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := ctl.orders.UpdateItemQuantity(utils.CurrentGrant(c), uint(id), req.Quantity)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, item, "item atualizado com sucesso")
}

// DELETE /order-items/:id/
func (ctl *OrderController) RemoveItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.orders.RemoveItem(utils.CurrentGrant(c), uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, nil, "item removido do pedido")
}
