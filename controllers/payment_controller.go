package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pos-backend/pkg/resp"
	"pos-backend/services"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// GET /payments/
func (ctl *PaymentController) List(c *gin.Context) {
	payments, err := ctl.payments.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, payments)
}

// GET /payments/:id/
func (ctl *PaymentController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	payment, err := ctl.payments.Get(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, payment)
}

// POST /payments/
func (ctl *PaymentController) Create(c *gin.Context) {
	var req services.CreatePaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	payment, err := ctl.payments.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, payment, "pagamento criado com sucesso")
}

// POST /payments/:id/finalize/
func (ctl *PaymentController) Finalize(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	payment, err := ctl.payments.Finalize(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, payment, "pagamento finalizado com sucesso")
}

// POST /payments/:id/fail/
func (ctl *PaymentController) Fail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	payment, err := ctl.payments.Fail(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, payment, "pagamento marcado como falho")
}
