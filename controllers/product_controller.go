package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pos-backend/pkg/resp"
	"pos-backend/services"
	"pos-backend/utils"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// GET /products/
func (ctl *ProductController) List(c *gin.Context) {
	products, err := ctl.products.List(utils.CurrentGrant(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, products)
}

// GET /products/:id/
func (ctl *ProductController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	product, err := ctl.products.Get(utils.CurrentGrant(c), uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, product)
}

// POST /products/
func (ctl *ProductController) Create(c *gin.Context) {
	var req services.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	product, err := ctl.products.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, product, "produto criado com sucesso")
}

// PATCH /products/:id/
func (ctl *ProductController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	product, err := ctl.products.Update(uint(id), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, product, "produto atualizado com sucesso")
}

// DELETE /products/:id/
func (ctl *ProductController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.products.Delete(uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, nil, "produto removido com sucesso")
}
