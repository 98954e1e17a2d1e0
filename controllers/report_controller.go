package controllers

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pos-backend/pkg/brcsv"
	"pos-backend/pkg/resp"
	"pos-backend/services"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// GET /reports/dashboard/
func (ctl *ReportController) Dashboard(c *gin.Context) {
	report, err := ctl.reports.Dashboard()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, report)
}

func salesParams(c *gin.Context) services.SalesParams {
	return services.SalesParams{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		GroupBy:   c.DefaultQuery("group_by", "day"),
		Method:    c.Query("payment_method"),
	}
}

// GET /reports/sales/
func (ctl *ReportController) Sales(c *gin.Context) {
	report, err := ctl.reports.Sales(salesParams(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, report)
}

func productsParams(c *gin.Context) services.ProductsParams {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return services.ProductsParams{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Limit:     limit,
		Category:  c.Query("category"),
	}
}

// GET /reports/products/
func (ctl *ReportController) Products(c *gin.Context) {
	report, err := ctl.reports.Products(productsParams(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, report)
}

func ordersParams(c *gin.Context) services.OrdersParams {
	p := services.OrdersParams{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Status:    c.Query("status"),
	}
	if v := c.Query("is_open"); v != "" {
		isOpen := strings.EqualFold(v, "true")
		p.IsOpen = &isOpen
	}
	return p
}

// GET /reports/orders/
func (ctl *ReportController) Orders(c *gin.Context) {
	report, err := ctl.reports.Orders(ordersParams(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, report)
}

// GET /reports/financial/
func (ctl *ReportController) Financial(c *gin.Context) {
	report, err := ctl.reports.Financial(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, report)
}

// GET /reports/expenses/
func (ctl *ReportController) Expenses(c *gin.Context) {
	report, err := ctl.reports.Expenses(
		c.Query("start_date"), c.Query("end_date"), c.Query("category"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, report)
}

// sendCSV buffers the whole export before writing so a bad filter still
// comes back as the JSON error envelope instead of a truncated file.
func sendCSV(c *gin.Context, report string, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		resp.Error(c, err)
		return
	}
	filename := brcsv.Filename(report, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "text/csv; charset=utf-8", buf.Bytes())
}

// GET /reports/sales/export_csv/
func (ctl *ReportController) ExportSalesCSV(c *gin.Context) {
	p := salesParams(c)
	sendCSV(c, "vendas", func(buf *bytes.Buffer) error {
		return ctl.reports.ExportSalesCSV(buf, p)
	})
}

// GET /reports/products/export_csv/
func (ctl *ReportController) ExportProductsCSV(c *gin.Context) {
	p := productsParams(c)
	sendCSV(c, "produtos", func(buf *bytes.Buffer) error {
		return ctl.reports.ExportProductsCSV(buf, p)
	})
}

// GET /reports/orders/export_csv/
func (ctl *ReportController) ExportOrdersCSV(c *gin.Context) {
	p := ordersParams(c)
	sendCSV(c, "pedidos", func(buf *bytes.Buffer) error {
		return ctl.reports.ExportOrdersCSV(buf, p)
	})
}

// GET /reports/financial/export_csv/
func (ctl *ReportController) ExportFinancialCSV(c *gin.Context) {
	start, end := c.Query("start_date"), c.Query("end_date")
	sendCSV(c, "financeiro", func(buf *bytes.Buffer) error {
		return ctl.reports.ExportFinancialCSV(buf, start, end)
	})
}

// GET /reports/expenses/export_csv/
func (ctl *ReportController) ExportExpensesCSV(c *gin.Context) {
	start, end, category := c.Query("start_date"), c.Query("end_date"), c.Query("category")
	sendCSV(c, "despesas", func(buf *bytes.Buffer) error {
		return ctl.reports.ExportExpensesCSV(buf, start, end, category)
	})
}
