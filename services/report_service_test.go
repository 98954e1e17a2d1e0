package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-backend/entity"
)

// seedReportData builds the scenario the report tests share:
//
//	order 1: 2x 22.50 + 1x 5.00, fee 6.00, paid 56.00 via pix
//	order 2: 1x 22.50, no fee, payment pending 22.50
//	order 3: empty, no payment
//	one 100.00 ingredients expense
func seedReportData(t *testing.T, f *fixture) {
	t.Helper()
	marmita := f.product(t, "Marmita G", "22.50", true)
	refri := f.product(t, "Refrigerante", "5.00", true)

	fee := mustDecimal(t, "6.00")
	order1, err := f.orders.Create(adminGrant.UserID, &CreateOrderReq{DeliveryFee: &fee})
	require.NoError(t, err)
	_, err = f.orders.AddItem(adminGrant, order1.ID, &AddItemReq{ProductID: marmita.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.orders.AddItem(adminGrant, order1.ID, &AddItemReq{ProductID: refri.ID, Quantity: 1})
	require.NoError(t, err)
	payment, err := f.payments.Create(&CreatePaymentReq{OrderID: order1.ID, Method: string(entity.MethodPix)})
	require.NoError(t, err)
	_, err = f.payments.Finalize(payment.ID)
	require.NoError(t, err)

	order2, err := f.orders.Create(adminGrant.UserID, &CreateOrderReq{})
	require.NoError(t, err)
	_, err = f.orders.AddItem(adminGrant, order2.ID, &AddItemReq{ProductID: marmita.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.payments.Create(&CreatePaymentReq{OrderID: order2.ID, Method: string(entity.MethodCash)})
	require.NoError(t, err)

	f.openOrder(t)

	_, err = f.expenses.Create(adminGrant.UserID, &ExpenseReq{
		Description: "Compra da semana",
		Amount:      mustDecimal(t, "100.00"),
		Category:    string(entity.ExpenseIngredients),
	})
	require.NoError(t, err)
}

func TestDashboardReport(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	report, err := f.reports.Dashboard()
	require.NoError(t, err)

	s := report.Summary
	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 3, s.OpenOrders)
	assert.Equal(t, 0, s.ClosedOrders)
	assert.Equal(t, 2, s.PendingPayments)
	assert.InDelta(t, 56.00, s.TotalRevenue, 0.001)
	assert.InDelta(t, 50.00, s.TotalProductsRevenue, 0.001)
	assert.InDelta(t, 6.00, s.TotalDeliveryFees, 0.001)
	assert.InDelta(t, 100.00, s.TotalExpenses, 0.001)
	assert.InDelta(t, -44.00, s.Profit, 0.001)
	assert.InDelta(t, 56.00, s.RecentRevenue, 0.001)

	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, "Marmita G", report.TopProducts[0].Name)
	assert.Equal(t, 3, report.TopProducts[0].TotalQuantity)
	assert.InDelta(t, 67.50, report.TopProducts[0].TotalRevenue, 0.001)

	require.Len(t, report.OrdersByStatus, 1)
	assert.Equal(t, string(entity.OrderPending), report.OrdersByStatus[0].Status)
	assert.Equal(t, 3, report.OrdersByStatus[0].Count)
}

func TestSalesReport(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	report, err := f.reports.Sales(SalesParams{})
	require.NoError(t, err)
	assert.Equal(t, "day", report.Period.GroupBy)
	assert.InDelta(t, 56.00, report.Summary.TotalSales, 0.001)
	assert.Equal(t, 1, report.Summary.TotalOrders)

	require.Len(t, report.SalesByPeriod, 1)
	assert.Equal(t, 1, report.SalesByPeriod[0].Count)

	require.Len(t, report.SalesByMethod, 1)
	assert.Equal(t, string(entity.MethodPix), report.SalesByMethod[0].Method)
	assert.Equal(t, "PIX", report.SalesByMethod[0].MethodDisplay)

	filtered, err := f.reports.Sales(SalesParams{Method: string(entity.MethodCash)})
	require.NoError(t, err)
	assert.Zero(t, filtered.Summary.TotalOrders)

	_, err = f.reports.Sales(SalesParams{StartDate: "31/01/2024"})
	require.Error(t, err)
}

func TestProductsReportSplitsDeliveryFee(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	report, err := f.reports.Products(ProductsParams{})
	require.NoError(t, err)

	require.Len(t, report.Products, 2)
	marmita, refri := report.Products[0], report.Products[1]
	assert.Equal(t, "Marmita G", marmita.Name)
	assert.Equal(t, 2, marmita.TotalQuantity)
	// 45.00 in items plus half of the 6.00 delivery fee.
	assert.InDelta(t, 48.00, marmita.TotalRevenue, 0.001)
	assert.Equal(t, 1, marmita.OrderCount)

	assert.Equal(t, "Refrigerante", refri.Name)
	assert.InDelta(t, 8.00, refri.TotalRevenue, 0.001)

	assert.Equal(t, 3, report.Summary.TotalProductsSold)
	assert.InDelta(t, 56.00, report.Summary.TotalRevenue, 0.001)
	assert.Equal(t, 2, report.Summary.ProductsCount)
}

func TestProductsReportLimitAndCategory(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	limited, err := f.reports.Products(ProductsParams{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited.Products, 1)
	assert.Equal(t, "Marmita G", limited.Products[0].Name)

	none, err := f.reports.Products(ProductsParams{Category: string(entity.CategorySobremesas)})
	require.NoError(t, err)
	assert.Empty(t, none.Products)
}

func TestOrdersReport(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	report, err := f.reports.Orders(OrdersParams{})
	require.NoError(t, err)

	s := report.Summary
	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 1, s.OrdersWithPayment)
	assert.Equal(t, 2, s.OrdersWithoutPayment)
	assert.InDelta(t, 72.50, s.TotalValue, 0.001)
	assert.InDelta(t, 72.50/3, s.AvgOrderValue, 0.001)
}

func TestFinancialReport(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	report, err := f.reports.Financial("", "")
	require.NoError(t, err)

	s := report.Summary
	assert.InDelta(t, 56.00, s.TotalRevenue, 0.001)
	assert.InDelta(t, 50.00, s.ProductsRevenue, 0.001)
	assert.InDelta(t, 6.00, s.DeliveryFees, 0.001)
	assert.InDelta(t, 22.50, s.PendingRevenue, 0.001)
	assert.InDelta(t, 100.00, s.TotalExpenses, 0.001)
	assert.InDelta(t, -44.00, s.NetProfit, 0.001)
	assert.Equal(t, 2, s.TotalPayments)
	assert.Equal(t, 1, s.CompletedPayments)
	assert.Equal(t, 1, s.PendingPayments)
	assert.Equal(t, 0, s.FailedPayments)

	require.Len(t, report.RevenueByMethod, 1)
	assert.Equal(t, "PIX", report.RevenueByMethod[0].MethodDisplay)
	assert.Len(t, report.PaymentsByStatus, 2)
	require.Len(t, report.ExpensesByCategory, 1)
	assert.Equal(t, "Ingredientes", report.ExpensesByCategory[0].CategoryDisplay)
}

func TestExpensesReport(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	report, err := f.reports.Expenses("", "", "")
	require.NoError(t, err)
	assert.InDelta(t, 100.00, report.Summary.TotalExpenses, 0.001)
	assert.Equal(t, 1, report.Summary.TotalCount)
	assert.InDelta(t, 100.00, report.Summary.AvgExpense, 0.001)

	empty, err := f.reports.Expenses("", "", string(entity.ExpenseRent))
	require.NoError(t, err)
	assert.Zero(t, empty.Summary.TotalCount)
}

func TestExportSalesCSV(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	var buf bytes.Buffer
	require.NoError(t, f.reports.ExportSalesCSV(&buf, SalesParams{}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\uFEFF"), "missing UTF-8 BOM")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Data;Pedido ID;Método de Pagamento;Valor;Status",
		strings.TrimPrefix(strings.TrimSpace(lines[0]), "\uFEFF"))
	assert.Contains(t, lines[1], ";PIX;")
	assert.Contains(t, lines[1], ";56,00;")
	assert.Contains(t, lines[1], "Concluído")
}

func TestExportFinancialCSVIncludesPending(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	var buf bytes.Buffer
	require.NoError(t, f.reports.ExportFinancialCSV(&buf, "", ""))

	out := buf.String()
	assert.Contains(t, out, "Pendente")
	assert.Contains(t, out, "Concluído")
	assert.Contains(t, out, "22,50")
	assert.Contains(t, out, "56,00")
}

func TestExportCSVRejectsBadDates(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	err := f.reports.ExportExpensesCSV(&buf, "ontem", "", "")
	require.Error(t, err)
	assert.Zero(t, buf.Len(), "nothing may be written on a bad filter")
}
