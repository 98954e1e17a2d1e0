package services

import (
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"pos-backend/entity"
	"pos-backend/pkg/apperrors"
	"pos-backend/pkg/brcsv"
	"pos-backend/repository"
)

const reportDateLayout = "2006-01-02"

// ReportService aggregates the back-office numbers. Every money figure
// is accumulated as a decimal and only converted to float at the edge
// of the response.
type ReportService struct {
	repo *repository.ReportRepository
}

func NewReportService(repo *repository.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// parseDateRange turns the start_date/end_date query values into
// timestamps. The end date covers its whole day.
func parseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if startDate != "" {
		t, err := time.Parse(reportDateLayout, startDate)
		if err != nil {
			return nil, nil, apperrors.BusinessRule("Formato de data inválido. Use YYYY-MM-DD.")
		}
		from = &t
	}
	if endDate != "" {
		t, err := time.Parse(reportDateLayout, endDate)
		if err != nil {
			return nil, nil, apperrors.BusinessRule("Formato de data inválido. Use YYYY-MM-DD.")
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}
	return from, to, nil
}

// moneyBucket accumulates a sum and a row count for one group key.
type moneyBucket struct {
	total decimal.Decimal
	count int
}

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MethodTotal struct {
	Method        string  `json:"method"`
	MethodDisplay string  `json:"method_display"`
	Total         float64 `json:"total"`
	Count         int     `json:"count"`
}

type CategoryTotal struct {
	Category        string  `json:"category"`
	CategoryDisplay string  `json:"category_display"`
	Total           float64 `json:"total"`
	Count           int     `json:"count"`
}

type TopProduct struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// --- dashboard ---

type DashboardSummary struct {
	TotalOrders           int     `json:"total_orders"`
	OpenOrders            int     `json:"open_orders"`
	ClosedOrders          int     `json:"closed_orders"`
	TotalRevenue          float64 `json:"total_revenue"`
	TotalProductsRevenue  float64 `json:"total_products_revenue"`
	TotalDeliveryFees     float64 `json:"total_delivery_fees"`
	RecentRevenue         float64 `json:"recent_revenue"`
	RecentProductsRevenue float64 `json:"recent_products_revenue"`
	RecentDeliveryFees    float64 `json:"recent_delivery_fees"`
	TotalExpenses         float64 `json:"total_expenses"`
	RecentExpenses        float64 `json:"recent_expenses"`
	Profit                float64 `json:"profit"`
	RecentProfit          float64 `json:"recent_profit"`
	PendingPayments       int     `json:"pending_payments"`
}

type DashboardReport struct {
	Summary        DashboardSummary `json:"summary"`
	TopProducts    []TopProduct     `json:"top_products"`
	OrdersByStatus []StatusCount    `json:"orders_by_status"`
	Period         struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"period"`
}

// Dashboard summarises the whole history plus a rolling 30-day window.
// Revenue counts completed payments only; the top-products list has
// always counted every item regardless of payment state.
func (s *ReportService) Dashboard() (*DashboardReport, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -30)

	orders, err := s.repo.Orders(repository.ReportOrderFilter{})
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.Expenses(nil, nil, "")
	if err != nil {
		return nil, err
	}
	items, err := s.repo.AllOrderItems()
	if err != nil {
		return nil, err
	}

	var (
		openOrders, closedOrders, pendingPayments          int
		totalRevenue, productsRevenue, deliveryFees        decimal.Decimal
		recentRevenue, recentProductsRev, recentDeliveries decimal.Decimal
	)
	byStatus := map[entity.OrderStatus]int{}
	for i := range orders {
		o := &orders[i]
		byStatus[o.Status]++
		if o.IsOpen {
			openOrders++
		} else {
			closedOrders++
		}
		if o.Payment == nil || o.Payment.Status == entity.PaymentPending {
			pendingPayments++
		}
		if o.IsPaid() {
			totalRevenue = totalRevenue.Add(o.Payment.Amount)
			productsRevenue = productsRevenue.Add(o.Total)
			deliveryFees = deliveryFees.Add(o.DeliveryFee)
			if o.Payment.PaidAt != nil && !o.Payment.PaidAt.Before(since) {
				recentRevenue = recentRevenue.Add(o.Payment.Amount)
				recentProductsRev = recentProductsRev.Add(o.Total)
				recentDeliveries = recentDeliveries.Add(o.DeliveryFee)
			}
		}
	}

	var totalExpenses, recentExpenses decimal.Decimal
	for i := range expenses {
		totalExpenses = totalExpenses.Add(expenses[i].Amount)
		if !expenses[i].CreatedAt.Before(since) {
			recentExpenses = recentExpenses.Add(expenses[i].Amount)
		}
	}

	report := &DashboardReport{
		Summary: DashboardSummary{
			TotalOrders:           len(orders),
			OpenOrders:            openOrders,
			ClosedOrders:          closedOrders,
			TotalRevenue:          totalRevenue.InexactFloat64(),
			TotalProductsRevenue:  productsRevenue.InexactFloat64(),
			TotalDeliveryFees:     deliveryFees.InexactFloat64(),
			RecentRevenue:         recentRevenue.InexactFloat64(),
			RecentProductsRevenue: recentProductsRev.InexactFloat64(),
			RecentDeliveryFees:    recentDeliveries.InexactFloat64(),
			TotalExpenses:         totalExpenses.InexactFloat64(),
			RecentExpenses:        recentExpenses.InexactFloat64(),
			Profit:                totalRevenue.Sub(totalExpenses).InexactFloat64(),
			RecentProfit:          recentRevenue.Sub(recentExpenses).InexactFloat64(),
			PendingPayments:       pendingPayments,
		},
		TopProducts:    topProducts(items, 5),
		OrdersByStatus: ordersByStatus(byStatus),
	}
	report.Period.Start = since.Format(time.RFC3339)
	report.Period.End = now.Format(time.RFC3339)
	return report, nil
}

func topProducts(items []entity.OrderItem, limit int) []TopProduct {
	type acc struct {
		name     string
		quantity int
		revenue  decimal.Decimal
	}
	byProduct := map[uint]*acc{}
	for i := range items {
		it := &items[i]
		a := byProduct[it.ProductID]
		if a == nil {
			a = &acc{name: it.Product.Name}
			byProduct[it.ProductID] = a
		}
		a.quantity += it.Quantity
		a.revenue = a.revenue.Add(it.Subtotal())
	}

	top := make([]TopProduct, 0, len(byProduct))
	for id, a := range byProduct {
		top = append(top, TopProduct{
			ID:            id,
			Name:          a.name,
			TotalQuantity: a.quantity,
			TotalRevenue:  a.revenue.InexactFloat64(),
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].TotalQuantity != top[j].TotalQuantity {
			return top[i].TotalQuantity > top[j].TotalQuantity
		}
		return top[i].ID < top[j].ID
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

var statusOrder = []entity.OrderStatus{
	entity.OrderPending, entity.OrderConfirmed, entity.OrderPreparing,
	entity.OrderReady, entity.OrderDelivered, entity.OrderCancelled,
}

func ordersByStatus(counts map[entity.OrderStatus]int) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	for _, st := range statusOrder {
		if n, ok := counts[st]; ok {
			out = append(out, StatusCount{Status: string(st), Count: n})
		}
	}
	return out
}

// --- sales ---

type SalesParams struct {
	StartDate string
	EndDate   string
	GroupBy   string
	Method    string
}

type SalesPeriodRow struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
}

type SalesReport struct {
	Period struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		GroupBy   string `json:"group_by"`
	} `json:"period"`
	Summary struct {
		TotalSales  float64 `json:"total_sales"`
		TotalOrders int     `json:"total_orders"`
	} `json:"summary"`
	SalesByPeriod []SalesPeriodRow `json:"sales_by_period"`
	SalesByMethod []MethodTotal    `json:"sales_by_method"`
}

// Sales covers completed payments only, windowed on paid_at.
func (s *ReportService) Sales(p SalesParams) (*SalesReport, error) {
	from, to, err := parseDateRange(p.StartDate, p.EndDate)
	if err != nil {
		return nil, err
	}
	groupBy := p.GroupBy
	if groupBy != "month" && groupBy != "year" {
		groupBy = "day"
	}

	payments, err := s.repo.Payments(repository.PaymentFilter{
		Status:   entity.PaymentCompleted,
		Method:   entity.PaymentMethod(p.Method),
		PaidFrom: from,
		PaidTo:   to,
	})
	if err != nil {
		return nil, err
	}

	byPeriod := map[string]*moneyBucket{}
	byMethod := map[entity.PaymentMethod]*moneyBucket{}
	var totalSales decimal.Decimal

	for i := range payments {
		pay := &payments[i]
		totalSales = totalSales.Add(pay.Amount)

		key := truncPeriod(pay.PaidAt, pay.CreatedAt, groupBy)
		b := byPeriod[key]
		if b == nil {
			b = &moneyBucket{}
			byPeriod[key] = b
		}
		b.total = b.total.Add(pay.Amount)
		b.count++

		m := byMethod[pay.Method]
		if m == nil {
			m = &moneyBucket{}
			byMethod[pay.Method] = m
		}
		m.total = m.total.Add(pay.Amount)
		m.count++
	}

	byPeriodRows := make([]SalesPeriodRow, 0, len(byPeriod))
	for key, b := range byPeriod {
		byPeriodRows = append(byPeriodRows, SalesPeriodRow{
			Period: key,
			Total:  b.total.InexactFloat64(),
			Count:  b.count,
		})
	}
	sort.Slice(byPeriodRows, func(i, j int) bool {
		return byPeriodRows[i].Period < byPeriodRows[j].Period
	})

	byMethodRows := make([]MethodTotal, 0, len(byMethod))
	for method, b := range byMethod {
		byMethodRows = append(byMethodRows, MethodTotal{
			Method:        string(method),
			MethodDisplay: method.Display(),
			Total:         b.total.InexactFloat64(),
			Count:         b.count,
		})
	}
	sort.Slice(byMethodRows, func(i, j int) bool {
		return byMethodRows[i].Total > byMethodRows[j].Total
	})

	report := &SalesReport{
		SalesByPeriod: byPeriodRows,
		SalesByMethod: byMethodRows,
	}
	report.Period.StartDate = p.StartDate
	report.Period.EndDate = p.EndDate
	report.Period.GroupBy = groupBy
	report.Summary.TotalSales = totalSales.InexactFloat64()
	report.Summary.TotalOrders = len(payments)
	return report, nil
}

func truncPeriod(paidAt *time.Time, fallback time.Time, groupBy string) string {
	t := fallback
	if paidAt != nil {
		t = *paidAt
	}
	switch groupBy {
	case "month":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Format(reportDateLayout)
	case "year":
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location()).Format(reportDateLayout)
	default:
		return t.Format(reportDateLayout)
	}
}

// --- products ---

type ProductsParams struct {
	StartDate string
	EndDate   string
	Limit     int
	Category  string
}

type ProductSalesRow struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	CurrentPrice  float64 `json:"current_price"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
}

type ProductsReport struct {
	Period  Period `json:"period"`
	Summary struct {
		TotalProductsSold int     `json:"total_products_sold"`
		TotalRevenue      float64 `json:"total_revenue"`
		ProductsCount     int     `json:"products_count"`
	} `json:"summary"`
	Products []ProductSalesRow `json:"products"`
}

// Products ranks products by units sold across paid orders. Each order's
// delivery fee is split evenly across the distinct products it contains
// and folded into their revenue.
func (s *ReportService) Products(p ProductsParams) (*ProductsReport, error) {
	rows, err := s.productSales(p)
	if err != nil {
		return nil, err
	}

	report := &ProductsReport{Period: Period{StartDate: p.StartDate, EndDate: p.EndDate}, Products: rows}
	var revenue float64
	for _, row := range rows {
		report.Summary.TotalProductsSold += row.TotalQuantity
		revenue += row.TotalRevenue
	}
	report.Summary.TotalRevenue = revenue
	report.Summary.ProductsCount = len(rows)
	return report, nil
}

func (s *ReportService) productSales(p ProductsParams) ([]ProductSalesRow, error) {
	from, to, err := parseDateRange(p.StartDate, p.EndDate)
	if err != nil {
		return nil, err
	}
	limit := p.Limit
	if limit <= 0 {
		limit = 10
	}
	category := entity.ProductCategory(p.Category)

	orders, err := s.repo.PaidOrders(from, to)
	if err != nil {
		return nil, err
	}

	type acc struct {
		name     string
		category entity.ProductCategory
		price    decimal.Decimal
		quantity int
		revenue  decimal.Decimal
		orders   map[uint]struct{}
	}
	byProduct := map[uint]*acc{}

	for i := range orders {
		o := &orders[i]
		for j := range o.Items {
			it := &o.Items[j]
			if category != "" && it.Product.Category != category {
				continue
			}
			a := byProduct[it.ProductID]
			if a == nil {
				a = &acc{
					name:     it.Product.Name,
					category: it.Product.Category,
					price:    it.Product.Price,
					orders:   map[uint]struct{}{},
				}
				byProduct[it.ProductID] = a
			}
			a.quantity += it.Quantity
			a.revenue = a.revenue.Add(it.Subtotal())
			a.orders[o.ID] = struct{}{}
		}
	}

	ids := make([]uint, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := byProduct[ids[i]], byProduct[ids[j]]
		if a.quantity != b.quantity {
			return a.quantity > b.quantity
		}
		return ids[i] < ids[j]
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}
	ranked := map[uint]bool{}
	for _, id := range ids {
		ranked[id] = true
	}

	// Fold each order's delivery fee into its products' revenue, one
	// even share per distinct product in the order.
	for i := range orders {
		o := &orders[i]
		if !o.DeliveryFee.IsPositive() {
			continue
		}
		distinct := map[uint]struct{}{}
		for j := range o.Items {
			distinct[o.Items[j].ProductID] = struct{}{}
		}
		if len(distinct) == 0 {
			continue
		}
		share := o.DeliveryFee.Div(decimal.NewFromInt(int64(len(distinct))))
		seen := map[uint]bool{}
		for j := range o.Items {
			it := &o.Items[j]
			if !ranked[it.ProductID] || seen[it.ProductID] {
				continue
			}
			if category != "" && it.Product.Category != category {
				continue
			}
			seen[it.ProductID] = true
			byProduct[it.ProductID].revenue = byProduct[it.ProductID].revenue.Add(share)
		}
	}

	rows := make([]ProductSalesRow, 0, len(ids))
	for _, id := range ids {
		a := byProduct[id]
		rows = append(rows, ProductSalesRow{
			ID:            id,
			Name:          a.name,
			Category:      string(a.category),
			CurrentPrice:  a.price.InexactFloat64(),
			TotalQuantity: a.quantity,
			TotalRevenue:  a.revenue.InexactFloat64(),
			OrderCount:    len(a.orders),
		})
	}
	return rows, nil
}

// --- orders ---

type OrdersParams struct {
	StartDate string
	EndDate   string
	Status    string
	IsOpen    *bool
}

type OrdersReport struct {
	Period  Period `json:"period"`
	Summary struct {
		TotalOrders          int     `json:"total_orders"`
		OpenOrders           int     `json:"open_orders"`
		ClosedOrders         int     `json:"closed_orders"`
		OrdersWithPayment    int     `json:"orders_with_payment"`
		OrdersWithoutPayment int     `json:"orders_without_payment"`
		TotalValue           float64 `json:"total_value"`
		AvgOrderValue        float64 `json:"avg_order_value"`
	} `json:"summary"`
	OrdersByStatus []StatusCount `json:"orders_by_status"`
}

func (s *ReportService) Orders(p OrdersParams) (*OrdersReport, error) {
	orders, err := s.filteredOrders(p)
	if err != nil {
		return nil, err
	}

	report := &OrdersReport{Period: Period{StartDate: p.StartDate, EndDate: p.EndDate}}
	byStatus := map[entity.OrderStatus]int{}
	var totalValue decimal.Decimal
	for i := range orders {
		o := &orders[i]
		byStatus[o.Status]++
		if o.IsOpen {
			report.Summary.OpenOrders++
		} else {
			report.Summary.ClosedOrders++
		}
		switch {
		case o.IsPaid():
			report.Summary.OrdersWithPayment++
		case o.Payment == nil,
			o.Payment.Status == entity.PaymentPending,
			o.Payment.Status == entity.PaymentProcessing:
			report.Summary.OrdersWithoutPayment++
		}
		totalValue = totalValue.Add(o.Total)
	}

	report.Summary.TotalOrders = len(orders)
	report.Summary.TotalValue = totalValue.InexactFloat64()
	if len(orders) > 0 {
		report.Summary.AvgOrderValue = totalValue.
			Div(decimal.NewFromInt(int64(len(orders)))).InexactFloat64()
	}
	report.OrdersByStatus = ordersByStatus(byStatus)
	return report, nil
}

func (s *ReportService) filteredOrders(p OrdersParams) ([]entity.Order, error) {
	from, to, err := parseDateRange(p.StartDate, p.EndDate)
	if err != nil {
		return nil, err
	}
	return s.repo.Orders(repository.ReportOrderFilter{
		From:   from,
		To:     to,
		Status: entity.OrderStatus(p.Status),
		IsOpen: p.IsOpen,
	})
}

// --- financial ---

type FinancialReport struct {
	Period  Period `json:"period"`
	Summary struct {
		TotalRevenue      float64 `json:"total_revenue"`
		ProductsRevenue   float64 `json:"products_revenue"`
		DeliveryFees      float64 `json:"delivery_fees"`
		PendingRevenue    float64 `json:"pending_revenue"`
		TotalExpenses     float64 `json:"total_expenses"`
		NetProfit         float64 `json:"net_profit"`
		TotalPayments     int     `json:"total_payments"`
		CompletedPayments int     `json:"completed_payments"`
		PendingPayments   int     `json:"pending_payments"`
		FailedPayments    int     `json:"failed_payments"`
	} `json:"summary"`
	RevenueByMethod    []MethodTotal    `json:"revenue_by_method"`
	PaymentsByStatus   []PaymentsStatus `json:"payments_by_status"`
	ExpensesByCategory []CategoryTotal  `json:"expenses_by_category"`
}

type PaymentsStatus struct {
	Status        string  `json:"status"`
	StatusDisplay string  `json:"status_display"`
	Total         float64 `json:"total"`
	Count         int     `json:"count"`
}

// Financial windows payments and expenses on created_at, so a payment
// created in the period counts here even if it completed later.
func (s *ReportService) Financial(startDate, endDate string) (*FinancialReport, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.Payments(repository.PaymentFilter{
		CreatedFrom: from,
		CreatedTo:   to,
	})
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.Expenses(from, to, "")
	if err != nil {
		return nil, err
	}

	byMethod := map[entity.PaymentMethod]*moneyBucket{}
	byStatus := map[entity.PaymentStatus]*moneyBucket{}
	var totalRevenue, productsRevenue, deliveryFees, pendingRevenue decimal.Decimal

	report := &FinancialReport{Period: Period{StartDate: startDate, EndDate: endDate}}
	for i := range payments {
		pay := &payments[i]

		b := byStatus[pay.Status]
		if b == nil {
			b = &moneyBucket{}
			byStatus[pay.Status] = b
		}
		b.total = b.total.Add(pay.Amount)
		b.count++

		switch pay.Status {
		case entity.PaymentCompleted:
			report.Summary.CompletedPayments++
			totalRevenue = totalRevenue.Add(pay.Amount)
			productsRevenue = productsRevenue.Add(pay.Order.Total)
			deliveryFees = deliveryFees.Add(pay.Order.DeliveryFee)

			m := byMethod[pay.Method]
			if m == nil {
				m = &moneyBucket{}
				byMethod[pay.Method] = m
			}
			m.total = m.total.Add(pay.Amount)
			m.count++
		case entity.PaymentPending:
			report.Summary.PendingPayments++
			pendingRevenue = pendingRevenue.Add(pay.Amount)
		case entity.PaymentFailed:
			report.Summary.FailedPayments++
		}
	}

	var totalExpenses decimal.Decimal
	byCategory := map[entity.ExpenseCategory]*moneyBucket{}
	for i := range expenses {
		e := &expenses[i]
		totalExpenses = totalExpenses.Add(e.Amount)
		b := byCategory[e.Category]
		if b == nil {
			b = &moneyBucket{}
			byCategory[e.Category] = b
		}
		b.total = b.total.Add(e.Amount)
		b.count++
	}

	report.Summary.TotalRevenue = totalRevenue.InexactFloat64()
	report.Summary.ProductsRevenue = productsRevenue.InexactFloat64()
	report.Summary.DeliveryFees = deliveryFees.InexactFloat64()
	report.Summary.PendingRevenue = pendingRevenue.InexactFloat64()
	report.Summary.TotalExpenses = totalExpenses.InexactFloat64()
	report.Summary.NetProfit = totalRevenue.Sub(totalExpenses).InexactFloat64()
	report.Summary.TotalPayments = len(payments)

	report.RevenueByMethod = make([]MethodTotal, 0, len(byMethod))
	for method, b := range byMethod {
		report.RevenueByMethod = append(report.RevenueByMethod, MethodTotal{
			Method:        string(method),
			MethodDisplay: method.Display(),
			Total:         b.total.InexactFloat64(),
			Count:         b.count,
		})
	}
	sort.Slice(report.RevenueByMethod, func(i, j int) bool {
		return report.RevenueByMethod[i].Total > report.RevenueByMethod[j].Total
	})

	report.PaymentsByStatus = make([]PaymentsStatus, 0, len(byStatus))
	for st, b := range byStatus {
		report.PaymentsByStatus = append(report.PaymentsByStatus, PaymentsStatus{
			Status:        string(st),
			StatusDisplay: st.Display(),
			Total:         b.total.InexactFloat64(),
			Count:         b.count,
		})
	}
	sort.Slice(report.PaymentsByStatus, func(i, j int) bool {
		return report.PaymentsByStatus[i].Status < report.PaymentsByStatus[j].Status
	})

	report.ExpensesByCategory = expensesByCategory(byCategory)
	return report, nil
}

// --- expenses ---

type ExpensesReport struct {
	Period  Period `json:"period"`
	Summary struct {
		TotalExpenses float64 `json:"total_expenses"`
		TotalCount    int     `json:"total_count"`
		AvgExpense    float64 `json:"avg_expense"`
	} `json:"summary"`
	ExpensesByCategory []CategoryTotal `json:"expenses_by_category"`
}

func (s *ReportService) Expenses(startDate, endDate, category string) (*ExpensesReport, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.Expenses(from, to, entity.ExpenseCategory(category))
	if err != nil {
		return nil, err
	}

	byCategory := map[entity.ExpenseCategory]*moneyBucket{}
	var total decimal.Decimal
	for i := range expenses {
		e := &expenses[i]
		total = total.Add(e.Amount)
		b := byCategory[e.Category]
		if b == nil {
			b = &moneyBucket{}
			byCategory[e.Category] = b
		}
		b.total = b.total.Add(e.Amount)
		b.count++
	}

	report := &ExpensesReport{Period: Period{StartDate: startDate, EndDate: endDate}}
	report.Summary.TotalExpenses = total.InexactFloat64()
	report.Summary.TotalCount = len(expenses)
	if len(expenses) > 0 {
		report.Summary.AvgExpense = total.
			Div(decimal.NewFromInt(int64(len(expenses)))).InexactFloat64()
	}
	report.ExpensesByCategory = expensesByCategory(byCategory)
	return report, nil
}

func expensesByCategory(byCategory map[entity.ExpenseCategory]*moneyBucket) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(byCategory))
	for cat, b := range byCategory {
		out = append(out, CategoryTotal{
			Category:        string(cat),
			CategoryDisplay: cat.Display(),
			Total:           b.total.InexactFloat64(),
			Count:           b.count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// --- CSV exports ---

// ExportSalesCSV streams one row per completed payment in the window.
func (s *ReportService) ExportSalesCSV(out io.Writer, p SalesParams) error {
	from, to, err := parseDateRange(p.StartDate, p.EndDate)
	if err != nil {
		return err
	}
	payments, err := s.repo.Payments(repository.PaymentFilter{
		Status:   entity.PaymentCompleted,
		Method:   entity.PaymentMethod(p.Method),
		PaidFrom: from,
		PaidTo:   to,
	})
	if err != nil {
		return err
	}

	w, err := brcsv.NewWriter(out)
	if err != nil {
		return err
	}
	if err := w.Write([]string{"Data", "Pedido ID", "Método de Pagamento", "Valor", "Status"}); err != nil {
		return err
	}
	for i := range payments {
		pay := &payments[i]
		record := []string{
			brcsv.TimePtr(pay.PaidAt),
			strconv.FormatUint(uint64(pay.OrderID), 10),
			pay.Method.Display(),
			brcsv.Money(pay.Amount),
			pay.Status.Display(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ExportProductsCSV streams the ranked product rows. The default row
// limit is wider than the JSON report's.
func (s *ReportService) ExportProductsCSV(out io.Writer, p ProductsParams) error {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	rows, err := s.productSales(p)
	if err != nil {
		return err
	}

	w, err := brcsv.NewWriter(out)
	if err != nil {
		return err
	}
	header := []string{"Produto", "Categoria", "Quantidade Vendida", "Número de Pedidos",
		"Receita Total (com taxa de entrega)", "Preço Atual"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Name,
			row.Category,
			strconv.Itoa(row.TotalQuantity),
			strconv.Itoa(row.OrderCount),
			brcsv.Money(decimal.NewFromFloat(row.TotalRevenue)),
			brcsv.Money(decimal.NewFromFloat(row.CurrentPrice)),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (s *ReportService) ExportOrdersCSV(out io.Writer, p OrdersParams) error {
	orders, err := s.filteredOrders(p)
	if err != nil {
		return err
	}

	w, err := brcsv.NewWriter(out)
	if err != nil {
		return err
	}
	header := []string{"ID", "Operador", "Status", "Aberto", "Total", "Data Criação",
		"Data Atualização", "Tem Pagamento", "Status Pagamento"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range orders {
		o := &orders[i]
		operator := "N/A"
		if o.CreatedBy != nil {
			operator = o.CreatedBy.Username
		}
		paymentStatus := "Sem pagamento"
		if o.Payment != nil {
			paymentStatus = o.Payment.Status.Display()
		}
		record := []string{
			strconv.FormatUint(uint64(o.ID), 10),
			operator,
			o.Status.Display(),
			brcsv.Bool(o.IsOpen),
			brcsv.Money(o.Total),
			brcsv.Time(o.CreatedAt),
			brcsv.Time(o.UpdatedAt),
			brcsv.Bool(o.Payment != nil),
			paymentStatus,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ExportFinancialCSV streams every payment regardless of status,
// windowed on created_at like the JSON financial report.
func (s *ReportService) ExportFinancialCSV(out io.Writer, startDate, endDate string) error {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return err
	}
	payments, err := s.repo.Payments(repository.PaymentFilter{
		CreatedFrom: from,
		CreatedTo:   to,
	})
	if err != nil {
		return err
	}

	w, err := brcsv.NewWriter(out)
	if err != nil {
		return err
	}
	header := []string{"ID Pagamento", "Pedido ID", "Método de Pagamento", "Valor",
		"Status", "Data Criação", "Data Pagamento", "ID Transação"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range payments {
		pay := &payments[i]
		record := []string{
			strconv.FormatUint(uint64(pay.ID), 10),
			strconv.FormatUint(uint64(pay.OrderID), 10),
			pay.Method.Display(),
			brcsv.Money(pay.Amount),
			pay.Status.Display(),
			brcsv.Time(pay.CreatedAt),
			brcsv.TimePtr(pay.PaidAt),
			pay.TransactionID,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (s *ReportService) ExportExpensesCSV(out io.Writer, startDate, endDate, category string) error {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return err
	}
	expenses, err := s.repo.Expenses(from, to, entity.ExpenseCategory(category))
	if err != nil {
		return err
	}

	w, err := brcsv.NewWriter(out)
	if err != nil {
		return err
	}
	header := []string{"Data", "Categoria", "Descrição", "Valor", "Usuário", "Observações"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range expenses {
		e := &expenses[i]
		username := "N/A"
		if e.User != nil {
			username = e.User.Username
		}
		record := []string{
			brcsv.Time(e.CreatedAt),
			e.Category.Display(),
			e.Description,
			brcsv.Money(e.Amount),
			username,
			e.Notes,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}
