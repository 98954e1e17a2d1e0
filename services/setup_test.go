package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pos-backend/entity"
	"pos-backend/pkg/authz"
	"pos-backend/repository"
)

var (
	adminGrant   = authz.Grant{UserID: 1, Caps: authz.CapAdmin}
	cashierGrant = authz.Grant{UserID: 2, Caps: authz.CapCashier}
)

// newTestDB opens a fresh in-memory database named after the test so
// parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Product{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Payment{},
		&entity.Expense{},
	))
	return db
}

type fixture struct {
	db       *gorm.DB
	orders   *OrderService
	payments *PaymentService
	products *ProductService
	expenses *ExpenseService
	reports  *ReportService
	users    *UserService
	auth     *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportRepo := repository.NewReportRepository(db)

	return &fixture{
		db:       db,
		orders:   NewOrderService(db, orderRepo, productRepo),
		payments: NewPaymentService(db, paymentRepo, orderRepo),
		products: NewProductService(productRepo),
		expenses: NewExpenseService(expenseRepo),
		reports:  NewReportService(reportRepo),
		users:    NewUserService(userRepo),
		auth:     NewAuthService(userRepo, "test-secret", time.Minute, time.Hour),
	}
}

func (f *fixture) product(t *testing.T, name string, price string, available bool) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:        name,
		Category:    entity.CategoryMarmitas,
		Price:       mustDecimal(t, price),
		IsAvailable: available,
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) openOrder(t *testing.T) *entity.Order {
	t.Helper()
	order, err := f.orders.Create(adminGrant.UserID, &CreateOrderReq{})
	require.NoError(t, err)
	return order
}

// paidOrder builds an order with one line item and a finalized payment.
func (f *fixture) paidOrder(t *testing.T, price string, quantity int) *entity.Order {
	t.Helper()
	product := f.product(t, "Marmita G", price, true)
	order := f.openOrder(t)
	_, err := f.orders.AddItem(adminGrant, order.ID, &AddItemReq{
		ProductID: product.ID,
		Quantity:  quantity,
	})
	require.NoError(t, err)

	payment, err := f.payments.Create(&CreatePaymentReq{
		OrderID: order.ID,
		Method:  string(entity.MethodPix),
	})
	require.NoError(t, err)
	_, err = f.payments.Finalize(payment.ID)
	require.NoError(t, err)

	reloaded, err := f.orders.Get(adminGrant, order.ID)
	require.NoError(t, err)
	return reloaded
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
