package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-backend/entity"
	"pos-backend/pkg/apperrors"
)

func TestAddItemRecomputesTotal(t *testing.T) {
	f := newFixture(t)
	marmita := f.product(t, "Marmita G", "22.50", true)
	refri := f.product(t, "Refrigerante", "5.00", true)
	order := f.openOrder(t)

	item, err := f.orders.AddItem(adminGrant, order.ID, &AddItemReq{
		ProductID: marmita.ID,
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.True(t, item.Price.Equal(mustDecimal(t, "22.50")))

	got, err := f.orders.Get(adminGrant, order.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(mustDecimal(t, "45.00")), "total %s", got.Total)

	_, err = f.orders.AddItem(adminGrant, order.ID, &AddItemReq{
		ProductID: refri.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	got, err = f.orders.Get(adminGrant, order.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(mustDecimal(t, "50.00")), "total %s", got.Total)
}

func TestItemPriceIsSnapshot(t *testing.T) {
	f := newFixture(t)
	product := f.product(t, "Marmita P", "15.00", true)
	order := f.openOrder(t)

	_, err := f.orders.AddItem(adminGrant, order.ID, &AddItemReq{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	// Raising the catalog price must not touch the existing line item.
	require.NoError(t, f.db.Model(product).
		UpdateColumn("price", mustDecimal(t, "18.00")).Error)

	got, err := f.orders.Get(adminGrant, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Price.Equal(mustDecimal(t, "15.00")))
	assert.True(t, got.Total.Equal(mustDecimal(t, "15.00")))
}

func TestUpdateItemQuantityRecomputes(t *testing.T) {
	f := newFixture(t)
	product := f.product(t, "Marmita G", "10.00", true)
	order := f.openOrder(t)
	item, err := f.orders.AddItem(adminGrant, order.ID, &AddItemReq{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	_, err = f.orders.UpdateItemQuantity(adminGrant, item.ID, 3)
	require.NoError(t, err)

	got, err := f.orders.Get(adminGrant, order.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(mustDecimal(t, "30.00")))

	_, err = f.orders.UpdateItemQuantity(adminGrant, item.ID, 0)
	require.Error(t, err)
}

func TestRemoveItemRecomputes(t *testing.T) {
	f := newFixture(t)
	marmita := f.product(t, "Marmita G", "22.50", true)
	refri := f.product(t, "Refrigerante", "5.00", true)
	order := f.openOrder(t)

	item, err := f.orders.AddItem(adminGrant, order.ID, &AddItemReq{ProductID: marmita.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.orders.AddItem(adminGrant, order.ID, &AddItemReq{ProductID: refri.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, f.orders.RemoveItem(adminGrant, item.ID))

	got, err := f.orders.Get(adminGrant, order.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(mustDecimal(t, "5.00")), "total %s", got.Total)
}

func TestRecomputeTotalIdempotent(t *testing.T) {
	f := newFixture(t)
	product := f.product(t, "Marmita G", "22.50", true)
	order := f.openOrder(t)
	_, err := f.orders.AddItem(adminGrant, order.ID, &AddItemReq{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	first, err := f.orders.RecomputeTotal(order.ID)
	require.NoError(t, err)
	second, err := f.orders.RecomputeTotal(order.ID)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(mustDecimal(t, "45.00")))
}

func TestAddItemUnavailableProduct(t *testing.T) {
	f := newFixture(t)
	product := f.product(t, "Esgotado", "9.00", false)
	order := f.openOrder(t)

	_, err := f.orders.AddItem(adminGrant, order.ID, &AddItemReq{ProductID: product.ID, Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrProductNotAvailable)
}

func TestPaidOrderIsImmutable(t *testing.T) {
	f := newFixture(t)
	order := f.paidOrder(t, "30.00", 1)
	extra := f.product(t, "Sobremesa", "8.00", true)

	notes := "mudança tardia"
	_, err := f.orders.Update(adminGrant, order.ID, &UpdateOrderReq{Notes: &notes})
	assert.ErrorIs(t, err, apperrors.ErrOrderAlreadyPaid)

	_, err = f.orders.AddItem(adminGrant, order.ID, &AddItemReq{ProductID: extra.ID, Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrOrderAlreadyPaid)

	itemID := order.Items[0].ID
	_, err = f.orders.UpdateItemQuantity(adminGrant, itemID, 5)
	assert.ErrorIs(t, err, apperrors.ErrOrderAlreadyPaid)

	err = f.orders.RemoveItem(adminGrant, itemID)
	assert.ErrorIs(t, err, apperrors.ErrOrderAlreadyPaid)
}

func TestPaidOrderBlockedAtModelLayer(t *testing.T) {
	f := newFixture(t)
	order := f.paidOrder(t, "30.00", 1)

	// A write that bypasses the service layer still hits the hook.
	err := f.db.Model(&entity.Order{Model: order.Model}).
		Update("notes", "direto no banco").Error
	assert.ErrorIs(t, err, apperrors.ErrOrderAlreadyPaid)

	var item entity.OrderItem
	require.NoError(t, f.db.First(&item, "order_id = ?", order.ID).Error)
	err = f.db.Delete(&item).Error
	assert.ErrorIs(t, err, apperrors.ErrOrderAlreadyPaid)
}

func TestCashierSeesOnlyOpenOrders(t *testing.T) {
	f := newFixture(t)
	open := f.openOrder(t)
	closed := f.openOrder(t)
	isOpen := false
	_, err := f.orders.Update(adminGrant, closed.ID, &UpdateOrderReq{IsOpen: &isOpen})
	require.NoError(t, err)

	orders, err := f.orders.List(cashierGrant, "")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, open.ID, orders[0].ID)

	all, err := f.orders.List(adminGrant, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCashierCannotTouchClosedOrder(t *testing.T) {
	f := newFixture(t)
	order := f.openOrder(t)
	isOpen := false
	_, err := f.orders.Update(adminGrant, order.ID, &UpdateOrderReq{IsOpen: &isOpen})
	require.NoError(t, err)

	_, err = f.orders.Get(cashierGrant, order.ID)
	require.Error(t, err)

	notes := "tentativa do caixa"
	_, err = f.orders.Update(cashierGrant, order.ID, &UpdateOrderReq{Notes: &notes})
	assert.ErrorIs(t, err, apperrors.ErrOrderClosed)

	// The admin gate is independent of is_open.
	_, err = f.orders.Update(adminGrant, order.ID, &UpdateOrderReq{Notes: &notes})
	require.NoError(t, err)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	f := newFixture(t)
	order := f.openOrder(t)

	bad := "em_orbita"
	_, err := f.orders.Update(adminGrant, order.ID, &UpdateOrderReq{Status: &bad})
	require.Error(t, err)

	good := string(entity.OrderDelivered)
	got, err := f.orders.Update(adminGrant, order.ID, &UpdateOrderReq{Status: &good})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, got.Status)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	order := f.openOrder(t)

	err := f.orders.Delete(cashierGrant, order.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, f.orders.Delete(adminGrant, order.ID, false))
	_, err = f.orders.Get(adminGrant, order.ID)
	require.Error(t, err)
}

func TestDeletePaidOrderNeedsOverride(t *testing.T) {
	f := newFixture(t)
	order := f.paidOrder(t, "30.00", 1)

	err := f.orders.Delete(adminGrant, order.ID, false)
	require.Error(t, err)

	require.NoError(t, f.orders.Delete(adminGrant, order.ID, true))
	_, err = f.orders.Get(adminGrant, order.ID)
	require.Error(t, err)
}

func TestBulkDeleteSkipsPaidByDefault(t *testing.T) {
	f := newFixture(t)
	paid := f.paidOrder(t, "30.00", 1)
	unpaid := f.openOrder(t)

	res, err := f.orders.BulkDelete(adminGrant, &BulkDeleteReq{
		OrderIDs: []uint{paid.ID, unpaid.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.DeletedCount)
	assert.Equal(t, []uint{unpaid.ID}, res.DeletedIDs)

	_, err = f.orders.Get(adminGrant, paid.ID)
	require.NoError(t, err)
}

func TestBulkDeleteIncludePaid(t *testing.T) {
	f := newFixture(t)
	paid := f.paidOrder(t, "30.00", 1)
	unpaid := f.openOrder(t)

	res, err := f.orders.BulkDelete(adminGrant, &BulkDeleteReq{
		DeleteAll:   true,
		IncludePaid: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.DeletedCount)
	assert.ElementsMatch(t, []uint{paid.ID, unpaid.ID}, res.DeletedIDs)
}

func TestBulkDeleteOnlyOpen(t *testing.T) {
	f := newFixture(t)
	open := f.openOrder(t)
	closed := f.openOrder(t)
	isOpen := false
	_, err := f.orders.Update(adminGrant, closed.ID, &UpdateOrderReq{IsOpen: &isOpen})
	require.NoError(t, err)

	res, err := f.orders.BulkDelete(adminGrant, &BulkDeleteReq{
		DeleteAll: true,
		OnlyOpen:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{open.ID}, res.DeletedIDs)

	_, err = f.orders.Get(adminGrant, closed.ID)
	require.NoError(t, err)
}

func TestBulkDeleteValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.BulkDelete(adminGrant, &BulkDeleteReq{})
	require.Error(t, err)

	_, err = f.orders.BulkDelete(cashierGrant, &BulkDeleteReq{DeleteAll: true})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Nothing matching is a successful no-op, not an error.
	res, err := f.orders.BulkDelete(adminGrant, &BulkDeleteReq{OrderIDs: []uint{999}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.DeletedCount)
	assert.Empty(t, res.DeletedIDs)
}

func TestListPaymentStatusFilter(t *testing.T) {
	f := newFixture(t)
	paid := f.paidOrder(t, "30.00", 1)
	bare := f.openOrder(t)

	pendingProduct := f.product(t, "Marmita M", "12.00", true)
	pending := f.openOrder(t)
	_, err := f.orders.AddItem(adminGrant, pending.ID, &AddItemReq{ProductID: pendingProduct.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.payments.Create(&CreatePaymentReq{OrderID: pending.ID, Method: string(entity.MethodCash)})
	require.NoError(t, err)

	failed := f.openOrder(t)
	_, err = f.orders.AddItem(adminGrant, failed.ID, &AddItemReq{ProductID: pendingProduct.ID, Quantity: 1})
	require.NoError(t, err)
	failedPayment, err := f.payments.Create(&CreatePaymentReq{OrderID: failed.ID, Method: string(entity.MethodCash)})
	require.NoError(t, err)
	_, err = f.payments.Fail(failedPayment.ID)
	require.NoError(t, err)

	completed, err := f.orders.List(adminGrant, "completed")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, paid.ID, completed[0].ID)

	// "pending" means pending payment or no payment at all.
	pendings, err := f.orders.List(adminGrant, "pending")
	require.NoError(t, err)
	ids := []uint{}
	for _, o := range pendings {
		ids = append(ids, o.ID)
	}
	assert.ElementsMatch(t, []uint{bare.ID, pending.ID}, ids)

	none, err := f.orders.List(adminGrant, "none")
	require.NoError(t, err)
	require.Len(t, none, 1)
	assert.Equal(t, bare.ID, none[0].ID)

	// Any other value matches the concrete payment status.
	failedList, err := f.orders.List(adminGrant, string(entity.PaymentFailed))
	require.NoError(t, err)
	require.Len(t, failedList, 1)
	assert.Equal(t, failed.ID, failedList[0].ID)
}

func TestCreateOrderRejectsNegativeDeliveryFee(t *testing.T) {
	f := newFixture(t)
	fee := mustDecimal(t, "-1.00")
	_, err := f.orders.Create(adminGrant.UserID, &CreateOrderReq{DeliveryFee: &fee})
	require.Error(t, err)
}
