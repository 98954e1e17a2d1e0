package services

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pos-backend/entity"
	"pos-backend/pkg/apperrors"
	"pos-backend/pkg/authz"
	"pos-backend/pkg/logger"
	"pos-backend/repository"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Products *repository.ProductRepository
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, products *repository.ProductRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo, Products: products}
}

// ----- DTOs -----

type CreateOrderReq struct {
	Notes           string           `json:"notes"`
	DeliveryAddress string           `json:"delivery_address"`
	DeliveryFee     *decimal.Decimal `json:"delivery_fee"`
}

type UpdateOrderReq struct {
	Status          *string          `json:"status"`
	IsOpen          *bool            `json:"is_open"`
	Notes           *string          `json:"notes"`
	DeliveryAddress *string          `json:"delivery_address"`
	DeliveryFee     *decimal.Decimal `json:"delivery_fee"`
}

type AddItemReq struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type BulkDeleteReq struct {
	OrderIDs    []uint `json:"order_ids"`
	DeleteAll   bool   `json:"delete_all"`
	OnlyOpen    bool   `json:"only_open"`
	IncludePaid bool   `json:"include_paid"`
}

type BulkDeleteRes struct {
	DeletedCount int    `json:"deleted_count"`
	DeletedIDs   []uint `json:"deleted_ids"`
}

// canEdit applies the two independent gates in order: the role gate
// (cashier needs an open order) and then, at the call sites, the paid
// gate on top of it.
func (s *OrderService) canEdit(actor authz.Authorizer, o *entity.Order) error {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.IsCashier() {
		return apperrors.ErrPermissionDenied
	}
	if !o.IsOpen {
		return apperrors.ErrOrderClosed
	}
	return nil
}

// ----- CRUD -----

func (s *OrderService) Create(actorID uint, req *CreateOrderReq) (*entity.Order, error) {
	order := &entity.Order{
		Status:          entity.OrderPending,
		IsOpen:          true,
		Total:           decimal.Zero,
		Notes:           req.Notes,
		DeliveryAddress: req.DeliveryAddress,
	}
	if req.DeliveryFee != nil {
		if req.DeliveryFee.IsNegative() {
			return nil, apperrors.Validation("dados inválidos para o pedido", map[string][]string{
				"delivery_fee": {"a taxa de entrega não pode ser negativa"},
			})
		}
		order.DeliveryFee = *req.DeliveryFee
	}
	if actorID != 0 {
		order.CreatedByID = &actorID
	}

	if err := s.Repo.Create(s.DB, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) List(actor authz.Authorizer, paymentStatus string) ([]entity.Order, error) {
	return s.Repo.List(repository.OrderFilter{
		OnlyOpen:      !actor.IsAdmin(),
		PaymentStatus: paymentStatus,
	})
}

func (s *OrderService) Get(actor authz.Authorizer, id uint) (*entity.Order, error) {
	order, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !order.IsOpen {
		return nil, apperrors.NotFound("pedido", id)
	}
	return order, nil
}

func (s *OrderService) Update(actor authz.Authorizer, id uint, req *UpdateOrderReq) (*entity.Order, error) {
	order, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.canEdit(actor, order); err != nil {
		return nil, err
	}
	if order.IsPaid() {
		return nil, apperrors.ErrOrderAlreadyPaid
	}

	fields := map[string]any{}
	if req.Status != nil {
		status := entity.OrderStatus(*req.Status)
		if !status.Valid() {
			return nil, apperrors.Validation("dados inválidos para o pedido", map[string][]string{
				"status": {"status inválido"},
			})
		}
		fields["status"] = status
	}
	if req.IsOpen != nil {
		fields["is_open"] = *req.IsOpen
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.DeliveryAddress != nil {
		fields["delivery_address"] = *req.DeliveryAddress
	}
	if req.DeliveryFee != nil {
		if req.DeliveryFee.IsNegative() {
			return nil, apperrors.Validation("dados inválidos para o pedido", map[string][]string{
				"delivery_fee": {"a taxa de entrega não pode ser negativa"},
			})
		}
		fields["delivery_fee"] = *req.DeliveryFee
	}
	if len(fields) == 0 {
		return order, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.UpdateFields(tx, order, fields)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.Get(id)
}

// Delete removes a single order. Paid orders are refused unless the
// caller passes the include_paid escape hatch; such deletions are
// audit-logged.
func (s *OrderService) Delete(actor authz.Grant, id uint, includePaid bool) error {
	if !actor.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}
	order, err := s.Repo.Get(id)
	if err != nil {
		return err
	}
	if order.IsPaid() && !includePaid {
		return apperrors.BusinessRule("não é possível deletar um pedido com pagamento completo")
	}
	if order.IsPaid() {
		logger.L().Warn("paid order deleted via include_paid override",
			zap.Uint("order_id", order.ID),
			zap.Uint("user_id", actor.UserID))
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteByIDs(tx, []uint{order.ID})
	})
}

// BulkDelete implements the administrative mass-delete. Paid orders are
// skipped unless include_paid is set; the response always reports the
// exact ids removed.
func (s *OrderService) BulkDelete(actor authz.Grant, req *BulkDeleteReq) (*BulkDeleteRes, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}
	if len(req.OrderIDs) == 0 && !req.DeleteAll {
		return nil, apperrors.Validation("parâmetros inválidos para exclusão em massa", map[string][]string{
			"delete_all": {`é necessário fornecer "order_ids" ou definir "delete_all" como true`},
		})
	}

	candidates, err := s.Repo.ListForDeletion(req.OrderIDs, req.DeleteAll, req.OnlyOpen)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(candidates))
	paidIDs := []uint{}
	for _, o := range candidates {
		if o.IsPaid() {
			if !req.IncludePaid {
				continue
			}
			paidIDs = append(paidIDs, o.ID)
		}
		ids = append(ids, o.ID)
	}

	if len(ids) == 0 {
		return &BulkDeleteRes{DeletedCount: 0, DeletedIDs: []uint{}}, nil
	}
	if len(paidIDs) > 0 {
		logger.L().Warn("paid orders deleted via include_paid override",
			zap.Uints("order_ids", paidIDs),
			zap.Uint("user_id", actor.UserID))
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteByIDs(tx, ids)
	})
	if err != nil {
		return nil, err
	}
	return &BulkDeleteRes{DeletedCount: len(ids), DeletedIDs: ids}, nil
}

// ----- Items -----

// AddItem snapshots the product's current price into the new line item.
// The item write and the total recomputation commit or roll back
// together.
func (s *OrderService) AddItem(actor authz.Authorizer, orderID uint, req *AddItemReq) (*entity.OrderItem, error) {
	order, err := s.Repo.Get(orderID)
	if err != nil {
		return nil, err
	}
	if err := s.canEdit(actor, order); err != nil {
		return nil, err
	}
	if order.IsPaid() {
		return nil, apperrors.ErrOrderAlreadyPaid
	}
	if req.Quantity < 1 {
		return nil, apperrors.Validation("dados inválidos para o item", map[string][]string{
			"quantity": {"a quantidade deve ser maior que zero"},
		})
	}

	product, err := s.Products.FindAvailableByID(req.ProductID)
	if err != nil {
		return nil, apperrors.ErrProductNotAvailable
	}

	item := &entity.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Price:     product.Price,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateItem(tx, item); err != nil {
			return err
		}
		// The item hooks already recomputed; calling again is harmless
		// and keeps the invariant even if a future write path skips
		// hooks.
		_, err := entity.RecomputeOrderTotal(tx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	item.Product = *product
	return item, nil
}

func (s *OrderService) UpdateItemQuantity(actor authz.Authorizer, itemID uint, quantity int) (*entity.OrderItem, error) {
	item, err := s.Repo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if err := s.canEdit(actor, &item.Order); err != nil {
		return nil, err
	}
	if item.Order.IsPaid() {
		return nil, apperrors.ErrOrderAlreadyPaid
	}
	if quantity < 1 {
		return nil, apperrors.Validation("dados inválidos para o item", map[string][]string{
			"quantity": {"a quantidade deve ser maior que zero"},
		})
	}

	item.Quantity = quantity
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.SaveItem(tx, item); err != nil {
			return err
		}
		_, err := entity.RecomputeOrderTotal(tx, item.OrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *OrderService) RemoveItem(actor authz.Authorizer, itemID uint) error {
	item, err := s.Repo.GetItem(itemID)
	if err != nil {
		return err
	}
	if err := s.canEdit(actor, &item.Order); err != nil {
		return err
	}
	if item.Order.IsPaid() {
		return apperrors.ErrOrderAlreadyPaid
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.DeleteItem(tx, item); err != nil {
			return err
		}
		_, err := entity.RecomputeOrderTotal(tx, item.OrderID)
		return err
	})
}

// RecomputeTotal re-derives an order's total from its items. Exposed so
// maintenance paths and tests hit the exact operation every mutation
// path uses.
func (s *OrderService) RecomputeTotal(orderID uint) (decimal.Decimal, error) {
	return entity.RecomputeOrderTotal(s.DB, orderID)
}
