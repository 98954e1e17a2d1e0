package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pos-backend/entity"
	"pos-backend/pkg/apperrors"
	"pos-backend/pkg/logger"
	"pos-backend/repository"
)

type PaymentService struct {
	DB     *gorm.DB
	Repo   *repository.PaymentRepository
	Orders *repository.OrderRepository
}

func NewPaymentService(db *gorm.DB, repo *repository.PaymentRepository, orders *repository.OrderRepository) *PaymentService {
	return &PaymentService{DB: db, Repo: repo, Orders: orders}
}

type CreatePaymentReq struct {
	OrderID       uint   `json:"order" binding:"required"`
	Method        string `json:"method" binding:"required"`
	TransactionID string `json:"transaction_id"`
	Notes         string `json:"notes"`
}

// Create opens the one payment an order may have. The amount is the
// order total plus delivery fee at this moment; it is deliberately not
// re-derived later, even if items change while the payment is still
// pending.
func (s *PaymentService) Create(req *CreatePaymentReq) (*entity.Payment, error) {
	method := entity.PaymentMethod(req.Method)
	if !method.Valid() {
		return nil, apperrors.Validation("dados inválidos para criar pagamento", map[string][]string{
			"method": {"forma de pagamento inválida"},
		})
	}

	order, err := s.Orders.Get(req.OrderID)
	if err != nil {
		return nil, apperrors.NotFound("pedido", req.OrderID)
	}
	if order.Payment != nil {
		return nil, apperrors.BusinessRule("este pedido já possui um pagamento")
	}
	if len(order.Items) == 0 {
		return nil, apperrors.BusinessRule("o pedido não possui itens")
	}

	txID := req.TransactionID
	if txID == "" {
		txID = uuid.NewString()
	}

	payment := &entity.Payment{
		OrderID:       order.ID,
		Method:        method,
		Status:        entity.PaymentPending,
		Amount:        order.Total.Add(order.DeliveryFee),
		TransactionID: txID,
		Notes:         req.Notes,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Create(tx, payment)
	})
	if err != nil {
		return nil, err
	}

	// The snapshot composition is logged so a pending payment that
	// drifts from a later order total can be traced.
	logger.L().Info("payment created",
		zap.String("layer", "service"),
		zap.Uint("payment_id", payment.ID),
		zap.Uint("order_id", order.ID),
		zap.String("order_total", order.Total.StringFixed(2)),
		zap.String("delivery_fee", order.DeliveryFee.StringFixed(2)),
		zap.String("amount", payment.Amount.StringFixed(2)))
	return payment, nil
}

// Finalize moves pending → completed and locks the owning order.
func (s *PaymentService) Finalize(id uint) (*entity.Payment, error) {
	payment, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	switch payment.Status {
	case entity.PaymentCompleted:
		return nil, apperrors.BusinessRule("este pagamento já foi finalizado")
	case entity.PaymentFailed:
		return nil, apperrors.BusinessRule("este pagamento falhou e não pode ser finalizado")
	}

	now := time.Now()
	err = s.Repo.UpdateStatus(payment, map[string]any{
		"status":  entity.PaymentCompleted,
		"paid_at": now,
	})
	if err != nil {
		return nil, err
	}
	payment.Status = entity.PaymentCompleted
	payment.PaidAt = &now

	logger.L().Info("payment finalized",
		zap.String("layer", "service"),
		zap.Uint("payment_id", payment.ID),
		zap.Uint("order_id", payment.OrderID),
		zap.String("amount", payment.Amount.StringFixed(2)))
	return payment, nil
}

// Fail moves pending → failed; the order stays unpaid and editable.
func (s *PaymentService) Fail(id uint) (*entity.Payment, error) {
	payment, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if payment.Status != entity.PaymentPending {
		return nil, apperrors.BusinessRule("apenas pagamentos pendentes podem ser marcados como falhos")
	}

	err = s.Repo.UpdateStatus(payment, map[string]any{"status": entity.PaymentFailed})
	if err != nil {
		return nil, err
	}
	payment.Status = entity.PaymentFailed
	return payment, nil
}

func (s *PaymentService) List() ([]entity.Payment, error) {
	return s.Repo.List()
}

func (s *PaymentService) Get(id uint) (*entity.Payment, error) {
	return s.Repo.FindByID(id)
}
