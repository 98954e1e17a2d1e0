package apperrors

import (
	"fmt"
	"net/http"
)

// Error is a business or validation error that carries the HTTP status
// and machine-readable code it should surface with. Controllers convert
// these into the standard response envelope; anything else becomes a 500.
type Error struct {
	Code    string
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string { return e.Message }

var (
	// ErrOrderAlreadyPaid blocks any mutation of an order (or its items)
	// once a completed payment exists for it.
	ErrOrderAlreadyPaid = &Error{
		Code:    "order_already_paid",
		Status:  http.StatusBadRequest,
		Message: "não é possível alterar um pedido com pagamento completo",
	}

	// ErrOrderClosed blocks a cashier acting on an order with is_open=false.
	ErrOrderClosed = &Error{
		Code:    "order_closed",
		Status:  http.StatusForbidden,
		Message: "apenas pedidos em aberto podem ser editados pelo caixa",
	}

	ErrProductNotAvailable = &Error{
		Code:    "product_not_available",
		Status:  http.StatusBadRequest,
		Message: "produto não encontrado ou não está disponível",
	}

	ErrPermissionDenied = &Error{
		Code:    "permission_denied",
		Status:  http.StatusForbidden,
		Message: "você não tem permissão para executar esta ação",
	}
)

func Validation(message string, fields map[string][]string) *Error {
	return &Error{
		Code:    "validation_error",
		Status:  http.StatusBadRequest,
		Message: message,
		Fields:  fields,
	}
}

func BusinessRule(message string) *Error {
	return &Error{
		Code:    "business_logic_error",
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

func NotFound(resource string, id any) *Error {
	return &Error{
		Code:    "not_found",
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s %v não encontrado", resource, id),
	}
}
