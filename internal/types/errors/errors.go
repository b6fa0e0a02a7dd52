package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrStoreInternal = errors.New("store internal error")
	ErrNotFound      = errors.New("record not found")

	ErrBadID        = errors.New("bad id")
	ErrInvalidPrice = errors.New("price must be a non-negative number")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrNoShopper    = errors.New("shopper id is missing")

	ErrEmptyField   = errors.New("Please fill in all fields.")
	ErrInvalidEmail = errors.New("Please enter a valid email address.")

	ErrInvalidJSONPayload = errors.New("invalid JSON payload")
)

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}
