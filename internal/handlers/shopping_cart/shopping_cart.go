package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"shopease-main/internal/contextutil"
	"shopease-main/internal/kafka"
	"shopease-main/internal/middleware"
	"shopease-main/internal/price"
	"shopease-main/internal/shopping_cart"
	typesCart "shopease-main/internal/types/cart"
	myErr "shopease-main/internal/types/errors"
)

// ShoppingCartHandler ручки корзины
type ShoppingCartHandler struct {
	Logger        *zap.SugaredLogger
	Carts         *shopping_cart.Registry
	EventProducer kafka.EventProducer
}

// NewShoppingCartHandler конструктор, ep может быть nil
func NewShoppingCartHandler(
	log *zap.SugaredLogger,
	carts *shopping_cart.Registry,
	ep kafka.EventProducer,
) *ShoppingCartHandler {
	return &ShoppingCartHandler{
		Logger:        log,
		Carts:         carts,
		EventProducer: ep,
	}
}

// GetCart - GET /cart
func (h *ShoppingCartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	h.writeScreen(w, http.StatusOK, sess)
}

// AddToShoppingCart - POST /cart/items
// Тело: {"id": "sku1", "name": "Shirt", "price": "499.00", "image": "/img/shirt.jpg"}
func (h *ShoppingCartHandler) AddToShoppingCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var form typesCart.AddItemForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.Logger.Warnf("bad add to cart payload: %v", err)
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	err := sess.Manager.AddItem(r.Context(), form.ID, form.Name, form.Price, form.Image)
	if err != nil {
		if errors.Is(err, myErr.ErrBadID) || errors.Is(err, myErr.ErrInvalidPrice) {
			myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
	middleware.CountCartMutation("add")

	// После успешного добавления отправляем событие в Kafka.
	// У существующей позиции имя и цена остаются прежними, поэтому берем их из корзины.
	if line, ok := sess.Manager.Line(form.ID); ok && h.EventProducer != nil {
		event := kafka.Event{
			CartKey: sess.Manager.Key(),
			Type:    kafka.AddToCart,
			Items: []kafka.Item{{
				ID:       line.ID,
				Name:     line.Name,
				Price:    line.Price.StringFixed(2),
				Quantity: line.Quantity,
			}},
			Timestamp: time.Now(),
		}
		if err := h.EventProducer.SendEvent(r.Context(), event); err != nil {
			h.Logger.Warnf("failed to send addToCart event: %v", err)
		}
	}

	h.Logger.Infof("added item %s to cart %s", form.ID, sess.Manager.Key())
	h.writeScreen(w, http.StatusCreated, sess)
}

// IncrementItem - POST /cart/items/{id}/increment
func (h *ShoppingCartHandler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	h.itemOp(w, r, "increment", (*shopping_cart.Manager).IncrementQuantity)
}

// DecrementItem - POST /cart/items/{id}/decrement
func (h *ShoppingCartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	h.itemOp(w, r, "decrement", (*shopping_cart.Manager).DecrementQuantity)
}

// DeleteFromShoppingCart - DELETE /cart/items/{id}
func (h *ShoppingCartHandler) DeleteFromShoppingCart(w http.ResponseWriter, r *http.Request) {
	h.itemOp(w, r, "remove", (*shopping_cart.Manager).RemoveItem)
}

// OpenCart - POST /cart/open
func (h *ShoppingCartHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.Manager.Open()
	h.writeScreen(w, http.StatusOK, sess)
}

// CloseCart - POST /cart/close, и кнопка закрытия, и клик мимо окна
func (h *ShoppingCartHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.Manager.Close()
	h.writeScreen(w, http.StatusOK, sess)
}

// Checkout - POST /cart/checkout
// Кнопка оформления неактивна при нулевой сумме, поэтому пустую корзину отклоняем
func (h *ShoppingCartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	order, err := sess.Manager.CheckoutIfPayable(r.Context())
	if errors.Is(err, myErr.ErrEmptyCart) {
		myErr.SendErrorTo(w, err, http.StatusConflict, h.Logger)
		return
	}
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
	middleware.CountCheckout()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(typesCart.CheckoutResult{
		Message: shopping_cart.CheckoutMessage,
		OrderID: order.ID,
		Total:   price.Format(order.Total),
	})
	if err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}

func (h *ShoppingCartHandler) itemOp(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(m *shopping_cart.Manager, ctx context.Context, id string) error,
) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	if err := fn(sess.Manager, r.Context(), id); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
	middleware.CountCartMutation(op)

	h.writeScreen(w, http.StatusOK, sess)
}

func (h *ShoppingCartHandler) session(w http.ResponseWriter, r *http.Request) (*shopping_cart.Session, bool) {
	shopperID, ok := contextutil.GetShopperIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoShopper, http.StatusBadRequest, h.Logger)
		return nil, false
	}

	sess, err := h.Carts.Get(r.Context(), shopperID)
	if err != nil {
		h.Logger.Warnf("cart of shopper %s is unavailable: %v", shopperID, err)
		myErr.SendErrorTo(w, err, http.StatusServiceUnavailable, h.Logger)
		return nil, false
	}

	return sess, true
}

func (h *ShoppingCartHandler) writeScreen(w http.ResponseWriter, status int, sess *shopping_cart.Session) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(sess.Screen.Snapshot()); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}
