package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"shopease-main/internal/kafka"
	"shopease-main/internal/middleware"
	"shopease-main/internal/mocks"
	"shopease-main/internal/shopping_cart"
	"shopease-main/internal/storage"
	typesCart "shopease-main/internal/types/cart"
	myErr "shopease-main/internal/types/errors"
)

const shopperID = "5f0c8a8e-3b3b-4a53-9a3e-0b9c2c7d1a11"

func setupHandler(t *testing.T, ep kafka.EventProducer) (*ShoppingCartHandler, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	logger := zaptest.NewLogger(t).Sugar()
	carts := shopping_cart.NewRegistry("", shopping_cart.Limits{}, storage.NewRedisStore(rdb, logger), nil, logger)

	return NewShoppingCartHandler(logger, carts, ep), mr
}

func newRequest(method, url, body string, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req = req.WithContext(middleware.ContextWithShopper(req.Context(), shopperID))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeScreen(t *testing.T, w *httptest.ResponseRecorder) shopping_cart.Screen {
	t.Helper()

	var screen shopping_cart.Screen
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&screen))
	return screen
}

func addShirt(t *testing.T, h *ShoppingCartHandler) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	h.AddToShoppingCart(w, newRequest(http.MethodPost, "/api/cart/items",
		`{"id":"sku1","name":"Shirt","price":"499.00","image":"/img/shirt.jpg"}`, nil))
	return w
}

func TestShoppingCartHandler_AddToShoppingCart(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  error
	}{
		{
			name:           "success",
			body:           `{"id":"sku1","name":"Shirt","price":"499.00","image":"/img/shirt.jpg"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "numeric price",
			body:           `{"id":"sku1","name":"Shirt","price":499,"image":"/img/shirt.jpg"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed price",
			body:           `{"id":"sku1","name":"Shirt","price":"abc","image":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  myErr.ErrInvalidJSONPayload,
		},
		{
			name:           "negative price",
			body:           `{"id":"sku1","name":"Shirt","price":"-1","image":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  myErr.ErrInvalidPrice,
		},
		{
			name:           "missing id",
			body:           `{"name":"Shirt","price":"1"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  myErr.ErrBadID,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, mr := setupHandler(t, nil)
			defer mr.Close()

			w := httptest.NewRecorder()
			h.AddToShoppingCart(w, newRequest(http.MethodPost, "/api/cart/items", tc.body, nil))

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedError != nil {
				var resp myErr.ErrorServer
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tc.expectedError.Error(), resp.Message)
				return
			}

			screen := decodeScreen(t, w)
			assert.Equal(t, shopping_cart.Badge{Count: 1}, screen.Badge)
			assert.False(t, screen.Modal.Open)
		})
	}
}

func TestShoppingCartHandler_AddTwiceShowsTotal(t *testing.T) {
	h, mr := setupHandler(t, nil)
	defer mr.Close()

	addShirt(t, h)
	addShirt(t, h)

	w := httptest.NewRecorder()
	h.OpenCart(w, newRequest(http.MethodPost, "/api/cart/open", "", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	screen := decodeScreen(t, w)
	assert.True(t, screen.Modal.Open)
	assert.True(t, screen.ScrollLocked)
	assert.Equal(t, 2, screen.Badge.Count)
	assert.Equal(t, "Total: ₹998.00", screen.Modal.View.TotalLabel)
	assert.True(t, screen.Modal.View.CheckoutEnabled)
	assert.Len(t, screen.Modal.View.Rows, 1)
	assert.Equal(t, 2, screen.Modal.View.Rows[0].Quantity)

	// снимок в Redis совпадает с корзиной
	val, err := mr.Get("shopEaseCart:" + shopperID)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"sku1":{"name":"Shirt","price":499,"quantity":2,"image":"/img/shirt.jpg"}}`, val)
}

func TestShoppingCartHandler_ItemOps(t *testing.T) {
	h, mr := setupHandler(t, nil)
	defer mr.Close()

	addShirt(t, h)

	vars := map[string]string{"id": "sku1"}

	w := httptest.NewRecorder()
	h.IncrementItem(w, newRequest(http.MethodPost, "/api/cart/items/sku1/increment", "", vars))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decodeScreen(t, w).Badge.Count)

	w = httptest.NewRecorder()
	h.DecrementItem(w, newRequest(http.MethodPost, "/api/cart/items/sku1/decrement", "", vars))
	assert.Equal(t, 1, decodeScreen(t, w).Badge.Count)

	w = httptest.NewRecorder()
	h.DecrementItem(w, newRequest(http.MethodPost, "/api/cart/items/sku1/decrement", "", vars))
	screen := decodeScreen(t, w)
	assert.Equal(t, shopping_cart.Badge{Count: 0, Hidden: true}, screen.Badge)

	// отсутствующая позиция: тихий no-op
	w = httptest.NewRecorder()
	h.DeleteFromShoppingCart(w, newRequest(http.MethodDelete, "/api/cart/items/sku1", "", vars))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShoppingCartHandler_ModalRefreshesWhileOpen(t *testing.T) {
	h, mr := setupHandler(t, nil)
	defer mr.Close()

	addShirt(t, h)
	h.OpenCart(httptest.NewRecorder(), newRequest(http.MethodPost, "/api/cart/open", "", nil))

	w := httptest.NewRecorder()
	h.DeleteFromShoppingCart(w, newRequest(http.MethodDelete, "/api/cart/items/sku1", "", map[string]string{"id": "sku1"}))
	screen := decodeScreen(t, w)
	assert.True(t, screen.Modal.Open)
	assert.True(t, screen.Modal.View.Empty)
	assert.Equal(t, shopping_cart.EmptyPlaceholder, screen.Modal.View.Placeholder)
	assert.False(t, screen.Modal.View.CheckoutEnabled)

	w = httptest.NewRecorder()
	h.CloseCart(w, newRequest(http.MethodPost, "/api/cart/close", "", nil))
	screen = decodeScreen(t, w)
	assert.False(t, screen.Modal.Open)
	assert.False(t, screen.ScrollLocked)
}

func TestShoppingCartHandler_Checkout(t *testing.T) {
	h, mr := setupHandler(t, nil)
	defer mr.Close()

	w := httptest.NewRecorder()
	h.Checkout(w, newRequest(http.MethodPost, "/api/cart/checkout", "", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	addShirt(t, h)
	addShirt(t, h)
	h.OpenCart(httptest.NewRecorder(), newRequest(http.MethodPost, "/api/cart/open", "", nil))

	w = httptest.NewRecorder()
	h.Checkout(w, newRequest(http.MethodPost, "/api/cart/checkout", "", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var res typesCart.CheckoutResult
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, shopping_cart.CheckoutMessage, res.Message)
	assert.Equal(t, "₹998.00", res.Total)
	assert.NotEmpty(t, res.OrderID)

	w = httptest.NewRecorder()
	h.GetCart(w, newRequest(http.MethodGet, "/api/cart", "", nil))
	screen := decodeScreen(t, w)
	assert.False(t, screen.Modal.Open)
	assert.True(t, screen.Badge.Hidden)

	val, err := mr.Get("shopEaseCart:" + shopperID)
	assert.NoError(t, err)
	assert.Equal(t, "{}", val)
}

func TestShoppingCartHandler_StoreDown(t *testing.T) {
	h, mr := setupHandler(t, nil)

	// сессия поднята, хранилище упало на записи
	h.GetCart(httptest.NewRecorder(), newRequest(http.MethodGet, "/api/cart", "", nil))
	mr.Close()

	w := addShirt(t, h)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestShoppingCartHandler_StoreUnavailableOnRestore(t *testing.T) {
	h, mr := setupHandler(t, nil)
	defer mr.Close()

	assert.NoError(t, mr.Set("shopEaseCart:"+shopperID, `{"sku1":{"name":"Shirt","price":499,"quantity":3,"image":""}}`))

	mr.SetError("ERR server unavailable")
	w := httptest.NewRecorder()
	h.GetCart(w, newRequest(http.MethodGet, "/api/cart", "", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	mr.SetError("")
	w = httptest.NewRecorder()
	h.GetCart(w, newRequest(http.MethodGet, "/api/cart", "", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decodeScreen(t, w).Badge.Count)
}

func TestShoppingCartHandler_CheckoutFreeCartRejected(t *testing.T) {
	h, mr := setupHandler(t, nil)
	defer mr.Close()

	w := httptest.NewRecorder()
	h.AddToShoppingCart(w, newRequest(http.MethodPost, "/api/cart/items",
		`{"id":"gift","name":"Sticker","price":"0","image":""}`, nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.Checkout(w, newRequest(http.MethodPost, "/api/cart/checkout", "", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	h.GetCart(w, newRequest(http.MethodGet, "/api/cart", "", nil))
	assert.Equal(t, 1, decodeScreen(t, w).Badge.Count)
}

func TestShoppingCartHandler_NoShopper(t *testing.T) {
	h, mr := setupHandler(t, nil)
	defer mr.Close()

	w := httptest.NewRecorder()
	h.GetCart(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShoppingCartHandler_AddEventUsesCartLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ep := mocks.NewMockEventProducer(ctrl)
	h, mr := setupHandler(t, ep)
	defer mr.Close()

	ep.EXPECT().SendEvent(gomock.Any(), gomock.Any()).Return(nil)
	assert.Equal(t, http.StatusCreated, addShirt(t, h).Code)

	ep.EXPECT().SendEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, event kafka.Event) error {
			assert.Equal(t, []kafka.Item{{ID: "sku1", Name: "Shirt", Price: "499.00", Quantity: 2}}, event.Items)
			return nil
		},
	)

	w := httptest.NewRecorder()
	h.AddToShoppingCart(w, newRequest(http.MethodPost, "/api/cart/items",
		`{"id":"sku1","name":"Renamed","price":"1.00","image":"/img/other.jpg"}`, nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestShoppingCartHandler_AddSendsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ep := mocks.NewMockEventProducer(ctrl)
	h, mr := setupHandler(t, ep)
	defer mr.Close()

	gomock.InOrder(
		ep.EXPECT().SendEvent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, event kafka.Event) error {
				assert.Equal(t, kafka.AddToCart, event.Type)
				assert.Equal(t, "shopEaseCart:"+shopperID, event.CartKey)
				assert.Equal(t, []kafka.Item{{ID: "sku1", Name: "Shirt", Price: "499.00", Quantity: 1}}, event.Items)
				return nil
			},
		),
		// ошибка брокера не ломает добавление
		ep.EXPECT().SendEvent(gomock.Any(), gomock.Any()).Return(errors.New("broker down")),
	)

	assert.Equal(t, http.StatusCreated, addShirt(t, h).Code)
	assert.Equal(t, http.StatusCreated, addShirt(t, h).Code)
}
