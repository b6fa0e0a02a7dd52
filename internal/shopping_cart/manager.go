package shopping_cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopease-main/internal/storage"
	myErr "shopease-main/internal/types/errors"
)

// Manager владеет корзиной одного покупателя.
// Каждая мутация под мьютексом проходит цепочку: изменение -> сохранение -> счетчик -> окно (если открыто).
type Manager struct {
	Logger *zap.SugaredLogger

	mu        sync.Mutex
	cart      *Cart
	key       string
	store     storage.Store
	surface   Surface
	sink      OrderSink
	modalOpen bool
}

// NewManager создает пустую корзину, sink может быть nil
func NewManager(
	key string,
	store storage.Store,
	surface Surface,
	sink OrderSink,
	logger *zap.SugaredLogger,
) *Manager {
	return &Manager{
		Logger:  logger,
		cart:    NewCart(),
		key:     key,
		store:   store,
		surface: surface,
		sink:    sink,
	}
}

func (m *Manager) Key() string {
	return m.key
}

// AddItem кладет товар в корзину или увеличивает его количество на 1
func (m *Manager) AddItem(ctx context.Context, id, name string, price decimal.Decimal, image string) error {
	if id == "" {
		return myErr.ErrBadID
	}
	if price.IsNegative() {
		return myErr.ErrInvalidPrice
	}

	return m.mutate(ctx, func(c *Cart) bool {
		c.add(CartLine{ID: id, Name: name, Price: price, Image: image})
		return true
	})
}

// IncrementQuantity для отсутствующего id ничего не делает
func (m *Manager) IncrementQuantity(ctx context.Context, id string) error {
	return m.mutate(ctx, func(c *Cart) bool {
		return c.increment(id)
	})
}

// DecrementQuantity уменьшает количество, позиция с quantity == 1 удаляется
func (m *Manager) DecrementQuantity(ctx context.Context, id string) error {
	return m.mutate(ctx, func(c *Cart) bool {
		return c.decrement(id)
	})
}

func (m *Manager) RemoveItem(ctx context.Context, id string) error {
	return m.mutate(ctx, func(c *Cart) bool {
		return c.remove(id)
	})
}

func (m *Manager) Clear(ctx context.Context) error {
	return m.mutate(ctx, func(c *Cart) bool {
		*c = *NewCart()
		return true
	})
}

// Dispatch выполняет действие кнопки из строки корзины
func (m *Manager) Dispatch(ctx context.Context, control Control) error {
	switch control.Action {
	case ActionIncrement:
		return m.IncrementQuantity(ctx, control.ItemID)
	case ActionDecrement:
		return m.DecrementQuantity(ctx, control.ItemID)
	case ActionRemove:
		return m.RemoveItem(ctx, control.ItemID)
	default:
		return myErr.ErrBadID
	}
}

func (m *Manager) TotalCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cart.TotalCount()
}

func (m *Manager) TotalPrice() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cart.TotalPrice()
}

func (m *Manager) Lines() []CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cart.Lines()
}

func (m *Manager) RenderView() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	return RenderView(m.cart)
}

// Persist перезаписывает снимок корзины в хранилище
func (m *Manager) Persist(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.persistLocked(ctx)
}

// Restore подтягивает корзину из хранилища.
// Отсутствующий или битый снимок дает пустую корзину. Ошибка чтения возвращается,
// корзина при этом не меняется: отсутствием она не считается.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, err := m.loadLocked(ctx)
	if err != nil {
		return err
	}

	m.cart = cart
	m.refreshLocked()
	return nil
}

// Open показывает окно корзины с актуальным содержимым
func (m *Manager) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.modalOpen = true
	m.surface.RenderModal(RenderView(m.cart))
	m.surface.ShowModal()
}

// Close закрывает окно: кнопка закрытия и клик мимо окна
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.modalOpen = false
	m.surface.HideModal()
}

// Line текущая позиция корзины
func (m *Manager) Line(id string) (CartLine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cart.Get(id)
}

// Checkout очищает корзину, закрывает окно и отдает заказ внешней системе.
// Пустую корзину не отклоняет, для этого есть CheckoutIfPayable.
func (m *Manager) Checkout(ctx context.Context) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.checkoutLocked(ctx)
}

// CheckoutIfPayable оформляет заказ только при ненулевой сумме, проверка и оформление под одной блокировкой
func (m *Manager) CheckoutIfPayable(ctx context.Context) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cart.TotalPrice().IsPositive() {
		return Order{}, myErr.ErrEmptyCart
	}

	return m.checkoutLocked(ctx)
}

// checkoutLocked публикует заказ только после того, как пустая корзина сохранена.
// При откате заказ не уходит никуда.
func (m *Manager) checkoutLocked(ctx context.Context) (Order, error) {
	order := Order{
		ID:         uuid.New().String(),
		CartKey:    m.key,
		Lines:      m.cart.Lines(),
		TotalCount: m.cart.TotalCount(),
		Total:      m.cart.TotalPrice(),
		PlacedAt:   time.Now(),
	}

	prev := m.cart
	m.cart = NewCart()
	if err := m.persistLocked(ctx); err != nil {
		m.cart = prev
		return Order{}, err
	}
	m.refreshLocked()

	m.modalOpen = false
	m.surface.HideModal()

	if m.sink != nil {
		if err := m.sink.PlaceOrder(ctx, order); err != nil {
			m.Logger.Warnf("failed to hand order %s to order sink: %v", order.ID, err)
		}
	}

	m.Logger.Infof("order %s placed from cart %s: %d items, total %s",
		order.ID, m.key, order.TotalCount, order.Total.StringFixed(2))
	return order, nil
}

// mutate применяет fn и сохраняет результат.
// fn возвращает false, если менять нечего. При ошибке сохранения корзина откатывается.
func (m *Manager) mutate(ctx context.Context, fn func(c *Cart) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.cart.clone()
	if !fn(m.cart) {
		return nil
	}

	if err := m.persistLocked(ctx); err != nil {
		m.cart = prev
		return err
	}
	m.refreshLocked()

	return nil
}

func (m *Manager) persistLocked(ctx context.Context) error {
	data, err := encodeSnapshot(m.cart)
	if err != nil {
		m.Logger.Errorf("failed to encode cart %s: %v", m.key, err)
		return myErr.ErrStoreInternal
	}

	return m.store.Set(ctx, m.key, data)
}

func (m *Manager) loadLocked(ctx context.Context) (*Cart, error) {
	data, err := m.store.Get(ctx, m.key)
	if errors.Is(err, myErr.ErrNotFound) {
		return NewCart(), nil
	}
	if err != nil {
		m.Logger.Errorf("failed to read cart %s: %v", m.key, err)
		return nil, err
	}

	cart, dropped, err := decodeSnapshot(data)
	if err != nil {
		m.Logger.Warnf("discarding cart %s: %v", m.key, err)
		return NewCart(), nil
	}
	if dropped > 0 {
		m.Logger.Warnf("dropped %d invalid lines from cart %s", dropped, m.key)
	}

	return cart, nil
}

func (m *Manager) refreshLocked() {
	m.surface.UpdateCount(m.cart.TotalCount())
	if m.modalOpen {
		m.surface.RenderModal(RenderView(m.cart))
	}
}
