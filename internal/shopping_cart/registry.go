package shopping_cart

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"shopease-main/internal/storage"
)

const (
	DefaultMaxSessions = 10000
	DefaultIdleTTL     = 30 * time.Minute
)

// Session корзина покупателя вместе с его экраном
type Session struct {
	Manager *Manager
	Screen  *ScreenState
}

// Limits ограничения на сессии в памяти, нули заменяются значениями по умолчанию.
// Вытесненная сессия поднимается заново из снимка в хранилище.
type Limits struct {
	MaxSessions int
	IdleTTL     time.Duration
}

// Registry лениво поднимает корзины покупателей из хранилища
type Registry struct {
	Logger *zap.SugaredLogger

	mu       sync.Mutex
	sessions *expirable.LRU[string, *Session]
	baseKey  string
	store    storage.Store
	sink     OrderSink
}

func NewRegistry(
	baseKey string,
	limits Limits,
	store storage.Store,
	sink OrderSink,
	logger *zap.SugaredLogger,
) *Registry {
	if baseKey == "" {
		baseKey = DefaultKey
	}
	if limits.MaxSessions <= 0 {
		limits.MaxSessions = DefaultMaxSessions
	}
	if limits.IdleTTL <= 0 {
		limits.IdleTTL = DefaultIdleTTL
	}

	onEvict := func(shopperID string, sess *Session) {
		logger.Debugw("cart session evicted", "key", sess.Manager.Key())
	}

	return &Registry{
		Logger:   logger,
		sessions: expirable.NewLRU[string, *Session](limits.MaxSessions, onEvict, limits.IdleTTL),
		baseKey:  baseKey,
		store:    store,
		sink:     sink,
	}
}

// KeyFor ключ хранилища для покупателя
func (r *Registry) KeyFor(shopperID string) string {
	if shopperID == "" {
		return r.baseKey
	}

	return r.baseKey + ":" + shopperID
}

// Get возвращает сессию покупателя, при первом обращении восстанавливает корзину.
// Если хранилище не ответило, сессия не запоминается и следующий запрос попробует снова.
func (r *Registry) Get(ctx context.Context, shopperID string) (*Session, error) {
	if sess, ok := r.touch(shopperID); ok {
		return sess, nil
	}

	// чтение из хранилища идет без блокировки реестра
	screen := NewScreenState()
	manager := NewManager(r.KeyFor(shopperID), r.store, screen, r.sink, r.Logger)
	if err := manager.Restore(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// пока читали, сессию мог поднять соседний запрос
	if sess, ok := r.sessions.Get(shopperID); ok {
		r.sessions.Add(shopperID, sess)
		return sess, nil
	}

	sess := &Session{
		Manager: manager,
		Screen:  screen,
	}
	r.sessions.Add(shopperID, sess)

	r.Logger.Infow("cart session started",
		"key", manager.Key(),
		"items", manager.TotalCount(),
	)

	return sess, nil
}

// Len число сессий в памяти
func (r *Registry) Len() int {
	return r.sessions.Len()
}

// touch находит сессию и продлевает ей срок жизни
func (r *Registry) touch(shopperID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions.Get(shopperID)
	if ok {
		r.sessions.Add(shopperID, sess)
	}
	return sess, ok
}
