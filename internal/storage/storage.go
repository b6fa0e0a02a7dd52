package storage

import "context"

// Store - долговременное key-value хранилище снимков корзины.
// Одна запись на ключ, запись целиком заменяет предыдущее значение.
//
//go:generate mockgen -source=storage.go -destination=../mocks/mock_store.go -package=mocks
type Store interface {
	// Get возвращает последнее записанное значение или ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set перезаписывает значение по ключу
	Set(ctx context.Context, key string, value []byte) error
}
