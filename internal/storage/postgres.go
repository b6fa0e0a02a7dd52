package storage

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	myErr "shopease-main/internal/types/errors"
)

type PostgresStore struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewPostgresStore(db *sql.DB, logger *zap.SugaredLogger) *PostgresStore {
	return &PostgresStore{
		DB:     db,
		Logger: logger,
	}
}

// Get достает снимок корзины по ключу
func (ps *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
	SELECT data FROM cart_snapshot
	WHERE key = $1
`
	var data []byte
	err := ps.DB.QueryRowContext(ctx, query, key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}

		ps.Logger.Errorf("Ошибка при получении снимка корзины %v: %v", key, err)
		return nil, myErr.ErrStoreInternal
	}

	return data, nil
}

// Set перезаписывает снимок корзины
func (ps *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
	INSERT INTO cart_snapshot(key, data, updated_at)
	VALUES ($1, $2, now()) ON CONFLICT (key)
	DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
`
	_, err := ps.DB.ExecContext(ctx, query, key, value)
	if err != nil {
		ps.Logger.Errorf("Ошибка при сохранении снимка корзины %v: %v", key, err)
		return myErr.ErrStoreInternal
	}

	return nil
}
