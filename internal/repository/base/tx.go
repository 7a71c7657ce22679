package base

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Ограниченное число повторов при конфликте сериализации
const serializableMaxRetries = 3

// TxRunner выполняет функции внутри SERIALIZABLE транзакций с повторами
type TxRunner struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewTxRunner создаёт новый TxRunner
func NewTxRunner(pool *pgxpool.Pool, logger *zap.Logger) *TxRunner {
	return &TxRunner{pool: pool, logger: logger}
}

// Serializable выполняет fn в транзакции с уровнем изоляции SERIALIZABLE.
// Конфликты сериализации и взаимоблокировки повторяются ограниченное число раз,
// после чего ошибка отдаётся вызывающему как есть.
func (t *TxRunner) Serializable(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(serializableMaxRetries, retry.NewFibonacci(25*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := t.runOnce(ctx, fn)
		if IsSerializationFailure(err) {
			t.logger.Warn("Serialization failure, retrying transaction", zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
}

func (t *TxRunner) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
