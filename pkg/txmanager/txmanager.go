package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-BookingService/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается, если не удалось открыть транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, если не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TransactionManager выполняет функции в транзакции, передавая её через context.
// Репозитории получают транзакцию через dbmetrics.GetExecutor.
type TransactionManager struct {
	db        dbmetrics.TxBeginner
	mapErrors func(error) error
}

// Option настройка TransactionManager
type Option func(*TransactionManager)

// WithErrorMapper задаёт преобразование ошибок транзакции верхнего уровня
// (например, кодов драйвера в ошибки домена). Применяется и к ошибке COMMIT.
func WithErrorMapper(mapper func(error) error) Option {
	return func(m *TransactionManager) {
		m.mapErrors = mapper
	}
}

// NewTransactionManager создает менеджер транзакций поверх *dbmetrics.DB
func NewTransactionManager(db dbmetrics.TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{db: db}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// Ошибка сериализации (40001) возвращается вызывающему без повторов.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует уже открытую транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	err := m.runTx(ctx, opts, fn)
	if err != nil && m.mapErrors != nil {
		return m.mapErrors(err)
	}
	return err
}

func (m *TransactionManager) runTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		// Конфликт сериализации может проявиться только на COMMIT - сохраняем исходную ошибку в цепочке
		err = fmt.Errorf("%w: %w", ErrCommitTx, commitErr)
		return err
	}

	return nil
}
