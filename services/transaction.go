package services

import (
	"context"

	"github.com/upb/taskhub/repositories"
)

// WithTransaction runs fn inside txMgr.InTransaction.
// Repositories called with the ctx handed to fn share the transaction.
// fn's own error is returned unchanged; begin and commit failures become ErrTransactionFailed.
func WithTransaction(ctx context.Context, txMgr repositories.TransactionManager, fn func(ctx context.Context) error) error {
	var fnErr error
	err := txMgr.InTransaction(ctx, func(ctx context.Context, _ repositories.Transaction) error {
		fnErr = fn(ctx)
		return fnErr
	})
	if err != nil && fnErr == nil {
		return Wrap(ErrTransactionFailed, err)
	}
	return err
}

// WithTransactionResult executes a function within a database transaction and returns a result.
// The result is the zero value when the transaction is rolled back.
func WithTransactionResult[T any](ctx context.Context, txMgr repositories.TransactionManager, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := WithTransaction(ctx, txMgr, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
