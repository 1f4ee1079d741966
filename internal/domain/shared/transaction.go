package shared

import "context"

// TransactionManager runs a unit of work atomically. Repository calls made
// with the context handed to fn take part in the same transaction.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
