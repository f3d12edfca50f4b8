package repositories

import "context"

// TransactionManager runs a unit of work atomically. Repository calls made with the context
// handed to fn take part in the same storage transaction; if fn returns an error every write
// made through that context is rolled back.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
