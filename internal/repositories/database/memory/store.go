// Package memory is an in-process implementation of every repository port. It serialises
// units of work behind one mutex and restores a snapshot when a unit of work fails, giving the
// same all-or-nothing behaviour as the PostgreSQL repositories.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
)

type txCtxKey struct{}

type dataset struct {
	accounts  map[string]domain.Account
	customers map[string]domain.Customer

	entries map[string]domain.JournalEntry // headers only
	lines   []domain.JournalLine           // insertion order

	cashRevenues   map[string]domain.CashRevenue
	creditRevenues map[string]domain.CreditRevenue
	payments       map[string]domain.ReceivablePayment
	otherIncomes   map[string]domain.OtherIncome

	audit []domain.AuditRecord
}

func newDataset() *dataset {
	return &dataset{
		accounts:       map[string]domain.Account{},
		customers:      map[string]domain.Customer{},
		entries:        map[string]domain.JournalEntry{},
		cashRevenues:   map[string]domain.CashRevenue{},
		creditRevenues: map[string]domain.CreditRevenue{},
		payments:       map[string]domain.ReceivablePayment{},
		otherIncomes:   map[string]domain.OtherIncome{},
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copies every collection. Stored values are replaced, never mutated in place, so a
// shallow copy of each value is enough.
func (d *dataset) clone() *dataset {
	return &dataset{
		accounts:       cloneMap(d.accounts),
		customers:      cloneMap(d.customers),
		entries:        cloneMap(d.entries),
		lines:          append([]domain.JournalLine(nil), d.lines...),
		cashRevenues:   cloneMap(d.cashRevenues),
		creditRevenues: cloneMap(d.creditRevenues),
		payments:       cloneMap(d.payments),
		otherIncomes:   cloneMap(d.otherIncomes),
		audit:          append([]domain.AuditRecord(nil), d.audit...),
	}
}

// Store implements all repository ports in memory.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

var (
	_ portsrepo.TransactionManager       = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade  = (*Store)(nil)
	_ portsrepo.CustomerRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade  = (*Store)(nil)
	_ portsrepo.RevenueRepositoryFacade  = (*Store)(nil)
	_ portsrepo.AuditRepository          = (*Store)(nil)
	_ portsrepo.ReportingRepository      = (*Store)(nil)
)

// NewRepositoryProvider wires one store into every repository slot.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     store,
		AccountRepo:   store,
		CustomerRepo:  store,
		JournalRepo:   store,
		RevenueRepo:   store,
		AuditRepo:     store,
		ReportingRepo: store,
	}
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txCtxKey{}).(bool)
	return v
}

// RunInTx holds the write lock for the whole of fn. Nested calls join the outer unit of work.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(context.WithValue(ctx, txCtxKey{}, true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// read runs fn under the read lock unless ctx already owns the write lock.
func (s *Store) read(ctx context.Context, fn func(d *dataset) error) error {
	if inTx(ctx) {
		return fn(s.data)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// write runs fn under the write lock unless ctx already owns it.
func (s *Store) write(ctx context.Context, fn func(d *dataset) error) error {
	if inTx(ctx) {
		return fn(s.data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}
