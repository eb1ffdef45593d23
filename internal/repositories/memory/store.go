// Package memory is a process-local implementation of the repository ports.
// Transactions are serialized by a single mutex and roll back by restoring a
// snapshot, so it offers the same atomicity guarantees as the SQL store.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/athena_ledger/internal/core/ports/repositories"
)

type txKey struct{}

// Store holds every table of one in-memory ledger.
type Store struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	entries  map[string]domain.JournalEntry // headers only
	lines    map[string][]domain.JournalLine
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		entries:  make(map[string]domain.JournalEntry),
		lines:    make(map[string][]domain.JournalLine),
	}
}

var _ portsrepo.TransactionManager = (*Store)(nil)

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// WithinTx runs fn holding the store lock. If fn fails every change it made is undone.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// read runs fn under the lock unless ctx already holds it.
func (s *Store) read(ctx context.Context, fn func() error) error {
	if s.inTx(ctx) {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// write runs fn as its own transaction unless ctx already holds one.
func (s *Store) write(ctx context.Context, fn func() error) error {
	return s.WithinTx(ctx, func(context.Context) error { return fn() })
}

type snapshot struct {
	accounts map[string]domain.Account
	entries  map[string]domain.JournalEntry
	lines    map[string][]domain.JournalLine
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		accounts: make(map[string]domain.Account, len(s.accounts)),
		entries:  make(map[string]domain.JournalEntry, len(s.entries)),
		lines:    make(map[string][]domain.JournalLine, len(s.lines)),
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	for k, v := range s.entries {
		snap.entries[k] = v
	}
	for k, v := range s.lines {
		snap.lines[k] = append([]domain.JournalLine(nil), v...)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.accounts = snap.accounts
	s.entries = snap.entries
	s.lines = snap.lines
}

// NewRepositoryProvider wires every repository port to store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     store,
		AccountRepo:   &AccountRepository{store: store},
		JournalRepo:   &JournalRepository{store: store},
		ReportingRepo: &ReportingRepository{store: store},
	}
}
