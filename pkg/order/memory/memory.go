// Package memory implements an in-memory order repository.
package memory

import (
	"context"
	"fmt"
	"sync"

	"restaurant/pkg/order"
)

// Store provides an in-memory implementation of order.Repository.
//
// The table map lock is held only while a ledger is looked up or created;
// item reads and writes happen under the ledger's own lock, so traffic for
// different tables never contends.
type Store struct {
	mu     sync.RWMutex
	tables map[order.TableID]*ledger
}

// New creates an empty store.
func New() *Store {
	return &Store{tables: make(map[order.TableID]*ledger)}
}

var _ order.Repository = (*Store)(nil)

func (s *Store) lookup(table order.TableID) *ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables[table]
}

func (s *Store) ledgerFor(table order.TableID) *ledger {
	if l := s.lookup(table); l != nil {
		return l
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.tables[table]
	if !ok {
		l = &ledger{}
		s.tables[table] = l
	}
	return l
}

// PlaceOrder appends items to the table, creating its ledger on first use.
func (s *Store) PlaceOrder(ctx context.Context, table order.TableID, items []order.Description) ([]order.Item, error) {
	if err := order.ValidateItems(items); err != nil {
		return nil, err
	}
	return s.ledgerFor(table).add(items), nil
}

// TableOrders lists the table's items in placement order.
func (s *Store) TableOrders(ctx context.Context, table order.TableID) ([]order.Item, error) {
	l := s.lookup(table)
	if l == nil {
		return []order.Item{}, nil
	}
	return l.list(), nil
}

// Item retrieves one item of a table.
func (s *Store) Item(ctx context.Context, table order.TableID, id order.ItemID) (order.Item, error) {
	l := s.lookup(table)
	if l == nil {
		return order.Item{}, notFound(table, id)
	}
	it, ok := l.get(id)
	if !ok {
		return order.Item{}, notFound(table, id)
	}
	return it, nil
}

// RemoveItem deletes one item of a table. The table's ledger stays even when
// it becomes empty.
func (s *Store) RemoveItem(ctx context.Context, table order.TableID, id order.ItemID) error {
	l := s.lookup(table)
	if l == nil || !l.remove(id) {
		return notFound(table, id)
	}
	return nil
}

func notFound(table order.TableID, id order.ItemID) error {
	return fmt.Errorf("%w: table %s item %s", order.ErrNotFound, table, id)
}
