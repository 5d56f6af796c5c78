package memory

import (
	"slices"
	"sync"

	"restaurant/pkg/order"
)

// ledger holds the items currently ordered for one table. Items are kept in
// placement order, which is also ascending id order.
type ledger struct {
	mu     sync.RWMutex
	lastID order.ItemID
	items  []order.Item
}

func (l *ledger) add(descs []order.Description) []order.Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]order.Item, 0, len(descs))
	for _, d := range descs {
		l.lastID++
		it := order.Item{ID: l.lastID, Description: d.Clone()}
		l.items = append(l.items, it)
		out = append(out, cloneItem(it))
	}
	return out
}

func (l *ledger) list() []order.Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]order.Item, len(l.items))
	for i, it := range l.items {
		out[i] = cloneItem(it)
	}
	return out
}

func (l *ledger) get(id order.ItemID) (order.Item, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.find(id)
	if !ok {
		return order.Item{}, false
	}
	return cloneItem(l.items[i]), true
}

func (l *ledger) remove(id order.ItemID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.find(id)
	if !ok {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// find must be called with mu held.
func (l *ledger) find(id order.ItemID) (int, bool) {
	return slices.BinarySearchFunc(l.items, id, func(it order.Item, id order.ItemID) int {
		switch {
		case it.ID < id:
			return -1
		case it.ID > id:
			return 1
		}
		return 0
	})
}

func cloneItem(it order.Item) order.Item {
	return order.Item{ID: it.ID, Description: it.Description.Clone()}
}
