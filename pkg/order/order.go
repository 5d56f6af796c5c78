// Package order defines the table order domain: items, their identifiers and
// the repository contract every order store implements.
package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ItemIDKey is the JSON field carrying an item's identifier. Clients may not set it.
const ItemIDKey = "item_id"

var (
	// ErrNotFound indicates the requested table item does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrInvalidRequest indicates malformed or empty input.
	ErrInvalidRequest = errors.New("invalid request")
)

// TableID identifies a dining table. Every value is a valid table.
type TableID uint32

// ItemID identifies an item within one table. IDs start at 1 and are never
// reused within a table.
type ItemID uint64

// ParseTableID parses a decimal table identifier.
func ParseTableID(s string) (TableID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: table id %q", ErrInvalidRequest, s)
	}
	return TableID(n), nil
}

// ParseItemID parses a decimal item identifier.
func ParseItemID(s string) (ItemID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: item id %q", ErrInvalidRequest, s)
	}
	return ItemID(n), nil
}

func (id TableID) String() string { return strconv.FormatUint(uint64(id), 10) }

func (id ItemID) String() string { return strconv.FormatUint(uint64(id), 10) }

// Description is the item payload as submitted by the client. Stores keep it
// verbatim and never interpret its fields.
type Description map[string]any

// Validate reports whether d can be stored as an item.
func (d Description) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("%w: empty item description", ErrInvalidRequest)
	}
	if _, ok := d[ItemIDKey]; ok {
		return fmt.Errorf("%w: %s is assigned by the server", ErrInvalidRequest, ItemIDKey)
	}
	return nil
}

// Clone returns a deep copy of d.
func (d Description) Clone() Description {
	if d == nil {
		return nil
	}
	out := make(Description, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case Description:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

// ValidateItems checks a PlaceOrder payload. All item problems are reported together.
func ValidateItems(items []Description) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items must not be empty", ErrInvalidRequest)
	}
	var errs []error
	for i, d := range items {
		if err := d.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("items[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Item is one ordered item of a table.
type Item struct {
	ID          ItemID
	Description Description
}

// MarshalJSON renders the item flat: the description fields plus item_id.
func (i Item) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(i.Description)+1)
	for k, v := range i.Description {
		m[k] = v
	}
	m[ItemIDKey] = uint64(i.ID)
	return json.Marshal(m)
}

// UnmarshalJSON reads the flat form produced by MarshalJSON.
func (i *Item) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m Description
	if err := dec.Decode(&m); err != nil {
		return err
	}
	raw, ok := m[ItemIDKey].(json.Number)
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrInvalidRequest, ItemIDKey)
	}
	id, err := ParseItemID(raw.String())
	if err != nil {
		return err
	}
	delete(m, ItemIDKey)
	i.ID = id
	i.Description = m
	return nil
}

// Repository defines the table order contract.
type Repository interface {
	// PlaceOrder appends items to the table's order and returns them with
	// their assigned ids, in submission order.
	PlaceOrder(ctx context.Context, table TableID, items []Description) ([]Item, error)

	// TableOrders lists the table's items in the order they were placed.
	// A table that never ordered yields an empty list.
	TableOrders(ctx context.Context, table TableID) ([]Item, error)

	// Item returns a single item of the table.
	Item(ctx context.Context, table TableID, id ItemID) (Item, error)

	// RemoveItem deletes a single item from the table.
	RemoveItem(ctx context.Context, table TableID, id ItemID) error
}
