// Package cart holds the shopper's in-progress selection. The store lives
// entirely on the client side and survives restarts through a pluggable
// persistence backend; the server never sees a cart until checkout.
package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one selected product line. At most one Item exists per product.
type Item struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Quantity  int             `json:"quantity"`
}

// ProductSummary is what AddItem needs to know about a product.
type ProductSummary struct {
	ProductID int
	Name      string
	Price     decimal.Decimal
	ImageURL  string
}

// Storage persists the full item collection. Load is fail-soft: a missing
// or corrupt snapshot yields an empty cart, never an error that would
// block the shopper.
type Storage interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

// Store keeps cart items in insertion order and writes every mutation
// through to its Storage. It is meant for single-goroutine use within one
// client process; two processes sharing a backend can diverge.
type Store struct {
	items   []Item
	storage Storage
}

func NewStore(storage Storage) (*Store, error) {
	items, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Store{
		items:   items,
		storage: storage,
	}, nil
}

// AddItem increments the quantity of an already-selected product or appends
// a new line with quantity 1.
func (s *Store) AddItem(product ProductSummary) error {
	for i := range s.items {
		if s.items[i].ProductID == product.ProductID {
			s.items[i].Quantity++
			return s.persist()
		}
	}
	s.items = append(s.items, Item{
		ProductID: product.ProductID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  1,
	})
	return s.persist()
}

// RemoveItem deletes the matching line. Removing an absent product is a
// no-op, not an error.
func (s *Store) RemoveItem(productID int) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// UpdateQuantity replaces a line's quantity. A quantity of zero or less
// removes the line; a non-positive quantity is never stored.
func (s *Store) UpdateQuantity(productID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(productID)
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return s.persist()
		}
	}
	return nil
}

// Clear empties the cart. Called after a successful order placement.
func (s *Store) Clear() error {
	s.items = nil
	return s.persist()
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Item {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Total is Σ(price × quantity), recomputed on every call.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ItemCount is the sum of all quantities.
func (s *Store) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) persist() error {
	return s.storage.Save(s.items)
}
