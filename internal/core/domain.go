package core

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyProduct    = errors.New("empty product")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNotFound        = errors.New("item not found")
)

type (
	Money struct {
		Cents int64
	}

	// Item is one product entry on the list. Subtotal is derived, never stored.
	Item struct {
		ID         string
		Product    string
		PriceCents int64
		Quantity   int64
	}

	// Snapshot is the persistable session state: the ordered item sequence
	// plus the budget. BudgetCents == 0 means no budget configured.
	Snapshot struct {
		Items       []Item
		BudgetCents int64
	}
)

// NewItemID returns a collision-resistant identifier for a new item.
func NewItemID() string {
	return uuid.NewString()
}

func (i Item) Validate() error {
	if i.ID == "" {
		return ErrNotFound
	}
	if len(strings.TrimSpace(i.Product)) == 0 {
		return ErrEmptyProduct
	}
	if i.PriceCents <= 0 {
		return ErrInvalidPrice
	}
	if i.Quantity <= 0 || subtotalOverflows(i.PriceCents, i.Quantity) {
		return ErrInvalidQuantity
	}
	return nil
}

// subtotalOverflows reports whether price*quantity exceeds int64 cents.
// Both arguments must already be positive.
func subtotalOverflows(priceCents, quantity int64) bool {
	return quantity > math.MaxInt64/priceCents
}

// Subtotal returns the derived price*quantity in cents.
func (i Item) Subtotal() Money {
	return Money{Cents: i.PriceCents * i.Quantity}
}

// ValidateFields checks user-entered item fields before they reach the list.
// All problems are collected into a single combined error so the UI can show
// one message.
func ValidateFields(product string, priceCents, quantity int64) error {
	var problems []string
	if len(strings.TrimSpace(product)) == 0 {
		problems = append(problems, "product name is required")
	}
	if priceCents <= 0 {
		problems = append(problems, "price must be greater than zero")
	}
	if quantity <= 0 {
		problems = append(problems, "quantity must be greater than zero")
	} else if priceCents > 0 && subtotalOverflows(priceCents, quantity) {
		problems = append(problems, "quantity is too large for this price")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
