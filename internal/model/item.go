package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Item is one orderable line on the list: a name, an optional description,
// a quantity and a unit price. The id is the durable key: an item keeps it
// across reorders and edits; its position in a list is a transient view.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitCents   int64  `json:"unit_cents"`
}

// New builds an Item with a fresh id.
func New(name, description string, quantity int, unitCents int64) Item {
	return Item{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Quantity:    quantity,
		UnitCents:   unitCents,
	}
}

// ItemID projects an Item to its id, for the reorder helpers.
func ItemID(it Item) string { return it.ID }

// TotalCents is the computed line total. Never stored, always derived.
func (it Item) TotalCents() int64 {
	return int64(it.Quantity) * it.UnitCents
}

// Validate checks the fields a user can type in.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if it.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative: %d", it.Quantity)
	}
	if it.UnitCents < 0 {
		return fmt.Errorf("unit price cannot be negative: %d", it.UnitCents)
	}
	return nil
}

// FormatCents renders a cent amount as dollars, e.g. 1050 -> "$10.50".
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// ParseCents parses a price like "4", "4.9" or "4.99" into cents.
// A leading "$" is tolerated.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, errors.New("empty price")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q: %w", s, err)
	}
	cents := int64(0)
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("price %q: more than two decimal places", s)
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("price %q: %w", s, err)
		}
	}
	total := dollars*100 + cents
	if neg {
		total = -total
	}
	return total, nil
}
