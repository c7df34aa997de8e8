package menu

import (
	"errors"
	"fmt"
	"strings"

	"warungpos/internal/poserr"
)

const MaxSpiciness = 5

// ValidateSpec checks a spec before it becomes an Item and clears the
// attribute fields that do not belong to its category.
func ValidateSpec(s *Spec) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return errors.New("item name is required")
	}

	if _, err := ParseCategory(string(s.Category)); err != nil {
		return err
	}

	if s.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", poserr.ErrInvalidQuantity)
	}

	if s.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", poserr.ErrInvalidQuantity)
	}

	attrs := Attributes{}
	switch s.Category {
	case Food:
		if s.Attributes.Spiciness < 0 || s.Attributes.Spiciness > MaxSpiciness {
			return fmt.Errorf("spiciness must be between 0 and %d", MaxSpiciness)
		}
		attrs.Spiciness = s.Attributes.Spiciness
	case Beverage:
		attrs.Hot = s.Attributes.Hot
	case Dessert:
		attrs.IceCream = s.Attributes.IceCream
	}
	s.Attributes = attrs

	return nil
}
