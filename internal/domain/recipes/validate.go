package recipes

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateLines enforces the ingredient-line invariants that need no lookups:
// at least one line, no repeated ingredient, no negative amount. Lines are
// checked in order so the first offending line decides the error.
func ValidateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return ErrEmptyIngredients
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for i, line := range lines {
		if _, dup := seen[line.IngredientID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateIngredient, line.IngredientID)
		}
		seen[line.IngredientID] = struct{}{}
		// Zero is accepted; only negative amounts are rejected.
		if line.Amount < 0 {
			return fmt.Errorf("%w (line %d)", ErrInvalidAmount, i+1)
		}
	}
	return nil
}

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return ErrInvalidName
	}
	return nil
}

func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidText
	}
	return nil
}

func ValidateCookingTime(minutes int) error {
	if minutes < MinCookingTime {
		return ErrInvalidCookingTime
	}
	return nil
}

// DistinctTagIDs drops repeated and nil tag ids, keeping first-seen order.
func DistinctTagIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ValidateWrite runs the lookup-free checks in their reporting order:
// lines first, then name, text and cooking time. Nil attributes are skipped.
func ValidateWrite(lines []LineInput, name, text *string, cookingTime *int) error {
	if err := ValidateLines(lines); err != nil {
		return err
	}
	if name != nil {
		if err := ValidateName(*name); err != nil {
			return err
		}
	}
	if text != nil {
		if err := ValidateText(*text); err != nil {
			return err
		}
	}
	if cookingTime != nil {
		if err := ValidateCookingTime(*cookingTime); err != nil {
			return err
		}
	}
	return nil
}
