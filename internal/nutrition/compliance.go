package nutrition

import (
	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/models"
)

// UltraprocessedLimitPercent is the maximum share of menu calories that may
// come from ultra-processed ingredients. Fixed policy, not configurable.
const UltraprocessedLimitPercent = 10.0

// ValidateMenu enforces the ultra-processed calorie limit across all dishes of
// a menu. It is a pure function of the resolved menu graph and must run before
// any menu create or update is persisted.
//
// Menus without dishes, and menus whose total calorie count is zero, pass
// trivially: there is no content to violate the rule and no ratio to compute.
func ValidateMenu(menu *models.Menu) error {
	if menu == nil || len(menu.Dishes) == 0 {
		return nil
	}

	var totalCalories, ultraprocessedCalories float64

	for _, dish := range menu.Dishes {
		for _, line := range dish.Ingredients {
			if line.Ingredient == nil {
				continue
			}

			calories := line.Ingredient.Calories * line.QuantityGrams / 100
			totalCalories += calories

			if line.Ingredient.IsUltraprocessed() {
				ultraprocessedCalories += calories
			}
		}
	}

	if totalCalories == 0 {
		return nil
	}

	percentage := ultraprocessedCalories / totalCalories * 100
	if percentage > UltraprocessedLimitPercent {
		return apperr.Invalid(
			"menu contains %.2f%% ultra-processed calories; the limit is %.0f%%",
			percentage, UltraprocessedLimitPercent,
		)
	}

	return nil
}
