package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/models"
)

func ingredient(name string, calories float64, nova models.NovaClassification) *models.Ingredient {
	return &models.Ingredient{Name: name, Calories: calories, NovaClassification: nova}
}

func dishOf(lines ...models.DishIngredient) models.Dish {
	return models.Dish{Name: "test dish", Ingredients: lines}
}

func TestValidateMenuEmptyMenuPasses(t *testing.T) {
	assert.NoError(t, ValidateMenu(nil))
	assert.NoError(t, ValidateMenu(&models.Menu{}))
	assert.NoError(t, ValidateMenu(&models.Menu{Dishes: []models.Dish{}}))
}

func TestValidateMenuZeroCaloriesPasses(t *testing.T) {
	// A menu of only zero-calorie ingredients has no ratio to compute,
	// even when every ingredient is ultra-processed
	menu := &models.Menu{Dishes: []models.Dish{
		dishOf(models.DishIngredient{
			Ingredient:    ingredient("diet soda", 0, models.NovaUltraprocessed),
			QuantityGrams: 500,
		}),
	}}

	assert.NoError(t, ValidateMenu(menu))
}

func TestValidateMenuAtExactLimitPasses(t *testing.T) {
	// 900 kcal unprocessed + 100 kcal ultra-processed = exactly 10%
	menu := &models.Menu{Dishes: []models.Dish{
		dishOf(
			models.DishIngredient{
				Ingredient:    ingredient("rice", 450, models.NovaUnprocessed),
				QuantityGrams: 200, // 900 kcal
			},
			models.DishIngredient{
				Ingredient:    ingredient("instant sauce", 500, models.NovaUltraprocessed),
				QuantityGrams: 20, // 100 kcal
			},
		),
	}}

	assert.NoError(t, ValidateMenu(menu))
}

func TestValidateMenuJustOverLimitRejected(t *testing.T) {
	// 900 kcal unprocessed + 101 kcal ultra-processed is over the line
	menu := &models.Menu{Dishes: []models.Dish{
		dishOf(
			models.DishIngredient{
				Ingredient:    ingredient("rice", 450, models.NovaUnprocessed),
				QuantityGrams: 200,
			},
			models.DishIngredient{
				Ingredient:    ingredient("instant sauce", 500, models.NovaUltraprocessed),
				QuantityGrams: 20.2, // 101 kcal
			},
		),
	}}

	err := ValidateMenu(menu)
	assert.Error(t, err)
	assert.True(t, apperr.IsInvalidOperation(err))
	assert.Contains(t, err.Error(), "ultra-processed")
}

func TestValidateMenuHalfUltraprocessedRejected(t *testing.T) {
	// Ratio is computed across all dishes of the menu, not per dish
	menu := &models.Menu{Dishes: []models.Dish{
		dishOf(models.DishIngredient{
			Ingredient:    ingredient("beans", 300, models.NovaUnprocessed),
			QuantityGrams: 100, // 300 kcal
		}),
		dishOf(models.DishIngredient{
			Ingredient:    ingredient("cookies", 300, models.NovaUltraprocessed),
			QuantityGrams: 100, // 300 kcal
		}),
	}}

	err := ValidateMenu(menu)
	assert.Error(t, err)
	assert.Equal(t, "menu contains 50.00% ultra-processed calories; the limit is 10%", err.Error())
}

func TestValidateMenuUnresolvedLinesIgnored(t *testing.T) {
	// Lines without a resolved ingredient contribute nothing
	menu := &models.Menu{Dishes: []models.Dish{
		dishOf(models.DishIngredient{IngredientID: "dangling", QuantityGrams: 100}),
	}}

	assert.NoError(t, ValidateMenu(menu))
}
