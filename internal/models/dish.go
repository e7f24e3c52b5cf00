package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Dish represents a prepared dish composed of ingredient lines
type Dish struct {
	ID                string           `json:"id" gorm:"primary_key"`
	Name              string           `json:"name" gorm:"not null"`
	PreparationMethod string           `json:"preparationMethod" gorm:"type:text"`
	Ingredients       []DishIngredient `json:"ingredients" gorm:"foreignkey:DishID"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// DishIngredient is a single ingredient line of a dish, quantified in grams
type DishIngredient struct {
	ID            string      `json:"id" gorm:"primary_key"`
	DishID        string      `json:"dishId" gorm:"not null;index"`
	IngredientID  string      `json:"ingredientId" gorm:"not null;index"`
	Ingredient    *Ingredient `json:"ingredient,omitempty" gorm:"foreignkey:IngredientID;association_foreignkey:ID"`
	QuantityGrams float64     `json:"quantityGrams" gorm:"not null"`
}

// BeforeCreate generates a UUID for new dishes
func (d *Dish) BeforeCreate(scope *gorm.Scope) error {
	if d.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// BeforeCreate generates a UUID for new dish ingredient lines
func (di *DishIngredient) BeforeCreate(scope *gorm.Scope) error {
	if di.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// Calories returns the calories contributed by this line (per-100g value scaled by grams)
func (di *DishIngredient) Calories() float64 {
	if di.Ingredient == nil {
		return 0
	}
	return di.Ingredient.Calories * di.QuantityGrams / 100
}

// NutritionFacts holds the derived nutritional totals of a dish.
// Dish nutrition is always computed from its ingredient lines, never stored.
type NutritionFacts struct {
	Calories      float64 `json:"calories"`
	Carbohydrates float64 `json:"carbohydrates"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Sodium        float64 `json:"sodium"`
}

// Nutrition computes the dish's nutritional totals across all resolved lines
func (d *Dish) Nutrition() NutritionFacts {
	var facts NutritionFacts
	for _, line := range d.Ingredients {
		if line.Ingredient == nil {
			continue
		}
		factor := line.QuantityGrams / 100
		facts.Calories += line.Ingredient.Calories * factor
		facts.Carbohydrates += line.Ingredient.Carbohydrates * factor
		facts.Protein += line.Ingredient.Protein * factor
		facts.Fat += line.Ingredient.Fat * factor
		facts.Sodium += line.Ingredient.Sodium * factor
	}
	return facts
}
