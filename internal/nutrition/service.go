package nutrition

import (
	"time"

	"github.com/jinzhu/gorm"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/models"
)

// Service handles nutritional planning: ingredients, dishes and menus
type Service struct {
	db *gorm.DB
}

// NewService creates a nutrition service backed by the given database
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateIngredientInput carries the fields for a new ingredient
type CreateIngredientInput struct {
	Name               string                    `json:"name" binding:"required"`
	NovaClassification models.NovaClassification `json:"novaClassification" binding:"required"`
	Calories           float64                   `json:"calories" binding:"min=0"`
	Carbohydrates      float64                   `json:"carbohydrates" binding:"min=0"`
	Protein            float64                   `json:"protein" binding:"min=0"`
	Fat                float64                   `json:"fat" binding:"min=0"`
	Sodium             float64                   `json:"sodium" binding:"min=0"`
}

// UpdateIngredientInput carries the optional fields of an ingredient update
type UpdateIngredientInput struct {
	Name               *string                    `json:"name"`
	NovaClassification *models.NovaClassification `json:"novaClassification"`
	Calories           *float64                   `json:"calories"`
	Carbohydrates      *float64                   `json:"carbohydrates"`
	Protein            *float64                   `json:"protein"`
	Fat                *float64                   `json:"fat"`
	Sodium             *float64                   `json:"sodium"`
}

// CreateIngredient stores a new ingredient
func (s *Service) CreateIngredient(input CreateIngredientInput) (*models.Ingredient, error) {
	if !models.ValidNovaClassification(input.NovaClassification) {
		return nil, apperr.Validation("unknown NOVA classification: %s", input.NovaClassification)
	}

	ingredient := models.Ingredient{
		Name:               input.Name,
		NovaClassification: input.NovaClassification,
		Calories:           input.Calories,
		Carbohydrates:      input.Carbohydrates,
		Protein:            input.Protein,
		Fat:                input.Fat,
		Sodium:             input.Sodium,
	}
	if err := s.db.Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ListIngredients returns all ingredients
func (s *Service) ListIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetIngredient returns a single ingredient by id
func (s *Service) GetIngredient(id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.Where("id = ?", id).First(&ingredient).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("ingredient", id)
		}
		return nil, err
	}
	return &ingredient, nil
}

// UpdateIngredient applies a partial update to an ingredient
func (s *Service) UpdateIngredient(id string, input UpdateIngredientInput) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredient(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		ingredient.Name = *input.Name
	}
	if input.NovaClassification != nil {
		if !models.ValidNovaClassification(*input.NovaClassification) {
			return nil, apperr.Validation("unknown NOVA classification: %s", *input.NovaClassification)
		}
		ingredient.NovaClassification = *input.NovaClassification
	}
	if input.Calories != nil {
		ingredient.Calories = *input.Calories
	}
	if input.Carbohydrates != nil {
		ingredient.Carbohydrates = *input.Carbohydrates
	}
	if input.Protein != nil {
		ingredient.Protein = *input.Protein
	}
	if input.Fat != nil {
		ingredient.Fat = *input.Fat
	}
	if input.Sodium != nil {
		ingredient.Sodium = *input.Sodium
	}

	if err := s.db.Save(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// DeleteIngredient removes an ingredient
func (s *Service) DeleteIngredient(id string) error {
	ingredient, err := s.GetIngredient(id)
	if err != nil {
		return err
	}
	return s.db.Delete(ingredient).Error
}

// DishIngredientInput is one ingredient line of a dish payload
type DishIngredientInput struct {
	IngredientID  string  `json:"ingredientId" binding:"required"`
	QuantityGrams float64 `json:"quantityGrams" binding:"required,gt=0"`
}

// CreateDishInput carries the fields for a new dish
type CreateDishInput struct {
	Name              string                `json:"name" binding:"required"`
	PreparationMethod string                `json:"preparationMethod" binding:"required"`
	Ingredients       []DishIngredientInput `json:"ingredients" binding:"required,dive"`
}

// UpdateDishInput carries the optional fields of a dish update. A non-nil
// Ingredients slice replaces all existing lines.
type UpdateDishInput struct {
	Name              *string               `json:"name"`
	PreparationMethod *string               `json:"preparationMethod"`
	Ingredients       []DishIngredientInput `json:"ingredients"`
}

func (s *Service) buildDishLines(inputs []DishIngredientInput) ([]models.DishIngredient, error) {
	lines := make([]models.DishIngredient, 0, len(inputs))
	for _, in := range inputs {
		if in.QuantityGrams <= 0 {
			return nil, apperr.Validation("ingredient quantity must be greater than 0")
		}
		if _, err := s.GetIngredient(in.IngredientID); err != nil {
			return nil, err
		}
		lines = append(lines, models.DishIngredient{
			IngredientID:  in.IngredientID,
			QuantityGrams: in.QuantityGrams,
		})
	}
	return lines, nil
}

// CreateDish stores a new dish with its ingredient lines
func (s *Service) CreateDish(input CreateDishInput) (*models.Dish, error) {
	lines, err := s.buildDishLines(input.Ingredients)
	if err != nil {
		return nil, err
	}

	dish := models.Dish{
		Name:              input.Name,
		PreparationMethod: input.PreparationMethod,
		Ingredients:       lines,
	}
	if err := s.db.Create(&dish).Error; err != nil {
		return nil, err
	}
	return s.GetDish(dish.ID)
}

// ListDishes returns all dishes with resolved ingredient lines
func (s *Service) ListDishes() ([]models.Dish, error) {
	var dishes []models.Dish
	if err := s.db.Preload("Ingredients.Ingredient").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// GetDish returns a single dish with resolved ingredient lines
func (s *Service) GetDish(id string) (*models.Dish, error) {
	var dish models.Dish
	err := s.db.Preload("Ingredients.Ingredient").Where("id = ?", id).First(&dish).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("dish", id)
		}
		return nil, err
	}
	return &dish, nil
}

// UpdateDish applies a partial update to a dish, replacing its ingredient
// lines when new ones are supplied
func (s *Service) UpdateDish(id string, input UpdateDishInput) (*models.Dish, error) {
	dish, err := s.GetDish(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		dish.Name = *input.Name
	}
	if input.PreparationMethod != nil {
		dish.PreparationMethod = *input.PreparationMethod
	}

	tx := s.db.Begin()
	if input.Ingredients != nil {
		lines, err := s.buildDishLines(input.Ingredients)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Where("dish_id = ?", dish.ID).Delete(&models.DishIngredient{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		for i := range lines {
			lines[i].DishID = dish.ID
			if err := tx.Create(&lines[i]).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
		dish.Ingredients = nil
	}

	if err := tx.Model(&models.Dish{}).Where("id = ?", dish.ID).Updates(map[string]interface{}{
		"name":               dish.Name,
		"preparation_method": dish.PreparationMethod,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetDish(id)
}

// DeleteDish removes a dish and its ingredient lines
func (s *Service) DeleteDish(id string) error {
	dish, err := s.GetDish(id)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	if err := tx.Where("dish_id = ?", dish.ID).Delete(&models.DishIngredient{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(dish).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// CreateMenuInput carries the fields for a new menu
type CreateMenuInput struct {
	Date    string   `json:"date" binding:"required"` // YYYY-MM-DD
	DishIDs []string `json:"dishIds" binding:"required"`
}

// UpdateMenuInput carries the optional fields of a menu update
type UpdateMenuInput struct {
	Date    *string  `json:"date"`
	DishIDs []string `json:"dishIds"`
}

func (s *Service) resolveDishes(ids []string) ([]models.Dish, error) {
	var dishes []models.Dish
	err := s.db.Preload("Ingredients.Ingredient").Where("id IN (?)", ids).Find(&dishes).Error
	if err != nil {
		return nil, err
	}
	if len(dishes) != len(ids) {
		return nil, apperr.Invalid("some dishes were not found (%d of %d)", len(dishes), len(ids))
	}
	return dishes, nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// CreateMenu stores a new menu after enforcing the ultra-processed limit
func (s *Service) CreateMenu(input CreateMenuInput) (*models.Menu, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	dishes, err := s.resolveDishes(input.DishIDs)
	if err != nil {
		return nil, err
	}

	menu := models.Menu{Date: date, Dishes: dishes}
	if err := ValidateMenu(&menu); err != nil {
		return nil, err
	}

	if err := s.db.Create(&menu).Error; err != nil {
		return nil, err
	}
	return s.GetMenu(menu.ID)
}

// ListMenus returns all menus with resolved dishes
func (s *Service) ListMenus() ([]models.Menu, error) {
	var menus []models.Menu
	if err := s.db.Preload("Dishes.Ingredients.Ingredient").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// GetMenu returns a single menu with resolved dishes
func (s *Service) GetMenu(id string) (*models.Menu, error) {
	var menu models.Menu
	err := s.db.Preload("Dishes.Ingredients.Ingredient").Where("id = ?", id).First(&menu).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("menu", id)
		}
		return nil, err
	}
	return &menu, nil
}

// UpdateMenu applies a partial update to a menu, re-validating the
// ultra-processed limit against the resulting dish set
func (s *Service) UpdateMenu(id string, input UpdateMenuInput) (*models.Menu, error) {
	menu, err := s.GetMenu(id)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		date, err := parseDate(*input.Date)
		if err != nil {
			return nil, err
		}
		menu.Date = date
	}

	dishes := menu.Dishes
	if input.DishIDs != nil {
		dishes, err = s.resolveDishes(input.DishIDs)
		if err != nil {
			return nil, err
		}
	}

	candidate := models.Menu{ID: menu.ID, Date: menu.Date, Dishes: dishes}
	if err := ValidateMenu(&candidate); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Menu{}).Where("id = ?", menu.ID).Update("date", menu.Date).Error; err != nil {
		return nil, err
	}
	if input.DishIDs != nil {
		if err := s.db.Model(menu).Association("Dishes").Replace(dishes).Error; err != nil {
			return nil, err
		}
	}

	return s.GetMenu(id)
}

// DeleteMenu removes a menu
func (s *Service) DeleteMenu(id string) error {
	menu, err := s.GetMenu(id)
	if err != nil {
		return err
	}
	if err := s.db.Model(menu).Association("Dishes").Clear().Error; err != nil {
		return err
	}
	return s.db.Delete(menu).Error
}
