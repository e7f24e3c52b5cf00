package logistics

import (
	"github.com/jinzhu/gorm"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/models"
)

// AlertPublisher receives alerts as the ledger creates them, e.g. to push
// them to connected dashboard clients
type AlertPublisher interface {
	PublishAlert(alert *models.StockAlert)
}

// Service handles inventory logistics: stock items, the movement ledger,
// derived alerts and reporting
type Service struct {
	db        *gorm.DB
	publisher AlertPublisher
}

// NewService creates a logistics service backed by the given database
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SetAlertPublisher wires an optional publisher notified of every new alert
func (s *Service) SetAlertPublisher(p AlertPublisher) {
	s.publisher = p
}

func (s *Service) publishAlerts(alerts []models.StockAlert) {
	if s.publisher == nil {
		return
	}
	for i := range alerts {
		s.publisher.PublishAlert(&alerts[i])
	}
}

// CreateStockItemInput carries the fields for a new stock item
type CreateStockItemInput struct {
	Name            string               `json:"name" binding:"required"`
	Type            models.StockItemType `json:"type"`
	IngredientID    string               `json:"ingredientId"`
	Code            string               `json:"code" binding:"required"`
	CurrentQuantity float64              `json:"currentQuantity" binding:"min=0"`
	MinQuantity     float64              `json:"minQuantity" binding:"min=0"`
	MaxCapacity     float64              `json:"maxCapacity" binding:"min=0"`
	Unit            string               `json:"unit" binding:"required"`
	UnitCost        float64              `json:"unitCost" binding:"min=0"`
	Location        string               `json:"location" binding:"required"`
	SchoolID        string               `json:"schoolId"`
	IsActive        *bool                `json:"isActive"`
}

// UpdateStockItemInput carries the optional fields of a stock item update
type UpdateStockItemInput struct {
	Name            *string               `json:"name"`
	Type            *models.StockItemType `json:"type"`
	IngredientID    *string               `json:"ingredientId"`
	Code            *string               `json:"code"`
	CurrentQuantity *float64              `json:"currentQuantity"`
	MinQuantity     *float64              `json:"minQuantity"`
	MaxCapacity     *float64              `json:"maxCapacity"`
	Unit            *string               `json:"unit"`
	UnitCost        *float64              `json:"unitCost"`
	Location        *string               `json:"location"`
	SchoolID        *string               `json:"schoolId"`
	IsActive        *bool                 `json:"isActive"`
}

// StockItemFilter narrows stock item listings
type StockItemFilter struct {
	SchoolID string
	Type     string
	IsActive *bool
}

// CreateStockItem stores a new stock item and derives alerts from its
// initial state
func (s *Service) CreateStockItem(input CreateStockItemInput) (*models.StockItem, error) {
	itemType := input.Type
	if itemType == "" {
		itemType = models.StockItemSupply
	}
	if !models.ValidStockItemType(itemType) {
		return nil, apperr.Validation("unknown stock item type: %s", itemType)
	}

	item := models.StockItem{
		Name:            input.Name,
		Type:            itemType,
		IngredientID:    input.IngredientID,
		Code:            input.Code,
		CurrentQuantity: input.CurrentQuantity,
		MinQuantity:     input.MinQuantity,
		MaxCapacity:     input.MaxCapacity,
		Unit:            input.Unit,
		UnitCost:        input.UnitCost,
		Location:        input.Location,
		SchoolID:        input.SchoolID,
		IsActive:        true,
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}

	alerts, err := s.checkAndCreateAlerts(s.db, &item, nil, "")
	if err != nil {
		return nil, err
	}
	s.publishAlerts(alerts)

	return &item, nil
}

// ListStockItems returns stock items matching the filter
func (s *Service) ListStockItems(filter StockItemFilter) ([]models.StockItem, error) {
	query := s.db
	if filter.SchoolID != "" {
		query = query.Where("school_id = ?", filter.SchoolID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var items []models.StockItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetStockItem returns a single stock item by id
func (s *Service) GetStockItem(id string) (*models.StockItem, error) {
	var item models.StockItem
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("stock item", id)
		}
		return nil, err
	}
	return &item, nil
}

// UpdateStockItem applies a partial update and re-derives alerts from the
// resulting state
func (s *Service) UpdateStockItem(id string, input UpdateStockItemInput) (*models.StockItem, error) {
	item, err := s.GetStockItem(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Type != nil {
		if !models.ValidStockItemType(*input.Type) {
			return nil, apperr.Validation("unknown stock item type: %s", *input.Type)
		}
		item.Type = *input.Type
	}
	if input.IngredientID != nil {
		item.IngredientID = *input.IngredientID
	}
	if input.Code != nil {
		item.Code = *input.Code
	}
	if input.CurrentQuantity != nil {
		if *input.CurrentQuantity < 0 {
			return nil, apperr.Validation("currentQuantity must not be negative")
		}
		item.CurrentQuantity = *input.CurrentQuantity
	}
	if input.MinQuantity != nil {
		item.MinQuantity = *input.MinQuantity
	}
	if input.MaxCapacity != nil {
		item.MaxCapacity = *input.MaxCapacity
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.UnitCost != nil {
		item.UnitCost = *input.UnitCost
	}
	if input.Location != nil {
		item.Location = *input.Location
	}
	if input.SchoolID != nil {
		item.SchoolID = *input.SchoolID
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}

	alerts, err := s.checkAndCreateAlerts(s.db, item, nil, "")
	if err != nil {
		return nil, err
	}
	s.publishAlerts(alerts)

	return item, nil
}

// DeleteStockItem removes a stock item. Items with any recorded movements or
// alerts are referentially frozen and cannot be deleted.
func (s *Service) DeleteStockItem(id string) error {
	item, err := s.GetStockItem(id)
	if err != nil {
		return err
	}

	var movementCount, alertCount int64
	s.db.Model(&models.StockMovement{}).Where("stock_item_id = ?", id).Count(&movementCount)
	s.db.Model(&models.StockAlert{}).Where("stock_item_id = ?", id).Count(&alertCount)

	if movementCount > 0 || alertCount > 0 {
		return apperr.Invalid(
			"stock item %s cannot be deleted: %d movement(s) and %d alert(s) reference it",
			id, movementCount, alertCount,
		)
	}

	return s.db.Delete(item).Error
}

// ListItemMovements returns the full ledger of one stock item, newest first
func (s *Service) ListItemMovements(id string) ([]models.StockMovement, error) {
	if _, err := s.GetStockItem(id); err != nil {
		return nil, err
	}

	var movements []models.StockMovement
	err := s.db.Where("stock_item_id = ?", id).
		Order("created_at desc").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// SyncIngredientToStock ensures a stock item exists for a nutritional-planning
// ingredient, creating one on first use. The ingredient link stays a loose
// reference resolved only here.
func (s *Service) SyncIngredientToStock(ingredientID, schoolID string) (*models.StockItem, error) {
	var ingredient models.Ingredient
	if err := s.db.Where("id = ?", ingredientID).First(&ingredient).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("ingredient", ingredientID)
		}
		return nil, err
	}

	var item models.StockItem
	err := s.db.Where("ingredient_id = ? AND school_id = ?", ingredientID, schoolID).
		First(&item).Error
	if err == nil {
		return &item, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	item = models.StockItem{
		Name:         ingredient.Name,
		Type:         models.StockItemIngredient,
		IngredientID: ingredientID,
		Code:         "ING-" + ingredientID[:8],
		Unit:         "kg",
		Location:     "unassigned",
		SchoolID:     schoolID,
		IsActive:     true,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
