package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// StockItemType represents the kind of good tracked by a stock item
type StockItemType string

const (
	// Stock item types
	StockItemIngredient StockItemType = "INGREDIENT"
	StockItemDish       StockItemType = "DISH"
	StockItemSupply     StockItemType = "SUPPLY"
)

// StockItem represents a warehouse item. CurrentQuantity is the single source
// of truth for the on-hand balance and is mutated only by the movement ledger.
type StockItem struct {
	ID              string        `json:"id" gorm:"primary_key"`
	Name            string        `json:"name" gorm:"not null"`
	Type            StockItemType `json:"type" gorm:"not null;default:'SUPPLY'"`
	IngredientID    string        `json:"ingredientId,omitempty"` // loose reference to a nutritional-planning ingredient
	Code            string        `json:"code"`                   // barcode or internal code
	CurrentQuantity float64       `json:"currentQuantity" gorm:"default:0"`
	MinQuantity     float64       `json:"minQuantity" gorm:"default:0"` // alert floor
	MaxCapacity     float64       `json:"maxCapacity" gorm:"default:0"` // alert ceiling, 0 = no ceiling
	Unit            string        `json:"unit" gorm:"not null"`         // kg, L, un, cx, ...
	UnitCost        float64       `json:"unitCost" gorm:"default:0"`
	Location        string        `json:"location"`
	SchoolID        string        `json:"schoolId,omitempty" gorm:"index"`
	IsActive        bool          `json:"isActive" gorm:"default:true"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// BeforeCreate generates a UUID for new stock items
func (s *StockItem) BeforeCreate(scope *gorm.Scope) error {
	if s.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// StockValue returns the valuation of the on-hand balance
func (s *StockItem) StockValue() float64 {
	return s.CurrentQuantity * s.UnitCost
}

// ValidStockItemType checks that a type is one of the known stock item types
func ValidStockItemType(t StockItemType) bool {
	switch t {
	case StockItemIngredient, StockItemDish, StockItemSupply:
		return true
	}
	return false
}
