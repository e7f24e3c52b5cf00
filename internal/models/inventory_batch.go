package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// InventoryBatch tracks a delivered lot of an ingredient with its expiry date.
// Kept alongside the ledger as the source for near-expiry reporting.
type InventoryBatch struct {
	ID           string    `json:"id" gorm:"primary_key"`
	IngredientID string    `json:"ingredientId" gorm:"not null;index"` // loose cross-module reference
	BatchNumber  string    `json:"batchNumber" gorm:"not null"`
	ExpiryDate   time.Time `json:"expiryDate" gorm:"type:date;not null"`
	Quantity     float64   `json:"quantity" gorm:"not null"`
	SchoolID     string    `json:"schoolId" gorm:"index"` // partition by school
}

// BeforeCreate generates a UUID for new batches
func (b *InventoryBatch) BeforeCreate(scope *gorm.Scope) error {
	if b.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}
