package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Purchase represents a procurement transaction with a supplier
type Purchase struct {
	ID         string    `json:"id" gorm:"primary_key"`
	Amount     float64   `json:"amount" gorm:"not null"`
	Date       time.Time `json:"date" gorm:"type:date;not null"`
	SupplierID string    `json:"supplierId" gorm:"not null;index"`
	Supplier   *Supplier `json:"supplier,omitempty" gorm:"foreignkey:SupplierID"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BeforeCreate generates a UUID for new purchases
func (p *Purchase) BeforeCreate(scope *gorm.Scope) error {
	if p.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}
