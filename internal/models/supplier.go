package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// SupplierType classifies a supplier for procurement compliance
type SupplierType string

const (
	// Supplier types
	SupplierRegular       SupplierType = "regular"
	SupplierFamilyFarming SupplierType = "family_farming"
)

// Supplier represents a food supplier
type Supplier struct {
	ID        string       `json:"id" gorm:"primary_key"`
	Name      string       `json:"name" gorm:"not null"`
	Document  string       `json:"document" gorm:"not null"` // CNPJ/CPF
	Type      SupplierType `json:"type" gorm:"not null;default:'regular'"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// BeforeCreate generates a UUID for new suppliers
func (s *Supplier) BeforeCreate(scope *gorm.Scope) error {
	if s.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// ValidSupplierType checks that a type is one of the known supplier types
func ValidSupplierType(t SupplierType) bool {
	return t == SupplierRegular || t == SupplierFamilyFarming
}
