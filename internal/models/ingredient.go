package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// NovaClassification represents the NOVA food-processing level of an ingredient
type NovaClassification string

const (
	// NOVA groups
	NovaUnprocessed       NovaClassification = "unprocessed"
	NovaProcessedCulinary NovaClassification = "processed_culinary_ingredient"
	NovaProcessed         NovaClassification = "processed"
	NovaUltraprocessed    NovaClassification = "ultraprocessed"
)

// Ingredient represents a food ingredient with its nutritional values per 100g
type Ingredient struct {
	ID                 string             `json:"id" gorm:"primary_key"`
	Name               string             `json:"name" gorm:"not null"`
	NovaClassification NovaClassification `json:"novaClassification" gorm:"not null;default:'unprocessed'"`
	Calories           float64            `json:"calories"`      // kcal per 100g
	Carbohydrates      float64            `json:"carbohydrates"` // g per 100g
	Protein            float64            `json:"protein"`       // g per 100g
	Fat                float64            `json:"fat"`           // g per 100g
	Sodium             float64            `json:"sodium"`        // mg per 100g
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// BeforeCreate generates a UUID for new ingredients
func (i *Ingredient) BeforeCreate(scope *gorm.Scope) error {
	if i.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// IsUltraprocessed reports whether the ingredient falls in the NOVA ultraprocessed group
func (i *Ingredient) IsUltraprocessed() bool {
	return i.NovaClassification == NovaUltraprocessed
}

// ValidNovaClassification checks that a classification is one of the NOVA groups
func ValidNovaClassification(c NovaClassification) bool {
	switch c {
	case NovaUnprocessed, NovaProcessedCulinary, NovaProcessed, NovaUltraprocessed:
		return true
	}
	return false
}
