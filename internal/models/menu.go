package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Menu represents the set of dishes served on a given date
type Menu struct {
	ID        string    `json:"id" gorm:"primary_key"`
	Date      time.Time `json:"date" gorm:"type:date;not null"`
	Dishes    []Dish    `json:"dishes" gorm:"many2many:menu_dishes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates a UUID for new menus
func (m *Menu) BeforeCreate(scope *gorm.Scope) error {
	if m.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}
