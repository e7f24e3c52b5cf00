package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// User represents an application user
type User struct {
	ID        string    `json:"id" gorm:"primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;unique_index"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Role      string    `json:"role" gorm:"default:'user'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates a UUID for new users
func (u *User) BeforeCreate(scope *gorm.Scope) error {
	if u.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}
