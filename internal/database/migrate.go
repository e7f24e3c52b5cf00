package database

import (
	"log"

	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"

	"github.com/Guztaver/merendaEscolar/internal/models"
)

// Migrate creates and updates all required database tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Ingredient{},
		&models.Dish{},
		&models.DishIngredient{},
		&models.Menu{},
		&models.Supplier{},
		&models.Purchase{},
		&models.StockItem{},
		&models.StockMovement{},
		&models.StockAlert{},
		&models.InventoryBatch{},
		&models.User{},
	).Error
}

// SeedDefaultData ensures essential data exists in the database
func SeedDefaultData(db *gorm.DB) {
	// Create a default administrator if no user exists yet
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash default admin password: %v", err)
			return
		}
		admin := models.User{
			Name:     "Administrador",
			Email:    "admin@merenda.local",
			Password: string(hash),
			Role:     "admin",
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("Failed to create default admin user: %v", err)
			return
		}
		log.Printf("Seeded default admin user %s (change the password)", admin.Email)
	}
}
