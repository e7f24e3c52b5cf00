package logistics

import (
	"path/filepath"
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/database"
	"github.com/Guztaver/merendaEscolar/internal/models"
)

const testActor = "user-1"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createItem(t *testing.T, svc *Service, input CreateStockItemInput) *models.StockItem {
	t.Helper()

	if input.Name == "" {
		input.Name = "rice"
	}
	if input.Code == "" {
		input.Code = "RICE-01"
	}
	if input.Unit == "" {
		input.Unit = "kg"
	}
	if input.Location == "" {
		input.Location = "pantry"
	}

	item, err := svc.CreateStockItem(input)
	assert.NoError(t, err)
	return item
}

func openAlerts(t *testing.T, db *gorm.DB, itemID string, alertType models.AlertType) []models.StockAlert {
	t.Helper()

	var alerts []models.StockAlert
	err := db.Where("stock_item_id = ? AND type = ? AND status = ?",
		itemID, alertType, models.AlertOpen).Find(&alerts).Error
	assert.NoError(t, err)
	return alerts
}

func TestCreateStockItemDefaultsToSupply(t *testing.T) {
	svc := NewService(newTestDB(t))

	item := createItem(t, svc, CreateStockItemInput{CurrentQuantity: 10})
	assert.Equal(t, models.StockItemSupply, item.Type)
	assert.True(t, item.IsActive)
}

func TestCreateStockItemEmptyDerivesAlerts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	// An item created already empty is immediately alertable
	item := createItem(t, svc, CreateStockItemInput{CurrentQuantity: 0, MinQuantity: 10})

	assert.Len(t, openAlerts(t, db, item.ID, models.AlertOutOfStock), 1)

	low := openAlerts(t, db, item.ID, models.AlertLowStock)
	assert.Len(t, low, 1)
	assert.Equal(t, models.SeverityCritical, low[0].Severity)
}

func TestListStockItemsFilters(t *testing.T) {
	svc := NewService(newTestDB(t))

	createItem(t, svc, CreateStockItemInput{Name: "rice", Code: "A", CurrentQuantity: 10, SchoolID: "school-1"})
	createItem(t, svc, CreateStockItemInput{Name: "beans", Code: "B", CurrentQuantity: 10, SchoolID: "school-2"})

	items, err := svc.ListStockItems(StockItemFilter{SchoolID: "school-1"})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "rice", items[0].Name)
}

func TestDeleteStockItemWithoutHistory(t *testing.T) {
	svc := NewService(newTestDB(t))

	item := createItem(t, svc, CreateStockItemInput{CurrentQuantity: 10})
	assert.NoError(t, svc.DeleteStockItem(item.ID))

	_, err := svc.GetStockItem(item.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteStockItemGuardedByLedger(t *testing.T) {
	svc := NewService(newTestDB(t))

	item := createItem(t, svc, CreateStockItemInput{CurrentQuantity: 10})

	_, err := svc.RecordMovement(MovementInput{
		StockItemID:  item.ID,
		MovementType: models.MovementIn,
		Reason:       models.ReasonPurchase,
		Quantity:     5,
	}, testActor)
	assert.NoError(t, err)

	err = svc.DeleteStockItem(item.ID)
	assert.Error(t, err)
	assert.True(t, apperr.IsInvalidOperation(err))
	assert.Contains(t, err.Error(), "1 movement(s)")

	// The item survives the refused delete
	_, err = svc.GetStockItem(item.ID)
	assert.NoError(t, err)
}

func TestSyncIngredientToStockIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	ingredient := models.Ingredient{Name: "carrot", NovaClassification: models.NovaUnprocessed}
	assert.NoError(t, db.Create(&ingredient).Error)

	first, err := svc.SyncIngredientToStock(ingredient.ID, "school-1")
	assert.NoError(t, err)
	assert.Equal(t, models.StockItemIngredient, first.Type)
	assert.Equal(t, "carrot", first.Name)

	// A second sync returns the same item instead of creating another
	second, err := svc.SyncIngredientToStock(ingredient.ID, "school-1")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.StockItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSyncIngredientToStockUnknownIngredient(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.SyncIngredientToStock("missing-ingredient", "school-1")
	assert.True(t, apperr.IsNotFound(err))
}
