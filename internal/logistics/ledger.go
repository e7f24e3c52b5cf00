package logistics

import (
	"time"

	"github.com/jinzhu/gorm"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/models"
	"github.com/Guztaver/merendaEscolar/internal/monitoring"
)

// MovementInput carries the fields for a new stock movement
type MovementInput struct {
	StockItemID    string                `json:"stockItemId" binding:"required"`
	MovementType   models.MovementType   `json:"movementType" binding:"required"`
	Reason         models.MovementReason `json:"reason" binding:"required"`
	Quantity       float64               `json:"quantity" binding:"required,gt=0"`
	BatchNumber    string                `json:"batchNumber"`
	ExpiryDate     string                `json:"expiryDate"` // YYYY-MM-DD
	SupplierID     string                `json:"supplierId"`
	SchoolID       string                `json:"schoolId"`
	Notes          string                `json:"notes"`
	DocumentNumber string                `json:"documentNumber"`
}

// MovementFilter narrows movement listings
type MovementFilter struct {
	StockItemID string
	SchoolID    string
	Type        string
	StartDate   *time.Time
	EndDate     *time.Time
	Limit       int
}

// RecordMovement appends a movement to the ledger and transitions the item's
// balance. The read-modify-write on currentQuantity runs inside a single
// transaction together with the ledger insert, so two concurrent movements
// against the same item cannot silently lose an update.
//
// Balance rules: IN adds the quantity, OUT subtracts it (rejecting when the
// balance is insufficient), ADJUSTMENT sets the absolute corrected balance
// (the quantity is NOT a delta), and TRANSFER is recorded for audit without
// changing the balance.
func (s *Service) RecordMovement(input MovementInput, actorID string) (*models.StockMovement, error) {
	if !models.ValidMovementType(input.MovementType) {
		return nil, apperr.Validation("unknown movement type: %s", input.MovementType)
	}
	if !models.ValidMovementReason(input.Reason) {
		return nil, apperr.Validation("unknown movement reason: %s", input.Reason)
	}
	if input.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be greater than 0")
	}
	if actorID == "" {
		return nil, apperr.Validation("movement requires an acting user")
	}

	var expiryDate *time.Time
	if input.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", input.ExpiryDate)
		if err != nil {
			return nil, apperr.Validation("invalid expiry date %q, expected YYYY-MM-DD", input.ExpiryDate)
		}
		expiryDate = &parsed
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var item models.StockItem
	if err := tx.Where("id = ?", input.StockItemID).First(&item).Error; err != nil {
		tx.Rollback()
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("stock item", input.StockItemID)
		}
		return nil, err
	}

	previousBalance := item.CurrentQuantity
	var newBalance float64

	switch input.MovementType {
	case models.MovementIn:
		newBalance = previousBalance + input.Quantity
	case models.MovementOut:
		if previousBalance < input.Quantity {
			tx.Rollback()
			return nil, apperr.Invalid(
				"insufficient balance: current quantity is %.2f, requested %.2f",
				previousBalance, input.Quantity,
			)
		}
		newBalance = previousBalance - input.Quantity
	case models.MovementAdjustment:
		newBalance = input.Quantity
	case models.MovementTransfer:
		newBalance = previousBalance
	}

	movement := models.StockMovement{
		StockItemID:     item.ID,
		MovementType:    input.MovementType,
		Reason:          input.Reason,
		Quantity:        input.Quantity,
		PreviousBalance: previousBalance,
		NewBalance:      newBalance,
		BatchNumber:     input.BatchNumber,
		ExpiryDate:      expiryDate,
		SupplierID:      input.SupplierID,
		SchoolID:        input.SchoolID,
		Notes:           input.Notes,
		DocumentNumber:  input.DocumentNumber,
		CreatedBy:       actorID,
	}
	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	item.CurrentQuantity = newBalance
	if err := tx.Model(&models.StockItem{}).Where("id = ?", item.ID).
		Update("current_quantity", newBalance).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Incoming batches of ingredient-linked items feed the near-expiry table
	if input.MovementType == models.MovementIn && expiryDate != nil && item.IngredientID != "" {
		batch := models.InventoryBatch{
			IngredientID: item.IngredientID,
			BatchNumber:  input.BatchNumber,
			ExpiryDate:   *expiryDate,
			Quantity:     input.Quantity,
			SchoolID:     input.SchoolID,
		}
		if err := tx.Create(&batch).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	alerts, err := s.checkAndCreateAlerts(tx, &item, expiryDate, input.BatchNumber)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	monitoring.MovementsRecorded.WithLabelValues(string(input.MovementType)).Inc()
	s.publishAlerts(alerts)

	return &movement, nil
}

// ListMovements returns movements matching the filter, newest first
func (s *Service) ListMovements(filter MovementFilter) ([]models.StockMovement, error) {
	query := s.db
	if filter.StockItemID != "" {
		query = query.Where("stock_item_id = ?", filter.StockItemID)
	}
	if filter.SchoolID != "" {
		query = query.Where("school_id = ?", filter.SchoolID)
	}
	if filter.Type != "" {
		query = query.Where("movement_type = ?", filter.Type)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var movements []models.StockMovement
	if err := query.Order("created_at desc").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// GetMovement returns a single movement by id
func (s *Service) GetMovement(id string) (*models.StockMovement, error) {
	var movement models.StockMovement
	err := s.db.Preload("StockItem").Where("id = ?", id).First(&movement).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("stock movement", id)
		}
		return nil, err
	}
	return &movement, nil
}
