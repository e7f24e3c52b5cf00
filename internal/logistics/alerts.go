package logistics

import (
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/models"
	"github.com/Guztaver/merendaEscolar/internal/monitoring"
)

// checkAndCreateAlerts derives alerts from an item's state after a balance
// change, and from the expiry date of the movement that caused it.
//
// Quantity alerts (low stock, overstock, out of stock) are idempotent: at most
// one OPEN alert per (item, type) exists, and a new one is only created when
// none is OPEN. Expiry alerts are exempt from that rule; every qualifying
// movement with an expiry date produces a new row. Alerts are never resolved
// here, only created.
func (s *Service) checkAndCreateAlerts(tx *gorm.DB, item *models.StockItem, expiryDate *time.Time, batchNumber string) ([]models.StockAlert, error) {
	var created []models.StockAlert

	// 1. Low stock
	if item.MinQuantity > 0 && item.CurrentQuantity <= item.MinQuantity {
		alert := models.StockAlert{
			StockItemID: item.ID,
			Type:        models.AlertLowStock,
			Severity:    lowStockSeverity(item.CurrentQuantity, item.MinQuantity),
			Status:      models.AlertOpen,
			Message: fmt.Sprintf("%s is low on stock: %.2f %s left (minimum %.2f)",
				item.Name, item.CurrentQuantity, item.Unit, item.MinQuantity),
			CurrentQuantity: item.CurrentQuantity,
			Threshold:       item.MinQuantity,
			SchoolID:        item.SchoolID,
		}
		ok, err := s.createIfNoneOpen(tx, &alert)
		if err != nil {
			return nil, err
		}
		if ok {
			created = append(created, alert)
		}
	}

	// 2. Overstock
	if item.MaxCapacity > 0 && item.CurrentQuantity >= item.MaxCapacity {
		alert := models.StockAlert{
			StockItemID: item.ID,
			Type:        models.AlertOverstock,
			Severity:    models.SeverityMedium,
			Status:      models.AlertOpen,
			Message: fmt.Sprintf("%s is over capacity: %.2f %s stored (capacity %.2f)",
				item.Name, item.CurrentQuantity, item.Unit, item.MaxCapacity),
			CurrentQuantity: item.CurrentQuantity,
			Threshold:       item.MaxCapacity,
			SchoolID:        item.SchoolID,
		}
		ok, err := s.createIfNoneOpen(tx, &alert)
		if err != nil {
			return nil, err
		}
		if ok {
			created = append(created, alert)
		}
	}

	// 3. Out of stock
	if item.CurrentQuantity == 0 {
		alert := models.StockAlert{
			StockItemID:     item.ID,
			Type:            models.AlertOutOfStock,
			Severity:        models.SeverityCritical,
			Status:          models.AlertOpen,
			Message:         fmt.Sprintf("%s is out of stock", item.Name),
			CurrentQuantity: 0,
			Threshold:       0,
			SchoolID:        item.SchoolID,
		}
		ok, err := s.createIfNoneOpen(tx, &alert)
		if err != nil {
			return nil, err
		}
		if ok {
			created = append(created, alert)
		}
	}

	// 4. Expiry. Not deduplicated: each qualifying movement gets its own row.
	if expiryDate != nil {
		days := daysUntil(*expiryDate)
		alertType := models.AlertExpirySoon
		message := fmt.Sprintf("batch of %s expires in %d day(s)", item.Name, days)
		if days < 0 {
			alertType = models.AlertExpired
			message = fmt.Sprintf("batch of %s expired %d day(s) ago", item.Name, -days)
		}
		alert := models.StockAlert{
			StockItemID:     item.ID,
			Type:            alertType,
			Severity:        expirySeverity(days),
			Status:          models.AlertOpen,
			Message:         message,
			CurrentQuantity: item.CurrentQuantity,
			ExpiryDate:      expiryDate,
			BatchNumber:     batchNumber,
			SchoolID:        item.SchoolID,
		}
		if err := tx.Create(&alert).Error; err != nil {
			return nil, err
		}
		monitoring.AlertsCreated.WithLabelValues(string(alert.Type), string(alert.Severity)).Inc()
		created = append(created, alert)
	}

	return created, nil
}

// createIfNoneOpen inserts the alert unless an OPEN alert of the same type
// already exists for the item. Returns whether the alert was created.
func (s *Service) createIfNoneOpen(tx *gorm.DB, alert *models.StockAlert) (bool, error) {
	var openCount int64
	err := tx.Model(&models.StockAlert{}).
		Where("stock_item_id = ? AND type = ? AND status = ?",
			alert.StockItemID, alert.Type, models.AlertOpen).
		Count(&openCount).Error
	if err != nil {
		return false, err
	}
	if openCount > 0 {
		return false, nil
	}
	if err := tx.Create(alert).Error; err != nil {
		return false, err
	}
	monitoring.AlertsCreated.WithLabelValues(string(alert.Type), string(alert.Severity)).Inc()
	return true, nil
}

// lowStockSeverity grades how far below the floor the balance has fallen
func lowStockSeverity(current, min float64) models.AlertSeverity {
	ratio := current / min * 100
	switch {
	case ratio == 0:
		return models.SeverityCritical
	case ratio < 25:
		return models.SeverityHigh
	case ratio < 50:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// expirySeverity grades urgency by days until expiry
func expirySeverity(days int) models.AlertSeverity {
	switch {
	case days <= 3:
		return models.SeverityCritical
	case days <= 7:
		return models.SeverityHigh
	case days <= 14:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// daysUntil counts whole days from today to the given date, rounding up
func daysUntil(date time.Time) int {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	target := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return int(math.Ceil(target.Sub(today).Hours() / 24))
}

// AlertFilter narrows alert listings
type AlertFilter struct {
	SchoolID string
	Type     string
	Severity string
	Status   string
}

// UpdateAlertInput carries the fields of an alert status update
type UpdateAlertInput struct {
	Status          *models.AlertStatus `json:"status"`
	ResolutionNotes *string             `json:"resolutionNotes"`
}

// ListAlerts returns alerts matching the filter, newest first
func (s *Service) ListAlerts(filter AlertFilter) ([]models.StockAlert, error) {
	query := s.db
	if filter.SchoolID != "" {
		query = query.Where("school_id = ?", filter.SchoolID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var alerts []models.StockAlert
	if err := query.Preload("StockItem").Order("created_at desc").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// GetAlert returns a single alert by id
func (s *Service) GetAlert(id string) (*models.StockAlert, error) {
	var alert models.StockAlert
	err := s.db.Preload("StockItem").Where("id = ?", id).First(&alert).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("stock alert", id)
		}
		return nil, err
	}
	return &alert, nil
}

// UpdateAlert applies an explicit status transition. Resolving an alert stamps
// the resolution time and actor in the same update.
func (s *Service) UpdateAlert(id string, input UpdateAlertInput, actorID string) (*models.StockAlert, error) {
	alert, err := s.GetAlert(id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !models.ValidAlertStatus(*input.Status) {
			return nil, apperr.Validation("unknown alert status: %s", *input.Status)
		}
		alert.Status = *input.Status
		if *input.Status == models.AlertResolved {
			now := time.Now()
			alert.ResolvedAt = &now
			alert.ResolvedBy = actorID
		}
	}
	if input.ResolutionNotes != nil {
		alert.ResolutionNotes = *input.ResolutionNotes
	}

	if err := s.db.Save(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

// DismissAlert sets the alert to DISMISSED, recording who dismissed it
func (s *Service) DismissAlert(id, actorID string) (*models.StockAlert, error) {
	alert, err := s.GetAlert(id)
	if err != nil {
		return nil, err
	}

	alert.Status = models.AlertDismissed
	alert.ResolvedBy = actorID

	if err := s.db.Save(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}
