package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// AlertType represents the condition that triggered a stock alert
type AlertType string

const (
	// Alert types
	AlertLowStock   AlertType = "LOW_STOCK"
	AlertOverstock  AlertType = "OVERSTOCK"
	AlertExpirySoon AlertType = "EXPIRY_SOON"
	AlertExpired    AlertType = "EXPIRED"
	AlertOutOfStock AlertType = "OUT_OF_STOCK"
)

// AlertSeverity represents how urgent an alert is
type AlertSeverity string

const (
	// Alert severities
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// AlertStatus represents the lifecycle state of an alert
type AlertStatus string

const (
	// Alert statuses
	AlertOpen         AlertStatus = "OPEN"
	AlertAcknowledged AlertStatus = "ACKNOWLEDGED"
	AlertResolved     AlertStatus = "RESOLVED"
	AlertDismissed    AlertStatus = "DISMISSED"
)

// StockAlert is derived by the ledger when a triggering condition is detected.
// Alerts are never cleared automatically; resolution is always an explicit
// user action.
type StockAlert struct {
	ID              string        `json:"id" gorm:"primary_key"`
	StockItemID     string        `json:"stockItemId" gorm:"not null;index"`
	StockItem       *StockItem    `json:"stockItem,omitempty" gorm:"foreignkey:StockItemID"`
	Type            AlertType     `json:"type" gorm:"not null"`
	Severity        AlertSeverity `json:"severity" gorm:"not null"`
	Status          AlertStatus   `json:"status" gorm:"not null;default:'OPEN'"`
	Message         string        `json:"message" gorm:"type:text"`
	CurrentQuantity float64       `json:"currentQuantity"` // snapshot at alert time
	Threshold       float64       `json:"threshold"`       // limit that fired the alert
	ExpiryDate      *time.Time    `json:"expiryDate,omitempty" gorm:"type:date"`
	BatchNumber     string        `json:"batchNumber,omitempty"`
	SchoolID        string        `json:"schoolId,omitempty" gorm:"index"`
	CreatedAt       time.Time     `json:"createdAt"`
	ResolvedAt      *time.Time    `json:"resolvedAt,omitempty"`
	ResolvedBy      string        `json:"resolvedBy,omitempty"`
	ResolutionNotes string        `json:"resolutionNotes,omitempty"`
}

// BeforeCreate generates a UUID for new alerts
func (a *StockAlert) BeforeCreate(scope *gorm.Scope) error {
	if a.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// ValidAlertStatus checks that a status is one of the lifecycle states
func ValidAlertStatus(s AlertStatus) bool {
	switch s {
	case AlertOpen, AlertAcknowledged, AlertResolved, AlertDismissed:
		return true
	}
	return false
}
