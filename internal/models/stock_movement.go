package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	// Movement types
	MovementIn         MovementType = "IN"         // purchase, donation, production
	MovementOut        MovementType = "OUT"        // usage, loss, sale
	MovementTransfer   MovementType = "TRANSFER"   // between schools
	MovementAdjustment MovementType = "ADJUSTMENT" // inventory count correction
)

// MovementReason represents the motive behind a stock movement
type MovementReason string

const (
	// Movement reasons
	ReasonPurchase        MovementReason = "PURCHASE"
	ReasonDonation        MovementReason = "DONATION"
	ReasonProduction      MovementReason = "PRODUCTION"
	ReasonUsage           MovementReason = "USAGE"
	ReasonLoss            MovementReason = "LOSS"
	ReasonExpired         MovementReason = "EXPIRED"
	ReasonTransferIn      MovementReason = "TRANSFER_IN"
	ReasonTransferOut     MovementReason = "TRANSFER_OUT"
	ReasonCountAdjustment MovementReason = "COUNT_ADJUSTMENT"
	ReasonOther           MovementReason = "OTHER"
)

// StockMovement is an immutable ledger entry recording a quantity change and
// the balance snapshots around it. Once written it is never mutated or deleted.
type StockMovement struct {
	ID              string         `json:"id" gorm:"primary_key"`
	StockItemID     string         `json:"stockItemId" gorm:"not null;index"`
	StockItem       *StockItem     `json:"stockItem,omitempty" gorm:"foreignkey:StockItemID"`
	MovementType    MovementType   `json:"movementType" gorm:"not null"`
	Reason          MovementReason `json:"reason" gorm:"not null"`
	Quantity        float64        `json:"quantity" gorm:"not null"` // always the magnitude, never negative
	PreviousBalance float64        `json:"previousBalance" gorm:"not null"`
	NewBalance      float64        `json:"newBalance" gorm:"not null"`
	BatchNumber     string         `json:"batchNumber,omitempty"`
	ExpiryDate      *time.Time     `json:"expiryDate,omitempty" gorm:"type:date"`
	SupplierID      string         `json:"supplierId,omitempty"`
	SchoolID        string         `json:"schoolId,omitempty" gorm:"index"`
	Notes           string         `json:"notes,omitempty"`
	DocumentNumber  string         `json:"documentNumber,omitempty"` // invoice number etc.
	CreatedAt       time.Time      `json:"createdAt"`
	CreatedBy       string         `json:"createdBy" gorm:"not null"` // actor id
}

// BeforeCreate generates a UUID for new movements
func (m *StockMovement) BeforeCreate(scope *gorm.Scope) error {
	if m.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// ValidMovementType checks that a type is one of the known movement types
func ValidMovementType(t MovementType) bool {
	switch t {
	case MovementIn, MovementOut, MovementTransfer, MovementAdjustment:
		return true
	}
	return false
}

// ValidMovementReason checks that a reason is one of the enumerated motives
func ValidMovementReason(r MovementReason) bool {
	switch r {
	case ReasonPurchase, ReasonDonation, ReasonProduction, ReasonUsage,
		ReasonLoss, ReasonExpired, ReasonTransferIn, ReasonTransferOut,
		ReasonCountAdjustment, ReasonOther:
		return true
	}
	return false
}
