package acquisition

import (
	"math"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/models"
)

// FamilyFarmingMinimumPercent is the minimum share of yearly purchase spend
// that must come from family-farming suppliers. Fixed policy, not configurable.
const FamilyFarmingMinimumPercent = 45.0

// Service handles procurement: suppliers, purchases and the family-farming
// compliance report
type Service struct {
	db *gorm.DB
}

// NewService creates an acquisition service backed by the given database
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateSupplierInput carries the fields for a new supplier
type CreateSupplierInput struct {
	Name     string              `json:"name" binding:"required"`
	Document string              `json:"document" binding:"required"`
	Type     models.SupplierType `json:"type" binding:"required"`
}

// UpdateSupplierInput carries the optional fields of a supplier update
type UpdateSupplierInput struct {
	Name     *string              `json:"name"`
	Document *string              `json:"document"`
	Type     *models.SupplierType `json:"type"`
}

// CreateSupplier stores a new supplier
func (s *Service) CreateSupplier(input CreateSupplierInput) (*models.Supplier, error) {
	if !models.ValidSupplierType(input.Type) {
		return nil, apperr.Validation("unknown supplier type: %s", input.Type)
	}

	supplier := models.Supplier{
		Name:     input.Name,
		Document: input.Document,
		Type:     input.Type,
	}
	if err := s.db.Create(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// ListSuppliers returns all suppliers
func (s *Service) ListSuppliers() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := s.db.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// GetSupplier returns a single supplier by id
func (s *Service) GetSupplier(id string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.Where("id = ?", id).First(&supplier).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("supplier", id)
		}
		return nil, err
	}
	return &supplier, nil
}

// UpdateSupplier applies a partial update to a supplier
func (s *Service) UpdateSupplier(id string, input UpdateSupplierInput) (*models.Supplier, error) {
	supplier, err := s.GetSupplier(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.Document != nil {
		supplier.Document = *input.Document
	}
	if input.Type != nil {
		if !models.ValidSupplierType(*input.Type) {
			return nil, apperr.Validation("unknown supplier type: %s", *input.Type)
		}
		supplier.Type = *input.Type
	}

	if err := s.db.Save(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier removes a supplier
func (s *Service) DeleteSupplier(id string) error {
	supplier, err := s.GetSupplier(id)
	if err != nil {
		return err
	}
	return s.db.Delete(supplier).Error
}

// CreatePurchaseInput carries the fields for a new purchase
type CreatePurchaseInput struct {
	Amount     float64 `json:"amount" binding:"required,min=0"`
	Date       string  `json:"date" binding:"required"` // YYYY-MM-DD
	SupplierID string  `json:"supplierId" binding:"required"`
}

// UpdatePurchaseInput carries the optional fields of a purchase update
type UpdatePurchaseInput struct {
	Amount     *float64 `json:"amount"`
	Date       *string  `json:"date"`
	SupplierID *string  `json:"supplierId"`
}

// CreatePurchase stores a new purchase after resolving its supplier
func (s *Service) CreatePurchase(input CreatePurchaseInput) (*models.Purchase, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, apperr.Validation("invalid date %q, expected YYYY-MM-DD", input.Date)
	}
	if _, err := s.GetSupplier(input.SupplierID); err != nil {
		return nil, err
	}

	purchase := models.Purchase{
		Amount:     input.Amount,
		Date:       date,
		SupplierID: input.SupplierID,
	}
	if err := s.db.Create(&purchase).Error; err != nil {
		return nil, err
	}
	return s.GetPurchase(purchase.ID)
}

// ListPurchases returns all purchases with their suppliers
func (s *Service) ListPurchases() ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := s.db.Preload("Supplier").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// GetPurchase returns a single purchase by id
func (s *Service) GetPurchase(id string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := s.db.Preload("Supplier").Where("id = ?", id).First(&purchase).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("purchase", id)
		}
		return nil, err
	}
	return &purchase, nil
}

// UpdatePurchase applies a partial update to a purchase
func (s *Service) UpdatePurchase(id string, input UpdatePurchaseInput) (*models.Purchase, error) {
	purchase, err := s.GetPurchase(id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, apperr.Validation("amount must not be negative")
		}
		purchase.Amount = *input.Amount
	}
	if input.Date != nil {
		date, err := time.Parse("2006-01-02", *input.Date)
		if err != nil {
			return nil, apperr.Validation("invalid date %q, expected YYYY-MM-DD", *input.Date)
		}
		purchase.Date = date
	}
	if input.SupplierID != nil {
		if _, err := s.GetSupplier(*input.SupplierID); err != nil {
			return nil, err
		}
		purchase.SupplierID = *input.SupplierID
	}

	if err := s.db.Save(purchase).Error; err != nil {
		return nil, err
	}
	return s.GetPurchase(id)
}

// DeletePurchase removes a purchase
func (s *Service) DeletePurchase(id string) error {
	purchase, err := s.GetPurchase(id)
	if err != nil {
		return err
	}
	return s.db.Delete(purchase).Error
}

// FamilyFarmingReport is the yearly procurement compliance summary. The rule
// is advisory: a non-compliant year is reported, never rejected.
type FamilyFarmingReport struct {
	Total         float64 `json:"total"`
	FamilyFarming float64 `json:"familyFarming"`
	Percentage    float64 `json:"percentage"`
	IsCompliant   bool    `json:"isCompliant"`
}

// CalculateFamilyFarmingPercentage aggregates one calendar year of purchases
// and reports the share of spend that went to family-farming suppliers.
// A year with no purchases yields all zeros and is not compliant.
func (s *Service) CalculateFamilyFarmingPercentage(year int) (*FamilyFarmingReport, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var purchases []models.Purchase
	err := s.db.Preload("Supplier").
		Where("date BETWEEN ? AND ?", start, end).
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}

	var total, familyFarming float64
	for _, purchase := range purchases {
		total += purchase.Amount
		if purchase.Supplier != nil && purchase.Supplier.Type == models.SupplierFamilyFarming {
			familyFarming += purchase.Amount
		}
	}

	var percentage float64
	if total > 0 {
		percentage = familyFarming / total * 100
	}

	return &FamilyFarmingReport{
		Total:         total,
		FamilyFarming: familyFarming,
		// Compliance is decided on the exact ratio; only the reported value is rounded.
		Percentage:  math.Round(percentage*100) / 100,
		IsCompliant: percentage >= FamilyFarmingMinimumPercent,
	}, nil
}
