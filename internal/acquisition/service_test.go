package acquisition

import (
	"path/filepath"
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/database"
	"github.com/Guztaver/merendaEscolar/internal/models"
)

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

func createSupplier(t *testing.T, svc *Service, name string, supplierType models.SupplierType) *models.Supplier {
	t.Helper()

	supplier, err := svc.CreateSupplier(CreateSupplierInput{
		Name:     name,
		Document: "00.000.000/0001-00",
		Type:     supplierType,
	})
	assert.NoError(t, err)
	return supplier
}

func createPurchase(t *testing.T, svc *Service, supplierID string, amount float64, date string) {
	t.Helper()

	_, err := svc.CreatePurchase(CreatePurchaseInput{
		Amount:     amount,
		Date:       date,
		SupplierID: supplierID,
	})
	assert.NoError(t, err)
}

func TestCreateSupplierRejectsUnknownType(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.CreateSupplier(CreateSupplierInput{
		Name:     "bad",
		Document: "123",
		Type:     "cooperative",
	})
	assert.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreatePurchaseRequiresExistingSupplier(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.CreatePurchase(CreatePurchaseInput{
		Amount:     100,
		Date:       "2026-04-01",
		SupplierID: "missing",
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestFamilyFarmingReportEmptyYear(t *testing.T) {
	svc := NewService(newTestDB(t))

	report, err := svc.CalculateFamilyFarmingPercentage(2026)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, report.Total)
	assert.Equal(t, 0.0, report.FamilyFarming)
	assert.Equal(t, 0.0, report.Percentage)
	assert.False(t, report.IsCompliant)
}

func TestFamilyFarmingReportCompliantYear(t *testing.T) {
	svc := NewService(newTestDB(t))

	family := createSupplier(t, svc, "Cooperativa Boa Terra", models.SupplierFamilyFarming)
	regular := createSupplier(t, svc, "Atacado Central", models.SupplierRegular)

	createPurchase(t, svc, family.ID, 100, "2026-02-10")
	createPurchase(t, svc, regular.ID, 100, "2026-06-15")

	report, err := svc.CalculateFamilyFarmingPercentage(2026)
	assert.NoError(t, err)
	assert.Equal(t, 200.0, report.Total)
	assert.Equal(t, 100.0, report.FamilyFarming)
	assert.Equal(t, 50.0, report.Percentage)
	assert.True(t, report.IsCompliant)
}

func TestFamilyFarmingReportNonCompliantYear(t *testing.T) {
	svc := NewService(newTestDB(t))

	family := createSupplier(t, svc, "Sitio do Vale", models.SupplierFamilyFarming)
	regular := createSupplier(t, svc, "Distribuidora Sul", models.SupplierRegular)

	createPurchase(t, svc, family.ID, 50, "2026-03-01")
	createPurchase(t, svc, regular.ID, 150, "2026-03-02")

	report, err := svc.CalculateFamilyFarmingPercentage(2026)
	assert.NoError(t, err)
	assert.Equal(t, 25.0, report.Percentage)
	assert.False(t, report.IsCompliant)
}

func TestFamilyFarmingReportExactMinimumCompliant(t *testing.T) {
	svc := NewService(newTestDB(t))

	family := createSupplier(t, svc, "Sitio do Vale", models.SupplierFamilyFarming)
	regular := createSupplier(t, svc, "Distribuidora Sul", models.SupplierRegular)

	createPurchase(t, svc, family.ID, 45, "2026-05-01")
	createPurchase(t, svc, regular.ID, 55, "2026-05-02")

	report, err := svc.CalculateFamilyFarmingPercentage(2026)
	assert.NoError(t, err)
	assert.Equal(t, 45.0, report.Percentage)
	assert.True(t, report.IsCompliant)
}

func TestFamilyFarmingReportRoundsReportedPercentage(t *testing.T) {
	svc := NewService(newTestDB(t))

	family := createSupplier(t, svc, "Sitio do Vale", models.SupplierFamilyFarming)
	regular := createSupplier(t, svc, "Distribuidora Sul", models.SupplierRegular)

	// 100 / 300 = 33.333...%, reported as 33.33
	createPurchase(t, svc, family.ID, 100, "2026-07-01")
	createPurchase(t, svc, regular.ID, 200, "2026-07-02")

	report, err := svc.CalculateFamilyFarmingPercentage(2026)
	assert.NoError(t, err)
	assert.Equal(t, 33.33, report.Percentage)
	assert.False(t, report.IsCompliant)
}

func TestFamilyFarmingReportYearBoundaries(t *testing.T) {
	svc := NewService(newTestDB(t))

	family := createSupplier(t, svc, "Sitio do Vale", models.SupplierFamilyFarming)

	// Both boundary dates of the year count; neighbors do not
	createPurchase(t, svc, family.ID, 10, "2026-01-01")
	createPurchase(t, svc, family.ID, 10, "2026-12-31")
	createPurchase(t, svc, family.ID, 10, "2025-12-31")
	createPurchase(t, svc, family.ID, 10, "2027-01-01")

	report, err := svc.CalculateFamilyFarmingPercentage(2026)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, report.Total)
	assert.Equal(t, 100.0, report.Percentage)
	assert.True(t, report.IsCompliant)
}
