package logistics

import (
	"time"

	"github.com/Guztaver/merendaEscolar/internal/models"
)

// DashboardData summarizes the logistics state of one school
type DashboardData struct {
	TotalItems      int64                  `json:"totalItems"`
	ActiveItems     int64                  `json:"activeItems"`
	TotalStockValue float64                `json:"totalStockValue"`
	OpenAlerts      int64                  `json:"openAlerts"`
	CriticalAlerts  int64                  `json:"criticalAlerts"`
	RecentMovements []models.StockMovement `json:"recentMovements"`
}

// GetDashboardData aggregates the headline numbers for a school's dashboard
func (s *Service) GetDashboardData(schoolID string) (*DashboardData, error) {
	data := &DashboardData{}

	items := s.db.Model(&models.StockItem{}).Where("school_id = ?", schoolID)
	items.Count(&data.TotalItems)
	s.db.Model(&models.StockItem{}).Where("school_id = ? AND is_active = ?", schoolID, true).
		Count(&data.ActiveItems)

	row := s.db.Model(&models.StockItem{}).
		Where("school_id = ?", schoolID).
		Select("COALESCE(SUM(current_quantity * unit_cost), 0)").Row()
	if err := row.Scan(&data.TotalStockValue); err != nil {
		return nil, err
	}

	s.db.Model(&models.StockAlert{}).
		Where("school_id = ? AND status = ?", schoolID, models.AlertOpen).
		Count(&data.OpenAlerts)
	s.db.Model(&models.StockAlert{}).
		Where("school_id = ? AND status = ? AND severity = ?",
			schoolID, models.AlertOpen, models.SeverityCritical).
		Count(&data.CriticalAlerts)

	err := s.db.Where("school_id = ?", schoolID).
		Order("created_at desc").
		Limit(10).
		Find(&data.RecentMovements).Error
	if err != nil {
		return nil, err
	}

	return data, nil
}

// GetLowStockReport lists active items at or below their alert floor
func (s *Service) GetLowStockReport(schoolID string) ([]models.StockItem, error) {
	query := s.db.Where("is_active = ? AND min_quantity > 0 AND current_quantity <= min_quantity", true)
	if schoolID != "" {
		query = query.Where("school_id = ?", schoolID)
	}

	var items []models.StockItem
	if err := query.Order("current_quantity / min_quantity asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetExpiringSoonReport lists inventory batches expiring within the given
// number of days
func (s *Service) GetExpiringSoonReport(days int, schoolID string) ([]models.InventoryBatch, error) {
	threshold := time.Now().AddDate(0, 0, days)

	query := s.db.Where("expiry_date <= ?", threshold)
	if schoolID != "" {
		query = query.Where("school_id = ?", schoolID)
	}

	var batches []models.InventoryBatch
	if err := query.Order("expiry_date asc").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// StockValueEntry is the per-item line of the stock valuation report
type StockValueEntry struct {
	StockItemID string  `json:"stockItemId"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
	Value       float64 `json:"value"`
}

// StockValueReport is the stock valuation summary
type StockValueReport struct {
	Total float64           `json:"total"`
	Items []StockValueEntry `json:"items"`
}

// GetStockValue values the on-hand stock at unit cost, per item and in total
func (s *Service) GetStockValue(schoolID string) (*StockValueReport, error) {
	query := s.db.Where("is_active = ?", true)
	if schoolID != "" {
		query = query.Where("school_id = ?", schoolID)
	}

	var items []models.StockItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	report := &StockValueReport{Items: make([]StockValueEntry, 0, len(items))}
	for _, item := range items {
		value := item.StockValue()
		report.Total += value
		report.Items = append(report.Items, StockValueEntry{
			StockItemID: item.ID,
			Name:        item.Name,
			Quantity:    item.CurrentQuantity,
			UnitCost:    item.UnitCost,
			Value:       value,
		})
	}
	return report, nil
}

// MovementHistoryEntry aggregates one day of ledger activity
type MovementHistoryEntry struct {
	Date        string  `json:"date"`
	InCount     int     `json:"inCount"`
	OutCount    int     `json:"outCount"`
	InQuantity  float64 `json:"inQuantity"`
	OutQuantity float64 `json:"outQuantity"`
}

// GetMovementHistory aggregates ledger activity per day over the given period
func (s *Service) GetMovementHistory(days int, schoolID string) ([]MovementHistoryEntry, error) {
	since := time.Now().AddDate(0, 0, -days)

	query := s.db.Where("created_at >= ?", since)
	if schoolID != "" {
		query = query.Where("school_id = ?", schoolID)
	}

	var movements []models.StockMovement
	if err := query.Order("created_at asc").Find(&movements).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]*MovementHistoryEntry)
	var order []string
	for _, m := range movements {
		day := m.CreatedAt.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &MovementHistoryEntry{Date: day}
			byDay[day] = entry
			order = append(order, day)
		}
		switch m.MovementType {
		case models.MovementIn:
			entry.InCount++
			entry.InQuantity += m.Quantity
		case models.MovementOut:
			entry.OutCount++
			entry.OutQuantity += m.Quantity
		}
	}

	history := make([]MovementHistoryEntry, 0, len(order))
	for _, day := range order {
		history = append(history, *byDay[day])
	}
	return history, nil
}

// FindNearExpiry returns inventory batches whose expiry date falls within the
// threshold, including batches already past it
func (s *Service) FindNearExpiry(daysThreshold int) ([]models.InventoryBatch, error) {
	threshold := time.Now().AddDate(0, 0, daysThreshold)

	var batches []models.InventoryBatch
	err := s.db.Where("expiry_date <= ?", threshold).
		Order("expiry_date asc").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}
