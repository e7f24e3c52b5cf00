package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/auth"
	"github.com/Guztaver/merendaEscolar/internal/logistics"
)

// Stock item handlers

func (s *Server) CreateStockItem(c *gin.Context) {
	var input logistics.CreateStockItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.logistics.CreateStockItem(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) ListStockItems(c *gin.Context) {
	filter := logistics.StockItemFilter{
		SchoolID: c.Query("schoolId"),
		Type:     c.Query("type"),
	}
	if raw := c.Query("isActive"); raw == "true" || raw == "false" {
		active := raw == "true"
		filter.IsActive = &active
	}

	items, err := s.logistics.ListStockItems(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) GetStockItem(c *gin.Context) {
	item, err := s.logistics.GetStockItem(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) UpdateStockItem(c *gin.Context) {
	var input logistics.UpdateStockItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.logistics.UpdateStockItem(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) DeleteStockItem(c *gin.Context) {
	if err := s.logistics.DeleteStockItem(c.Param("id")); err != nil {
		// The referential guard is a conflict, not a malformed request
		if apperr.IsInvalidOperation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock item deleted"})
}

func (s *Server) ListItemMovements(c *gin.Context) {
	movements, err := s.logistics.ListItemMovements(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

func (s *Server) SyncIngredientToStock(c *gin.Context) {
	var input struct {
		IngredientID string `json:"ingredientId" binding:"required"`
		SchoolID     string `json:"schoolId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.logistics.SyncIngredientToStock(input.IngredientID, input.SchoolID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Movement handlers

func (s *Server) CreateMovement(c *gin.Context) {
	var input logistics.MovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movement, err := s.logistics.RecordMovement(input, auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movement)
}

func (s *Server) ListMovements(c *gin.Context) {
	filter := logistics.MovementFilter{
		StockItemID: c.Query("stockItemId"),
		SchoolID:    c.Query("schoolId"),
		Type:        c.Query("type"),
	}
	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate, expected YYYY-MM-DD"})
			return
		}
		filter.StartDate = &parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate, expected YYYY-MM-DD"})
			return
		}
		filter.EndDate = &parsed
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		filter.Limit = limit
	}

	movements, err := s.logistics.ListMovements(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

func (s *Server) GetMovement(c *gin.Context) {
	movement, err := s.logistics.GetMovement(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movement)
}

// Alert handlers

func (s *Server) ListAlerts(c *gin.Context) {
	filter := logistics.AlertFilter{
		SchoolID: c.Query("schoolId"),
		Type:     c.Query("type"),
		Severity: c.Query("severity"),
		Status:   c.Query("status"),
	}

	alerts, err := s.logistics.ListAlerts(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (s *Server) GetAlert(c *gin.Context) {
	alert, err := s.logistics.GetAlert(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (s *Server) UpdateAlert(c *gin.Context) {
	var input logistics.UpdateAlertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := s.logistics.UpdateAlert(c.Param("id"), input, auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (s *Server) DismissAlert(c *gin.Context) {
	alert, err := s.logistics.DismissAlert(c.Param("id"), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// Reporting handlers

func (s *Server) FindNearExpiry(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = parsed
	}

	batches, err := s.logistics.FindNearExpiry(days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

func (s *Server) LogisticsDashboard(c *gin.Context) {
	data, err := s.logistics.GetDashboardData(c.Param("schoolId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) LowStockReport(c *gin.Context) {
	items, err := s.logistics.GetLowStockReport(c.Query("schoolId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) ExpiringSoonReport(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = parsed
	}

	batches, err := s.logistics.GetExpiringSoonReport(days, c.Query("schoolId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

func (s *Server) StockValueReport(c *gin.Context) {
	report, err := s.logistics.GetStockValue(c.Query("schoolId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) MovementHistoryReport(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = parsed
	}

	history, err := s.logistics.GetMovementHistory(days, c.Query("schoolId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
