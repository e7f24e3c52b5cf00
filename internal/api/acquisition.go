package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Guztaver/merendaEscolar/internal/acquisition"
)

// Supplier handlers

func (s *Server) CreateSupplier(c *gin.Context) {
	var input acquisition.CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier, err := s.acquisition.CreateSupplier(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (s *Server) ListSuppliers(c *gin.Context) {
	suppliers, err := s.acquisition.ListSuppliers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (s *Server) GetSupplier(c *gin.Context) {
	supplier, err := s.acquisition.GetSupplier(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (s *Server) UpdateSupplier(c *gin.Context) {
	var input acquisition.UpdateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier, err := s.acquisition.UpdateSupplier(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (s *Server) DeleteSupplier(c *gin.Context) {
	if err := s.acquisition.DeleteSupplier(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted"})
}

// Purchase handlers

func (s *Server) CreatePurchase(c *gin.Context) {
	var input acquisition.CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := s.acquisition.CreatePurchase(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (s *Server) ListPurchases(c *gin.Context) {
	purchases, err := s.acquisition.ListPurchases()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

func (s *Server) GetPurchase(c *gin.Context) {
	purchase, err := s.acquisition.GetPurchase(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (s *Server) UpdatePurchase(c *gin.Context) {
	var input acquisition.UpdatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := s.acquisition.UpdatePurchase(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (s *Server) DeletePurchase(c *gin.Context) {
	if err := s.acquisition.DeletePurchase(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted"})
}

// AcquisitionDashboard reports the family-farming spend share for a year
func (s *Server) AcquisitionDashboard(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
			return
		}
		year = parsed
	}

	report, err := s.acquisition.CalculateFamilyFarmingPercentage(year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
