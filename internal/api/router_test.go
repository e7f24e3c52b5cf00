package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"

	"github.com/Guztaver/merendaEscolar/internal/config"
	"github.com/Guztaver/merendaEscolar/internal/database"
)

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewServer(db, config.Default()), db
}

func doJSON(t *testing.T, server *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, server *Server) string {
	t.Helper()

	w := doJSON(t, server, "POST", "/api/v1/auth/register", "", gin.H{
		"name":     "Tester",
		"email":    "tester@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		AccessToken string `json:"accessToken"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.AccessToken)
	return response.AccessToken
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestLogisticsRequiresAuth(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, "GET", "/api/v1/logistics/stock-items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := registerAndLogin(t, server)
	w = doJSON(t, server, "GET", "/api/v1/logistics/stock-items", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginWithSeededAdmin(t *testing.T) {
	server, db := newTestServer(t)
	database.SeedDefaultData(db)

	w := doJSON(t, server, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    "admin@merenda.local",
		"password": "admin",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "accessToken")

	w = doJSON(t, server, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    "admin@merenda.local",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMenuOverLimitRejectedWith400(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, "POST", "/api/v1/nutritional-planning/ingredients", "", gin.H{
		"name":               "cookies",
		"novaClassification": "ultraprocessed",
		"calories":           500,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var ingredient struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &ingredient))

	w = doJSON(t, server, "POST", "/api/v1/nutritional-planning/dishes", "", gin.H{
		"name":              "cookie plate",
		"preparationMethod": "open package",
		"ingredients": []gin.H{
			{"ingredientId": ingredient.ID, "quantityGrams": 100},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var dishResponse struct {
		Dish struct {
			ID string `json:"id"`
		} `json:"dish"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &dishResponse))

	w = doJSON(t, server, "POST", "/api/v1/nutritional-planning/menus", "", gin.H{
		"date":    "2026-03-10",
		"dishIds": []string{dishResponse.Dish.ID},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ultra-processed")
}

func TestAcquisitionDashboard(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, "POST", "/api/v1/acquisition/suppliers", "", gin.H{
		"name":     "Cooperativa Boa Terra",
		"document": "00.000.000/0001-00",
		"type":     "family_farming",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var supplier struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &supplier))

	w = doJSON(t, server, "POST", "/api/v1/acquisition/purchases", "", gin.H{
		"amount":     100,
		"date":       "2026-04-01",
		"supplierId": supplier.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, server, "GET", "/api/v1/acquisition/dashboard?year=2026", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Total       float64 `json:"total"`
		Percentage  float64 `json:"percentage"`
		IsCompliant bool    `json:"isCompliant"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 100.0, report.Total)
	assert.Equal(t, 100.0, report.Percentage)
	assert.True(t, report.IsCompliant)
}

func TestDeleteGuardedStockItemReturns409(t *testing.T) {
	server, _ := newTestServer(t)
	token := registerAndLogin(t, server)

	w := doJSON(t, server, "POST", "/api/v1/logistics/stock-items", token, gin.H{
		"name":     "rice",
		"code":     "RICE-01",
		"unit":     "kg",
		"location": "pantry",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var item struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	w = doJSON(t, server, "POST", "/api/v1/logistics/movements", token, gin.H{
		"stockItemId":  item.ID,
		"movementType": "IN",
		"reason":       "PURCHASE",
		"quantity":     10,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// The ledger history freezes the item
	w = doJSON(t, server, "DELETE", fmt.Sprintf("/api/v1/logistics/stock-items/%s", item.ID), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMovementInsufficientBalanceReturns400(t *testing.T) {
	server, _ := newTestServer(t)
	token := registerAndLogin(t, server)

	w := doJSON(t, server, "POST", "/api/v1/logistics/stock-items", token, gin.H{
		"name":            "beans",
		"code":            "BEAN-01",
		"unit":            "kg",
		"location":        "pantry",
		"currentQuantity": 5,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var item struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	w = doJSON(t, server, "POST", "/api/v1/logistics/movements", token, gin.H{
		"stockItemId":  item.ID,
		"movementType": "OUT",
		"reason":       "USAGE",
		"quantity":     10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient balance")
}

func TestGetUnknownIngredientReturns404(t *testing.T) {
	server, _ := newTestServer(t)

	w := doJSON(t, server, "GET", "/api/v1/nutritional-planning/ingredients/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
