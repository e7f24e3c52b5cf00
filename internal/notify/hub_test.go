package notify

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/Guztaver/merendaEscolar/internal/models"
)

func TestPublishAlertWithoutClients(t *testing.T) {
	hub := NewHub()

	// Publishing into an empty hub must not block or panic
	hub.PublishAlert(&models.StockAlert{Type: models.AlertLowStock})
}

func TestPublishAlertReachesClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	router := gin.New()
	router.GET("/ws", hub.HandleWS)

	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	defer conn.Close()

	// Give the hub a moment to register the connection
	time.Sleep(50 * time.Millisecond)

	hub.PublishAlert(&models.StockAlert{
		Type:     models.AlertOutOfStock,
		Severity: models.SeverityCritical,
		Message:  "rice is out of stock",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	assert.NoError(t, err)

	var alert models.StockAlert
	assert.NoError(t, json.Unmarshal(payload, &alert))
	assert.Equal(t, models.AlertOutOfStock, alert.Type)
	assert.Equal(t, "rice is out of stock", alert.Message)
}
