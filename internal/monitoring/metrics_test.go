package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMovementsRecordedCounter(t *testing.T) {
	before := testutil.ToFloat64(MovementsRecorded.WithLabelValues("IN"))
	MovementsRecorded.WithLabelValues("IN").Inc()
	after := testutil.ToFloat64(MovementsRecorded.WithLabelValues("IN"))

	assert.Equal(t, before+1, after)
}

func TestHTTPMiddlewareObservesRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(HTTPMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	samplesBefore := testutil.CollectAndCount(RequestDuration)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	samplesAfter := testutil.CollectAndCount(RequestDuration)
	assert.Greater(t, samplesAfter, samplesBefore)
}
