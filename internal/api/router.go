package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"github.com/Guztaver/merendaEscolar/internal/acquisition"
	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/auth"
	"github.com/Guztaver/merendaEscolar/internal/config"
	"github.com/Guztaver/merendaEscolar/internal/logistics"
	"github.com/Guztaver/merendaEscolar/internal/monitoring"
	"github.com/Guztaver/merendaEscolar/internal/notify"
	"github.com/Guztaver/merendaEscolar/internal/nutrition"
	"github.com/Guztaver/merendaEscolar/internal/users"
)

// Server represents the main API handler for the school meal program
type Server struct {
	Router      *gin.Engine
	nutrition   *nutrition.Service
	acquisition *acquisition.Service
	logistics   *logistics.Service
	users       *users.Service
	auth        *auth.Service
	hub         *notify.Hub
}

// NewServer creates the API server and wires all services
func NewServer(db *gorm.DB, cfg *config.Config) *Server {
	router := gin.Default()
	router.Use(monitoring.HTTPMiddleware())

	userService := users.NewService(db)
	logisticsService := logistics.NewService(db)
	hub := notify.NewHub()
	logisticsService.SetAlertPublisher(hub)

	s := &Server{
		Router:      router,
		nutrition:   nutrition.NewService(db),
		acquisition: acquisition.NewService(db),
		logistics:   logisticsService,
		users:       userService,
		auth:        auth.NewService(userService, cfg.Auth.Secret, cfg.Auth.TokenTTL),
		hub:         hub,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Merenda Escolar API is running"})
	})

	v1 := s.Router.Group("/api/v1")
	{
		// Authentication
		v1.POST("/auth/login", s.Login)
		v1.POST("/auth/register", s.Register)

		// User management
		v1.POST("/users", s.CreateUser)
		v1.GET("/users", s.ListUsers)
		v1.GET("/users/:id", s.GetUser)
		v1.PATCH("/users/:id", s.UpdateUser)
		v1.DELETE("/users/:id", s.DeleteUser)

		// Nutritional planning
		np := v1.Group("/nutritional-planning")
		{
			np.POST("/ingredients", s.CreateIngredient)
			np.GET("/ingredients", s.ListIngredients)
			np.GET("/ingredients/:id", s.GetIngredient)
			np.PATCH("/ingredients/:id", s.UpdateIngredient)
			np.DELETE("/ingredients/:id", s.DeleteIngredient)

			np.POST("/dishes", s.CreateDish)
			np.GET("/dishes", s.ListDishes)
			np.GET("/dishes/:id", s.GetDish)
			np.PATCH("/dishes/:id", s.UpdateDish)
			np.DELETE("/dishes/:id", s.DeleteDish)

			np.POST("/menus", s.CreateMenu)
			np.GET("/menus", s.ListMenus)
			np.GET("/menus/:id", s.GetMenu)
			np.PATCH("/menus/:id", s.UpdateMenu)
			np.DELETE("/menus/:id", s.DeleteMenu)
		}

		// Acquisition
		acq := v1.Group("/acquisition")
		{
			acq.POST("/suppliers", s.CreateSupplier)
			acq.GET("/suppliers", s.ListSuppliers)
			acq.GET("/suppliers/:id", s.GetSupplier)
			acq.PATCH("/suppliers/:id", s.UpdateSupplier)
			acq.DELETE("/suppliers/:id", s.DeleteSupplier)

			acq.POST("/purchases", s.CreatePurchase)
			acq.GET("/purchases", s.ListPurchases)
			acq.GET("/purchases/:id", s.GetPurchase)
			acq.PATCH("/purchases/:id", s.UpdatePurchase)
			acq.DELETE("/purchases/:id", s.DeletePurchase)

			acq.GET("/dashboard", s.AcquisitionDashboard)
		}

		// Logistics, guarded by JWT: movements and alert resolutions are
		// stamped with the acting user
		lg := v1.Group("/logistics")
		lg.Use(s.auth.Middleware())
		{
			lg.POST("/stock-items", s.CreateStockItem)
			lg.GET("/stock-items", s.ListStockItems)
			lg.GET("/stock-items/:id", s.GetStockItem)
			lg.PATCH("/stock-items/:id", s.UpdateStockItem)
			lg.DELETE("/stock-items/:id", s.DeleteStockItem)
			lg.GET("/stock-items/:id/movements", s.ListItemMovements)
			lg.POST("/stock-items/sync-ingredient", s.SyncIngredientToStock)

			lg.POST("/movements", s.CreateMovement)
			lg.GET("/movements", s.ListMovements)
			lg.GET("/movements/:id", s.GetMovement)

			lg.GET("/alerts", s.ListAlerts)
			lg.GET("/alerts/:id", s.GetAlert)
			lg.PATCH("/alerts/:id", s.UpdateAlert)
			lg.DELETE("/alerts/:id", s.DismissAlert)

			lg.GET("/inventory-batches/near-expiry", s.FindNearExpiry)

			lg.GET("/dashboard/:schoolId", s.LogisticsDashboard)
			lg.GET("/analytics/low-stock", s.LowStockReport)
			lg.GET("/analytics/expiring-soon", s.ExpiringSoonReport)
			lg.GET("/analytics/stock-value", s.StockValueReport)
			lg.GET("/analytics/movement-history", s.MovementHistoryReport)

			lg.GET("/alerts-feed", s.hub.HandleWS)
		}
	}
}

// respondError maps service errors to transport status codes
func respondError(c *gin.Context, err error) {
	switch {
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.IsInvalidOperation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
