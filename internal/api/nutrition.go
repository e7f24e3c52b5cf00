package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guztaver/merendaEscolar/internal/nutrition"
)

// Ingredient handlers

func (s *Server) CreateIngredient(c *gin.Context) {
	var input nutrition.CreateIngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := s.nutrition.CreateIngredient(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (s *Server) ListIngredients(c *gin.Context) {
	ingredients, err := s.nutrition.ListIngredients()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (s *Server) GetIngredient(c *gin.Context) {
	ingredient, err := s.nutrition.GetIngredient(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (s *Server) UpdateIngredient(c *gin.Context) {
	var input nutrition.UpdateIngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := s.nutrition.UpdateIngredient(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (s *Server) DeleteIngredient(c *gin.Context) {
	if err := s.nutrition.DeleteIngredient(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted"})
}

// Dish handlers

func (s *Server) CreateDish(c *gin.Context) {
	var input nutrition.CreateDishInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish, err := s.nutrition.CreateDish(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dish": dish, "nutrition": dish.Nutrition()})
}

func (s *Server) ListDishes(c *gin.Context) {
	dishes, err := s.nutrition.ListDishes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func (s *Server) GetDish(c *gin.Context) {
	dish, err := s.nutrition.GetDish(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dish": dish, "nutrition": dish.Nutrition()})
}

func (s *Server) UpdateDish(c *gin.Context) {
	var input nutrition.UpdateDishInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish, err := s.nutrition.UpdateDish(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dish": dish, "nutrition": dish.Nutrition()})
}

func (s *Server) DeleteDish(c *gin.Context) {
	if err := s.nutrition.DeleteDish(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted"})
}

// Menu handlers

func (s *Server) CreateMenu(c *gin.Context) {
	var input nutrition.CreateMenuInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu, err := s.nutrition.CreateMenu(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, menu)
}

func (s *Server) ListMenus(c *gin.Context) {
	menus, err := s.nutrition.ListMenus()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menus)
}

func (s *Server) GetMenu(c *gin.Context) {
	menu, err := s.nutrition.GetMenu(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (s *Server) UpdateMenu(c *gin.Context) {
	var input nutrition.UpdateMenuInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu, err := s.nutrition.UpdateMenu(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (s *Server) DeleteMenu(c *gin.Context) {
	if err := s.nutrition.DeleteMenu(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted"})
}
