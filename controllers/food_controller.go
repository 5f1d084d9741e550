package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastehub/tastehub-api/config"
	"github.com/tastehub/tastehub-api/models"
	"github.com/tastehub/tastehub-api/services"
)

// ListFoods handles GET /foods - lists every food listing
func ListFoods(c *gin.Context) {
	db := config.GetDB()

	foods := []models.FoodItem{}
	if err := db.Find(&foods).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    foods,
	})
}

// GetFood handles GET /foods/:id - fetches a single listing
func GetFood(c *gin.Context) {
	foodID, ok := parseID(c.Param("id"))
	if !ok {
		respondInvalidID(c, "food")
		return
	}

	inventory := services.NewInventoryService(config.GetDB())
	food, err := inventory.GetFood(foodID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    food,
	})
}

// CreateFoodRequest represents the request body for creating a food listing
type CreateFoodRequest struct {
	FoodName     string  `json:"foodName" binding:"required"`
	FoodImage    string  `json:"foodImage"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Origin       string  `json:"origin"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity" binding:"gte=0"`
	AddedByName  string  `json:"addedByName"`
	AddedByEmail string  `json:"addedByEmail" binding:"required"`
}

// CreateFood handles POST /foods - creates a listing (admins only).
// PurchaseCount always starts at zero; only the order processor moves it.
func CreateFood(c *gin.Context) {
	var req CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	food := models.FoodItem{
		FoodName:      req.FoodName,
		FoodImage:     req.FoodImage,
		Category:      req.Category,
		Description:   req.Description,
		Origin:        req.Origin,
		Price:         req.Price,
		Quantity:      req.Quantity,
		PurchaseCount: 0,
		AddedByName:   req.AddedByName,
		AddedByEmail:  req.AddedByEmail,
	}

	if err := config.GetDB().Create(&food).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    food,
	})
}

// ListMyFoods handles GET /foods/my-foods/list?email= - listings owned by a
// user
func ListMyFoods(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "email query parameter is required",
			},
		})
		return
	}

	foods := []models.FoodItem{}
	if err := config.GetDB().Where("added_by_email = ?", email).Find(&foods).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    foods,
	})
}

// UpdateFoodRequest represents the request body for a full listing update
type UpdateFoodRequest struct {
	FoodName    string  `json:"foodName"`
	FoodImage   string  `json:"foodImage"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Origin      string  `json:"origin"`
	Price       float64 `json:"price"`
}

// UpdateFood handles PUT /foods/:id - admin edit of listing fields. Stock
// fields are not touched here; quantity edits go through the PATCH path so
// the non-negativity check applies.
func UpdateFood(c *gin.Context) {
	foodID, ok := parseID(c.Param("id"))
	if !ok {
		respondInvalidID(c, "food")
		return
	}

	var req UpdateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	result := config.GetDB().Model(&models.FoodItem{}).
		Where("id = ?", foodID).
		Updates(map[string]interface{}{
			"food_name":   req.FoodName,
			"food_image":  req.FoodImage,
			"category":    req.Category,
			"description": req.Description,
			"origin":      req.Origin,
			"price":       req.Price,
		})
	if result.Error != nil {
		respondServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Food not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Food updated successfully",
	})
}

// PatchFoodStockRequest represents the request body for a stock adjustment
type PatchFoodStockRequest struct {
	Quantity      *int `json:"quantity"`
	PurchaseCount *int `json:"purchaseCount"`
}

// PatchFoodStock handles PATCH /foods/:id - direct quantity/purchaseCount
// overwrite through the inventory ledger, which refuses negative values
func PatchFoodStock(c *gin.Context) {
	foodID, ok := parseID(c.Param("id"))
	if !ok {
		respondInvalidID(c, "food")
		return
	}

	var req PatchFoodStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	inventory := services.NewInventoryService(config.GetDB())
	if err := inventory.AdjustStock(foodID, req.Quantity, req.PurchaseCount); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Food quantity updated successfully",
	})
}
