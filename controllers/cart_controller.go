package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tastehub/tastehub-api/config"
	"github.com/tastehub/tastehub-api/models"
	"github.com/tastehub/tastehub-api/services"
)

// GetCart handles GET /carts/:email - fetches a user's cart, creating an
// empty one on first access
func GetCart(c *gin.Context) {
	email := c.Param("email")
	db := config.GetDB()

	var cart models.Cart
	err := db.Where("user_email = ?", email).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserEmail: email}
		cart.SetItems(nil)
		if err := db.Create(&cart).Error; err != nil {
			respondServiceError(c, err)
			return
		}
	} else if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cart,
	})
}

// AddCartItemRequest represents the request body for adding a cart line
type AddCartItemRequest struct {
	FoodID   string `json:"foodId"`
	Quantity int    `json:"quantity"`
}

// AddCartItem handles POST /carts/:email/items - adds a listing snapshot to
// the cart, merging quantities when the item is already present
func AddCartItem(c *gin.Context) {
	email := c.Param("email")

	var req AddCartItemRequest
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

	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "quantity must be a positive integer",
			},
		})
		return
	}

	foodID, ok := parseID(req.FoodID)
	if !ok {
		respondInvalidID(c, "food")
		return
	}

	db := config.GetDB()
	inventory := services.NewInventoryService(db)
	food, err := inventory.GetFood(foodID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var cart models.Cart
	err = db.Where("user_email = ?", email).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserEmail: email}
	} else if err != nil {
		respondServiceError(c, err)
		return
	}

	items := cart.Items()
	merged := false
	for i := range items {
		if items[i].FoodID == food.ID {
			items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{
			FoodID:            food.ID,
			FoodName:          food.FoodName,
			FoodImage:         food.FoodImage,
			Price:             food.Price,
			Quantity:          req.Quantity,
			Category:          food.Category,
			AvailableQuantity: food.Quantity,
		})
	}
	cart.SetItems(items)

	if err := db.Save(&cart).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item added to cart",
		"data":    cart,
	})
}
