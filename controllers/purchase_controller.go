package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tastehub/tastehub-api/config"
	"github.com/tastehub/tastehub-api/logging"
	"github.com/tastehub/tastehub-api/services"
)

// CreatePurchaseRequest represents the request body for creating a purchase
type CreatePurchaseRequest struct {
	FoodID              string `json:"foodId"`
	Quantity            int    `json:"quantity"`
	BuyerName           string `json:"buyerName"`
	BuyerEmail          string `json:"buyerEmail"`
	BuyerPhoto          string `json:"buyerPhoto"`
	DeliveryAddress     string `json:"deliveryAddress"`
	ContactNumber       string `json:"contactNumber"`
	SpecialInstructions string `json:"specialInstructions"`
	PaymentMethod       string `json:"paymentMethod"`
}

// parseID validates a store identifier from the request path or body.
// Identifiers are unsigned integers rendered as strings; anything else is
// rejected before touching the store.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondInvalidID writes the 400 response for a malformed identifier
func respondInvalidID(c *gin.Context, what string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INVALID_ID",
			"message": "Invalid " + what + " ID",
		},
	})
}

// respondServiceError translates a domain error into the HTTP envelope.
// Anything outside the taxonomy is a store failure: logged, reported as a
// generic database error with the originating error text.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr   *services.ValidationError
		notFoundErr     *services.NotFoundError
		forbiddenErr    *services.ForbiddenError
		insufficientErr *services.InsufficientStockError
		conflictErr     *services.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": validationErr.Message,
			},
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": notFoundErr.Error(),
			},
		})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": forbiddenErr.Message,
			},
		})
	case errors.As(err, &insufficientErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":      "INSUFFICIENT_STOCK",
				"message":   insufficientErr.Error(),
				"available": insufficientErr.Available,
			},
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": conflictErr.Message,
			},
		})
	default:
		logging.L().Error("store operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Operation failed: " + err.Error(),
			},
		})
	}
}

// CreatePurchase handles POST /purchase - commits a purchase with its stock
// reservation
func CreatePurchase(c *gin.Context) {
	var req CreatePurchaseRequest
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

	if req.FoodID == "" || req.BuyerEmail == "" || req.DeliveryAddress == "" || req.ContactNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Missing required fields: foodId, buyerEmail, deliveryAddress, contactNumber",
			},
		})
		return
	}

	foodID, ok := parseID(req.FoodID)
	if !ok {
		respondInvalidID(c, "food")
		return
	}

	orders := services.NewOrderService(config.GetDB())
	purchase, err := orders.CreatePurchase(services.CreatePurchaseInput{
		FoodID:              foodID,
		Quantity:            req.Quantity,
		BuyerName:           req.BuyerName,
		BuyerEmail:          req.BuyerEmail,
		BuyerPhoto:          req.BuyerPhoto,
		DeliveryAddress:     req.DeliveryAddress,
		ContactNumber:       req.ContactNumber,
		SpecialInstructions: req.SpecialInstructions,
		PaymentMethod:       req.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Purchase created successfully",
		"data":    purchase,
	})
}

// ListPurchases handles GET /purchase?buyerEmail= - lists a buyer's purchases
func ListPurchases(c *gin.Context) {
	buyerEmail := c.Query("buyerEmail")
	if buyerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "buyerEmail query parameter is required",
			},
		})
		return
	}

	orders := services.NewOrderService(config.GetDB())
	purchases, err := orders.ListPurchases(buyerEmail)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    purchases,
	})
}

// ListAllPurchases handles GET /purchase/all - lists every purchase (admin view)
func ListAllPurchases(c *gin.Context) {
	orders := services.NewOrderService(config.GetDB())
	purchases, err := orders.ListPurchases("")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    purchases,
	})
}

// UpdatePurchaseStatusRequest represents the request body for a status update
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePurchaseStatus handles PATCH /purchase/:id - sets the status label
func UpdatePurchaseStatus(c *gin.Context) {
	purchaseID, ok := parseID(c.Param("id"))
	if !ok {
		respondInvalidID(c, "purchase")
		return
	}

	var req UpdatePurchaseStatusRequest
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

	orders := services.NewOrderService(config.GetDB())
	if err := orders.UpdateStatus(purchaseID, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated successfully",
	})
}

// DeletePurchase handles DELETE /purchase/:id - removes a purchase record.
// Reserved stock stays reserved.
func DeletePurchase(c *gin.Context) {
	purchaseID, ok := parseID(c.Param("id"))
	if !ok {
		respondInvalidID(c, "purchase")
		return
	}

	orders := services.NewOrderService(config.GetDB())
	if err := orders.DeletePurchase(purchaseID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Purchase deleted successfully",
	})
}
