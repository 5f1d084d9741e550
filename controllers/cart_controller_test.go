package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tastehub/tastehub-api/config"
	"github.com/tastehub/tastehub-api/models"
)

func setupCartRouter() *gin.Engine {
	router := setupTestRouter()
	carts := router.Group("/carts")
	carts.GET("/:email", GetCart)
	carts.POST("/:email/items", AddCartItem)
	return router
}

func TestGetCart(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	router := setupCartRouter()

	t.Run("First access creates an empty cart", func(t *testing.T) {
		w, response := performRequest(t, router, http.MethodGet, "/carts/shopper@x.com", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		data := response["data"].(map[string]interface{})
		assert.Equal(t, "shopper@x.com", data["userEmail"])
		assert.Equal(t, float64(0), data["itemCount"])
		assert.Len(t, data["items"].([]interface{}), 0)

		var count int64
		db.Model(&models.Cart{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Second access reuses the stored cart", func(t *testing.T) {
		w, _ := performRequest(t, router, http.MethodGet, "/carts/shopper@x.com", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.Cart{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestAddCartItem(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	food := seedFood(t, db, "ramen", "owner@x.com", 11, 7)
	router := setupCartRouter()

	itemBody := func(quantity int) map[string]interface{} {
		return map[string]interface{}{
			"foodId":   fmt.Sprintf("%d", food.ID),
			"quantity": quantity,
		}
	}

	t.Run("Adds a listing snapshot to a fresh cart", func(t *testing.T) {
		w, response := performRequest(t, router, http.MethodPost, "/carts/buyer@x.com/items", itemBody(2))
		assert.Equal(t, http.StatusOK, w.Code)

		data := response["data"].(map[string]interface{})
		items := data["items"].([]interface{})
		assert.Len(t, items, 1)
		line := items[0].(map[string]interface{})
		assert.Equal(t, "ramen", line["foodName"])
		assert.Equal(t, float64(2), line["quantity"])
		assert.Equal(t, float64(22), data["total"])
		assert.Equal(t, float64(2), data["itemCount"])
	})

	t.Run("Adding the same listing merges quantities", func(t *testing.T) {
		w, response := performRequest(t, router, http.MethodPost, "/carts/buyer@x.com/items", itemBody(3))
		assert.Equal(t, http.StatusOK, w.Code)

		data := response["data"].(map[string]interface{})
		items := data["items"].([]interface{})
		assert.Len(t, items, 1)
		assert.Equal(t, float64(5), items[0].(map[string]interface{})["quantity"])
		assert.Equal(t, float64(55), data["total"])
	})

	t.Run("Rejects non-positive quantity", func(t *testing.T) {
		w, _ := performRequest(t, router, http.MethodPost, "/carts/buyer@x.com/items", itemBody(0))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown listing is not found", func(t *testing.T) {
		w, _ := performRequest(t, router, http.MethodPost, "/carts/buyer@x.com/items", map[string]interface{}{
			"foodId":   "9999",
			"quantity": 1,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
