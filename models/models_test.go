package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "foods", FoodItem{}.TableName())
	assert.Equal(t, "purchases", Purchase{}.TableName())
	assert.Equal(t, "chat_messages", ChatMessage{}.TableName())
	assert.Equal(t, "conversations", Conversation{}.TableName())
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "carts", Cart{}.TableName())
}

func TestCartSetItemsRecomputesTotals(t *testing.T) {
	cart := Cart{UserEmail: "u@x.com"}
	cart.SetItems([]CartItem{
		{FoodID: 1, FoodName: "a", Price: 2.5, Quantity: 2},
		{FoodID: 2, FoodName: "b", Price: 1.0, Quantity: 3},
	})

	assert.Equal(t, 5, cart.ItemCount)
	assert.Equal(t, 8.0, cart.Total)
	assert.Len(t, cart.Items(), 2)
}

func TestCartEmptyAndCorruptItems(t *testing.T) {
	cart := Cart{UserEmail: "u@x.com"}
	cart.SetItems(nil)
	assert.Equal(t, "[]", cart.ItemsJSON)
	assert.Empty(t, cart.Items())

	cart.ItemsJSON = "{not json"
	assert.Empty(t, cart.Items())
}

func TestCartMarshalsItemsInline(t *testing.T) {
	cart := Cart{UserEmail: "u@x.com"}
	cart.SetItems([]CartItem{{FoodID: 7, FoodName: "soup", Price: 4, Quantity: 1}})

	raw, err := json.Marshal(cart)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	items := decoded["items"].([]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, "soup", items[0].(map[string]interface{})["foodName"])
	assert.Equal(t, float64(1), decoded["itemCount"])
}
