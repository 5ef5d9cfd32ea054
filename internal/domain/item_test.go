package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	item := NewItem("Buy milk")

	assert.Equal(t, int64(0), item.ID)
	assert.Equal(t, "Buy milk", item.Name)
	assert.False(t, item.IsComplete)
}

func TestItem_JSONShape(t *testing.T) {
	data, err := json.Marshal(Item{ID: 1, Name: "Buy milk", IsComplete: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Buy milk","isComplete":true}`, string(data))
}
