package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartRecalculate(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{ProductID: 1, Price: 10.50, Quantity: 2},
			{ProductID: 2, Price: 99.99, Quantity: 1},
		},
	}

	cart.Recalculate()

	assert.Equal(t, 21.0, cart.Items[0].Subtotal)
	assert.Equal(t, 99.99, cart.Items[1].Subtotal)
	assert.InDelta(t, 120.99, cart.Total, 0.0001)
}

func TestCartFindItem(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{ProductID: 7},
			{ProductID: 9},
		},
	}

	assert.Equal(t, 0, cart.FindItem(7))
	assert.Equal(t, 1, cart.FindItem(9))
	assert.Equal(t, -1, cart.FindItem(42))
}
