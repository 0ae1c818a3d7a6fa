package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderStatus(t *testing.T) {
	now := time.Now()
	status := NewOrderStatus(now)

	assert.True(t, status.ReceivedOrder.Completed)
	require.NotNil(t, status.ReceivedOrder.At)
	assert.Equal(t, now, *status.ReceivedOrder.At)

	assert.False(t, status.Packed.Completed)
	assert.Nil(t, status.Packed.At)
	assert.False(t, status.Shipped.Completed)
	assert.False(t, status.Delivered.Completed)
	assert.Nil(t, status.Cancelled)
	assert.Nil(t, status.ReturnRequested)
}

func TestCanCancel(t *testing.T) {
	now := time.Now()
	status := NewOrderStatus(now)
	assert.True(t, status.CanCancel())

	status.SetStage(StagePacked, true, now)
	assert.False(t, status.CanCancel(), "packed orders cannot be cancelled")

	status = NewOrderStatus(now)
	status.Cancel(now)
	assert.False(t, status.CanCancel(), "cancelling twice is not allowed")
	assert.True(t, status.IsCancelled())
}

func TestCanRequestReturn(t *testing.T) {
	now := time.Now()
	status := NewOrderStatus(now)
	assert.False(t, status.CanRequestReturn(), "unshipped orders cannot be returned")

	status.SetStage(StageShipped, true, now)
	assert.True(t, status.CanRequestReturn())

	status.RequestReturn(now)
	assert.False(t, status.CanRequestReturn(), "only one return request allowed")
	require.NotNil(t, status.ReturnRequested)
	assert.True(t, status.ReturnRequested.Requested)
	assert.Equal(t, now, *status.ReturnRequested.At)
}

func TestSetStageStampsAndClears(t *testing.T) {
	now := time.Now()
	status := NewOrderStatus(now)

	later := now.Add(time.Hour)
	ok := status.SetStage(StageShipped, true, later)
	require.True(t, ok)
	assert.True(t, status.Shipped.Completed)
	require.NotNil(t, status.Shipped.At)
	assert.Equal(t, later, *status.Shipped.At)

	ok = status.SetStage(StageShipped, false, later.Add(time.Hour))
	require.True(t, ok)
	assert.False(t, status.Shipped.Completed)
	assert.Nil(t, status.Shipped.At, "timestamp is cleared when toggled back")
}

func TestSetStageUnknownName(t *testing.T) {
	now := time.Now()
	status := NewOrderStatus(now)

	assert.False(t, status.SetStage("refunded", true, now))
	assert.False(t, ValidStage("refunded"))
	assert.True(t, ValidStage(StageDelivered))
}

func TestOrderStatusJSONShape(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	status := NewOrderStatus(now)

	data, err := json.Marshal(status)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "received_order")
	assert.Contains(t, decoded, "packed")
	assert.NotContains(t, decoded, "cancelled", "side flags are omitted until set")
	assert.NotContains(t, decoded, "return_requested")

	status.Cancel(now)
	data, err = json.Marshal(status)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "cancelled")
}
