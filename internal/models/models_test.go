package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTotalPriceIsJSONNumber(t *testing.T) {
	raw, err := json.Marshal(Order{TotalPrice: decimal.RequireFromString("9000.00")})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total_price":9000`)
	assert.NotContains(t, string(raw), `"total_price":"`)

	var back Order
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, decimal.NewFromInt(9000).Equal(back.TotalPrice))
}
