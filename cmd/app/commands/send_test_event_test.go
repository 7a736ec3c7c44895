package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/analytics-relay/internal/app"
	"github.com/allisson/analytics-relay/internal/config"
)

func TestSendTestEvent(t *testing.T) {
	input := TestEventInput{
		SKU:      "test-sku",
		Name:     "Test Product",
		Price:    "10.00",
		Quantity: 1,
	}

	t.Run("invalid price is rejected", func(t *testing.T) {
		cfg := &config.Config{LogLevel: "error"}
		container := app.NewContainer(cfg)

		badInput := input
		badInput.Price = "not-a-price"

		outcomes, err := sendTestEvent(context.Background(), cfg, container, badInput)
		assert.Error(t, err)
		assert.Nil(t, outcomes)
	})

	t.Run("malformed tracking account is rejected", func(t *testing.T) {
		cfg := &config.Config{
			LogLevel:      "error",
			GAEnabled:     true,
			GATrackingIDs: "not-a-tracking-id",
		}
		container := app.NewContainer(cfg)

		outcomes, err := sendTestEvent(context.Background(), cfg, container, input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not-a-tracking-id")
		assert.Nil(t, outcomes)
	})

	t.Run("tracking disabled dispatches nothing", func(t *testing.T) {
		cfg := &config.Config{
			LogLevel:      "error",
			GAEnabled:     false,
			GATrackingIDs: "UA-12345-1",
		}
		container := app.NewContainer(cfg)

		outcomes, err := sendTestEvent(context.Background(), cfg, container, input)
		require.NoError(t, err)
		assert.Empty(t, outcomes)
	})

	t.Run("no accounts dispatches nothing", func(t *testing.T) {
		cfg := &config.Config{
			LogLevel:  "error",
			GAEnabled: true,
		}
		container := app.NewContainer(cfg)

		outcomes, err := sendTestEvent(context.Background(), cfg, container, input)
		require.NoError(t, err)
		assert.Empty(t, outcomes)
	})
}
