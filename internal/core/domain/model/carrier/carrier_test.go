package carrier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/domain/model/carrier"
)

func TestNewCarrier(t *testing.T) {
	t.Run("should create an available carrier", func(t *testing.T) {
		c, err := carrier.NewCarrier("Transportes Andinos", 450)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, 0, c.ID())
		assert.Equal(t, "Transportes Andinos", c.Name())
		assert.InDelta(t, 450.0, c.VehicleCapacity(), 1e-9)
		assert.True(t, c.IsAvailable())
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := carrier.NewCarrier("", 450)
		require.Error(t, err)
	})

	t.Run("should fail with non-positive capacity", func(t *testing.T) {
		_, err := carrier.NewCarrier("Transportes Andinos", 0)
		require.Error(t, err)
	})
}

func TestRestoreCarrier(t *testing.T) {
	t.Run("should rebuild a persisted carrier", func(t *testing.T) {
		c, err := carrier.RestoreCarrier(7, "Transportes Andinos", 450, false)

		require.NoError(t, err)
		assert.Equal(t, 7, c.ID())
		assert.False(t, c.IsAvailable())
	})

	t.Run("should fail with non-positive id", func(t *testing.T) {
		_, err := carrier.RestoreCarrier(0, "Transportes Andinos", 450, true)
		require.Error(t, err)
	})

	t.Run("should reject direct struct construction", func(t *testing.T) {
		var c carrier.Carrier
		assert.ErrorIs(t, c.Validate(), carrier.ErrCarrierIsNotConstructed)
	})
}
