package shipment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/domain/model/shipment"
)

func validPackage() shipment.PackageInfo {
	return shipment.PackageInfo{
		Weight:      2,
		Height:      10,
		Width:       10,
		Length:      10,
		ProductType: "electronics",
	}
}

func TestPackageInfoValidate(t *testing.T) {
	t.Run("should accept a valid package", func(t *testing.T) {
		require.NoError(t, validPackage().Validate())
	})

	t.Run("should reject non-positive weight", func(t *testing.T) {
		p := validPackage()
		p.Weight = 0
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "weight")
	})

	t.Run("should reject non-positive dimensions", func(t *testing.T) {
		for _, mutate := range []func(*shipment.PackageInfo){
			func(p *shipment.PackageInfo) { p.Height = 0 },
			func(p *shipment.PackageInfo) { p.Width = -1 },
			func(p *shipment.PackageInfo) { p.Length = 0 },
		} {
			p := validPackage()
			mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "dimensions")
		}
	})

	t.Run("should require a product type", func(t *testing.T) {
		p := validPackage()
		p.ProductType = ""
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "productType")
	})
}

func TestPackageInfoWeights(t *testing.T) {
	t.Run("volumetric weight uses the 5000 divisor", func(t *testing.T) {
		p := validPackage()
		assert.InDelta(t, 0.2, p.VolumetricWeight(), 1e-9)
	})

	t.Run("chargeable weight is the actual weight when heavier", func(t *testing.T) {
		p := validPackage()
		assert.InDelta(t, 2.0, p.ChargeableWeight(), 1e-9)
	})

	t.Run("chargeable weight is the volumetric weight for bulky parcels", func(t *testing.T) {
		p := shipment.PackageInfo{
			Weight:      1,
			Height:      100,
			Width:       100,
			Length:      100,
			ProductType: "furniture",
		}
		assert.InDelta(t, 200.0, p.ChargeableWeight(), 1e-9)
	})
}
