package shipment

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// PackageInfo describes the parcel being shipped. Weight is in kilograms,
// dimensions in centimeters. Serialized as a JSON document at the store
// boundary together with the addresses.
type PackageInfo struct {
	Weight      float64 `json:"weight"`
	Height      float64 `json:"height"`
	Width       float64 `json:"width"`
	Length      float64 `json:"length"`
	ProductType string  `json:"productType"`
	Description string  `json:"description,omitempty"`
}

// Validate checks that weight and all dimensions are positive and a product
// type is present.
func (p PackageInfo) Validate() error {
	if p.Weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v is not greater than 0", p.Weight))
	}
	if p.Height <= 0 || p.Width <= 0 || p.Length <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dimensions",
			fmt.Errorf("%vx%vx%v must all be greater than 0", p.Height, p.Width, p.Length))
	}
	if p.ProductType == "" {
		return errs.NewValueIsRequiredError("productType")
	}
	return nil
}

// VolumetricWeight is the dimensional weight in kilograms using the standard
// divisor of 5000.
func (p PackageInfo) VolumetricWeight() float64 {
	return (p.Height * p.Width * p.Length) / 5000
}

// ChargeableWeight is the weight billing is based on: the greater of the
// actual and volumetric weights.
func (p PackageInfo) ChargeableWeight() float64 {
	if p.Weight > p.VolumetricWeight() {
		return p.Weight
	}
	return p.VolumetricWeight()
}
