package pls

import (
	"fmt"

	"plsgo/domain/core"
)

// Variant tags a PLS analysis method. The tags mirror the abbreviated names
// used in the neuroimaging PLS literature.
type Variant string

const (
	VariantMeanCenterTask       Variant = "mct"
	VariantNonRotatedTask       Variant = "nrt"
	VariantBehavioral           Variant = "rb"
	VariantMultiblock           Variant = "mb"
	VariantNonRotatedBehavior   Variant = "nrb"
	VariantNonRotatedMultiblock Variant = "nrmb"
)

// variantNames maps every recognized tag to its full method name.
var variantNames = map[Variant]string{
	VariantMeanCenterTask:       "Mean-Centering Task PLS",
	VariantNonRotatedTask:       "Non-Rotated Task PLS",
	VariantBehavioral:           "Regular Behavioral PLS",
	VariantMultiblock:           "Multiblock PLS",
	VariantNonRotatedBehavior:   "Non-Rotated Behavioral PLS",
	VariantNonRotatedMultiblock: "Non-Rotated Multiblock PLS",
}

// Name returns the full method name for a recognized variant tag.
func (v Variant) Name() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return string(v)
}

// IsKnown reports whether the tag names a recognized PLS method, implemented
// or not.
func (v Variant) IsKnown() bool {
	_, ok := variantNames[v]
	return ok
}

// CheckKnown maps an unrecognized tag to a configuration error and a
// recognized one to nil. Whether a known tag is actually implemented is
// decided by the variant table in the app package.
func (v Variant) CheckKnown() error {
	if !v.IsKnown() {
		return fmt.Errorf("%w %q", core.ErrUnknownVariant, string(v))
	}
	return nil
}
