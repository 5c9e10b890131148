package overlay

// This file defines the cm↔px conversion and the spacing bounds used by
// the host control.

// Conversion constants between real-world centimeters and screen pixels.
// The ratio is fixed for the prototype; it is not derived from the
// device's actual DPI.
const (
	CmToPx = 3.77
	PxToCm = 1.0 / CmToPx
)

// Spacing bounds in centimeters, enforced by the host control.
const (
	MinSpacingCm = 10.0
	MaxSpacingCm = 100.0
)

// ClampSpacing returns spacingCm limited to [MinSpacingCm, MaxSpacingCm].
// Generate itself tolerates out-of-range values; the clamp exists for
// host controls that bind a slider to the spacing value.
func ClampSpacing(spacingCm float64) float64 {
	if spacingCm < MinSpacingCm {
		return MinSpacingCm
	}
	if spacingCm > MaxSpacingCm {
		return MaxSpacingCm
	}
	return spacingCm
}

// SpacingPx converts a spacing in centimeters to pixels.
func SpacingPx(spacingCm float64) float64 { return spacingCm * CmToPx }
