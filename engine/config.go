package engine

import (
	"fmt"

	"github.com/pthm-cable/stedkmc/beam"
	"github.com/pthm-cable/stedkmc/probability"
)

// RunConfig is the full set of inputs for one run: rare-earth and trap
// positions, the two beams, the five cross-sections, the electron travel
// radius, and the tick count. Positions are supplied as parallel X/Y
// arrays (not paired points) so a mismatched pair is a detectable
// configuration error rather than a silent truncation.
type RunConfig struct {
	REPositionsX, REPositionsY []float64
	ETPositionsX, ETPositionsY []float64

	Pump beam.Params
	Sted beam.Params

	CrossSections probability.CrossSections
	TravelRadius  float64
	Ticks         uint64

	// Seed, if non-nil, makes the run deterministic (spec.md §8 property
	// 5: identical seed + config ⇒ bit-identical ResultRecord). If nil, a
	// fresh seed is drawn from the system entropy source so independent
	// runs are statistically independent (spec.md §4.G step 4).
	Seed *int64
}

// Validate checks the ConfigurationInvalid conditions from spec.md §7.
// Zero-amplitude beams are deliberately NOT rejected here — spec.md's own
// scenario S1 (pure decay) configures both beams at amplitude 0, and a
// zero-intensity field that later turns out to make every threshold zero
// is caught downstream as NumericDegenerate at probability-build time, not
// here. Only structurally required positive denominators (wavelength,
// numerical aperture) and blatantly negative amplitudes are rejected at
// construction.
func (c RunConfig) Validate() error {
	if len(c.REPositionsX) != len(c.REPositionsY) {
		return fmt.Errorf("%w: RE position arrays have mismatched lengths (%d x, %d y)",
			ErrConfigurationInvalid, len(c.REPositionsX), len(c.REPositionsY))
	}
	if len(c.ETPositionsX) != len(c.ETPositionsY) {
		return fmt.Errorf("%w: ET position arrays have mismatched lengths (%d x, %d y)",
			ErrConfigurationInvalid, len(c.ETPositionsX), len(c.ETPositionsY))
	}
	if len(c.REPositionsX) == 0 {
		return fmt.Errorf("%w: RE position set is empty", ErrConfigurationInvalid)
	}
	if err := validateBeam("pump", c.Pump); err != nil {
		return err
	}
	if err := validateBeam("sted", c.Sted); err != nil {
		return err
	}
	if c.TravelRadius <= 0 {
		return fmt.Errorf("%w: travel radius must be positive", ErrConfigurationInvalid)
	}
	if c.Ticks == 0 {
		return fmt.Errorf("%w: ticks must be positive", ErrConfigurationInvalid)
	}
	return nil
}

func validateBeam(name string, p beam.Params) error {
	if p.Amplitude < 0 {
		return fmt.Errorf("%w: %s amplitude is negative", ErrConfigurationInvalid, name)
	}
	if p.Wavelength <= 0 {
		return fmt.Errorf("%w: %s wavelength must be positive", ErrConfigurationInvalid, name)
	}
	if p.NumericalAperture <= 0 {
		return fmt.Errorf("%w: %s numerical aperture must be positive", ErrConfigurationInvalid, name)
	}
	return nil
}
