// Package config provides embedded-default configuration loading for
// callers assembling an engine.RunConfig, mirroring the teacher's
// embedded-YAML-plus-override pattern. It is ambient tooling, not a CLI:
// this package never touches os.Args or flag parsing.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/stedkmc/beam"
	"github.com/pthm-cable/stedkmc/probability"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// BeamPreset holds the three physical parameters a beam.Params needs,
// minus the center (the caller supplies that per-run — typically (0,0)
// for the pump and STED beams, per spec.md §6).
type BeamPreset struct {
	Amplitude         float64 `yaml:"amplitude"`
	Wavelength        float64 `yaml:"wavelength"`
	NumericalAperture float64 `yaml:"numerical_aperture"`
}

// ToParams builds a beam.Params centered at (centerX, centerY).
func (b BeamPreset) ToParams(centerX, centerY float64) beam.Params {
	return beam.Params{
		CenterX:           centerX,
		CenterY:           centerY,
		Amplitude:         b.Amplitude,
		Wavelength:        b.Wavelength,
		NumericalAperture: b.NumericalAperture,
	}
}

// CrossSectionPreset mirrors probability.CrossSections for YAML loading.
type CrossSectionPreset struct {
	Decay   float64 `yaml:"decay"`
	Pump    float64 `yaml:"pump"`
	Ionize  float64 `yaml:"ionize"`
	Repump  float64 `yaml:"repump"`
	Deplete float64 `yaml:"deplete"`
}

// ToCrossSections converts to probability.CrossSections.
func (c CrossSectionPreset) ToCrossSections() probability.CrossSections {
	return probability.CrossSections{
		Decay:   c.Decay,
		Pump:    c.Pump,
		Ionize:  c.Ionize,
		Repump:  c.Repump,
		Deplete: c.Deplete,
	}
}

// Defaults holds every preset value a RunConfig can be seeded from.
type Defaults struct {
	Pump          BeamPreset         `yaml:"pump"`
	Sted          BeamPreset         `yaml:"sted"`
	CrossSections CrossSectionPreset `yaml:"cross_sections"`
	TravelRadius  float64            `yaml:"travel_radius"`
	Ticks         uint64             `yaml:"ticks"`
}

// global holds the loaded defaults, set by Init.
var global *Defaults

// Init loads defaults from path, or uses embedded defaults if path is
// empty. Must be called before Cfg.
func Init(path string) error {
	d, err := Load(path)
	if err != nil {
		return err
	}
	global = d
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the loaded defaults. Panics if Init was not called.
func Cfg() *Defaults {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads defaults from a YAML file, merging with embedded defaults. If
// path is empty, only the embedded defaults are used.
func Load(path string) (*Defaults, error) {
	d := &Defaults{}
	if err := yaml.Unmarshal(defaultsYAML, d); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, d); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return d, nil
}
