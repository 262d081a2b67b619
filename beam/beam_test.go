package beam

import "testing"

func TestGaussianPeaksAtCenter(t *testing.T) {
	g := Gaussian{Params{CenterX: 0, CenterY: 0, Amplitude: 2.0, Wavelength: 500e-9, NumericalAperture: 1.2}}

	atCenter := g.Intensity(0, 0)
	if atCenter != g.Amplitude {
		t.Fatalf("Gaussian at center = %v, want amplitude %v", atCenter, g.Amplitude)
	}

	away := g.Intensity(1e-6, 0)
	if away >= atCenter {
		t.Fatalf("Gaussian intensity did not decrease away from center: center=%v away=%v", atCenter, away)
	}
	if away < 0 {
		t.Fatalf("Gaussian intensity went negative: %v", away)
	}
}

func TestDonutVanishesAtCenter(t *testing.T) {
	d := Donut{Params{CenterX: 0, CenterY: 0, Amplitude: 3.0, Wavelength: 500e-9, NumericalAperture: 1.2}}

	atCenter := d.Intensity(0, 0)
	if atCenter != 0 {
		t.Fatalf("Donut at center = %v, want 0", atCenter)
	}

	ring := d.Intensity(d.FWHM()/2, 0)
	if ring <= atCenter {
		t.Fatalf("Donut intensity did not rise off-center: center=%v ring=%v", atCenter, ring)
	}
}

func TestIntensityAtMatchesScalar(t *testing.T) {
	g := Gaussian{Params{CenterX: 1, CenterY: -1, Amplitude: 1.5, Wavelength: 532e-9, NumericalAperture: 1.1}}
	xs := []float64{0, 1, 2, -3}
	ys := []float64{0, -1, 0.5, 2}

	batch := g.IntensityAt(xs, ys)
	for i := range xs {
		want := g.Intensity(xs[i], ys[i])
		if diff := batch[i] - want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("IntensityAt[%d] = %v, want %v", i, batch[i], want)
		}
	}
}

func TestProfilesAreRadiallySymmetric(t *testing.T) {
	g := Gaussian{Params{CenterX: 0, CenterY: 0, Amplitude: 1.0, Wavelength: 500e-9, NumericalAperture: 1.2}}
	d := Donut{g.Params}

	offsets := []float64{50e-9, 150e-9, 400e-9}
	for _, off := range offsets {
		if a, b := g.Intensity(off, 0), g.Intensity(-off, 0); a != b {
			t.Errorf("Gaussian not symmetric at offset %v: +=%v -=%v", off, a, b)
		}
		if a, b := d.Intensity(off, 0), d.Intensity(-off, 0); a != b {
			t.Errorf("Donut not symmetric at offset %v: +=%v -=%v", off, a, b)
		}
	}
}

func TestFWHMAndSigma(t *testing.T) {
	p := Params{Wavelength: 600e-9, NumericalAperture: 1.5}
	wantFWHM := 600e-9 / 1.5
	if got := p.FWHM(); got != wantFWHM {
		t.Fatalf("FWHM() = %v, want %v", got, wantFWHM)
	}
	if sigma := p.Sigma(); sigma <= 0 || sigma >= wantFWHM {
		t.Fatalf("Sigma() = %v, expected in (0, FWHM)", sigma)
	}
}
