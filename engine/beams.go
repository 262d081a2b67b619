package engine

import (
	"github.com/pthm-cable/stedkmc/beam"
	"github.com/pthm-cable/stedkmc/probability"
	"github.com/pthm-cable/stedkmc/sitetable"
)

func pumpBeam(cfg RunConfig) beam.Gaussian {
	return beam.Gaussian{Params: cfg.Pump}
}

func stedBeam(cfg RunConfig) beam.Donut {
	return beam.Donut{Params: cfg.Sted}
}

func buildThresholds(table *sitetable.Table, pumpI, stedI []float64, cfg RunConfig) error {
	if err := probability.Build(table, pumpI, stedI, cfg.CrossSections); err != nil {
		return wrapf(err, "building probability thresholds")
	}
	return nil
}
