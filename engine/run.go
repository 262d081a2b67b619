// Package engine implements the run driver (spec.md §4.G): the single
// public lifecycle that wires together the beam evaluator, site table,
// probability builder, step kernel, and evolution recorder into one
// result record.
package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/stedkmc/kernel"
	"github.com/pthm-cable/stedkmc/sitetable"
	"github.com/pthm-cable/stedkmc/telemetry"
)

// Run executes one full simulation: construct → evaluate beams → build
// thresholds → seed RNG → N+1 ticks → finalize → emit to sink.
//
// ctx is checked once per tick boundary, never mid-tick (spec.md §5: the
// core has no internal cancellation points); a cancelled context stops the
// run at the next boundary and returns ctx.Err(), leaving no tick
// half-applied.
func Run(ctx context.Context, cfg RunConfig, sink Sink) (ResultRecord, error) {
	if err := cfg.Validate(); err != nil {
		return ResultRecord{}, err
	}

	table := sitetable.New(cfg.ETPositionsX, cfg.ETPositionsY, cfg.REPositionsX, cfg.REPositionsY)

	pumpI, stedI := evaluateBeams(table, cfg)

	if err := buildThresholds(table, pumpI, stedI, cfg); err != nil {
		return ResultRecord{}, err
	}

	reLo, reHi := table.REIndices()
	nRE := reHi - reLo
	recorder := telemetry.NewRecorder(reLo, nRE)
	heatmap := telemetry.NewHeatmap(table.Len())

	rng := newRNG(cfg.Seed)

	flushEvery := flushCadence(cfg.Ticks)
	step := kernel.New(table, rng, cfg.TravelRadius, flushEvery, recorder, heatmap)

	for tick := uint64(0); tick <= cfg.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return ResultRecord{}, err
		}
		step.Tick(tick)
	}

	result := finalize(cfg, recorder, step, heatmap)
	sink.Emit(result)
	return result, nil
}

func evaluateBeams(table *sitetable.Table, cfg RunConfig) (pumpI, stedI []float64) {
	xs, ys := table.Positions()
	pump := pumpBeam(cfg)
	sted := stedBeam(cfg)
	return pump.IntensityAt(xs, ys), sted.IntensityAt(xs, ys)
}

func flushCadence(ticks uint64) uint64 {
	return uint64(math.Ceil(float64(ticks) / 20))
}

func newRNG(seed *int64) *rand.Rand {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	return rand.New(rand.NewSource(s))
}

func finalize(cfg RunConfig, recorder *telemetry.Recorder, step *kernel.Kernel, heatmap *telemetry.Heatmap) ResultRecord {
	series := make([]RESeries, recorder.NumRE())
	for i := range series {
		ticks, ground, excited := recorder.Series(i)
		series[i] = RESeries{
			Ticks:   ticks,
			Ground:  ground,
			Excited: excited,
			Stats:   telemetry.ComputeSeriesStats(excited),
		}
	}

	var excitedStateAverage float64
	if len(series) > 0 {
		excitedStateAverage = telemetry.MeanOfSecondHalf(series[0].Excited)
	}

	return ResultRecord{
		Config:              cfg,
		Series:              series,
		ExcitedStateAverage: excitedStateAverage,
		ElectronLostCount:   step.ElectronLostCount(),
		Heatmap:             heatmap.Values(),
	}
}

func wrapf(err error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, err)...)
}
