package main

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/formica/config"
	"github.com/pthm-cable/formica/game"
)

// consistencyPenalty weighs the spread of deliveries across seeds.
const consistencyPenalty = 0.5

// FitnessEvaluator runs headless colonies and scores parameter vectors.
type FitnessEvaluator struct {
	params     *ParamVector
	ticks      int
	seeds      []int64
	baseConfig *config.Config

	mu       sync.Mutex
	lastMean float64
	lastStd  float64
}

// NewFitnessEvaluator creates an evaluator running every vector on each seed.
func NewFitnessEvaluator(params *ParamVector, ticks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		ticks:      ticks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// Last returns the delivery mean and standard deviation of the most
// recent evaluation.
func (fe *FitnessEvaluator) Last() (mean, std float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMean, fe.lastStd
}

// Evaluate runs all seeds in parallel and returns the fitness of raw
// (lower is better): negative mean deliveries plus a spread penalty.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, raw)

	deliveries := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			d, err := fe.runSimulation(cfg, s)
			if err != nil {
				fmt.Printf("seed %d failed: %v\n", s, err)
				return
			}
			deliveries[idx] = float64(d)
		}(i, seed)
	}
	wg.Wait()

	mean, std := stat.MeanStdDev(deliveries, nil)
	if len(deliveries) < 2 {
		std = 0
	}

	fe.mu.Lock()
	fe.lastMean, fe.lastStd = mean, std
	fe.mu.Unlock()

	return -(mean - consistencyPenalty*std)
}

// runSimulation runs one headless colony for the configured number of
// ticks and returns the food delivered.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (int, error) {
	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg.Clone(),
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
	})
	if err != nil {
		return 0, err
	}
	defer g.Unload()

	g.RunTicks(fe.ticks)
	return g.Deliveries(), nil
}
