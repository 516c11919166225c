// Command tune searches ant movement and communication parameters for the
// configuration that delivers the most food in a fixed number of ticks.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/formica/config"
)

// evalRecord is one row of tune_log.csv.
type evalRecord struct {
	Eval           int     `csv:"eval"`
	Fitness        float64 `csv:"fitness"`
	MeanDeliveries float64 `csv:"mean_deliveries"`
	StdDeliveries  float64 `csv:"std_deliveries"`
	Erratic        float64 `csv:"erratic"`
	SightDistance  float64 `csv:"sight_distance"`
	CommunicateMin int     `csv:"communicate_min"`
	CommunicateMax int     `csv:"communicate_max"`
	MemorySize     int     `csv:"memory_size"`
}

// formatDuration formats a duration as 1h02m03s or 2m03s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 6000, "Ticks per simulation run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Games log through slog; keep the progress output readable
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *ticks, evalSeeds, baseCfg)

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	headerWritten := false

	evalCount := 0
	bestFitness := 1e18
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			mean, std := evaluator.Last()
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = append(bestParams[:0], raw...)
			}

			rec := []evalRecord{{
				Eval:           evalCount,
				Fitness:        fitness,
				MeanDeliveries: mean,
				StdDeliveries:  std,
				Erratic:        raw[0],
				SightDistance:  raw[1],
				CommunicateMin: int(raw[2]),
				CommunicateMax: int(raw[3]),
				MemorySize:     int(raw[4]),
			}}
			var werr error
			if headerWritten {
				werr = gocsv.MarshalWithoutHeaders(rec, logFile)
			} else {
				werr = gocsv.Marshal(rec, logFile)
				headerWritten = true
			}
			if werr != nil {
				log.Printf("failed to write eval log: %v", werr)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			fmt.Printf("Eval %d/%d: deliveries=%.1f±%.1f (best fitness=%.1f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, mean, std, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}
	method := &optimize.NelderMead{SimplexSize: 0.2}
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	fmt.Printf("Starting Nelder-Mead with %d parameters, max_evals=%d\n", params.Dim(), *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *ticks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Denormalize(result.X)
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.1f\n\nBest parameters:\n", bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %g\n", spec.Name, bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)
	outPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(outPath); err != nil {
		log.Printf("failed to write best config: %v", err)
		return
	}
	fmt.Printf("\nBest config saved to: %s\n", outPath)
}
