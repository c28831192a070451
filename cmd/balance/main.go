// Command balance tunes rival loop difficulty so that a player who never
// moves ends a round holding a target share of all bugs.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/bugloop/config"
)

// EvalRecord is one row of balance_log.csv.
type EvalRecord struct {
	Eval       int     `csv:"eval"`
	Fitness    float64 `csv:"fitness"`
	AISpeed    float64 `csv:"ai_speed"`
	MeanShare  float64 `csv:"mean_share"`
	ElapsedSec float64 `csv:"elapsed_sec"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
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
	ticks := flag.Int("ticks", 0, "Round horizon in ticks (0 = use config)")
	seeds := flag.Int("seeds", 0, "Number of seeds per evaluation (0 = use config)")
	maxEvals := flag.Int("max-evals", 0, "Maximum number of evaluations (0 = use config)")
	target := flag.Float64("target", 0, "Target passive-player share (0 = use config)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Round lifecycle logs are noise here
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()
	bal := baseCfg.Balance
	if *ticks > 0 {
		bal.Ticks = *ticks
	}
	if *seeds > 0 {
		bal.Seeds = *seeds
	}
	if *maxEvals > 0 {
		bal.MaxEvals = *maxEvals
	}
	if *target > 0 {
		bal.TargetShare = *target
	}

	params := NewParamVector(baseCfg)

	evalSeeds := make([]int64, bal.Seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, int32(bal.Ticks), evalSeeds, bal.TargetShare, baseCfg)

	logPath := filepath.Join(*outputDir, "balance_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			elapsed := time.Since(startTime)
			rec := []EvalRecord{{
				Eval:       evalCount,
				Fitness:    fitness,
				AISpeed:    clamped[0],
				MeanShare:  evaluator.LastShare(),
				ElapsedSec: elapsed.Seconds(),
			}}
			write := gocsv.MarshalWithoutHeaders
			if evalCount == 1 {
				write = gocsv.Marshal
			}
			if err := write(&rec, logFile); err != nil {
				log.Printf("failed to write eval %d: %v", evalCount, err)
			}

			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(bal.MaxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: ai_speed=%.3f share=%.3f fitness=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, bal.MaxEvals, clamped[0], evaluator.LastShare(), fitness, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: bal.MaxEvals,
	}
	method := &optimize.NelderMead{
		SimplexSize: 0.25,
	}

	fmt.Printf("Starting Nelder-Mead balance with %d parameters, max_evals=%d\n", params.Dim(), bal.MaxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per round: %d, target share: %.3f\n", bal.Seeds, bal.Ticks, bal.TargetShare)

	initX := params.Normalize(params.DefaultVector())
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Best params may come from any evaluation, not just the final simplex
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nBalance complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, bestParams[i])
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, bestParams)
	bestCfg.AI.Speed = bestCfg.SnapAISpeed(bestCfg.AI.Speed)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
