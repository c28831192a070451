package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/bugloop/config"
	"github.com/pthm-cable/bugloop/game"
	"github.com/pthm-cable/bugloop/systems"
)

// FitnessEvaluator plays headless rounds with a passive player and scores
// how far the player's share at the horizon lands from the target.
type FitnessEvaluator struct {
	params      *ParamVector
	ticks       int32
	seeds       []int64
	baseConfig  *config.Config
	targetShare float64

	mu        sync.Mutex
	lastShare float64 // mean share from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int32, seeds []int64, targetShare float64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		ticks:       ticks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		targetShare: targetShare,
	}
}

// LastShare returns the mean player share from the most recent evaluation.
func (fe *FitnessEvaluator) LastShare() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastShare
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	share float64
	err   error
}

// Evaluate computes fitness for a raw parameter vector (lower = better):
// the mean absolute distance between the final player share and the target.
// Seeds run in parallel.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			share, err := fe.runRound(cfg, s)
			results[idx] = seedResult{share: share, err: err}
		}(i, seed)
	}
	wg.Wait()

	var totalShare, totalDist float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		totalShare += r.share
		totalDist += math.Abs(r.share - fe.targetShare)
	}

	n := float64(len(results))
	fe.mu.Lock()
	fe.lastShare = totalShare / n
	fe.mu.Unlock()

	return totalDist / n
}

// runRound plays one round without input until the horizon or a decided
// outcome, and returns the player's final share of all bugs.
func (fe *FitnessEvaluator) runRound(cfg *config.Config, seed int64) (float64, error) {
	g, err := game.NewGame(cfg, game.Options{Seed: seed, Headless: true})
	if err != nil {
		return 0, err
	}
	defer g.Unload()

	for g.Tick() < fe.ticks && g.Outcome() == systems.OutcomePlaying {
		g.Step()
	}
	return systems.PlayerShare(g.World()), nil
}

// copyConfig returns a copy of the base config. Config holds no reference
// types, so a value copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
