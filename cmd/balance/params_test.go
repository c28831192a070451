package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/bugloop/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	pv := NewParamVector(cfg)

	if pv.Dim() != 1 {
		t.Fatalf("expected 1 parameter, got %d", pv.Dim())
	}

	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	if math.Abs(back[0]-cfg.AI.Speed) > 1e-9 {
		t.Errorf("expected %f after round trip, got %f", cfg.AI.Speed, back[0])
	}

	if got := pv.Clamp([]float64{100}); got[0] != cfg.AI.MaxSpeed {
		t.Errorf("expected clamp to %f, got %f", cfg.AI.MaxSpeed, got[0])
	}

	out := *cfg
	pv.ApplyToConfig(&out, []float64{-5})
	if out.AI.Speed != cfg.AI.MinSpeed {
		t.Errorf("expected applied speed clamped to %f, got %f", cfg.AI.MinSpeed, out.AI.Speed)
	}
}

func TestEvaluateScoresDistanceFromTarget(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	pv := NewParamVector(cfg)

	// At tick 0 nothing has converted yet, so the share is the starting share
	fe := NewFitnessEvaluator(pv, 0, []int64{1, 2}, 0, cfg)
	fitness := fe.Evaluate(pv.DefaultVector())

	start := float64(cfg.Population.PlayerBugs) / float64(cfg.Derived.InitialBugs)
	if math.Abs(fitness-start) > 1e-9 {
		t.Errorf("expected fitness %f, got %f", start, fitness)
	}
	if math.Abs(fe.LastShare()-start) > 1e-9 {
		t.Errorf("expected mean share %f, got %f", start, fe.LastShare())
	}
}
