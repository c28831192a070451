package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSizeStats(t *testing.T) {
	tests := []struct {
		name                    string
		values                  []float64
		mean, std, p50, largest float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single loop", []float64{30}, 30, 0, 30, 30},
		{"equal loops", []float64{30, 30, 30}, 30, 0, 30, 30},
		// sample std of {2, 4, 4, 4, 5, 5, 7, 9} is sqrt(32/7)
		{"spread", []float64{9, 2, 4, 5, 4, 7, 4, 5}, 5, math.Sqrt(32.0 / 7), 4.5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50, largest := ComputeSizeStats(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 || math.Abs(std-tt.std) > 1e-9 ||
				math.Abs(p50-tt.p50) > 1e-9 || largest != tt.largest {
				t.Errorf("got mean=%v std=%v p50=%v max=%v, want %v %v %v %v",
					mean, std, p50, largest, tt.mean, tt.std, tt.p50, tt.largest)
			}
		})
	}
}

func TestComputeSizeStatsDoesNotReorder(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeSizeStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}
