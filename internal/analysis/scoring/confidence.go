// Package scoring turns analysis evidence into a confidence score.
package scoring

import (
	"math/rand"
	"sync"
	"time"

	"smc-analyst/internal/models"
)

const (
	baseConfidence = 60
	minConfidence  = 50
	maxConfidence  = 95
)

// Inputs carries the evidence the scorer weighs.
type Inputs struct {
	// SignalCount is the number of confluence factors backing the setup.
	SignalCount int
	Trend       models.TrendLabel
	// RSI is nil when the series was too short to compute it.
	RSI *float64
}

// ConfidenceScorer produces a bounded confidence score with a small
// random perturbation. The randomness source is injected so callers
// can fix a seed for reproducible runs.
type ConfidenceScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewConfidenceScorer creates a scorer using the given source. A nil
// source falls back to a time-seeded one.
func NewConfidenceScorer(src rand.Source) *ConfidenceScorer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &ConfidenceScorer{rng: rand.New(src)}
}

// Score computes a confidence value in [50, 95]. Signal count adds up
// to 20 points, a determinate trend and a neutral RSI add 5 each, and
// a jitter in [-5, 10] perturbs the total before clamping.
func (s *ConfidenceScorer) Score(in Inputs) int {
	confidence := baseConfidence

	if in.SignalCount > 3 {
		confidence += 10
	}
	if in.SignalCount > 5 {
		confidence += 10
	}
	if in.Trend.Determinate() {
		confidence += 5
	}
	if in.RSI != nil && *in.RSI > 30 && *in.RSI < 70 {
		confidence += 5
	}

	s.mu.Lock()
	confidence += s.rng.Intn(16) - 5
	s.mu.Unlock()

	return clamp(confidence, minConfidence, maxConfidence)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
