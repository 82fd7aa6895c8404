package report

import (
	"fmt"
	"math"

	"github.com/rejot-dev/montyhall/internal/montyhall"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	StayExpected   = 1.0 / 3.0
	SwitchExpected = 2.0 / 3.0
)

// Summary is the reported outcome of one simulation run.
type Summary struct {
	Iterations      int            `json:"iterations" yaml:"iterations" jsonschema_description:"Number of trials played"`
	Seed            uint64         `json:"seed" yaml:"seed" jsonschema_description:"Seed that reproduces this run"`
	Workers         int            `json:"workers" yaml:"workers" jsonschema_description:"Number of goroutines that shared the trials"`
	Confidence      float64        `json:"confidence" yaml:"confidence" jsonschema_description:"Confidence level of the win rate intervals"`
	Stay            StrategyResult `json:"stay" yaml:"stay" jsonschema_description:"Outcome of keeping the initial pick"`
	Switch          StrategyResult `json:"switch" yaml:"switch" jsonschema_description:"Outcome of switching to the unopened door"`
	SwitchDominates bool           `json:"switch_dominates" yaml:"switch_dominates" jsonschema_description:"Whether switching won strictly more often than staying"`
}

type StrategyResult struct {
	Name     string  `json:"name" yaml:"name"`
	Wins     int     `json:"wins" yaml:"wins"`
	Losses   int     `json:"losses" yaml:"losses"`
	Rate     float64 `json:"rate" yaml:"rate"`
	Lower    float64 `json:"lower" yaml:"lower" jsonschema_description:"Lower bound of the Wilson score interval"`
	Upper    float64 `json:"upper" yaml:"upper" jsonschema_description:"Upper bound of the Wilson score interval"`
	Expected float64 `json:"expected" yaml:"expected" jsonschema_description:"Theoretical win probability"`
}

// NewSummary derives rates and intervals from a finished run.
func NewSummary(board montyhall.ScoreBoard, iterations int, seed uint64, workers int, confidence float64) (*Summary, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("%w, got %d", montyhall.ErrorInvalidIterationCount, iterations)
	}
	if confidence <= 0 || confidence >= 1 {
		return nil, fmt.Errorf("confidence must be between 0.0 and 1.0 exclusive, got: %f", confidence)
	}

	return &Summary{
		Iterations:      iterations,
		Seed:            seed,
		Workers:         workers,
		Confidence:      confidence,
		Stay:            newStrategyResult("stay", board.StayWins, iterations, confidence, StayExpected),
		Switch:          newStrategyResult("switch", board.SwitchWins, iterations, confidence, SwitchExpected),
		SwitchDominates: board.SwitchWins > board.StayWins,
	}, nil
}

func newStrategyResult(name string, wins, n int, confidence, expected float64) StrategyResult {
	lower, upper := WilsonInterval(wins, n, confidence)
	return StrategyResult{
		Name:     name,
		Wins:     wins,
		Losses:   n - wins,
		Rate:     float64(wins) / float64(n),
		Lower:    lower,
		Upper:    upper,
		Expected: expected,
	}
}

// WilsonInterval returns the Wilson score interval for wins out of n trials.
func WilsonInterval(wins, n int, confidence float64) (float64, float64) {
	if n <= 0 {
		return 0, 0
	}
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	nf := float64(n)
	p := float64(wins) / nf
	z2 := z * z

	denom := 1 + z2/nf
	center := (p + z2/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf)) / denom

	return math.Max(0, center-half), math.Min(1, center+half)
}

// Covers reports whether the interval contains the theoretical probability.
func (r StrategyResult) Covers() bool {
	return r.Lower <= r.Expected && r.Expected <= r.Upper
}
