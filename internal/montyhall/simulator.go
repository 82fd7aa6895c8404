package montyhall

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// Source provides uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG generator for the given seed and stream.
func NewSource(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// ScoreBoard counts wins per strategy over a run.
type ScoreBoard struct {
	StayWins   int `json:"stay_wins" yaml:"stay_wins"`
	SwitchWins int `json:"switch_wins" yaml:"switch_wins"`
}

// Merge adds the wins of other to the board.
func (s *ScoreBoard) Merge(other ScoreBoard) {
	s.StayWins += other.StayWins
	s.SwitchWins += other.SwitchWins
}

func (s *ScoreBoard) record(t Trial) {
	if t.StayWon {
		s.StayWins++
	}
	if t.SwitchWon {
		s.SwitchWins++
	}
}

// Trial is the record of one play of the game under both strategies.
type Trial struct {
	Assignment DoorAssignment
	Pick       Door
	HostOpened Door
	SwitchedTo Door
	StayWon    bool
	SwitchWon  bool
}

type Simulator struct {
	source Source
	logger *log.Logger
}

type Option func(*Simulator)

// WithLogger sets the logger used for per-run debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// NewSimulator creates a simulator drawing from src.
func NewSimulator(src Source, opts ...Option) *Simulator {
	s := &Simulator{
		source: src,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run plays iterations trials and returns the wins per strategy.
func (s *Simulator) Run(iterations int) (ScoreBoard, error) {
	return s.RunContext(context.Background(), iterations)
}

// RunContext is Run with cancellation checked between trials.
func (s *Simulator) RunContext(ctx context.Context, iterations int) (ScoreBoard, error) {
	if iterations <= 0 {
		return ScoreBoard{}, fmt.Errorf("%w, got %d", ErrorInvalidIterationCount, iterations)
	}

	s.logger.Debug("Starting simulation", "iterations", iterations)

	var board ScoreBoard
	for i := 0; i < iterations; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ScoreBoard{}, err
			}
		}
		trial, err := playTrial(s.source)
		if err != nil {
			return ScoreBoard{}, fmt.Errorf("trial %d: %w", i, err)
		}
		board.record(trial)
	}

	if err := checkConservation(board, iterations); err != nil {
		return ScoreBoard{}, err
	}

	s.logger.Debug("Simulation finished", "stay_wins", board.StayWins, "switch_wins", board.SwitchWins)
	return board, nil
}

// checkConservation verifies that every trial produced exactly one winning strategy.
func checkConservation(board ScoreBoard, iterations int) error {
	if board.StayWins < 0 || board.StayWins > iterations || board.SwitchWins < 0 || board.SwitchWins > iterations {
		return fmt.Errorf("%w: scores %+v out of range for %d iterations", ErrorInternalInvariantViolation, board, iterations)
	}
	if board.StayWins+board.SwitchWins != iterations {
		return fmt.Errorf("%w: stay %d + switch %d != %d iterations",
			ErrorInternalInvariantViolation, board.StayWins, board.SwitchWins, iterations)
	}
	return nil
}

// playTrial draws the car door, then the contestant's pick, then (only when
// the pick holds the car) the host's tie-break.
func playTrial(src Source) (Trial, error) {
	car, err := DoorFromIndex(src.IntN(DoorCount))
	if err != nil {
		return Trial{}, err
	}
	assignment, err := NewDoorAssignment(car)
	if err != nil {
		return Trial{}, err
	}

	pick, err := DoorFromIndex(src.IntN(DoorCount))
	if err != nil {
		return Trial{}, err
	}

	trial := Trial{
		Assignment: assignment,
		Pick:       pick,
		StayWon:    assignment.Award(pick) == Car,
	}

	trial.HostOpened, err = hostDoor(src, assignment, pick)
	if err != nil {
		return Trial{}, err
	}

	trial.SwitchedTo, err = RemainingDoor(pick, trial.HostOpened)
	if err != nil {
		return Trial{}, err
	}
	if trial.SwitchedTo == pick || trial.SwitchedTo == trial.HostOpened {
		return Trial{}, fmt.Errorf("%w: switched to %s from %s with %s open",
			ErrorInternalInvariantViolation, trial.SwitchedTo, pick, trial.HostOpened)
	}
	trial.SwitchWon = assignment.Award(trial.SwitchedTo) == Car

	return trial, nil
}

// hostDoor picks the door Monty opens: never the contestant's, never the car.
func hostDoor(src Source, assignment DoorAssignment, pick Door) (Door, error) {
	candidates, err := OtherDoors(pick)
	if err != nil {
		return 0, err
	}

	var opened Door
	if assignment.Award(pick) == Car {
		// Both other doors hide goats.
		idx := src.IntN(len(candidates))
		if idx < 0 || idx >= len(candidates) {
			return 0, fmt.Errorf("%w: host tie-break index %d", ErrorInternalInvariantViolation, idx)
		}
		opened = candidates[idx]
	} else {
		opened, err = RemainingDoor(pick, assignment.CarDoor())
		if err != nil {
			return 0, err
		}
	}

	if opened == pick {
		return 0, fmt.Errorf("%w: host opened the contestant's %s", ErrorInternalInvariantViolation, opened)
	}
	if assignment.Award(opened) == Car {
		return 0, fmt.Errorf("%w: host opened %s holding the car", ErrorInternalInvariantViolation, opened)
	}
	return opened, nil
}
