package montyhall

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// cancelCheckInterval is how many trials run between context checks.
const cancelCheckInterval = 1024

// RunParallel splits iterations across workers, each with its own PCG stream
// derived from seed. The result is reproducible for a given seed and worker
// count.
func RunParallel(ctx context.Context, iterations, workers int, seed uint64, logger *log.Logger) (ScoreBoard, error) {
	if iterations <= 0 {
		return ScoreBoard{}, fmt.Errorf("%w, got %d", ErrorInvalidIterationCount, iterations)
	}
	if logger == nil {
		logger = log.Default()
	}
	if workers > iterations {
		workers = iterations
	}
	if workers <= 1 {
		return NewSimulator(NewSource(seed, 0), WithLogger(logger)).RunContext(ctx, iterations)
	}

	boards := make([]ScoreBoard, workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		share := iterations / workers
		if w < iterations%workers {
			share++
		}
		g.Go(func() error {
			src := NewSource(seed, uint64(w))
			var board ScoreBoard
			for i := 0; i < share; i++ {
				if i%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				trial, err := playTrial(src)
				if err != nil {
					return fmt.Errorf("worker %d trial %d: %w", w, i, err)
				}
				board.record(trial)
			}
			logger.Debug("Worker finished", "worker", w, "trials", share, "stay_wins", board.StayWins, "switch_wins", board.SwitchWins)
			boards[w] = board
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ScoreBoard{}, err
	}

	var total ScoreBoard
	for _, b := range boards {
		total.Merge(b)
	}
	if err := checkConservation(total, iterations); err != nil {
		return ScoreBoard{}, err
	}
	return total, nil
}
