package match

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"corewars/internal/war"
)

// Summary aggregates a batch of matches.
type Summary struct {
	Runs      int                `json:"runs"`
	Draws     int                `json:"draws"`
	TimedOut  int                `json:"timed_out"`
	AvgRounds float64            `json:"avg_rounds"`
	Scores    map[string]float64 `json:"scores"`
	Wins      map[string]int     `json:"wins"`
}

// RunBatch plays n independent matches of the same groups, match i seeded
// with s.Seed+i, at most workers at a time. Every match gets its own War
// and random source; groups are only read.
func RunBatch(ctx context.Context, s Settings, groups []war.WarriorGroup, n, workers int, opts ...Option) (Summary, error) {
	if workers <= 0 {
		workers = 1
	}
	s.StartPaused = false
	s.RoundsPerSecond = 0
	s.Record = false

	sum := Summary{Scores: map[string]float64{}, Wins: map[string]int{}}
	var mu sync.Mutex
	totalRounds := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			ms := s
			ms.Seed = s.Seed + int64(i)
			r := NewRunner(ms, opts...)
			if err := r.Load(groups); err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i, ms.Seed, err)
			}
			res, err := r.Run(ctx)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			sum.Runs++
			totalRounds += res.Rounds
			if res.Draw {
				sum.Draws++
			}
			if res.TimedOut {
				sum.TimedOut++
			}
			for name, v := range res.Scores {
				sum.Scores[name] += v
			}
			if res.Over && len(res.Scores) == 1 {
				for name := range res.Scores {
					sum.Wins[name]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	if sum.Runs > 0 {
		sum.AvgRounds = float64(totalRounds) / float64(sum.Runs)
	}
	return sum, nil
}
