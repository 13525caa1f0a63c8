package summoner

import (
	"context"
	"fmt"
	"time"

	"apisport/internal/summoner/acquire"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RunStats summarises one Summon call
type RunStats struct {
	Start   time.Time
	Elapsed time.Duration
	Skipped []string
	Counts  map[string]int // records per fetched sport
	Sports  []string       // fetched sports, registry order
}

// Total returns the number of records across all sports
func (s RunStats) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// Summon runs every registered client that has leagues configured, all
// sports at once. Sports without configuration are skipped. The result is
// ordered by registry order and then by league order; if any sport fails
// nothing is returned.
func Summon(ctx context.Context, reg *acquire.Registry, leagues map[string][]acquire.LeagueSeason) ([]acquire.Record, RunStats, error) {
	stats := RunStats{Start: time.Now(), Counts: make(map[string]int)}
	log.Info("Summoner start time: ", stats.Start.Format(time.RFC3339))

	sports := reg.Sports()
	slots := make([][]acquire.Record, len(sports))
	g, gctx := errgroup.WithContext(ctx)

	for i, sport := range sports {
		ls, ok := leagues[sport]
		if !ok {
			log.WithField("sport", sport).Info("no configuration available")
			stats.Skipped = append(stats.Skipped, sport)
			continue
		}
		client, err := reg.Client(sport)
		if err != nil {
			return nil, stats, err
		}

		i, sport := i, sport
		stats.Sports = append(stats.Sports, sport)
		g.Go(func() error {
			records, err := client.FetchBatch(gctx, ls)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", sport, err)
			}
			slots[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	for i, sport := range sports {
		if slots[i] != nil {
			stats.Counts[sport] = len(slots[i])
		}
	}
	records := acquire.Flatten(slots)

	stats.Elapsed = time.Since(stats.Start)
	log.WithField("records", len(records)).Infof("Summoner run time: %f minutes", stats.Elapsed.Minutes())
	return records, stats, nil
}
