package selection

import (
	"context"
	"strconv"
	"strings"

	"github.com/articat/articat/pkg/catalog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for selection accumulation.
var (
	selectionPagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "selection_pages_fetched_total",
		Help: "Total catalog pages walked by the selection accumulator",
	})

	selectionRecordsCollectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "selection_records_collected_total",
		Help: "Total records collected by the selection accumulator",
	})

	selectionInvalidInputsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "selection_invalid_inputs_total",
		Help: "Total selection requests ignored due to invalid count input",
	})
)

// PageFetcher is the interface the accumulator needs for single-page
// fetching. *catalog.Client implements it.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageNumber int) (catalog.Page, error)
}

// Config holds accumulator configuration.
type Config struct {
	// MaxPages caps the number of pages walked per Accumulate call.
	// Without a bound the loop would run on the remote source's word
	// alone: a source that always returns at least one record would
	// hold it open for an unbounded number of round trips.
	MaxPages int
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		MaxPages: 50,
	}
}

// Accumulator walks consecutive catalog pages to satisfy a single
// user-specified selection count.
type Accumulator struct {
	fetcher PageFetcher
	config  Config
	logger  zerolog.Logger
}

// NewAccumulator creates a new accumulator.
func NewAccumulator(fetcher PageFetcher, config Config) *Accumulator {
	if config.MaxPages <= 0 {
		config.MaxPages = DefaultConfig().MaxPages
	}
	return &Accumulator{
		fetcher: fetcher,
		config:  config,
		logger:  log.With().Str("component", "accumulator").Logger(),
	}
}

// Accumulate collects up to rawCount records starting at startPage and
// merges them into existing, keyed by artwork ID. The input set is never
// mutated; the merged set is returned.
//
// rawCount is the free text the user typed. Non-numeric or non-positive
// input is a no-op: the existing selection is returned unchanged. The
// walk terminates when the count is satisfied, when a page comes back
// empty (catalog exhausted or fetch failure, indistinguishable by
// design), when MaxPages pages have been walked, or when ctx is done.
func (a *Accumulator) Accumulate(ctx context.Context, rawCount string, startPage int, existing *Set) *Set {
	requested, err := strconv.Atoi(strings.TrimSpace(rawCount))
	if err != nil || requested <= 0 {
		selectionInvalidInputsTotal.Inc()
		a.logger.Debug().
			Str("input", rawCount).
			Msg("Ignoring invalid selection count")
		return existing
	}

	if startPage < 1 {
		startPage = 1
	}
	if existing == nil {
		existing = NewSet()
	}

	result := existing.Clone()
	remaining := requested
	page := startPage
	collected := 0

	for walked := 0; remaining > 0; walked++ {
		if walked >= a.config.MaxPages {
			a.logger.Warn().
				Int("max_pages", a.config.MaxPages).
				Int("remaining", remaining).
				Msg("Page walk bound reached before count satisfied")
			break
		}

		select {
		case <-ctx.Done():
			a.logger.Warn().
				Int("page", page).
				Int("remaining", remaining).
				Msg("Accumulation cancelled")
			return result
		default:
		}

		p, err := a.fetcher.FetchPage(ctx, page)
		if err != nil {
			// Fetch failure and catalog exhaustion collapse into the
			// same signal: stop the walk with what we have.
			a.logger.Warn().
				Err(err).
				Int("page", page).
				Msg("Page fetch failed, ending accumulation")
			break
		}

		selectionPagesFetchedTotal.Inc()

		if p.IsEmpty() {
			a.logger.Debug().
				Int("page", page).
				Msg("Empty page, catalog exhausted")
			break
		}

		take := remaining
		if take > len(p.Records) {
			take = len(p.Records)
		}
		for _, rec := range p.Records[:take] {
			result.Add(rec)
		}

		collected += take
		remaining -= take
		page++
	}

	selectionRecordsCollectedTotal.Add(float64(collected))

	a.logger.Info().
		Int("requested", requested).
		Int("collected", collected).
		Int("start_page", startPage).
		Int("pages_walked", page-startPage).
		Int("selection_size", result.Len()).
		Msg("Selection accumulation complete")

	return result
}
