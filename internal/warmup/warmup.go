// Package warmup pre-fetches the first pages of every category so the
// response cache is hot before users ask for them.
package warmup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/marco/movieDeck/internal/catalog"
)

// Job is one listing to fetch. An empty Category means the trending list.
type Job struct {
	Kind     catalog.Kind
	Category string
	Page     int
}

func (j Job) String() string {
	if j.Category == "" {
		return fmt.Sprintf("trending/%s", j.Kind)
	}
	return fmt.Sprintf("%s/%s?page=%d", j.Kind, j.Category, j.Page)
}

// Fetcher is the part of *catalog.Client the warmer calls.
type Fetcher interface {
	Collection(ctx context.Context, kind catalog.Kind, category string, page int) (*catalog.Page, error)
	Trending(ctx context.Context, kind catalog.Kind, window string) (*catalog.Page, error)
}

// Plan lists the trending lists plus pages 1..pages of every category.
func Plan(pages int) []Job {
	if pages < 1 {
		pages = 1
	}
	var jobs []Job
	for _, kind := range []catalog.Kind{catalog.KindMovie, catalog.KindTV} {
		jobs = append(jobs, Job{Kind: kind})
		for _, cat := range catalog.Categories(kind) {
			for p := 1; p <= pages; p++ {
				jobs = append(jobs, Job{Kind: kind, Category: cat.Slug, Page: p})
			}
		}
	}
	return jobs
}

// Summary describes one warm-up run.
type Summary struct {
	Jobs     int
	Failed   int
	Items    int
	Duration time.Duration
}

// Warmer runs warm-up passes against a Fetcher.
type Warmer struct {
	fetcher Fetcher
	pages   int
	workers int
	logger  *slog.Logger
}

// NewWarmer creates a warmer for pages pages per category using workers goroutines.
func NewWarmer(f Fetcher, pages, workers int, logger *slog.Logger) *Warmer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Warmer{fetcher: f, pages: pages, workers: workers, logger: logger}
}

// Warm fetches every planned listing once. Individual failures are logged
// and counted; Warm itself only fails when ctx is cancelled.
func (w *Warmer) Warm(ctx context.Context) (Summary, error) {
	start := time.Now()
	jobs := Plan(w.pages)

	var done int64
	results := RunConcurrently(ctx, jobs, w.fetch, w.workers, &done)

	sum := Summary{Jobs: len(jobs), Duration: time.Since(start)}
	for _, r := range results {
		if r.Err != nil {
			sum.Failed++
			w.logger.Warn("warm-up fetch failed", "job", r.Job.String(), "error", r.Err)
			continue
		}
		sum.Items += r.Items
	}

	w.logger.Info("warm-up complete",
		"jobs", sum.Jobs,
		"failed", sum.Failed,
		"items", humanize.Comma(int64(sum.Items)),
		"duration", sum.Duration.Round(time.Millisecond).String(),
	)
	if err := ctx.Err(); err != nil {
		return sum, fmt.Errorf("warm-up interrupted: %w", err)
	}
	return sum, nil
}

func (w *Warmer) fetch(ctx context.Context, job Job) (int, error) {
	var (
		page *catalog.Page
		err  error
	)
	if job.Category == "" {
		page, err = w.fetcher.Trending(ctx, job.Kind, "day")
	} else {
		page, err = w.fetcher.Collection(ctx, job.Kind, job.Category, job.Page)
	}
	if err != nil {
		return 0, err
	}
	return len(page.Results), nil
}
