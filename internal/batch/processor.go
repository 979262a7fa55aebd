// Package batch drives the sequential scan over a candidate URL list.
package batch

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/prospect-cli/internal/detect"
	"github.com/sells-group/prospect-cli/internal/extract"
	"github.com/sells-group/prospect-cli/internal/fetch"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/page"
)

// Options configures batch pacing.
type Options struct {
	PaceEvery int           // pause after this many sites (default 5)
	PaceDelay time.Duration // pacer refill interval (default 1s)
}

// Summary reports the outcome of a scan.
type Summary struct {
	Processed int `json:"processed"`
	Matched   int `json:"matched"`
	Failed    int `json:"failed"`
}

// Processor walks candidate URLs strictly one at a time: fetch, match,
// extract, append. Results preserve input order. Per-site failures are
// logged and contained; nothing a single site does can abort the batch.
type Processor struct {
	fetcher fetch.Fetcher
	set     detect.CompetitorSet
	pacer   *rate.Limiter
	every   int
}

// New creates a Processor. The pacer is a token limiter rather than a raw
// sleep so pacing stays decoupled from the scan loop.
func New(fetcher fetch.Fetcher, set detect.CompetitorSet, opts Options) *Processor {
	every := opts.PaceEvery
	if every <= 0 {
		every = 5
	}
	delay := opts.PaceDelay
	if delay <= 0 {
		delay = time.Second
	}
	pacer := rate.NewLimiter(rate.Every(delay), 1)
	// The limiter starts with a full bucket; drain it so the first pacing
	// window waits like every later one.
	pacer.Allow()

	return &Processor{
		fetcher: fetcher,
		set:     set,
		pacer:   pacer,
		every:   every,
	}
}

// Process scans urls in input order and returns one record per site where a
// competitor signature was found. The returned error is non-nil only on
// cancellation; individual site failures are absorbed into the summary.
func (p *Processor) Process(ctx context.Context, urls []string) ([]model.ClinicRecord, Summary, error) {
	var (
		records []model.ClinicRecord
		sum     Summary
	)

	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			return records, sum, eris.Wrap(err, "batch: cancelled")
		}

		zap.L().Info("batch: processing site",
			zap.Int("index", i+1),
			zap.Int("total", len(urls)),
			zap.String("url", u),
		)

		rec, matched, err := p.processOne(ctx, u)
		sum.Processed++
		switch {
		case err != nil:
			sum.Failed++
			zap.L().Warn("batch: site failed", zap.String("url", u), zap.Error(err))
		case matched:
			sum.Matched++
			records = append(records, rec)
			zap.L().Info("batch: competitor found",
				zap.String("url", u),
				zap.String("vendor", rec.WebsiteProvider),
			)
		default:
			zap.L().Info("batch: no competitor found", zap.String("url", u))
		}

		if (i+1)%p.every == 0 {
			if err := p.pacer.Wait(ctx); err != nil {
				return records, sum, eris.Wrap(err, "batch: pacer wait")
			}
		}
	}

	zap.L().Info("batch: scan complete",
		zap.Int("processed", sum.Processed),
		zap.Int("matched", sum.Matched),
		zap.Int("failed", sum.Failed),
	)
	return records, sum, nil
}

func (p *Processor) processOne(ctx context.Context, siteURL string) (model.ClinicRecord, bool, error) {
	html, err := p.fetcher.Fetch(ctx, siteURL)
	if err != nil {
		return model.ClinicRecord{}, false, eris.Wrap(err, "batch: fetch")
	}

	doc, err := page.Parse(siteURL, html)
	if err != nil {
		return model.ClinicRecord{}, false, eris.Wrap(err, "batch: parse")
	}

	match := detect.Match(doc, p.set)
	if !match.Found {
		return model.ClinicRecord{}, false, nil
	}

	return extract.Assemble(doc, siteURL, match, p.set), true, nil
}
