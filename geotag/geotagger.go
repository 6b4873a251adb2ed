package geotag

import (
	"fmt"
	"sync"

	"github.com/teonghan/photo-gpx-geotagger/config"
	"github.com/teonghan/photo-gpx-geotagger/photo"
	"github.com/teonghan/photo-gpx-geotagger/track"
)

// Geotagger runs one batch of photos against one track.
type Geotagger struct {
	track    *track.Track
	cfg      config.AppConfig
	warnings *WarningAggregator
}

// New creates a geotagger over an already-parsed track. The track is only
// ever read, so one Geotagger may fan work out across workers.
func New(trk *track.Track, cfg config.AppConfig) *Geotagger {
	return &Geotagger{
		track:    trk,
		cfg:      cfg,
		warnings: NewWarningAggregator(),
	}
}

// Warnings returns the aggregator collecting per-photo degradations.
func (g *Geotagger) Warnings() *WarningAggregator { return g.warnings }

// Run processes every photo independently and returns one outcome per
// photo, in input order. Per-photo failures are isolated; only the absence
// of a track would have failed earlier, at parse time.
func (g *Geotagger) Run(photos []photo.Photo) []Outcome {
	outcomes := make([]Outcome, len(photos))

	workers := g.cfg.Batch.Workers
	if workers <= 1 || len(photos) < 2 {
		for i, p := range photos {
			outcomes[i] = g.processPhoto(p)
		}
		return outcomes
	}

	if workers > len(photos) {
		workers = len(photos)
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Index-addressed writes keep output order equal
				// to input order without a collector goroutine.
				outcomes[i] = g.processPhoto(photos[i])
			}
		}()
	}
	for i := range photos {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return outcomes
}

// processPhoto takes one photo through match and write.
func (g *Geotagger) processPhoto(p photo.Photo) Outcome {
	if p.CaptureTime.IsZero() {
		g.warnings.Add(WarningNoTimestamp, p.Name)
		return failedOutcome(p, ErrNoTimestamp, "no capture timestamp in metadata")
	}

	query := p.CaptureTime.Add(g.cfg.Match.ClockOffset())
	m, err := g.track.Closest(query, g.cfg.Match)
	if err != nil {
		return failedOutcome(p, err, "track has no coverage")
	}
	if m.LowConfidence {
		g.warnings.Add(WarningLowConfidence, p.Name)
	}
	if p.GPS != nil {
		g.warnings.Add(WarningGPSOverwritten, p.Name)
	}

	opts := photo.WriteOptions{
		Ele:    m.Sample.Ele,
		HasEle: m.Sample.HasEle,
	}
	if g.cfg.Write.SetTimeFromTrack {
		opts.Timestamp = m.Sample.Time
		opts.UTCOffset = g.cfg.Write.OutputUTCOffset()
	}

	data, err := photo.WriteGPS(p.Data, m.Sample.Lat, m.Sample.Lon, opts)
	if err != nil {
		g.warnings.Add(WarningWriteFailed, p.Name)
		return failedOutcome(p, err, fmt.Sprintf("metadata write failed: %v", err))
	}

	return Outcome{
		Name:          p.Name,
		OK:            true,
		Lat:           m.Sample.Lat,
		Lon:           m.Sample.Lon,
		Ele:           m.Sample.Ele,
		HasEle:        m.Sample.HasEle,
		MatchedTime:   m.Sample.Time,
		TimeGap:       m.TimeGap,
		Interpolated:  m.Interpolated,
		LowConfidence: m.LowConfidence,
		PreviousGPS:   p.GPS,
		Data:          data,
	}
}
