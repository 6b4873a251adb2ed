package track

import (
	"sort"
	"time"

	"github.com/teonghan/photo-gpx-geotagger/config"
)

// Match is the result of a temporal nearest-neighbor query.
type Match struct {
	// Sample is the matched position. When Interpolated is set the
	// coordinate is synthesized between two real samples and Sample.Time
	// equals the query time.
	Sample Sample
	// TimeGap is the absolute distance between the query and the nearest
	// real sample.
	TimeGap time.Duration
	// Interpolated reports whether the coordinate was interpolated rather
	// than taken from a recorded sample.
	Interpolated bool
	// LowConfidence marks matches whose TimeGap exceeds the configured
	// maximum. The match is still usable; the caller decides.
	LowConfidence bool
}

// Closest finds the best position estimate for the query time.
//
// The nearest sample by absolute time distance wins; exact ties prefer the
// earlier sample. Queries outside the track's time range clamp to the
// boundary sample and are never interpolated past it.
func (t *Track) Closest(query time.Time, cfg config.MatchConfig) (Match, error) {
	n := len(t.samples)
	if n == 0 {
		return Match{}, ErrNoTrackCoverage
	}
	query = query.UTC()

	// Insertion point: first sample not before the query.
	i := sort.Search(n, func(k int) bool {
		return !t.samples[k].Time.Before(query)
	})

	var best int
	switch {
	case i == 0:
		best = 0
	case i == n:
		best = n - 1
	default:
		prev := query.Sub(t.samples[i-1].Time)
		next := t.samples[i].Time.Sub(query)
		// Strict < keeps the earlier sample on an exact tie.
		if next < prev {
			best = i
		} else {
			best = i - 1
		}
	}

	m := Match{
		Sample:  t.samples[best],
		TimeGap: absDuration(query.Sub(t.samples[best].Time)),
	}

	// Exact hits return the recorded sample untouched.
	if cfg.Interpolate && m.TimeGap > 0 && i > 0 && i < n {
		m = t.interpolate(query, i, m, cfg)
	}

	if max := cfg.MaxTimeGap(); max > 0 && m.TimeGap > max {
		m.LowConfidence = true
	}
	return m, nil
}

// interpolate replaces the nearest-sample coordinate with a linear blend of
// the two neighbors when they are close enough together to trust, keeping
// the nearest-sample match otherwise. TimeGap stays the distance to the
// nearest real sample either way.
func (t *Track) interpolate(query time.Time, i int, m Match, cfg config.MatchConfig) Match {
	a, b := t.samples[i-1], t.samples[i]
	span := b.Time.Sub(a.Time)
	if span <= 0 {
		return m
	}
	if max := cfg.MaxInterpolationGap(); max > 0 && span > max {
		return m
	}
	frac := float64(query.Sub(a.Time)) / float64(span)
	s := Sample{
		Time: query,
		Lat:  a.Lat + (b.Lat-a.Lat)*frac,
		Lon:  a.Lon + (b.Lon-a.Lon)*frac,
	}
	if a.HasEle && b.HasEle {
		s.Ele = a.Ele + (b.Ele-a.Ele)*frac
		s.HasEle = true
	}
	m.Sample = s
	m.Interpolated = true
	return m
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
