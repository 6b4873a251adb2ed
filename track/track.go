package track

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Track-level errors. All of them are fatal to a batch: without a usable
// track there is nothing to match against.
var (
	ErrTrackFormat    = errors.New("track: malformed document")
	ErrTrackEmpty     = errors.New("track: no points")
	ErrTrackTimestamp = errors.New("track: no points with usable timestamps")

	// ErrNoTrackCoverage is returned by queries against an empty track.
	// The parser already rejects empty tracks, so hitting this means the
	// caller constructed a Track some other way.
	ErrNoTrackCoverage = errors.New("track: no coverage")
)

// Sample is a single timestamped position. Times are UTC.
type Sample struct {
	Time   time.Time
	Lat    float64
	Lon    float64
	Ele    float64
	HasEle bool
}

// Track is an ordered, non-decreasing-by-time sequence of samples.
type Track struct {
	samples []Sample
}

// NewTrack builds a track from samples, sorting them by time. The sort is
// stable so samples sharing a timestamp keep their input order, which makes
// tie-breaking deterministic downstream.
func NewTrack(samples []Sample) (*Track, error) {
	if len(samples) == 0 {
		return nil, ErrTrackEmpty
	}
	for _, s := range samples {
		if s.Time.IsZero() {
			return nil, fmt.Errorf("%w: sample at %.5f,%.5f has no timestamp", ErrTrackTimestamp, s.Lat, s.Lon)
		}
		if s.Lat < -90 || s.Lat > 90 || s.Lon < -180 || s.Lon > 180 {
			return nil, fmt.Errorf("%w: coordinate %.5f,%.5f out of range", ErrTrackFormat, s.Lat, s.Lon)
		}
	}
	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	for i := range sorted {
		sorted[i].Time = sorted[i].Time.UTC()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return &Track{samples: sorted}, nil
}

// Len returns the number of samples.
func (t *Track) Len() int { return len(t.samples) }

// Sample returns the i-th sample in time order.
func (t *Track) Sample(i int) Sample { return t.samples[i] }

// Samples returns a copy of the sample sequence.
func (t *Track) Samples() []Sample {
	out := make([]Sample, len(t.samples))
	copy(out, t.samples)
	return out
}

// Bounds returns the first and last sample times.
func (t *Track) Bounds() (start, end time.Time) {
	if len(t.samples) == 0 {
		return time.Time{}, time.Time{}
	}
	return t.samples[0].Time, t.samples[len(t.samples)-1].Time
}
