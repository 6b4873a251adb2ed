package geotag

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/teonghan/photo-gpx-geotagger/track"
)

// ReportEntry is the per-photo record handed to presentation collaborators
// (thumbnails, map markers, packaging decisions).
type ReportEntry struct {
	Name           string  `json:"name"`
	OK             bool    `json:"ok"`
	Reason         string  `json:"reason,omitempty"`
	Lat            float64 `json:"lat,omitempty"`
	Lon            float64 `json:"lon,omitempty"`
	Ele            float64 `json:"ele,omitempty"`
	MatchedTime    string  `json:"matchedTime,omitempty"`
	TimeGapSeconds float64 `json:"timeGapSeconds"`
	Interpolated   bool    `json:"interpolated,omitempty"`
	LowConfidence  bool    `json:"lowConfidence,omitempty"`
}

// Report summarizes one batch run.
type Report struct {
	RunID       string        `json:"runId"`
	GeneratedAt string        `json:"generatedAt"`
	TrackStart  string        `json:"trackStart"`
	TrackEnd    string        `json:"trackEnd"`
	TrackPoints int           `json:"trackPoints"`
	Photos      int           `json:"photos"`
	Geotagged   int           `json:"geotagged"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	Entries     []ReportEntry `json:"entries"`
}

// BuildReport assembles the presentation-facing summary of a batch run.
// Entry order preserves outcome (and therefore input) order.
func BuildReport(trk *track.Track, outcomes []Outcome) Report {
	start, end := trk.Bounds()
	r := Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		TrackStart:  start.Format(time.RFC3339),
		TrackEnd:    end.Format(time.RFC3339),
		TrackPoints: trk.Len(),
		Photos:      len(outcomes),
		Entries:     make([]ReportEntry, 0, len(outcomes)),
	}

	for _, o := range outcomes {
		e := ReportEntry{
			Name:           o.Name,
			OK:             o.OK,
			Reason:         o.Reason,
			TimeGapSeconds: o.TimeGap.Seconds(),
			Interpolated:   o.Interpolated,
			LowConfidence:  o.LowConfidence,
		}
		if o.OK {
			r.Geotagged++
			e.Lat = o.Lat
			e.Lon = o.Lon
			if o.HasEle {
				e.Ele = o.Ele
			}
			e.MatchedTime = o.MatchedTime.UTC().Format(time.RFC3339)
		} else if errors.Is(o.Err, ErrNoTimestamp) {
			r.Skipped++
		} else {
			r.Failed++
		}
		r.Entries = append(r.Entries, e)
	}
	return r
}
