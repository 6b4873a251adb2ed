package geotag

import (
	"errors"
	"time"

	"github.com/teonghan/photo-gpx-geotagger/photo"
)

// ErrNoTimestamp marks a photo skipped because no capture timestamp could
// be extracted from its metadata.
var ErrNoTimestamp = errors.New("geotag: no capture timestamp")

// Outcome is the terminal per-photo record of a batch run.
type Outcome struct {
	Name string
	OK   bool

	// Err classifies the failure when OK is false; test with errors.Is
	// against ErrNoTimestamp, photo.ErrMetadataWrite or
	// track.ErrNoTrackCoverage.
	Err error
	// Reason is a human-readable failure description for reports.
	Reason string

	// Coordinate written on success.
	Lat    float64
	Lon    float64
	Ele    float64
	HasEle bool

	// MatchedTime is the track time the photo was matched to.
	MatchedTime time.Time
	// TimeGap is the absolute distance between the (offset-corrected)
	// capture time and the nearest track sample.
	TimeGap       time.Duration
	Interpolated  bool
	LowConfidence bool

	// PreviousGPS holds the photo's pre-existing geolocation tags, if any.
	PreviousGPS *photo.LatLon

	// Data is the geotagged image on success and the untouched original
	// bytes on failure. Never partially rewritten.
	Data []byte
}

func failedOutcome(p photo.Photo, err error, reason string) Outcome {
	return Outcome{
		Name:        p.Name,
		Err:         err,
		Reason:      reason,
		PreviousGPS: p.GPS,
		Data:        p.Data,
	}
}
