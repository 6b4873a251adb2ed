package photo

import (
	"bytes"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

// exifTimeLayout is the EXIF date/time string layout (no zone information;
// cameras record wall-clock time).
const exifTimeLayout = "2006:01:02 15:04:05"

func init() {
	exif.RegisterParsers(mknote.All...)
}

// LatLon is a WGS84 decimal-degree coordinate.
type LatLon struct {
	Lat float64
	Lon float64
}

// Photo is one image of a batch together with the metadata the engine needs.
type Photo struct {
	Name string
	Data []byte
	// CaptureTime is the EXIF capture timestamp, zero when absent. The
	// value is wall-clock time; clock-offset reconciliation happens at
	// match time.
	CaptureTime time.Time
	// GPS holds pre-existing geolocation tags, nil when absent. Read for
	// display only; writes always overwrite.
	GPS *LatLon
}

// timestampFields lists the EXIF fields tried in order when extracting the
// capture time.
var timestampFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// ReadPhoto extracts capture time and existing GPS tags from JPEG bytes.
// Metadata problems are never fatal here; the returned Photo simply lacks
// the fields that could not be read.
func ReadPhoto(name string, data []byte) Photo {
	p := Photo{Name: name, Data: data}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return p
	}

	p.CaptureTime = extractCaptureTime(x)

	if lat, lon, err := x.LatLong(); err == nil {
		p.GPS = &LatLon{Lat: lat, Lon: lon}
	}
	return p
}

// extractCaptureTime tries each timestamp field in priority order and
// returns the first value that parses.
func extractCaptureTime(x *exif.Exif) time.Time {
	for _, field := range timestampFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		t, err := time.Parse(exifTimeLayout, strings.TrimRight(strings.TrimSpace(raw), "\x00"))
		if err != nil {
			continue
		}
		return t
	}
	return time.Time{}
}
