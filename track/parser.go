package track

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"
)

// ParseTrack parses GPX document bytes into a Track.
//
// All track segments are flattened into one sample sequence. Points whose
// <time> element is missing or unparseable cannot participate in temporal
// matching and are dropped; if that leaves nothing, the parse fails with
// ErrTrackTimestamp. A point time without a zone designator names no single
// instant and fails the parse outright rather than being assumed UTC.
// Out-of-order points are sorted, not rejected, and duplicate timestamps are
// retained. The GPX schema defines point times as absolute (xsd:dateTime);
// they are normalized to UTC here.
func ParseTrack(data []byte) (*Track, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTrackFormat, err)
	}

	for _, raw := range trackpointTimes(data) {
		if zoneless(raw) {
			return nil, fmt.Errorf("%w: point time %q has no zone designator",
				ErrTrackTimestamp, strings.TrimSpace(raw))
		}
	}

	var samples []Sample
	total := 0
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				total++
				if p.Timestamp.IsZero() {
					continue
				}
				s := Sample{
					Time: p.Timestamp.UTC(),
					Lat:  p.Latitude,
					Lon:  p.Longitude,
				}
				if p.Elevation.NotNull() {
					s.Ele = p.Elevation.Value()
					s.HasEle = true
				}
				samples = append(samples, s)
			}
		}
	}

	if total == 0 {
		return nil, ErrTrackEmpty
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %d points, none timestamped", ErrTrackTimestamp, total)
	}
	return NewTrack(samples)
}

// trackpointTimes extracts the raw <time> text of every track point, in
// document order. The GPX parser resolves values to time.Time before the
// zone designator can be inspected, so the raw strings are scanned here.
func trackpointTimes(data []byte) []string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		times   []string
		stack   []string
		capture bool
		val     strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "time" && len(stack) > 0 && stack[len(stack)-1] == "trkpt" {
				capture = true
				val.Reset()
			}
			stack = append(stack, el.Name.Local)
		case xml.EndElement:
			if capture && el.Name.Local == "time" {
				capture = false
				times = append(times, val.String())
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if capture {
				val.Write(el)
			}
		}
	}
	return times
}

// zoneless reports whether a point time value has date-time shape but no
// zone designator. xsd:dateTime makes the zone optional; such a value would
// otherwise parse to an instant silently assumed UTC.
func zoneless(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasSuffix(raw, "Z") {
		return false
	}
	sep := strings.IndexAny(raw, "T ")
	if sep < 0 {
		return false
	}
	return !strings.ContainsAny(raw[sep+1:], "+-")
}
