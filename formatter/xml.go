package formatter

import (
	"strconv"
	"strings"

	"github.com/teonghan/photo-gpx-geotagger/geotag"
)

// BuildXML serializes a batch report to XML.
func BuildXML(r geotag.Report) []byte {
	var b strings.Builder
	b.WriteString("<GeotagReport>")
	writeElem(&b, "RunID", r.RunID)
	writeElem(&b, "GeneratedAt", r.GeneratedAt)
	b.WriteString("<Track>")
	writeElem(&b, "Start", r.TrackStart)
	writeElem(&b, "End", r.TrackEnd)
	writeElem(&b, "Points", strconv.Itoa(r.TrackPoints))
	b.WriteString("</Track>")
	b.WriteString("<Summary>")
	writeElem(&b, "Photos", strconv.Itoa(r.Photos))
	writeElem(&b, "Geotagged", strconv.Itoa(r.Geotagged))
	writeElem(&b, "Skipped", strconv.Itoa(r.Skipped))
	writeElem(&b, "Failed", strconv.Itoa(r.Failed))
	b.WriteString("</Summary>")
	for _, e := range r.Entries {
		writePhotoXML(&b, e)
	}
	b.WriteString("</GeotagReport>")
	return []byte(b.String())
}

func writePhotoXML(b *strings.Builder, e geotag.ReportEntry) {
	b.WriteString("<Photo>")
	writeElem(b, "Name", e.Name)
	writeElem(b, "OK", strconv.FormatBool(e.OK))
	if e.Reason != "" {
		writeElem(b, "Reason", e.Reason)
	}
	if e.OK {
		writeElem(b, "Latitude", formatFloat(e.Lat))
		writeElem(b, "Longitude", formatFloat(e.Lon))
		if e.Ele != 0 {
			writeElem(b, "Elevation", formatFloat(e.Ele))
		}
		writeElem(b, "MatchedTime", e.MatchedTime)
	}
	writeElem(b, "TimeGapSeconds", formatFloat(e.TimeGapSeconds))
	if e.Interpolated {
		writeElem(b, "Interpolated", "true")
	}
	if e.LowConfidence {
		writeElem(b, "LowConfidence", "true")
	}
	b.WriteString("</Photo>")
}

func writeElem(b *strings.Builder, name, value string) {
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
