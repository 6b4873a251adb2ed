package formatter

import (
	"encoding/json"

	"github.com/teonghan/photo-gpx-geotagger/geotag"
)

// BuildJSON serializes a batch report to JSON
func BuildJSON(r geotag.Report) []byte {
	b, _ := json.MarshalIndent(r, "", "  ")
	return b
}
