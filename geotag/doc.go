// Package geotag is the main entry point for correlating photo capture
// times with a GPS track and writing the resulting coordinates back into
// the photos.
//
// The package coordinates three components:
//   - a parsed, immutable track (track.Track)
//   - per-photo capture metadata (photo.ReadPhoto)
//   - the EXIF writer (photo.WriteGPS)
//
// Basic usage:
//
//	trk, err := track.ParseTrack(gpxBytes)
//	if err != nil {
//	    // track errors are fatal to the whole batch
//	}
//	g := geotag.New(trk, cfg)
//	outcomes := g.Run(photos)
//	report := geotag.BuildReport(trk, outcomes)
//
// Each photo is processed independently: a photo without a usable capture
// timestamp or with an unwritable container is reported as an individual
// failed outcome and never aborts the batch. Outcome order always matches
// input order, including when the batch runs on multiple workers.
package geotag
