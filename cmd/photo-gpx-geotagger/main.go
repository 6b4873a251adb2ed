package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/teonghan/photo-gpx-geotagger/config"
	"github.com/teonghan/photo-gpx-geotagger/formatter"
	"github.com/teonghan/photo-gpx-geotagger/geotag"
	"github.com/teonghan/photo-gpx-geotagger/internal"
	"github.com/teonghan/photo-gpx-geotagger/photo"
	"github.com/teonghan/photo-gpx-geotagger/track"
)

func main() {
	gpxPath := flag.String("gpx", "", "GPX track file (required)")
	photosDir := flag.String("photos", "", "directory of JPEG images (required)")
	outDir := flag.String("out", "geotagged", "directory for geotagged output images")
	configPath := flag.String("config", "", "config.yml path (optional)")
	offset := flag.Duration("offset", 0, "clock offset added to photo timestamps before matching (overrides config)")
	interpolate := flag.Bool("interpolate", false, "interpolate between track points (overrides config)")
	maxGap := flag.Duration("maxGap", 0, "max time gap before a match is low confidence (overrides config)")
	maxInterpGap := flag.Duration("maxInterpGap", 0, "max neighbor gap to interpolate across (overrides config)")
	workers := flag.Int("workers", 0, "concurrent photo workers (overrides config)")
	setTime := flag.Bool("setTime", false, "rewrite EXIF timestamps from the matched track point")
	outputOffset := flag.Duration("outputOffset", 0, "zone offset for rewritten EXIF timestamps, e.g. 8h")
	format := flag.String("format", "json", "report format: json|xml")
	reportPath := flag.String("report", "", "report output file (default stdout)")
	flag.Parse()

	internal.InitLogging()

	if *gpxPath == "" || *photosDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := loadConfig(*configPath)
	applyFlagOverrides(&cfg, *offset, *interpolate, *maxGap, *maxInterpGap, *workers, *setTime, *outputOffset)

	gpxData, err := os.ReadFile(*gpxPath)
	if err != nil {
		log.Fatalf("read gpx: %v", err)
	}
	trk, err := track.ParseTrack(gpxData)
	if err != nil {
		log.Fatalf("parse gpx: %v", err)
	}
	start, end := trk.Bounds()
	log.Printf("Track loaded: %d points (%s .. %s)", trk.Len(),
		start.Format(time.RFC3339), end.Format(time.RFC3339))

	photos, err := readPhotos(*photosDir)
	if err != nil {
		log.Fatalf("read photos: %v", err)
	}
	if len(photos) == 0 {
		log.Fatalf("no JPEG images found in %s", *photosDir)
	}
	log.Printf("Loaded %d photos from %s", len(photos), *photosDir)

	g := geotag.New(trk, cfg)
	outcomes := g.Run(photos)
	g.Warnings().LogAll()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	bar := progressbar.Default(int64(len(outcomes)), "writing")
	saved := 0
	for _, o := range outcomes {
		if o.OK {
			dest := filepath.Join(*outDir, o.Name)
			if err := os.WriteFile(dest, o.Data, 0o644); err != nil {
				log.Fatalf("write %s: %v", dest, err)
			}
			saved++
		}
		_ = bar.Add(1)
	}
	log.Printf("Saved %d geotagged images to %s", saved, *outDir)

	report := geotag.BuildReport(trk, outcomes)
	var out []byte
	if *format == "xml" {
		out = formatter.BuildXML(report)
	} else {
		out = formatter.BuildJSON(report)
	}
	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, out, 0o644); err != nil {
			log.Fatalf("write report: %v", err)
		}
	} else {
		fmt.Println(string(out))
	}
}

func loadConfig(path string) config.AppConfig {
	if path != "" {
		cfg, err := config.LoadAppConfig(path)
		if err != nil {
			panic(err)
		}
		return cfg
	}
	cfg, err := config.LoadAppConfig()
	if err != nil {
		// No config file is fine; flags and defaults cover everything.
		return config.Default()
	}
	return cfg
}

func applyFlagOverrides(cfg *config.AppConfig, offset time.Duration, interpolate bool,
	maxGap, maxInterpGap time.Duration, workers int, setTime bool, outputOffset time.Duration) {
	if offset != 0 {
		cfg.Match.ClockOffsetSeconds = int(offset / time.Second)
	}
	if interpolate {
		cfg.Match.Interpolate = true
	}
	if maxGap != 0 {
		cfg.Match.MaxTimeGapSeconds = int(maxGap / time.Second)
	}
	if maxInterpGap != 0 {
		cfg.Match.MaxInterpolationGapSeconds = int(maxInterpGap / time.Second)
	}
	if workers > 0 {
		cfg.Batch.Workers = workers
	}
	if setTime {
		cfg.Write.SetTimeFromTrack = true
	}
	if outputOffset != 0 {
		cfg.Write.OutputUTCOffsetHours = int(outputOffset / time.Hour)
	}
}

func readPhotos(dir string) ([]photo.Photo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".jpg" || ext == ".jpeg" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	photos := make([]photo.Photo, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo.ReadPhoto(name, data))
	}
	return photos, nil
}
