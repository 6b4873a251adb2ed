package geotag

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/teonghan/photo-gpx-geotagger/config"
	"github.com/teonghan/photo-gpx-geotagger/photo"
	"github.com/teonghan/photo-gpx-geotagger/track"
)

// testJPEG builds a minimal structurally valid JPEG without EXIF.
func testJPEG(t *testing.T) []byte {
	t.Helper()
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})
	app0 := []byte("JFIF\x00\x01\x02\x00\x00\x01\x00\x01\x00\x00")
	b.Write([]byte{0xFF, 0xE0, byte((len(app0) + 2) >> 8), byte(len(app0) + 2)})
	b.Write(app0)
	sosHdr := []byte{0x01, 0x01, 0x00, 0x00, 0x3F, 0x00}
	b.Write([]byte{0xFF, 0xDA, 0x00, byte(len(sosHdr) + 2)})
	b.Write(sosHdr)
	b.Write([]byte{0x12, 0x34, 0x56, 0x78})
	b.Write([]byte{0xFF, 0xD9})
	return b.Bytes()
}

func testTrack(t *testing.T) *track.Track {
	t.Helper()
	trk, err := track.NewTrack([]track.Sample{
		{Time: at(10, 0, 0), Lat: 40.0, Lon: -70.0},
		{Time: at(10, 5, 0), Lat: 40.1, Lon: -70.1},
		{Time: at(10, 10, 0), Lat: 40.2, Lon: -70.2},
	})
	if err != nil {
		t.Fatalf("NewTrack failed: %v", err)
	}
	return trk
}

func at(hh, mm, ss int) time.Time {
	return time.Date(2023, 6, 10, hh, mm, ss, 0, time.UTC)
}

func testConfig() config.AppConfig {
	cfg := config.Default()
	return cfg
}

func TestRunMixedBatch(t *testing.T) {
	jpeg := testJPEG(t)
	photos := []photo.Photo{
		{Name: "a.jpg", Data: jpeg, CaptureTime: at(10, 0, 0)},
		{Name: "b.jpg", Data: jpeg}, // no capture timestamp
		{Name: "c.jpg", Data: []byte("corrupt"), CaptureTime: at(10, 5, 0)},
		{Name: "d.jpg", Data: jpeg, CaptureTime: at(10, 10, 0)},
	}

	g := New(testTrack(t), testConfig())
	outcomes := g.Run(photos)

	if len(outcomes) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(outcomes))
	}
	for i, want := range []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"} {
		if outcomes[i].Name != want {
			t.Errorf("outcome %d: expected %s, got %s", i, want, outcomes[i].Name)
		}
	}

	if !outcomes[0].OK || outcomes[0].Lat != 40.0 {
		t.Errorf("a.jpg should match first sample, got %+v", outcomes[0])
	}
	if outcomes[0].TimeGap != 0 {
		t.Errorf("a.jpg exact hit should have zero gap, got %v", outcomes[0].TimeGap)
	}

	if outcomes[1].OK || !errors.Is(outcomes[1].Err, ErrNoTimestamp) {
		t.Errorf("b.jpg should fail with ErrNoTimestamp, got %+v", outcomes[1])
	}
	if !bytes.Equal(outcomes[1].Data, jpeg) {
		t.Error("b.jpg bytes must be returned unchanged")
	}

	if outcomes[2].OK || !errors.Is(outcomes[2].Err, photo.ErrMetadataWrite) {
		t.Errorf("c.jpg should fail with ErrMetadataWrite, got %+v", outcomes[2])
	}
	if !bytes.Equal(outcomes[2].Data, []byte("corrupt")) {
		t.Error("c.jpg bytes must be returned unchanged")
	}

	if !outcomes[3].OK || outcomes[3].Lat != 40.2 {
		t.Errorf("d.jpg should match last sample, got %+v", outcomes[3])
	}
}

func TestRunAppliesClockOffset(t *testing.T) {
	// Camera wallclock two hours ahead of track time.
	cfg := testConfig()
	cfg.Match.ClockOffsetSeconds = -7200

	photos := []photo.Photo{
		{Name: "a.jpg", Data: testJPEG(t), CaptureTime: at(12, 5, 0)},
	}
	outcomes := New(testTrack(t), cfg).Run(photos)

	if !outcomes[0].OK {
		t.Fatalf("expected success, got %+v", outcomes[0])
	}
	if outcomes[0].TimeGap != 0 {
		t.Errorf("offset-corrected time should hit 10:05 exactly, gap %v", outcomes[0].TimeGap)
	}
	if outcomes[0].Lat != 40.1 {
		t.Errorf("expected 10:05 sample, got lat %v", outcomes[0].Lat)
	}
}

func TestRunLowConfidence(t *testing.T) {
	cfg := testConfig()
	cfg.Match.MaxTimeGapSeconds = 60

	photos := []photo.Photo{
		{Name: "far.jpg", Data: testJPEG(t), CaptureTime: at(14, 0, 0)},
	}
	outcomes := New(testTrack(t), cfg).Run(photos)

	if !outcomes[0].OK {
		t.Fatalf("low confidence is not a failure, got %+v", outcomes[0])
	}
	if !outcomes[0].LowConfidence {
		t.Error("expected low-confidence flag")
	}
	if outcomes[0].Lat != 40.2 {
		t.Errorf("expected boundary sample, got lat %v", outcomes[0].Lat)
	}
}

func TestRunWorkersPreserveOrder(t *testing.T) {
	jpeg := testJPEG(t)
	var photos []photo.Photo
	times := []time.Time{at(10, 0, 0), {}, at(10, 5, 0), at(10, 10, 0), at(10, 2, 0), {}, at(10, 7, 0), at(10, 1, 0)}
	names := []string{"p0.jpg", "p1.jpg", "p2.jpg", "p3.jpg", "p4.jpg", "p5.jpg", "p6.jpg", "p7.jpg"}
	for i := range names {
		photos = append(photos, photo.Photo{Name: names[i], Data: jpeg, CaptureTime: times[i]})
	}

	seqCfg := testConfig()
	sequential := New(testTrack(t), seqCfg).Run(photos)

	parCfg := testConfig()
	parCfg.Batch.Workers = 4
	parallel := New(testTrack(t), parCfg).Run(photos)

	if len(parallel) != len(sequential) {
		t.Fatalf("outcome count mismatch: %d vs %d", len(parallel), len(sequential))
	}
	for i := range sequential {
		if parallel[i].Name != names[i] {
			t.Errorf("index %d: expected %s, got %s", i, names[i], parallel[i].Name)
		}
		if parallel[i].OK != sequential[i].OK ||
			parallel[i].Lat != sequential[i].Lat ||
			parallel[i].Lon != sequential[i].Lon {
			t.Errorf("index %d: parallel outcome diverges from sequential", i)
		}
	}
}

func TestRunSetTimeFromTrack(t *testing.T) {
	cfg := testConfig()
	cfg.Write.SetTimeFromTrack = true

	photos := []photo.Photo{
		{Name: "a.jpg", Data: testJPEG(t), CaptureTime: at(10, 4, 0)},
	}
	outcomes := New(testTrack(t), cfg).Run(photos)
	if !outcomes[0].OK {
		t.Fatalf("expected success, got %+v", outcomes[0])
	}

	// The written photo must now carry the matched track time.
	p := photo.ReadPhoto("a.jpg", outcomes[0].Data)
	if !p.CaptureTime.Equal(at(10, 5, 0)) {
		t.Errorf("expected rewritten timestamp 10:05, got %v", p.CaptureTime)
	}
}

func TestRunReportsPreviousGPS(t *testing.T) {
	tagged, err := photo.WriteGPS(testJPEG(t), 1.0, 2.0, photo.WriteOptions{})
	if err != nil {
		t.Fatalf("fixture write failed: %v", err)
	}
	p := photo.ReadPhoto("old.jpg", tagged)
	p.CaptureTime = at(10, 0, 0)

	outcomes := New(testTrack(t), testConfig()).Run([]photo.Photo{p})
	if !outcomes[0].OK {
		t.Fatalf("expected success, got %+v", outcomes[0])
	}
	if outcomes[0].PreviousGPS == nil {
		t.Fatal("expected previous GPS tags to be surfaced")
	}

	// New coordinates overwrite, never merge.
	rp := photo.ReadPhoto("new.jpg", outcomes[0].Data)
	if rp.GPS == nil || rp.GPS.Lat < 39 {
		t.Errorf("expected overwritten GPS near 40.0, got %v", rp.GPS)
	}
}
