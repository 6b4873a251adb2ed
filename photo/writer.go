package photo

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// ErrMetadataWrite indicates the image container could not be parsed or
// rewritten. The caller keeps the original bytes.
var ErrMetadataWrite = errors.New("photo: metadata write failed")

// WriteOptions carries the optional parts of a metadata write.
type WriteOptions struct {
	// Ele is written as GPSAltitude when HasEle is set.
	Ele    float64
	HasEle bool
	// Timestamp, when non-zero, replaces the EXIF date/time fields
	// (DateTimeOriginal, DateTimeDigitized, DateTime).
	Timestamp time.Time
	// UTCOffset shifts the written timestamp into a local zone.
	UTCOffset time.Duration
}

// WriteGPS returns a copy of the JPEG with the GPS IFD set to the given
// coordinate. Existing geolocation tags are overwritten, never merged. Only
// the EXIF segment is rebuilt; every other segment, including scan data,
// is carried over unchanged.
func WriteGPS(data []byte, lat, lon float64, opts WriteOptions) ([]byte, error) {
	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse jpeg: %v", ErrMetadataWrite, err)
	}
	sl := intfc.(*jpegstructure.SegmentList)

	rootIb, err := rootIfdBuilder(sl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataWrite, err)
	}

	if err := setGPSTags(rootIb, lat, lon, opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataWrite, err)
	}
	if !opts.Timestamp.IsZero() {
		if err := setTimestampTags(rootIb, opts.Timestamp.Add(opts.UTCOffset)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMetadataWrite, err)
		}
	}

	if err := sl.SetExif(rootIb); err != nil {
		return nil, fmt.Errorf("%w: set exif: %v", ErrMetadataWrite, err)
	}

	buf := new(bytes.Buffer)
	if err := sl.Write(buf); err != nil {
		return nil, fmt.Errorf("%w: serialize: %v", ErrMetadataWrite, err)
	}
	return buf.Bytes(), nil
}

// rootIfdBuilder returns a builder over the photo's existing EXIF chain, or
// a fresh standard one when the photo carries no EXIF block.
func rootIfdBuilder(sl *jpegstructure.SegmentList) (*exif.IfdBuilder, error) {
	rootIb, err := sl.ConstructExifBuilder()
	if err == nil {
		return rootIb, nil
	}

	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("ifd mapping: %v", err)
	}
	ti := exif.NewTagIndex()
	if err := exif.LoadStandardTags(ti); err != nil {
		return nil, fmt.Errorf("load standard tags: %v", err)
	}
	return exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder), nil
}

func setGPSTags(rootIb *exif.IfdBuilder, lat, lon float64, opts WriteOptions) error {
	// Any existing GPS IFD is dropped wholesale before the new one is
	// built. Mutating it in place would leave tags from an earlier geotag
	// (altitude, GPS time) next to the new coordinate.
	if _, err := rootIb.DeleteAll(exifcommon.IfdGpsInfoStandardIfdIdentity.TagId()); err != nil {
		return fmt.Errorf("drop gps ifd: %v", err)
	}

	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/GPSInfo")
	if err != nil {
		return fmt.Errorf("gps ifd: %v", err)
	}

	if err := gpsIb.SetStandardWithName("GPSVersionID", []byte{2, 3, 0, 0}); err != nil {
		return fmt.Errorf("GPSVersionID: %v", err)
	}

	latRef := "N"
	if lat < 0 {
		latRef = "S"
	}
	lonRef := "E"
	if lon < 0 {
		lonRef = "W"
	}
	if err := gpsIb.SetStandardWithName("GPSLatitudeRef", latRef); err != nil {
		return fmt.Errorf("GPSLatitudeRef: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLatitude", dmsRationals(lat)); err != nil {
		return fmt.Errorf("GPSLatitude: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitudeRef", lonRef); err != nil {
		return fmt.Errorf("GPSLongitudeRef: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitude", dmsRationals(lon)); err != nil {
		return fmt.Errorf("GPSLongitude: %v", err)
	}

	if opts.HasEle {
		ref := []byte{0}
		if opts.Ele < 0 {
			ref = []byte{1}
		}
		alt := exifcommon.Rational{
			Numerator:   uint32(math.Round(math.Abs(opts.Ele) * 100)),
			Denominator: 100,
		}
		if err := gpsIb.SetStandardWithName("GPSAltitudeRef", ref); err != nil {
			return fmt.Errorf("GPSAltitudeRef: %v", err)
		}
		if err := gpsIb.SetStandardWithName("GPSAltitude", []exifcommon.Rational{alt}); err != nil {
			return fmt.Errorf("GPSAltitude: %v", err)
		}
	}
	return nil
}

func setTimestampTags(rootIb *exif.IfdBuilder, ts time.Time) error {
	phrase := exifcommon.ExifFullTimestampString(ts)

	rootIfd, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD0")
	if err != nil {
		return fmt.Errorf("root ifd: %v", err)
	}
	if err := rootIfd.SetStandardWithName("DateTime", phrase); err != nil {
		return fmt.Errorf("DateTime: %v", err)
	}

	exifIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/Exif")
	if err != nil {
		return fmt.Errorf("exif ifd: %v", err)
	}
	if err := exifIb.SetStandardWithName("DateTimeOriginal", phrase); err != nil {
		return fmt.Errorf("DateTimeOriginal: %v", err)
	}
	if err := exifIb.SetStandardWithName("DateTimeDigitized", phrase); err != nil {
		return fmt.Errorf("DateTimeDigitized: %v", err)
	}
	return nil
}

// dmsRationals encodes a decimal-degree value as degrees/minutes/seconds
// rationals, with seconds carried at 1/100 precision.
func dmsRationals(deg float64) []exifcommon.Rational {
	abs := math.Abs(deg)
	d := math.Floor(abs)
	m := math.Floor((abs - d) * 60)
	s := math.Round((abs - d - m/60) * 3600 * 100)
	return []exifcommon.Rational{
		{Numerator: uint32(d), Denominator: 1},
		{Numerator: uint32(m), Denominator: 1},
		{Numerator: uint32(s), Denominator: 100},
	}
}
