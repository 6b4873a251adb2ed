package photo

import (
	"bytes"
	"testing"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// minimalJPEG builds a tiny but structurally valid JPEG byte stream with no
// EXIF block: SOI, APP0/JFIF, a minimal scan, EOI.
func minimalJPEG(t *testing.T) []byte {
	t.Helper()

	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8}) // SOI

	app0 := []byte("JFIF\x00\x01\x02\x00\x00\x01\x00\x01\x00\x00")
	b.Write([]byte{0xFF, 0xE0, byte((len(app0) + 2) >> 8), byte(len(app0) + 2)})
	b.Write(app0)

	sosHdr := []byte{0x01, 0x01, 0x00, 0x00, 0x3F, 0x00}
	b.Write([]byte{0xFF, 0xDA, 0x00, byte(len(sosHdr) + 2)})
	b.Write(sosHdr)
	b.Write([]byte{0x12, 0x34, 0x56, 0x78}) // scan data

	b.Write([]byte{0xFF, 0xD9}) // EOI
	return b.Bytes()
}

// jpegWithIFD0DateTime returns a JPEG whose EXIF block carries only the
// IFD0 DateTime field, for exercising the reader's field fallback order.
func jpegWithIFD0DateTime(t *testing.T, value string) []byte {
	t.Helper()

	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseBytes(minimalJPEG(t))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	sl := intfc.(*jpegstructure.SegmentList)

	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		t.Fatalf("ifd mapping: %v", err)
	}
	ti := exif.NewTagIndex()
	if err := exif.LoadStandardTags(ti); err != nil {
		t.Fatalf("load tags: %v", err)
	}
	rootIb := exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
	if err := rootIb.SetStandardWithName("DateTime", value); err != nil {
		t.Fatalf("set DateTime: %v", err)
	}
	if err := sl.SetExif(rootIb); err != nil {
		t.Fatalf("set exif: %v", err)
	}

	buf := new(bytes.Buffer)
	if err := sl.Write(buf); err != nil {
		t.Fatalf("serialize fixture: %v", err)
	}
	return buf.Bytes()
}
