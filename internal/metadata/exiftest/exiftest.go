// Package exiftest builds minimal EXIF-tagged images for tests.
package exiftest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
)

// Fields selects the tags written into the EXIF block. Zero values are omitted.
type Fields struct {
	Orientation      uint16
	Description      string
	DateTimeOriginal string
}

type entry struct {
	tag   uint16
	typ   uint16
	count uint32
	raw   []byte
}

const (
	typeASCII = 2
	typeShort = 3
	typeLong  = 4

	tagImageDescription = 0x010E
	tagOrientation      = 0x0112
	tagExifPointer      = 0x8769
	tagDateTimeOriginal = 0x9003
)

var le = binary.LittleEndian

// TIFF returns a little-endian TIFF structure holding the requested tags
func TIFF(f Fields) []byte {
	var ifd0, sub []entry

	if f.Description != "" {
		ifd0 = append(ifd0, ascii(tagImageDescription, f.Description))
	}
	if f.Orientation != 0 {
		raw := make([]byte, 2)
		le.PutUint16(raw, f.Orientation)
		ifd0 = append(ifd0, entry{tag: tagOrientation, typ: typeShort, count: 1, raw: raw})
	}
	if f.DateTimeOriginal != "" {
		sub = append(sub, ascii(tagDateTimeOriginal, f.DateTimeOriginal))
	}

	ifd0Size := 2 + 12*(len(ifd0)+boolInt(len(sub) > 0)) + 4
	subOff := 8 + ifd0Size
	subSize := 0
	if len(sub) > 0 {
		subSize = 2 + 12*len(sub) + 4
		raw := make([]byte, 4)
		le.PutUint32(raw, uint32(subOff))
		ifd0 = append(ifd0, entry{tag: tagExifPointer, typ: typeLong, count: 1, raw: raw})
	}
	dataOff := subOff + subSize

	var data []byte
	valueField := func(raw []byte) []byte {
		v := make([]byte, 4)
		if len(raw) <= 4 {
			copy(v, raw)
			return v
		}
		le.PutUint32(v, uint32(dataOff+len(data)))
		data = append(data, raw...)
		if len(data)%2 == 1 {
			data = append(data, 0)
		}
		return v
	}

	buf := new(bytes.Buffer)
	buf.WriteString("II")
	_ = binary.Write(buf, le, uint16(42))
	_ = binary.Write(buf, le, uint32(8))

	writeIFD := func(entries []entry) {
		_ = binary.Write(buf, le, uint16(len(entries)))
		for _, e := range entries {
			_ = binary.Write(buf, le, e.tag)
			_ = binary.Write(buf, le, e.typ)
			_ = binary.Write(buf, le, e.count)
			buf.Write(valueField(e.raw))
		}
		_ = binary.Write(buf, le, uint32(0))
	}

	writeIFD(ifd0)
	if len(sub) > 0 {
		writeIFD(sub)
	}
	buf.Write(data)

	return buf.Bytes()
}

// JPEG encodes img and splices an APP1 EXIF segment right after the SOI marker
func JPEG(img image.Image, f Fields) []byte {
	enc := new(bytes.Buffer)
	if err := jpeg.Encode(enc, img, &jpeg.Options{Quality: 90}); err != nil {
		panic("failed to encode test JPEG: " + err.Error())
	}
	plain := enc.Bytes()

	payload := append([]byte("Exif\x00\x00"), TIFF(f)...)
	segLen := make([]byte, 2)
	binary.BigEndian.PutUint16(segLen, uint16(len(payload)+2))

	out := new(bytes.Buffer)
	out.Write(plain[:2]) // SOI
	out.Write([]byte{0xFF, 0xE1})
	out.Write(segLen)
	out.Write(payload)
	out.Write(plain[2:])
	return out.Bytes()
}

func ascii(tag uint16, s string) entry {
	raw := append([]byte(s), 0)
	return entry{tag: tag, typ: typeASCII, count: uint32(len(raw)), raw: raw}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
