package gallery

import (
	"errors"
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

const (
	tagImageWidth  = 0x0100
	tagImageLength = 0x0101
)

func tiffDimensions(rs io.ReadSeeker) (int, int, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if errorsIsNoExif(err) {
			return 0, 0, errors.New("TIFF has no IFD0")
		}
		return 0, 0, err
	}

	width, height := 0, 0
	for _, tag := range tags {
		if tag.IfdPath != "IFD" {
			continue
		}
		switch tag.TagId {
		case tagImageWidth:
			if v, ok := firstUint(tag.Value); ok && width == 0 {
				width = v
			}
		case tagImageLength:
			if v, ok := firstUint(tag.Value); ok && height == 0 {
				height = v
			}
		}
	}
	if width == 0 || height == 0 {
		return 0, 0, errors.New("TIFF has no image size tags")
	}
	return width, height, nil
}

func firstUint(value interface{}) (int, bool) {
	switch v := value.(type) {
	case []uint16:
		if len(v) > 0 {
			return int(v[0]), true
		}
	case []uint32:
		if len(v) > 0 {
			return int(v[0]), true
		}
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	}
	return 0, false
}

func errorsIsNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
