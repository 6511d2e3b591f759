package gallery

import (
	"encoding/binary"
	"errors"
	"io"
)

func bmpDimensions(r io.Reader) (int, int, error) {
	header := make([]byte, 26)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, 0, err
	}
	if header[0] != 'B' || header[1] != 'M' {
		return 0, 0, errors.New("invalid BMP signature")
	}

	// BITMAPCOREHEADER stores 16-bit sizes; every later header uses signed
	// 32-bit ones, with a negative height for top-down bitmaps.
	if binary.LittleEndian.Uint32(header[14:18]) == 12 {
		w := binary.LittleEndian.Uint16(header[18:20])
		h := binary.LittleEndian.Uint16(header[20:22])
		return int(w), int(h), nil
	}

	w := int32(binary.LittleEndian.Uint32(header[18:22]))
	h := int32(binary.LittleEndian.Uint32(header[22:26]))
	if h < 0 {
		h = -h
	}
	if w <= 0 || h == 0 {
		return 0, 0, errors.New("invalid BMP size")
	}
	return int(w), int(h), nil
}
