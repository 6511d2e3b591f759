package gallery

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var pngSignature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

func pngDimensions(rs io.ReadSeeker) (int, int, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}

	br := bufio.NewReader(rs)

	sig := make([]byte, 8)
	if _, err := io.ReadFull(br, sig); err != nil {
		return 0, 0, err
	}
	if !bytes.Equal(sig, pngSignature) {
		return 0, 0, errors.New("invalid PNG signature")
	}

	for {
		lenBuf := make([]byte, 4)
		if _, err := io.ReadFull(br, lenBuf); err != nil {
			if err == io.EOF {
				return 0, 0, errors.New("PNG has no IHDR chunk")
			}
			return 0, 0, err
		}
		length := binary.BigEndian.Uint32(lenBuf)

		chunkType := make([]byte, 4)
		if _, err := io.ReadFull(br, chunkType); err != nil {
			return 0, 0, err
		}

		switch string(chunkType) {
		case "IHDR":
			if length < 8 {
				return 0, 0, errors.New("short IHDR chunk")
			}
			data := make([]byte, 8)
			if _, err := io.ReadFull(br, data); err != nil {
				return 0, 0, err
			}
			width := binary.BigEndian.Uint32(data[0:4])
			height := binary.BigEndian.Uint32(data[4:8])
			return int(width), int(height), nil
		case "IEND":
			return 0, 0, errors.New("PNG has no IHDR chunk")
		default:
			if _, err := io.CopyN(io.Discard, br, int64(length)+4); err != nil {
				return 0, 0, err
			}
		}
	}
}
