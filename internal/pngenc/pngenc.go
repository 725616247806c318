// Package pngenc is a minimal, hand-rolled PNG encoder used by the
// ppm2png transcoder. It deliberately does not use image/png: the point
// of this component is to construct the PNG chunk stream explicitly
// (signature, IHDR, a single IDAT, IEND) with manual zlib deflate and
// CRC32, not to re-wrap the standard encoder.
package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// signature is the 8-byte PNG file signature.
var signature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

const (
	colorTypeTruecolor = 2
	bitDepth8          = 8
)

// Encode writes an 8-bit truecolor (no alpha, no filtering) PNG for the
// given width/height RGB pixel buffer (3 bytes per pixel, row-major, row 0
// at the top) to a single byte slice: signature, IHDR, IDAT, IEND.
func Encode(width, height int, rgb []byte) ([]byte, error) {
	if len(rgb) != width*height*3 {
		return nil, fmt.Errorf("pngenc: expected %d RGB bytes for %dx%d, got %d", width*height*3, width, height, len(rgb))
	}

	var out bytes.Buffer
	out.Write(signature)

	if err := writeChunk(&out, "IHDR", ihdrData(width, height)); err != nil {
		return nil, err
	}
	idat, err := deflateScanlines(width, height, rgb)
	if err != nil {
		return nil, err
	}
	if err := writeChunk(&out, "IDAT", idat); err != nil {
		return nil, err
	}
	if err := writeChunk(&out, "IEND", nil); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func ihdrData(width, height int) []byte {
	buf := make([]byte, 13)
	binary.BigEndian.PutUint32(buf[0:4], uint32(width))
	binary.BigEndian.PutUint32(buf[4:8], uint32(height))
	buf[8] = bitDepth8
	buf[9] = colorTypeTruecolor
	buf[10] = 0 // compression method: deflate
	buf[11] = 0 // filter method: adaptive (we use "none" per scanline)
	buf[12] = 0 // interlace method: none
	return buf
}

// deflateScanlines prepends a filter-type byte (0 = none) to every
// scanline and zlib-deflates the result at the best compression level.
func deflateScanlines(width, height int, rgb []byte) ([]byte, error) {
	stride := width * 3
	raw := make([]byte, 0, height*(stride+1))
	for y := 0; y < height; y++ {
		raw = append(raw, 0) // no filter
		raw = append(raw, rgb[y*stride:(y+1)*stride]...)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeChunk appends a length-prefixed, CRC32-checked chunk: 4-byte
// length, 4-byte type, data, 4-byte CRC over (type || data).
func writeChunk(w *bytes.Buffer, chunkType string, data []byte) error {
	if len(chunkType) != 4 {
		return fmt.Errorf("pngenc: chunk type must be 4 bytes, got %q", chunkType)
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	w.Write(lenBuf[:])

	typeAndData := append([]byte(chunkType), data...)
	w.Write(typeAndData)

	crc := crc32.ChecksumIEEE(typeAndData)
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc)
	w.Write(crcBuf[:])
	return nil
}
