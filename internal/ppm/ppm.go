// Package ppm encodes and decodes the PPM P3 (ASCII) image format: a "P3"
// header line, a "<width> <height>" line, a "255" max-value line, then
// width*height "r g b" triples.
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	rt "github.com/elh/go-raytracer"
)

// Image is a rectangular grid of 8-bit RGB pixels, row 0 at the top.
type Image struct {
	Width, Height int
	// Pixels is row-major, 3 bytes per pixel (R, G, B).
	Pixels []byte
}

func (img *Image) at(x, y int) []byte {
	i := (y*img.Width + x) * 3
	return img.Pixels[i : i+3]
}

// ToByte maps a linear color component in [0, 1] to a byte in [0, 255] the
// way the reference does: int(component * 255.999), clamped.
func ToByte(component float64) byte {
	v := int(component * 255.999)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v)
}

// FromRenderGrid builds a PPM Image from an H-rows-by-W-columns grid of
// linear [0,1] colors, the shape Render produces.
func FromRenderGrid(grid [][]rt.Vec3) *Image {
	height := len(grid)
	width := 0
	if height > 0 {
		width = len(grid[0])
	}
	pixels := make([]byte, width*height*3)
	for y, row := range grid {
		for x, c := range row {
			i := (y*width + x) * 3
			pixels[i] = ToByte(c.X)
			pixels[i+1] = ToByte(c.Y)
			pixels[i+2] = ToByte(c.Z)
		}
	}
	return &Image{Width: width, Height: height, Pixels: pixels}
}

// Write encodes img as PPM P3 to w: header "P3\n<W> <H>\n255\n", then each
// row's pixels as "r g b" triples (components separated by a single
// space), each triple followed by two spaces, and a newline per row.
func Write(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.at(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d  ", p[0], p[1], p[2]); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read decodes a PPM P3 stream, skipping blank lines and "#" comments
// between header fields, matching what an external PPM->PNG transcoder
// needs to tolerate.
func Read(r io.Reader) (*Image, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	tok := newTokenizer(scanner)

	magic, err := tok.next()
	if err != nil {
		return nil, fmt.Errorf("reading magic number: %w", err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("unsupported PPM magic number %q, want P3", magic)
	}

	width, err := tok.nextInt()
	if err != nil {
		return nil, fmt.Errorf("reading width: %w", err)
	}
	height, err := tok.nextInt()
	if err != nil {
		return nil, fmt.Errorf("reading height: %w", err)
	}
	maxVal, err := tok.nextInt()
	if err != nil {
		return nil, fmt.Errorf("reading max value: %w", err)
	}
	if maxVal <= 0 || maxVal > 255 {
		return nil, fmt.Errorf("unsupported max value %d, want 1-255", maxVal)
	}

	pixels := make([]byte, width*height*3)
	for i := range pixels {
		v, err := tok.nextInt()
		if err != nil {
			return nil, fmt.Errorf("reading pixel component %d: %w", i, err)
		}
		pixels[i] = byte(v * 255 / maxVal)
	}

	return &Image{Width: width, Height: height, Pixels: pixels}, nil
}

// tokenizer reads whitespace-separated tokens across lines, skipping
// blank lines and "#" comments, which PPM permits anywhere between fields.
type tokenizer struct {
	scanner *bufio.Scanner
	fields  []string
}

func newTokenizer(scanner *bufio.Scanner) *tokenizer {
	return &tokenizer{scanner: scanner}
}

func (t *tokenizer) next() (string, error) {
	for len(t.fields) == 0 {
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(t.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t.fields = strings.Fields(line)
	}
	tok := t.fields[0]
	t.fields = t.fields[1:]
	return tok, nil
}

func (t *tokenizer) nextInt() (int, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}
