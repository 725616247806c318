// Command ppm2png transcodes a PPM P3 image into a minimal PNG.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/elh/go-raytracer/internal/pngenc"
	"github.com/elh/go-raytracer/internal/ppm"
)

func main() {
	in := flag.String("in", "", "input PPM (P3) file")
	out := flag.String("out", "", "output PNG file")
	flag.Parse()

	if *in == "" || *out == "" {
		log.Fatal("--in and --out are required")
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("opening %s: %v", *in, err)
	}
	img, err := ppm.Read(f)
	f.Close()
	if err != nil {
		log.Fatalf("decoding %s: %v", *in, err)
	}

	png, err := pngenc.Encode(img.Width, img.Height, img.Pixels)
	if err != nil {
		log.Fatalf("encoding PNG: %v", err)
	}

	if err := os.WriteFile(*out, png, 0o644); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	log.Printf("wrote %s (%dx%d)", *out, img.Width, img.Height)
}
