package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ToByte converts a linear channel value to a byte. Values are clamped to
// [0, 1] and then truncated, so 0.7 maps to 178.
func ToByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(255 * v)
}

// WritePPM writes the framebuffer as a binary (P6) portable pixmap, top row
// first
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("failed to write ppm header: %w", err)
	}

	row := make([]byte, 3*fb.Width)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			row[3*x] = ToByte(c.X)
			row[3*x+1] = ToByte(c.Y)
			row[3*x+2] = ToByte(c.Z)
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("failed to write ppm row %d: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush ppm: %w", err)
	}
	return nil
}
