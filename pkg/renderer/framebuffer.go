package renderer

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Framebuffer holds one unclamped linear RGB color per pixel, row-major with
// the top row first
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[x+y*fb.Width]
}

// Set stores the color of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, color core.Vec3) {
	fb.Pixels[x+y*fb.Width] = color
}
