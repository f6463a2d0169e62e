// Package raster converts a cell screen into native RGBA images, one
// scale x scale pixel block per cell.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// ToRGBA rasterizes s. Empty cells come out black. A scale below 1 is
// treated as 1.
func ToRGBA(s *core.Screen, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, s.Width()*scale, s.Height()*scale))
	Fill(img, s, scale)
	return img
}

// Fill paints s into an existing image that is at least
// Width*scale x Height*scale pixels, reusing its backing buffer.
func Fill(img *image.RGBA, s *core.Screen, scale int) {
	black := core.ColorBlack.RGBA()
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = black.R
		img.Pix[i+1] = black.G
		img.Pix[i+2] = black.B
		img.Pix[i+3] = black.A
	}

	s.Each(func(x, y int, c core.Color) {
		rgba := c.RGBA()
		for dy := 0; dy < scale; dy++ {
			off := img.PixOffset(x*scale, y*scale+dy)
			for dx := 0; dx < scale; dx++ {
				img.Pix[off] = rgba.R
				img.Pix[off+1] = rgba.G
				img.Pix[off+2] = rgba.B
				img.Pix[off+3] = rgba.A
				off += 4
			}
		}
	})
}

// WritePNG rasterizes s and writes it to path, creating parent directories.
func WritePNG(path string, s *core.Screen, scale int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("raster: cannot create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: cannot create %s: %w", path, err)
	}

	if err := png.Encode(f, ToRGBA(s, scale)); err != nil {
		f.Close()
		return fmt.Errorf("raster: cannot encode png: %w", err)
	}
	return f.Close()
}
