// Package texture extracts a base color for an asset from a sibling texture
// file. The software renderer shades flat per-face colors, so the average
// texel color is all it needs from a texture.
package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ftrvxmtrx/tga"
)

// DefaultColor is used when an asset has no texture next to it.
var DefaultColor = color.NRGBA{R: 160, G: 160, B: 170, A: 255}

// extensions probed next to the asset file, in order.
var extensions = []string{".png", ".jpg", ".tga"}

// BaseColor looks for a texture next to assetPath (same basename, known image
// extension) and returns its average color. Missing or undecodable textures
// fall back to DefaultColor.
func BaseColor(assetPath string) color.NRGBA {
	base := strings.TrimSuffix(assetPath, filepath.Ext(assetPath))
	for _, ext := range extensions {
		c, err := averageColor(base + ext)
		if err == nil {
			return c
		}
	}
	return DefaultColor
}

func averageColor(path string) (color.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return color.NRGBA{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return color.NRGBA{}, fmt.Errorf("texture: empty image %s", path)
	}

	var sumR, sumG, sumB float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			sumR += float64(r >> 8)
			sumG += float64(g >> 8)
			sumB += float64(bl >> 8)
		}
	}
	n := float64(b.Dx() * b.Dy())
	return color.NRGBA{
		R: uint8(sumR/n + 0.5),
		G: uint8(sumG/n + 0.5),
		B: uint8(sumB/n + 0.5),
		A: 255,
	}, nil
}
