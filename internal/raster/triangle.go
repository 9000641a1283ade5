package raster

import (
	"image/color"
	"math"
)

// RasterizeTriangle rasterizes a single flat-shaded triangle with z-buffer,
// sRGB color handling and ACES tone mapping. px/py are pixel coordinates,
// pz is camera-space depth (larger = closer).
//
// Hot path: no allocations in the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, px, py, pz []float64, vi [3]int, base color.NRGBA, lc *LightConfig) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	// Face normal in screen space for flat shading
	e1x, e1y, e1z := x1-x0, y1-y0, z1-z0
	e2x, e2y, e2z := x2-x0, y2-y0, z2-z0
	nx := e1y*e2z - e1z*e2y
	ny := e1z*e2x - e1x*e2z
	nz := e1x*e2y - e1y*e2x
	nl := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if nl < 1e-8 {
		return
	}
	nx /= nl
	ny /= nl
	nz /= nl

	// Lighting scalar: Lambert main + rim (abs for double-sided), hemisphere
	// fill, Blinn-Phong specular.
	ndlMain := math.Abs(nx*lc.LightDir[0] + ny*lc.LightDir[1] + nz*lc.LightDir[2])
	ndlRim := math.Abs(nx*lc.RimDir[0] + ny*lc.RimDir[1] + nz*lc.RimDir[2])
	hemi := (1.0-math.Abs(ny))*0.5 + 0.5
	ndh := nx*lc.HalfMain[0] + ny*lc.HalfMain[1] + nz*lc.HalfMain[2]
	if ndh < 0 {
		ndh = 0
	}
	shade := lc.Ambient + hemi*lc.Hemi + ndlMain*lc.Direct + ndlRim*lc.Rim +
		math.Pow(ndh, lc.SpecPow)*lc.SpecInt

	// Shade the base color once per face
	lr := srgbToLinear[base.R] * shade * lc.Exposure
	lg := srgbToLinear[base.G] * shade * lc.Exposure
	lb := srgbToLinear[base.B] * shade * lc.Exposure
	fr := clamp255(math.Pow(ACESTonemap(lr), lc.InvGamma) * 255)
	fg := clamp255(math.Pow(ACESTonemap(lg), lc.InvGamma) * 255)
	fbl := clamp255(math.Pow(ACESTonemap(lb), lc.InvGamma) * 255)

	// Screen bounding box
	w, h := fb.Width, fb.Height
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1
	if minX < 0 {
		minX = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * w
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			i := zIdx * 4
			fb.Color[i] = fr
			fb.Color[i+1] = fg
			fb.Color[i+2] = fbl
			fb.Color[i+3] = base.A
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
