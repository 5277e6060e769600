package vision

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"
)

// homography — проективное преобразование плоскости, 3x3 построчно, h22 = 1.
type homography [9]float64

// computeHomography строит матрицу, переводящую src[i] в dst[i].
// Четыре соответствия дают систему 8x8 относительно восьми неизвестных
// коэффициентов; решается точно, без МНК.
func computeHomography(src, dst [4]r2.Point) (homography, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		sx, sy := src[i].X, src[i].Y
		dx, dy := dst[i].X, dst[i].Y
		row := 2 * i
		a.SetRow(row, []float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx})
		b.SetVec(row, dx)
		a.SetRow(row+1, []float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy})
		b.SetVec(row+1, dy)
	}
	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return homography{}, err
	}
	return homography{
		h.AtVec(0), h.AtVec(1), h.AtVec(2),
		h.AtVec(3), h.AtVec(4), h.AtVec(5),
		h.AtVec(6), h.AtVec(7), 1,
	}, nil
}

// apply переводит точку через гомографию.
func (h homography) apply(x, y float64) (float64, float64) {
	den := h[6]*x + h[7]*y + h[8]
	if den == 0 {
		return math.Inf(1), math.Inf(1)
	}
	return (h[0]*x + h[1]*y + h[2]) / den, (h[3]*x + h[4]*y + h[5]) / den
}

// bilinearAt — билинейная выборка из изображения в непрерывных координатах.
// Центр пикселя (i, j) считается лежащим в (i+0.5, j+0.5); выход за границы
// зажимается к краю.
func bilinearAt(img *image.NRGBA, x, y float64) color.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	fx := x - 0.5
	fy := y - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	clampX := func(v int) int {
		if v < 0 {
			return 0
		}
		if v >= w {
			return w - 1
		}
		return v
	}
	clampY := func(v int) int {
		if v < 0 {
			return 0
		}
		if v >= h {
			return h - 1
		}
		return v
	}

	pix := func(xi, yi int) (float64, float64, float64, float64) {
		off := img.PixOffset(b.Min.X+clampX(xi), b.Min.Y+clampY(yi))
		return float64(img.Pix[off]), float64(img.Pix[off+1]), float64(img.Pix[off+2]), float64(img.Pix[off+3])
	}

	r00, g00, b00, a00 := pix(x0, y0)
	r10, g10, b10, a10 := pix(x0+1, y0)
	r01, g01, b01, a01 := pix(x0, y0+1)
	r11, g11, b11, a11 := pix(x0+1, y0+1)

	lerp2 := func(v00, v10, v01, v11 float64) uint8 {
		top := v00 + (v10-v00)*tx
		bot := v01 + (v11-v01)*tx
		return uint8(top + (bot-top)*ty + 0.5)
	}
	return color.NRGBA{
		R: lerp2(r00, r10, r01, r11),
		G: lerp2(g00, g10, g01, g11),
		B: lerp2(b00, b10, b01, b11),
		A: lerp2(a00, a10, a01, a11),
	}
}
