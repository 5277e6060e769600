//go:build !gocv
// +build !gocv

package vision

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/golang/geo/r2"

	"docscan/internal/domain/entity"
)

// Rectifier выпрямляет документ по четырёхугольнику.
// Чистая Go-реализация; при сборке с тегом gocv используется OpenCV.
type Rectifier struct {
	MatteThreshold float32 // порог бинаризации матте после варпа
}

// NewRectifier создаёт выпрямитель с параметрами по умолчанию.
func NewRectifier() *Rectifier {
	return &Rectifier{MatteThreshold: 0.5}
}

// matteFill — нейтральная заливка фона за пределами документа.
var matteFill = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Extract строит выровненный скан области quad кадра img.
// Поворот применяется к кадру, четырёхугольнику и маске до вычисления
// гомографии, поэтому результат всегда вертикален. Размер результата
// выводится из длин сторон четырёхугольника: ширина — большая из
// горизонтальных сторон, высота — большая из вертикальных.
func (r *Rectifier) Extract(img image.Image, quad entity.Quad, rotation entity.Rotation, mask entity.Mask) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("extract: nil image")
	}
	if !quad.Valid() {
		return nil, entity.ErrInvalidQuad
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	// приводим кадр к вертикальной ориентации;
	// imaging поворачивает против часовой стрелки
	var src *image.NRGBA
	switch rotation {
	case entity.Rotate90:
		src = imaging.Rotate270(img)
	case entity.Rotate180:
		src = imaging.Rotate180(img)
	case entity.Rotate270:
		src = imaging.Rotate90(img)
	default:
		src = imaging.Clone(img)
	}
	quad = quad.Rotated(rotation, w, h)
	mask = mask.Rotated(rotation)
	rw, rh := rotation.ApplySize(w, h)

	outW := int(math.Round(math.Max(quad.TopLen(), quad.BottomLen())))
	outH := int(math.Round(math.Max(quad.LeftLen(), quad.RightLen())))
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	// гомография из целевого прямоугольника в исходный четырёхугольник:
	// варп идёт обратным отображением
	rect := [4]r2.Point{
		{X: 0, Y: 0},
		{X: float64(outW), Y: 0},
		{X: float64(outW), Y: float64(outH)},
		{X: 0, Y: float64(outH)},
	}
	hg, err := computeHomography(rect, quad.Points())
	if err != nil {
		return nil, fmt.Errorf("extract: homography: %w", err)
	}

	useMatte := !mask.Empty()
	msx := float64(mask.W) / rw
	msy := float64(mask.H) / rh

	out := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			sx, sy := hg.apply(float64(x)+0.5, float64(y)+0.5)
			px := bilinearAt(src, sx, sy)
			if useMatte {
				// матте чистит фон у краёв, геометрию не меняет
				mx := int(sx * msx)
				my := int(sy * msy)
				if mask.At(mx, my) < r.MatteThreshold {
					px = matteFill
				}
			}
			out.SetNRGBA(x, y, px)
		}
	}
	return out, nil
}
