//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"docscan/internal/domain/entity"
)

// Rectifier выпрямляет документ по четырёхугольнику (OpenCV).
type Rectifier struct {
	MatteThreshold float32 // порог бинаризации матте после варпа
}

// NewRectifier создаёт выпрямитель с параметрами по умолчанию.
func NewRectifier() *Rectifier {
	return &Rectifier{MatteThreshold: 0.5}
}

// Extract строит выровненный скан области quad кадра img.
// Поворот применяется к кадру, четырёхугольнику и маске до вычисления
// гомографии; маска, пропущенная через тот же варп, затирает фон белым.
func (r *Rectifier) Extract(img image.Image, quad entity.Quad, rotation entity.Rotation, mask entity.Mask) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("extract: nil image")
	}
	if !quad.Valid() {
		return nil, entity.ErrInvalidQuad
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	src, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return nil, fmt.Errorf("extract: to mat: %w", err)
	}
	defer src.Close()

	if rotation != entity.Rotate0 {
		rotated := gocv.NewMat()
		switch rotation {
		case entity.Rotate90:
			gocv.Rotate(src, &rotated, gocv.Rotate90Clockwise)
		case entity.Rotate180:
			gocv.Rotate(src, &rotated, gocv.Rotate180Clockwise)
		case entity.Rotate270:
			gocv.Rotate(src, &rotated, gocv.Rotate90CounterClockwise)
		}
		src.Close()
		src = rotated
	}
	quad = quad.Rotated(rotation, w, h)
	mask = mask.Rotated(rotation)

	outW := int(math.Round(math.Max(quad.TopLen(), quad.BottomLen())))
	outH := int(math.Round(math.Max(quad.LeftLen(), quad.RightLen())))
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	pts := quad.Points()
	srcPts := make([]gocv.Point2f, 4)
	for i, p := range pts {
		srcPts[i] = gocv.Point2f{X: float32(p.X), Y: float32(p.Y)}
	}
	dstPts := []gocv.Point2f{
		{X: 0, Y: 0},
		{X: float32(outW), Y: 0},
		{X: float32(outW), Y: float32(outH)},
		{X: 0, Y: float32(outH)},
	}

	srcVec := gocv.NewPoint2fVectorFromPoints(srcPts)
	defer srcVec.Close()
	dstVec := gocv.NewPoint2fVectorFromPoints(dstPts)
	defer dstVec.Close()

	tr := gocv.GetPerspectiveTransform2f(srcVec, dstVec)
	defer tr.Close()

	out := gocv.NewMat()
	defer out.Close()
	gocv.WarpPerspective(src, &out, tr, image.Pt(outW, outH))

	if !mask.Empty() {
		if err := r.applyMatte(&out, mask, tr, src.Cols(), src.Rows(), outW, outH); err != nil {
			return nil, err
		}
	}

	return out.ToImage()
}

// applyMatte пропускает маску через тот же варп и заливает фон белым.
// Геометрия остаётся за четырёхугольником, маска только чистит края.
func (r *Rectifier) applyMatte(out *gocv.Mat, mask entity.Mask, tr gocv.Mat, frameW, frameH, outW, outH int) error {
	m := gocv.NewMatWithSize(mask.H, mask.W, gocv.MatTypeCV8U)
	defer m.Close()
	for y := 0; y < mask.H; y++ {
		for x := 0; x < mask.W; x++ {
			m.SetUCharAt(y, x, uint8(mask.At(x, y)*255))
		}
	}

	full := gocv.NewMat()
	defer full.Close()
	gocv.Resize(m, &full, image.Pt(frameW, frameH), 0, 0, gocv.InterpolationNearestNeighbor)

	warped := gocv.NewMat()
	defer warped.Close()
	gocv.WarpPerspectiveWithParams(full, &warped, tr, image.Pt(outW, outH),
		gocv.InterpolationNearestNeighbor, gocv.BorderConstant, color.RGBA{})

	// фон — всё, что после варпа осталось ниже порога
	bg := gocv.NewMat()
	defer bg.Close()
	gocv.Threshold(warped, &bg, r.MatteThreshold*255, 255, gocv.ThresholdBinaryInv)

	white := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 255), outH, outW, out.Type())
	defer white.Close()
	white.CopyToWithMask(out, bg)
	return nil
}
