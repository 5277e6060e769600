//go:build gocv
// +build gocv

package vision

import (
	"github.com/golang/geo/r2"
	"gocv.io/x/gocv"

	"docscan/internal/domain/entity"
)

// Detector ищет четырёхугольник документа на маске сегментации (OpenCV).
type Detector struct {
	MaskThreshold float32 // порог бинаризации маски
	MinAreaRatio  float64 // минимальная доля площади области от площади маски
	SimplifyRatio float64 // допуск упрощения контура как доля периметра
}

// NewDetector создаёт детектор с параметрами по умолчанию.
func NewDetector() *Detector {
	return &Detector{
		MaskThreshold: 0.5,
		MinAreaRatio:  0.02,
		SimplifyRatio: 0.02,
	}
}

// Detect бинаризует маску, берёт самый большой внешний контур и упрощает
// его. Ровно четыре вершины принимаются как углы документа; иначе в
// ослабленном режиме берётся прямоугольник минимальной площади (OpenCV
// строит его поверх выпуклой оболочки), в строгом — документ не найден.
func (d *Detector) Detect(mask entity.Mask, relaxed bool) (entity.Quad, bool) {
	if mask.Empty() {
		return entity.Quad{}, false
	}

	bin := gocv.NewMatWithSize(mask.H, mask.W, gocv.MatTypeCV8U)
	defer bin.Close()
	for y := 0; y < mask.H; y++ {
		for x := 0; x < mask.W; x++ {
			if mask.At(x, y) >= d.MaskThreshold {
				bin.SetUCharAt(y, x, 255)
			}
		}
	}

	contours := gocv.FindContours(bin, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	// при равной площади остаётся первый контур — результат детерминирован
	best := -1
	bestArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		if a := gocv.ContourArea(contours.At(i)); a > bestArea {
			bestArea = a
			best = i
		}
	}
	if best < 0 || bestArea < d.MinAreaRatio*float64(mask.W*mask.H) {
		return entity.Quad{}, false
	}

	contour := contours.At(best)
	approx := gocv.ApproxPolyDP(contour, d.SimplifyRatio*gocv.ArcLength(contour, true), true)
	defer approx.Close()

	var corners [4]r2.Point
	if approx.Size() == 4 {
		for i, p := range approx.ToPoints() {
			corners[i] = r2.Point{X: float64(p.X), Y: float64(p.Y)}
		}
	} else if relaxed {
		rect := gocv.MinAreaRect(contour)
		if len(rect.Points) != 4 {
			return entity.Quad{}, false
		}
		for i, p := range rect.Points {
			corners[i] = r2.Point{X: float64(p.X), Y: float64(p.Y)}
		}
	} else {
		return entity.Quad{}, false
	}

	quad := entity.OrderedQuad(corners)
	if !quad.Valid() {
		return entity.Quad{}, false
	}
	return quad, true
}
