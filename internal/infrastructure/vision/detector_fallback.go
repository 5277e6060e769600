//go:build !gocv
// +build !gocv

package vision

import (
	"github.com/golang/geo/r2"

	"docscan/internal/domain/entity"
)

// Detector ищет четырёхугольник документа на маске сегментации.
// Чистая Go-реализация; при сборке с тегом gocv используется OpenCV.
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

// Detect бинаризует маску, берёт самую большую связную область и упрощает
// её границу. Ровно четыре вершины принимаются как углы документа; иначе
// в ослабленном режиме берётся прямоугольник минимальной площади вокруг
// выпуклой оболочки, в строгом — документ считается не найденным.
func (d *Detector) Detect(mask entity.Mask, relaxed bool) (entity.Quad, bool) {
	if mask.Empty() {
		return entity.Quad{}, false
	}

	bm := bitmap{w: mask.W, h: mask.H, bits: mask.Binary(d.MaskThreshold)}
	comp, area := largestComponent(bm)
	if float64(area) < d.MinAreaRatio*float64(mask.W*mask.H) {
		return entity.Quad{}, false
	}

	contour := traceBoundary(comp)
	if len(contour) < 4 {
		return entity.Quad{}, false
	}

	poly := approxPolygon(contour, d.SimplifyRatio*perimeter(contour))

	var corners [4]r2.Point
	switch {
	case len(poly) == 4:
		copy(corners[:], poly)
	case relaxed:
		// скруглённые углы или частичное перекрытие: берём
		// ограничивающий четырёхугольник вместо точных вершин
		corners = minAreaRect(convexHull(contour))
	default:
		return entity.Quad{}, false
	}

	quad := entity.OrderedQuad(corners)
	if !quad.Valid() {
		return entity.Quad{}, false
	}
	return quad, true
}
