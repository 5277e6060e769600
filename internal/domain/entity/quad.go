package entity

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"
)

// ErrInvalidQuad — вырожденный четырёхугольник дошёл до стадии выпрямления.
// Это нарушение контракта детектора, а не ожидаемая ошибка времени выполнения.
var ErrInvalidQuad = errors.New("invalid quad: degenerate geometry")

// areaEps — порог «почти нулевой» площади в квадратных пикселях.
const areaEps = 1e-6

// Quad — четыре угла документа в каноническом порядке.
// Координаты заданы в системе того изображения, по которому он найден
// (маска сегментации или полный кадр).
type Quad struct {
	TL r2.Point // верхний левый
	TR r2.Point // верхний правый
	BR r2.Point // нижний правый
	BL r2.Point // нижний левый
}

// OrderedQuad раскладывает четыре точки по каноническим углам:
// минимальная сумма x+y — верхний левый, максимальная — нижний правый,
// минимальная разность y−x — верхний правый, максимальная — нижний левый.
// Результат не зависит от порядка точек на входе; при равенстве ключей
// предпочитается точка с меньшим x, затем с меньшим y.
func OrderedQuad(pts [4]r2.Point) Quad {
	q := Quad{TL: pts[0], TR: pts[0], BR: pts[0], BL: pts[0]}
	for _, p := range pts[1:] {
		if less(p.X+p.Y, q.TL.X+q.TL.Y, p, q.TL) {
			q.TL = p
		}
		if less(q.BR.X+q.BR.Y, p.X+p.Y, q.BR, p) {
			q.BR = p
		}
		if less(p.Y-p.X, q.TR.Y-q.TR.X, p, q.TR) {
			q.TR = p
		}
		if less(q.BL.Y-q.BL.X, p.Y-p.X, q.BL, p) {
			q.BL = p
		}
	}
	return q
}

// less сравнивает ключи сортировки углов; при равенстве разрешает
// неоднозначность по координатам, чтобы порядок был детерминированным.
func less(a, b float64, pa, pb r2.Point) bool {
	if a != b {
		return a < b
	}
	if pa.X != pb.X {
		return pa.X < pb.X
	}
	return pa.Y < pb.Y
}

// Points возвращает углы в каноническом обходе TL, TR, BR, BL.
func (q Quad) Points() [4]r2.Point {
	return [4]r2.Point{q.TL, q.TR, q.BR, q.BL}
}

// Valid проверяет инвариант: простой (без самопересечений) многоугольник
// со строго положительной площадью и без трёх углов на одной прямой.
func (q Quad) Valid() bool {
	if q.Area() < areaEps {
		return false
	}
	pts := q.Points()
	for i := 0; i < 4; i++ {
		a, b, c := pts[i], pts[(i+1)%4], pts[(i+2)%4]
		if math.Abs(b.Sub(a).Cross(c.Sub(a))) < areaEps {
			return false
		}
	}
	// противоположные стороны не должны пересекаться
	if segmentsCross(q.TL, q.TR, q.BR, q.BL) {
		return false
	}
	if segmentsCross(q.TR, q.BR, q.BL, q.TL) {
		return false
	}
	return true
}

// Area — площадь по формуле шнуровки.
func (q Quad) Area() float64 {
	pts := q.Points()
	sum := 0.0
	for i := 0; i < 4; i++ {
		a, b := pts[i], pts[(i+1)%4]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Длины сторон в пикселях.

func (q Quad) TopLen() float64    { return dist(q.TL, q.TR) }
func (q Quad) BottomLen() float64 { return dist(q.BL, q.BR) }
func (q Quad) LeftLen() float64   { return dist(q.TL, q.BL) }
func (q Quad) RightLen() float64  { return dist(q.TR, q.BR) }

// ScaledTo переводит четырёхугольник из системы координат fromW×fromH в
// toW×toH. Оси масштабируются независимо, порядок углов сохраняется;
// при совпадающих размерах преобразование тождественно.
func (q Quad) ScaledTo(fromW, fromH, toW, toH float64) Quad {
	sx := toW / fromW
	sy := toH / fromH
	scale := func(p r2.Point) r2.Point {
		return r2.Point{X: p.X * sx, Y: p.Y * sy}
	}
	return Quad{
		TL: scale(q.TL),
		TR: scale(q.TR),
		BR: scale(q.BR),
		BL: scale(q.BL),
	}
}

// Rotated переводит углы в систему повернутого кадра w×h и заново
// раскладывает их по каноническим позициям: после поворота до вертикальной
// ориентации верхним левым становится другой физический угол.
func (q Quad) Rotated(rot Rotation, w, h float64) Quad {
	if rot == Rotate0 {
		return q
	}
	pts := q.Points()
	for i := range pts {
		pts[i] = rot.ApplyPoint(pts[i], w, h)
	}
	return OrderedQuad(pts)
}

func dist(a, b r2.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// segmentsCross сообщает, пересекаются ли отрезки ab и cd во внутренних точках.
func segmentsCross(a, b, c, d r2.Point) bool {
	d1 := b.Sub(a).Cross(c.Sub(a))
	d2 := b.Sub(a).Cross(d.Sub(a))
	d3 := d.Sub(c).Cross(a.Sub(c))
	d4 := d.Sub(c).Cross(b.Sub(c))
	return d1*d2 < 0 && d3*d4 < 0
}
