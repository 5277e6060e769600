package entity

import "github.com/golang/geo/r2"

// Rotation — поворот по часовой стрелке, приводящий снятый кадр к
// вертикальной ориентации. Передаётся через весь конвейер вместе с кадром
// и четырёхугольником, чтобы все три стадии согласованно понимали верх.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Valid проверяет, что угол — один из четырёх допустимых.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// ApplySize возвращает размер кадра w×h после поворота.
func (r Rotation) ApplySize(w, h float64) (float64, float64) {
	if r == Rotate90 || r == Rotate270 {
		return h, w
	}
	return w, h
}

// ApplyPoint переводит непрерывную точку кадра w×h в координаты
// повернутого кадра. Формулы согласованы с попиксельным поворотом
// при соглашении «центр пикселя (x, y) находится в (x+0.5, y+0.5)».
func (r Rotation) ApplyPoint(p r2.Point, w, h float64) r2.Point {
	switch r {
	case Rotate90:
		return r2.Point{X: h - p.Y, Y: p.X}
	case Rotate180:
		return r2.Point{X: w - p.X, Y: h - p.Y}
	case Rotate270:
		return r2.Point{X: p.Y, Y: w - p.X}
	}
	return p
}
