package entity

import "image"

// Mask — карта уверенности сегментации пониженного разрешения.
// Значения лежат в [0, 1]; маска создаётся заново на каждый кадр и после
// прохода конвейера не переиспользуется.
type Mask struct {
	W, H int
	Data []float32 // длина W*H, построчно сверху вниз
}

// NewMask создаёт пустую маску заданного размера.
func NewMask(w, h int) Mask {
	if w <= 0 || h <= 0 {
		return Mask{}
	}
	return Mask{W: w, H: h, Data: make([]float32, w*h)}
}

// MaskFromGray строит маску из полутонового изображения: 255 — уверенный
// передний план.
func MaskFromGray(img *image.Gray) Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			m.Data[y*m.W+x] = float32(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255
		}
	}
	return m
}

// Empty сообщает, что маски нет — это «документ не найден», а не ошибка.
func (m Mask) Empty() bool {
	return m.W <= 0 || m.H <= 0 || len(m.Data) < m.W*m.H
}

// At возвращает уверенность в точке; вне границ — 0.
func (m Mask) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return 0
	}
	return m.Data[y*m.W+x]
}

// Set записывает уверенность в точке; вне границ ничего не делает.
func (m Mask) Set(x, y int, v float32) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Data[y*m.W+x] = v
}

// Binary бинаризует маску по фиксированному порогу.
func (m Mask) Binary(threshold float32) []bool {
	bits := make([]bool, m.W*m.H)
	for i, v := range m.Data {
		bits[i] = v >= threshold
	}
	return bits
}

// Rotated возвращает маску, повернутую вместе с кадром.
func (m Mask) Rotated(rot Rotation) Mask {
	if m.Empty() || rot == Rotate0 {
		return m
	}
	var out Mask
	switch rot {
	case Rotate90:
		out = NewMask(m.H, m.W)
		for y := 0; y < out.H; y++ {
			for x := 0; x < out.W; x++ {
				out.Data[y*out.W+x] = m.At(y, m.H-1-x)
			}
		}
	case Rotate180:
		out = NewMask(m.W, m.H)
		for y := 0; y < out.H; y++ {
			for x := 0; x < out.W; x++ {
				out.Data[y*out.W+x] = m.At(m.W-1-x, m.H-1-y)
			}
		}
	case Rotate270:
		out = NewMask(m.H, m.W)
		for y := 0; y < out.H; y++ {
			for x := 0; x < out.W; x++ {
				out.Data[y*out.W+x] = m.At(m.W-1-y, x)
			}
		}
	default:
		return m
	}
	return out
}
