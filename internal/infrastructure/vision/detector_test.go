package vision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"docscan/internal/domain/entity"
)

func squareMask(w, h, x0, y0, x1, y1 int) entity.Mask {
	m := entity.NewMask(w, h)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			m.Set(x, y, 1)
		}
	}
	return m
}

func TestDetector_EmptyMask(t *testing.T) {
	d := NewDetector()

	_, ok := d.Detect(entity.Mask{}, false)
	require.False(t, ok)

	// маска без переднего плана
	_, ok = d.Detect(entity.NewMask(100, 100), false)
	require.False(t, ok)
}

func TestDetector_BelowMinArea(t *testing.T) {
	d := NewDetector()
	// шумовые пятна меньше минимальной доли площади
	m := entity.NewMask(100, 100)
	for _, at := range [][2]int{{5, 5}, {40, 70}, {90, 12}} {
		for y := at[1]; y < at[1]+3; y++ {
			for x := at[0]; x < at[0]+3; x++ {
				m.Set(x, y, 1)
			}
		}
	}
	_, ok := d.Detect(m, true)
	require.False(t, ok)
}

func TestDetector_CleanSquare(t *testing.T) {
	d := NewDetector()
	m := squareMask(100, 100, 20, 20, 80, 80)

	quad, ok := d.Detect(m, false)
	require.True(t, ok)
	require.InDelta(t, 20, quad.TL.X, 2)
	require.InDelta(t, 20, quad.TL.Y, 2)
	require.InDelta(t, 80, quad.TR.X, 2)
	require.InDelta(t, 20, quad.TR.Y, 2)
	require.InDelta(t, 80, quad.BR.X, 2)
	require.InDelta(t, 80, quad.BR.Y, 2)
	require.InDelta(t, 20, quad.BL.X, 2)
	require.InDelta(t, 80, quad.BL.Y, 2)
}

func TestDetector_RegionTouchingBorder(t *testing.T) {
	d := NewDetector()
	m := squareMask(100, 100, 0, 0, 50, 30)

	quad, ok := d.Detect(m, false)
	require.True(t, ok)
	require.InDelta(t, 0, quad.TL.X, 2)
	require.InDelta(t, 0, quad.TL.Y, 2)
	require.InDelta(t, 50, quad.BR.X, 2)
	require.InDelta(t, 30, quad.BR.Y, 2)
}

// усечённый ромб: выпуклая область, граница которой упрощается
// больше чем до четырёх вершин
func diamondMask(w, h, r int) (entity.Mask, int) {
	m := entity.NewMask(w, h)
	count := 0
	cx, cy := w/2, h/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x-cx, y-cy
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			if dx+dy <= r {
				m.Set(x, y, 1)
				count++
			}
		}
	}
	return m, count
}

func TestDetector_StrictRejectsNonQuad(t *testing.T) {
	d := NewDetector()
	m, _ := diamondMask(100, 100, 60)

	_, ok := d.Detect(m, false)
	require.False(t, ok)
}

func TestDetector_RelaxedBoundsNonQuad(t *testing.T) {
	d := NewDetector()
	m, area := diamondMask(100, 100, 60)

	quad, ok := d.Detect(m, true)
	require.True(t, ok)
	require.True(t, quad.Valid())
	// ограничивающий четырёхугольник, не вписанный: площадь не меньше области
	require.GreaterOrEqual(t, quad.Area(), float64(area)*0.99)
}

func TestDetector_Deterministic(t *testing.T) {
	d := NewDetector()
	m, _ := diamondMask(128, 96, 40)

	first, ok1 := d.Detect(m, true)
	second, ok2 := d.Detect(m, true)
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, first, second)
}

func TestDetector_EqualAreaTieRasterOrder(t *testing.T) {
	d := NewDetector()
	m := entity.NewMask(100, 100)
	fill := func(x0, y0 int) {
		for y := y0; y < y0+20; y++ {
			for x := x0; x < x0+20; x++ {
				m.Set(x, y, 1)
			}
		}
	}
	fill(10, 10)
	fill(60, 60)

	quad, ok := d.Detect(m, false)
	require.True(t, ok)
	// из двух областей одинаковой площади берётся верхняя
	require.InDelta(t, 10, quad.TL.X, 2)
	require.InDelta(t, 10, quad.TL.Y, 2)
}
