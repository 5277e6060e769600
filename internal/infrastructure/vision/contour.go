package vision

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
)

// bitmap — бинарная сетка переднего плана в координатах маски.
type bitmap struct {
	w, h int
	bits []bool
}

func (b bitmap) at(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.bits[y*b.w+x]
}

// largestComponent находит самую большую 8-связную область переднего плана.
// Обход идёт в растровом порядке, поэтому при равной площади побеждает
// область, встреченная первой, — результат детерминирован.
func largestComponent(bm bitmap) (bitmap, int) {
	visited := make([]bool, len(bm.bits))
	best := bitmap{w: bm.w, h: bm.h}
	bestArea := 0

	var queue []int
	for start, fg := range bm.bits {
		if !fg || visited[start] {
			continue
		}
		comp := make([]bool, len(bm.bits))
		area := 0
		queue = queue[:0]
		queue = append(queue, start)
		visited[start] = true
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			comp[idx] = true
			area++
			cx, cy := idx%bm.w, idx/bm.w
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := cx+dx, cy+dy
					if !bm.at(nx, ny) {
						continue
					}
					nidx := ny*bm.w + nx
					if visited[nidx] {
						continue
					}
					visited[nidx] = true
					queue = append(queue, nidx)
				}
			}
		}
		if area > bestArea {
			bestArea = area
			best.bits = comp
		}
	}
	return best, bestArea
}

// traceBoundary обходит границу области по Муру, по часовой стрелке,
// начиная с первого пикселя области в растровом порядке.
func traceBoundary(bm bitmap) []r2.Point {
	start := -1
	for i, fg := range bm.bits {
		if fg {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	sx, sy := start%bm.w, start/bm.w

	// соседи по часовой стрелке, начиная с запада
	dx := [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
	dy := [8]int{0, -1, -1, -1, 0, 1, 1, 1}

	contour := []r2.Point{{X: float64(sx), Y: float64(sy)}}
	cx, cy := sx, sy
	dir := 0 // слева от стартового пикселя гарантированно фон
	firstMove := -1
	for step := 0; step < 4*len(bm.bits); step++ {
		moved := -1
		var nx, ny int
		for i := 0; i < 8; i++ {
			d := (dir + i) % 8
			tx, ty := cx+dx[d], cy+dy[d]
			if bm.at(tx, ty) {
				moved, nx, ny = d, tx, ty
				break
			}
		}
		if moved < 0 {
			// одиночный пиксель без соседей
			break
		}
		if cx == sx && cy == sy {
			if firstMove < 0 {
				firstMove = moved
			} else if moved == firstMove {
				// критерий Якоба: из стартового пикселя уходим тем же
				// направлением, что и в первый раз, — контур замкнулся.
				// Простой возврат в старт замыканием не считается:
				// обход может проходить через него по узкой перемычке
				break
			}
		}
		cx, cy = nx, ny
		dir = (moved + 6) % 8
		if cx != sx || cy != sy {
			contour = append(contour, r2.Point{X: float64(cx), Y: float64(cy)})
		}
	}
	return contour
}

// perimeter — длина замкнутого контура.
func perimeter(pts []r2.Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	sum := 0.0
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		sum += math.Hypot(a.X-b.X, a.Y-b.Y)
	}
	return sum
}

// approxPolygon упрощает замкнутый контур алгоритмом Рамера-Дугласа-Пекера.
// Контур режется по двум самым удалённым точкам, каждая дуга упрощается
// отдельно — иначе стартовая точка всегда оставалась бы вершиной.
func approxPolygon(pts []r2.Point, eps float64) []r2.Point {
	if len(pts) <= 4 {
		return pts
	}
	far := 0
	farDist := 0.0
	for i, p := range pts {
		if d := math.Hypot(p.X-pts[0].X, p.Y-pts[0].Y); d > farDist {
			farDist = d
			far = i
		}
	}
	first := rdpChain(pts[:far+1], eps)
	back := make([]r2.Point, 0, len(pts)-far+1)
	back = append(back, pts[far:]...)
	back = append(back, pts[0])
	back = rdpChain(back, eps)

	out := make([]r2.Point, 0, len(first)+len(back))
	out = append(out, first...)
	if len(back) > 2 {
		out = append(out, back[1:len(back)-1]...)
	}
	return out
}

// rdpChain упрощает незамкнутую цепочку, сохраняя концы.
func rdpChain(pts []r2.Point, eps float64) []r2.Point {
	if len(pts) <= 2 {
		return pts
	}
	idx := 0
	maxDist := 0.0
	a, b := pts[0], pts[len(pts)-1]
	for i := 1; i < len(pts)-1; i++ {
		if d := perpDist(pts[i], a, b); d > maxDist {
			maxDist = d
			idx = i
		}
	}
	if maxDist <= eps {
		return []r2.Point{a, b}
	}
	left := rdpChain(pts[:idx+1], eps)
	right := rdpChain(pts[idx:], eps)
	out := make([]r2.Point, 0, len(left)+len(right)-1)
	out = append(out, left[:len(left)-1]...)
	return append(out, right...)
}

// perpDist — расстояние от точки до отрезка ab.
func perpDist(p, a, b r2.Point) float64 {
	ab := b.Sub(a)
	l := ab.Norm()
	if l == 0 {
		return p.Sub(a).Norm()
	}
	return math.Abs(ab.Cross(p.Sub(a))) / l
}

// convexHull строит выпуклую оболочку методом монотонной цепи Эндрю.
func convexHull(pts []r2.Point) []r2.Point {
	if len(pts) < 3 {
		return pts
	}
	sorted := make([]r2.Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	var lower, upper []r2.Point
	for _, p := range sorted {
		for len(lower) >= 2 && lower[len(lower)-1].Sub(lower[len(lower)-2]).Cross(p.Sub(lower[len(lower)-2])) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && upper[len(upper)-1].Sub(upper[len(upper)-2]).Cross(p.Sub(upper[len(upper)-2])) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// minAreaRect находит прямоугольник минимальной площади, накрывающий
// выпуклую оболочку: у оптимального прямоугольника одна сторона лежит
// на ребре оболочки, поэтому достаточно перебрать рёбра.
func minAreaRect(hull []r2.Point) [4]r2.Point {
	var corners [4]r2.Point
	if len(hull) == 0 {
		return corners
	}
	bestArea := math.Inf(1)
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		e := b.Sub(a)
		l := e.Norm()
		if l == 0 {
			continue
		}
		u := e.Mul(1 / l)
		v := r2.Point{X: -u.Y, Y: u.X}

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			du, dv := p.Dot(u), p.Dot(v)
			minU = math.Min(minU, du)
			maxU = math.Max(maxU, du)
			minV = math.Min(minV, dv)
			maxV = math.Max(maxV, dv)
		}
		area := (maxU - minU) * (maxV - minV)
		if area < bestArea {
			bestArea = area
			corners = [4]r2.Point{
				u.Mul(minU).Add(v.Mul(minV)),
				u.Mul(maxU).Add(v.Mul(minV)),
				u.Mul(maxU).Add(v.Mul(maxV)),
				u.Mul(minU).Add(v.Mul(maxV)),
			}
		}
	}
	return corners
}
