package entity

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"
)

func TestOrderedQuad_CanonicalOrder(t *testing.T) {
	tl := r2.Point{X: 1, Y: 1}
	tr := r2.Point{X: 9, Y: 2}
	br := r2.Point{X: 8, Y: 8}
	bl := r2.Point{X: 2, Y: 9}

	q := OrderedQuad([4]r2.Point{tl, tr, br, bl})
	require.Equal(t, tl, q.TL)
	require.Equal(t, tr, q.TR)
	require.Equal(t, br, q.BR)
	require.Equal(t, bl, q.BL)
}

func TestOrderedQuad_InputOrderIndependent(t *testing.T) {
	pts := [4]r2.Point{{X: 1, Y: 1}, {X: 9, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 9}}
	want := OrderedQuad(pts)

	perms := [][4]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, perm := range perms {
		var shuffled [4]r2.Point
		for i, j := range perm {
			shuffled[i] = pts[j]
		}
		require.Equal(t, want, OrderedQuad(shuffled))
	}
}

func TestQuad_ScaledToIdentity(t *testing.T) {
	q := OrderedQuad([4]r2.Point{{X: 20, Y: 20}, {X: 80, Y: 20}, {X: 80, Y: 80}, {X: 20, Y: 80}})
	require.Equal(t, q, q.ScaledTo(100, 100, 100, 100))
}

func TestQuad_ScaledToScales(t *testing.T) {
	q := OrderedQuad([4]r2.Point{{X: 20, Y: 20}, {X: 80, Y: 20}, {X: 80, Y: 80}, {X: 20, Y: 80}})
	s := q.ScaledTo(100, 100, 1000, 1000)
	require.Equal(t, r2.Point{X: 200, Y: 200}, s.TL)
	require.Equal(t, r2.Point{X: 800, Y: 200}, s.TR)
	require.Equal(t, r2.Point{X: 800, Y: 800}, s.BR)
	require.Equal(t, r2.Point{X: 200, Y: 800}, s.BL)
}

func TestQuad_ScaledToRoundTrip(t *testing.T) {
	q := OrderedQuad([4]r2.Point{{X: 13, Y: 7}, {X: 91, Y: 11}, {X: 88, Y: 77}, {X: 9, Y: 73}})
	back := q.ScaledTo(100, 100, 640, 480).ScaledTo(640, 480, 100, 100)
	for i, p := range back.Points() {
		require.InDelta(t, q.Points()[i].X, p.X, 1e-9)
		require.InDelta(t, q.Points()[i].Y, p.Y, 1e-9)
	}
}

func TestQuad_Valid(t *testing.T) {
	good := OrderedQuad([4]r2.Point{{X: 0, Y: 0}, {X: 10, Y: 1}, {X: 11, Y: 12}, {X: 1, Y: 10}})
	require.True(t, good.Valid())
}

func TestQuad_ValidRejectsCollinear(t *testing.T) {
	flat := Quad{
		TL: r2.Point{X: 0, Y: 0},
		TR: r2.Point{X: 1, Y: 1},
		BR: r2.Point{X: 2, Y: 2},
		BL: r2.Point{X: 3, Y: 3},
	}
	require.False(t, flat.Valid())

	// три угла на одной прямой вырождают гомографию
	triple := Quad{
		TL: r2.Point{X: 0, Y: 0},
		TR: r2.Point{X: 5, Y: 0},
		BR: r2.Point{X: 10, Y: 0},
		BL: r2.Point{X: 0, Y: 10},
	}
	require.False(t, triple.Valid())
}

func TestQuad_ValidRejectsZeroArea(t *testing.T) {
	p := r2.Point{X: 4, Y: 4}
	require.False(t, Quad{TL: p, TR: p, BR: p, BL: p}.Valid())
}

func TestQuad_ValidRejectsSelfIntersection(t *testing.T) {
	bowtie := Quad{
		TL: r2.Point{X: 0, Y: 0},
		TR: r2.Point{X: 10, Y: 0},
		BR: r2.Point{X: 0, Y: 10},
		BL: r2.Point{X: 10, Y: 10},
	}
	require.False(t, bowtie.Valid())
}

func TestQuad_EdgeLengths(t *testing.T) {
	q := OrderedQuad([4]r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 0, Y: 3}})
	require.InDelta(t, 4, q.TopLen(), 1e-9)
	require.InDelta(t, 4, q.BottomLen(), 1e-9)
	require.InDelta(t, 3, q.LeftLen(), 1e-9)
	require.InDelta(t, 3, q.RightLen(), 1e-9)
	require.InDelta(t, 12, q.Area(), 1e-9)
}

func TestQuad_RotatedReassignsCorners(t *testing.T) {
	q := OrderedQuad([4]r2.Point{{X: 20, Y: 10}, {X: 80, Y: 10}, {X: 80, Y: 40}, {X: 20, Y: 40}})
	r := q.Rotated(Rotate90, 100, 50)
	// кадр 100x50 становится 50x100; верхний левый угол — бывший нижний левый
	require.Equal(t, r2.Point{X: 10, Y: 20}, r.TL)
	require.Equal(t, r2.Point{X: 40, Y: 20}, r.TR)
	require.Equal(t, r2.Point{X: 40, Y: 80}, r.BR)
	require.Equal(t, r2.Point{X: 10, Y: 80}, r.BL)
}
