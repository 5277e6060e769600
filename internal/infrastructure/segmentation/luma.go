package segmentation

import (
	"context"
	"image"
	"sort"

	"github.com/disintegration/imaging"

	"docscan/internal/domain/entity"
	"docscan/internal/domain/port"
)

// Luma — детерминированная сегментация без ML: уверенность пикселя растёт
// с удалением его яркости от опорной яркости фона, взятой как медиана по
// рамке кадра. Подходит для демонстрации и тестов конвейера; в продукте
// на этом месте стоит модель сегментации (см. порт SegmentationProvider).
type Luma struct {
	MaskW  int     // ширина выходной маски
	MaskH  int     // высота выходной маски
	Spread float64 // перепад яркости, дающий уверенность 1.0
}

// NewLuma создаёт сегментатор с маской заданного разрешения.
func NewLuma(maskW, maskH int) *Luma {
	return &Luma{MaskW: maskW, MaskH: maskH, Spread: 80}
}

// Segment строит маску пониженного разрешения. Поворот кадра для этого
// провайдера не важен: маска считается в системе координат кадра.
func (l *Luma) Segment(ctx context.Context, img image.Image, rotation entity.Rotation) (entity.Mask, bool, error) {
	_ = ctx
	_ = rotation
	if img == nil || l.MaskW <= 0 || l.MaskH <= 0 {
		return entity.Mask{}, false, nil
	}

	small := imaging.Resize(img, l.MaskW, l.MaskH, imaging.Box)
	gray := imaging.Grayscale(small)

	ref := borderMedian(gray)
	mask := entity.NewMask(l.MaskW, l.MaskH)
	for y := 0; y < l.MaskH; y++ {
		for x := 0; x < l.MaskW; x++ {
			d := float64(gray.NRGBAAt(x, y).R) - ref
			if d < 0 {
				d = -d
			}
			conf := d / l.Spread
			if conf > 1 {
				conf = 1
			}
			mask.Set(x, y, float32(conf))
		}
	}
	return mask, true, nil
}

// borderMedian — медианная яркость рамки кадра; её считаем яркостью фона.
func borderMedian(gray *image.NRGBA) float64 {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	vals := make([]int, 0, 2*(w+h))
	for x := 0; x < w; x++ {
		vals = append(vals, int(gray.NRGBAAt(x, 0).R), int(gray.NRGBAAt(x, h-1).R))
	}
	for y := 1; y < h-1; y++ {
		vals = append(vals, int(gray.NRGBAAt(0, y).R), int(gray.NRGBAAt(w-1, y).R))
	}
	if len(vals) == 0 {
		return 0
	}
	sort.Ints(vals)
	return float64(vals[len(vals)/2])
}

// Проверка реализации интерфейса
var _ port.SegmentationProvider = (*Luma)(nil)
