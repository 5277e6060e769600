package app

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"docscan/internal/domain/entity"
	"docscan/internal/infrastructure/vision"
)

// segmentFunc — подмена провайдера сегментации в тестах.
type segmentFunc func(ctx context.Context, img image.Image, rotation entity.Rotation) (entity.Mask, bool, error)

func (f segmentFunc) Segment(ctx context.Context, img image.Image, rotation entity.Rotation) (entity.Mask, bool, error) {
	return f(ctx, img, rotation)
}

// centeredSquareMask возвращает маску 100x100 с квадратом 20..80.
func centeredSquareMask() entity.Mask {
	m := entity.NewMask(100, 100)
	for y := 20; y <= 80; y++ {
		for x := 20; x <= 80; x++ {
			m.Set(x, y, 1)
		}
	}
	return m
}

func fixedSegmenter(mask entity.Mask, ok bool, err error) segmentFunc {
	return func(context.Context, image.Image, entity.Rotation) (entity.Mask, bool, error) {
		return mask, ok, err
	}
}

func newTestService(seg segmentFunc) *ScanService {
	return NewScanService(seg, vision.NewDetector(), vision.NewRectifier(), true)
}

func TestScanService_Scan(t *testing.T) {
	svc := newTestService(fixedSegmenter(centeredSquareMask(), true, nil))
	img := image.NewNRGBA(image.Rect(0, 0, 1000, 1000))

	out, found, err := svc.Scan(context.Background(), img, entity.Rotate0)
	require.NoError(t, err)
	require.True(t, found)
	// квадрат 20..80 в маске 100x100 -> 600x600 в кадре 1000x1000
	require.Equal(t, 600, out.Bounds().Dx())
	require.Equal(t, 600, out.Bounds().Dy())
}

func TestScanService_NoMaskMeansNotFound(t *testing.T) {
	svc := newTestService(fixedSegmenter(entity.Mask{}, false, nil))
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))

	out, found, err := svc.Scan(context.Background(), img, entity.Rotate0)
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, out)
}

func TestScanService_SegmenterErrorPropagates(t *testing.T) {
	boom := errors.New("session lost")
	svc := newTestService(fixedSegmenter(entity.Mask{}, false, boom))
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))

	_, found, err := svc.Scan(context.Background(), img, entity.Rotate0)
	require.ErrorIs(t, err, boom)
	require.False(t, found)
}

func TestScanService_CancelledContext(t *testing.T) {
	svc := newTestService(fixedSegmenter(centeredSquareMask(), true, nil))
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, found, err := svc.Scan(ctx, img, entity.Rotate0)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, found)
}

func TestScanService_NilImage(t *testing.T) {
	svc := newTestService(fixedSegmenter(centeredSquareMask(), true, nil))

	out, found, err := svc.Scan(context.Background(), nil, entity.Rotate0)
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, out)
}

func TestScanService_NotConfigured(t *testing.T) {
	svc := NewScanService(nil, nil, nil, true)
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))

	_, _, err := svc.Scan(context.Background(), img, entity.Rotate0)
	require.Error(t, err)
}

func TestScanService_DetectPreviewScalesToFrame(t *testing.T) {
	svc := newTestService(fixedSegmenter(centeredSquareMask(), true, nil))
	img := image.NewNRGBA(image.Rect(0, 0, 1000, 1000))

	quad, found, err := svc.DetectPreview(context.Background(), img, entity.Rotate0)
	require.NoError(t, err)
	require.True(t, found)
	require.InDelta(t, 200, quad.TL.X, 20)
	require.InDelta(t, 200, quad.TL.Y, 20)
	require.InDelta(t, 800, quad.BR.X, 20)
	require.InDelta(t, 800, quad.BR.Y, 20)
}
