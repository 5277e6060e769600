package app

import (
	"context"
	"errors"
	"image"

	"docscan/internal/domain/entity"
	"docscan/internal/domain/port"
)

// ScanService прогоняет кадр через конвейер: сегментация → поиск
// четырёхугольника → перевод в координаты кадра → выпрямление.
// Сервис не хранит состояния между вызовами: каждый кадр независим,
// поэтому параллельные вызовы не требуют синхронизации.
type ScanService struct {
	segmenter port.SegmentationProvider
	detector  port.QuadDetector
	rectifier port.DocumentRectifier
	relaxed   bool
}

// NewScanService создаёт сервис сканирования.
// relaxed разрешает ограничивающий четырёхугольник для областей,
// не упрощающихся ровно до четырёх вершин.
func NewScanService(segmenter port.SegmentationProvider, detector port.QuadDetector, rectifier port.DocumentRectifier, relaxed bool) *ScanService {
	return &ScanService{
		segmenter: segmenter,
		detector:  detector,
		rectifier: rectifier,
		relaxed:   relaxed,
	}
}

// Scan выполняет полный прогон для снятого кадра и возвращает выровненный
// скан. (nil, false, nil) — документ не найден: пустая маска, слишком
// маленькая область или не-четырёхугольный контур в строгом режиме.
// Контекст проверяется между стадиями: прерывание возможно на границах,
// но не внутри стадии.
func (s *ScanService) Scan(ctx context.Context, img image.Image, rotation entity.Rotation) (image.Image, bool, error) {
	quad, mask, ok, err := s.detect(ctx, img, rotation)
	if err != nil || !ok {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	out, err := s.rectifier.Extract(img, quad, rotation, mask)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// DetectPreview ищет четырёхугольник без выпрямления и возвращает его в
// координатах кадра — для отрисовки оверлея живого предпросмотра.
func (s *ScanService) DetectPreview(ctx context.Context, img image.Image, rotation entity.Rotation) (entity.Quad, bool, error) {
	quad, _, ok, err := s.detect(ctx, img, rotation)
	if err != nil || !ok {
		return entity.Quad{}, false, err
	}
	return quad, true, nil
}

// detect — общая часть обоих путей: маска, поиск, масштабирование
// из координат маски в координаты кадра.
func (s *ScanService) detect(ctx context.Context, img image.Image, rotation entity.Rotation) (entity.Quad, entity.Mask, bool, error) {
	if s.segmenter == nil || s.detector == nil || s.rectifier == nil {
		return entity.Quad{}, entity.Mask{}, false, errors.New("pipeline is not configured")
	}
	if img == nil {
		return entity.Quad{}, entity.Mask{}, false, nil
	}

	mask, ok, err := s.segmenter.Segment(ctx, img, rotation)
	if err != nil {
		return entity.Quad{}, entity.Mask{}, false, err
	}
	// отсутствие маски — «документ не найден», а не ошибка
	if !ok || mask.Empty() {
		return entity.Quad{}, entity.Mask{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return entity.Quad{}, entity.Mask{}, false, err
	}

	quad, found := s.detector.Detect(mask, s.relaxed)
	if !found {
		return entity.Quad{}, entity.Mask{}, false, nil
	}

	b := img.Bounds()
	scaled := quad.ScaledTo(float64(mask.W), float64(mask.H), float64(b.Dx()), float64(b.Dy()))
	return scaled, mask, true, nil
}
