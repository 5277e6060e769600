package segmentation

import (
	"context"
	"image"

	"docscan/internal/domain/entity"
	"docscan/internal/domain/port"
)

// ProviderFunc адаптирует функцию к порту SegmentationProvider —
// так внешняя ML-модель подключается без отдельного типа.
type ProviderFunc func(ctx context.Context, img image.Image, rotation entity.Rotation) (entity.Mask, bool, error)

// Segment вызывает обёрнутую функцию.
func (f ProviderFunc) Segment(ctx context.Context, img image.Image, rotation entity.Rotation) (entity.Mask, bool, error) {
	return f(ctx, img, rotation)
}

// Проверка реализации интерфейса
var _ port.SegmentationProvider = (ProviderFunc)(nil)
