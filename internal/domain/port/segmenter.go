package port

import (
	"context"
	"image"

	"docscan/internal/domain/entity"
)

// SegmentationProvider — внешний шаг сегментации (обычно ML-модель).
type SegmentationProvider interface {
	// Segment строит маску документа пониженного разрешения по кадру.
	// false означает «модель недоступна или документа нет» — конвейер
	// обязан трактовать это как отсутствие документа, а не как ошибку.
	Segment(ctx context.Context, img image.Image, rotation entity.Rotation) (entity.Mask, bool, error)
}
