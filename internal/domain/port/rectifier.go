package port

import (
	"image"

	"docscan/internal/domain/entity"
)

// DocumentRectifier строит выровненный скан документа по четырёхугольнику.
type DocumentRectifier interface {
	// Extract выпрямляет область quad кадра img с учётом поворота rotation.
	// Маска, пропущенная через ту же гомографию, затирает фон у краёв;
	// геометрию задаёт только четырёхугольник. Вырожденный quad —
	// entity.ErrInvalidQuad.
	Extract(img image.Image, quad entity.Quad, rotation entity.Rotation, mask entity.Mask) (image.Image, error)
}
