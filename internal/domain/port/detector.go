package port

import "docscan/internal/domain/entity"

// QuadDetector ищет четырёхугольник документа на маске сегментации.
type QuadDetector interface {
	// Detect возвращает упорядоченный четырёхугольник в координатах маски.
	// false — документ не найден; это нормальный исход, а не ошибка.
	// В строгом режиме (relaxed=false) принимается только контур, который
	// упрощается ровно до четырёх вершин.
	Detect(mask entity.Mask, relaxed bool) (entity.Quad, bool)
}
