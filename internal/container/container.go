package container

import (
	"docscan/config"
	app "docscan/internal/application"
	"docscan/internal/domain/port"
	"docscan/internal/infrastructure/segmentation"
	"docscan/internal/infrastructure/vision"
)

type Container struct {
	ScanService *app.ScanService
}

// New собирает конвейер. segmenter == nil подставляет демонстрационный
// сегментатор по яркости; в продукте сюда передаётся адаптер ML-модели.
func New(cfg *config.Config, segmenter port.SegmentationProvider) *Container {
	if segmenter == nil {
		segmenter = segmentation.NewLuma(cfg.MaskWidth, cfg.MaskHeight)
	}

	detector := vision.NewDetector()
	detector.MaskThreshold = float32(cfg.MaskThreshold)
	detector.MinAreaRatio = cfg.MinAreaRatio
	detector.SimplifyRatio = cfg.SimplifyRatio

	rectifier := vision.NewRectifier()
	rectifier.MatteThreshold = float32(cfg.MatteThreshold)

	return &Container{
		ScanService: app.NewScanService(segmenter, detector, rectifier, cfg.Relaxed),
	}
}

// NewPreview создаёт сервис живого предпросмотра поверх собранного конвейера.
func (c *Container) NewPreview(onResult func(app.PreviewResult)) *app.PreviewService {
	return app.NewPreviewService(c.ScanService, onResult)
}
