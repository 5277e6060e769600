package app

import (
	"context"
	"errors"
	"image"
	"sync"

	"docscan/internal/domain/entity"
)

// PreviewFrame — кадр живого предпросмотра с подсказкой ориентации.
type PreviewFrame struct {
	Image    image.Image
	Rotation entity.Rotation
}

// PreviewResult — итог поиска по кадру для отрисовки оверлея.
type PreviewResult struct {
	Quad  entity.Quad // в координатах кадра
	Found bool
	Err   error
}

// PreviewService обрабатывает кадры предпросмотра по принципу «последний
// побеждает»: в очереди держится не более одного кадра, новый кадр
// вытесняет необработанный старый и отменяет контекст обрабатываемого.
// Так оверлей никогда не отстаёт больше чем на один кадр.
type PreviewService struct {
	scans    *ScanService
	onResult func(PreviewResult)

	mu       sync.Mutex
	inFlight context.CancelFunc
	closed   bool

	frames chan PreviewFrame
	done   chan struct{}
}

// NewPreviewService запускает обработчик предпросмотра.
// onResult вызывается из горутины обработчика для каждого кадра,
// не вытесненного более новым.
func NewPreviewService(scans *ScanService, onResult func(PreviewResult)) *PreviewService {
	s := &PreviewService{
		scans:    scans,
		onResult: onResult,
		frames:   make(chan PreviewFrame, 1),
		done:     make(chan struct{}),
	}
	go s.loop()
	return s
}

// Submit передаёт новый кадр. Никогда не блокируется: необработанный
// старый кадр выбрасывается, обработка текущего отменяется.
func (s *PreviewService) Submit(frame PreviewFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case <-s.frames:
	default:
	}
	s.frames <- frame
	if s.inFlight != nil {
		s.inFlight()
	}
}

// Close останавливает обработчик и дожидается его завершения.
// Повторные вызовы безопасны.
func (s *PreviewService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	if s.inFlight != nil {
		s.inFlight()
	}
	close(s.frames)
	s.mu.Unlock()
	<-s.done
}

func (s *PreviewService) loop() {
	defer close(s.done)
	for frame := range s.frames {
		ctx, cancel := context.WithCancel(context.Background())
		s.mu.Lock()
		s.inFlight = cancel
		s.mu.Unlock()

		quad, found, err := s.scans.DetectPreview(ctx, frame.Image, frame.Rotation)

		s.mu.Lock()
		s.inFlight = nil
		s.mu.Unlock()
		cancel()

		// вытесненный кадр молча пропускаем
		if errors.Is(err, context.Canceled) {
			continue
		}
		if s.onResult != nil {
			s.onResult(PreviewResult{Quad: quad, Found: found, Err: err})
		}
	}
}
