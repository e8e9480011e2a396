package service

import (
	"context"
	"sync"

	"github.com/pubquiz-fans/site/internal/domain/entity"
	qr "github.com/pubquiz-fans/site/pkg/qrcode"
)

type qrEventService interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

// QrService renders share codes that open an event page.
type QrService struct {
	eventService qrEventService
	qrCFG        qr.Config
	baseURL      string

	mu    sync.RWMutex
	cache map[string][]byte
}

func NewQrService(eventService qrEventService, qrCFG qr.Config, baseURL string) *QrService {
	return &QrService{
		eventService: eventService,
		qrCFG:        qrCFG,
		baseURL:      baseURL,
		cache:        make(map[string][]byte),
	}
}

// GetEventQR returns the PNG share code of the event. Images are kept in memory
// since the link of an event never changes.
func (s *QrService) GetEventQR(ctx context.Context, eventID string) ([]byte, error) {
	event, err := s.eventService.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.cache[event.ID]
	s.mu.RUnlock()
	if ok {
		return data, nil
	}

	data, err = s.qrCFG.Generate(event.Link(s.baseURL))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[event.ID] = data
	s.mu.Unlock()
	return data, nil
}
