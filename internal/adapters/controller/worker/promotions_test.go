package worker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/service"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ackRecorder struct {
	mu      sync.Mutex
	results map[uint64]string
}

func (a *ackRecorder) Ack(tag uint64, _ bool) error {
	a.set(tag, "ack")
	return nil
}

func (a *ackRecorder) Nack(tag uint64, _ bool, requeue bool) error {
	if requeue {
		a.set(tag, "requeue")
	} else {
		a.set(tag, "drop")
	}
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *ackRecorder) set(tag uint64, result string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results[tag] = result
}

type stubDeliverer struct {
	errs      map[string]error
	delivered []dto.Promotion
}

func (s *stubDeliverer) DeliverPromotion(_ context.Context, p dto.Promotion) error {
	s.delivered = append(s.delivered, p)
	return s.errs[p.UserID]
}

func TestPromotions_Run(t *testing.T) {
	acks := &ackRecorder{results: map[uint64]string{}}
	deliverer := &stubDeliverer{errs: map[string]error{
		"retry": fmt.Errorf("%w: connection reset", service.ErrDeliveryRetry),
		"gone":  errorz.ErrNotFound,
	}}
	w := NewPromotions(types.Nop(), deliverer)
	w.retryDelay = 0

	bodies := []string{
		`{"event_id":"ev-1","user_id":"alice","event_title":"Quiz night"}`,
		`{"event_id":"ev-1","user_id":"retry"}`,
		`{"event_id":"ev-1","user_id":"gone"}`,
		`not json`,
		`{"event_id":"ev-1"}`,
	}
	ch := make(chan amqp.Delivery, len(bodies))
	for i, body := range bodies {
		ch <- amqp.Delivery{
			Acknowledger: acks,
			DeliveryTag:  uint64(i + 1),
			RoutingKey:   dto.PromotionRoutingKey,
			Body:         []byte(body),
		}
	}
	close(ch)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background(), ch)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after the channel was closed")
	}

	assert.Equal(t, map[uint64]string{
		1: "ack",
		2: "requeue",
		3: "ack",
		4: "drop",
		5: "drop",
	}, acks.results)
	require.Len(t, deliverer.delivered, 3)
	assert.Equal(t, "alice", deliverer.delivered[0].UserID)
	assert.Equal(t, "Quiz night", deliverer.delivered[0].EventTitle)
}

func TestPromotions_StopsOnCancel(t *testing.T) {
	w := NewPromotions(types.Nop(), &stubDeliverer{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Run(ctx, make(chan amqp.Delivery))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker ignored cancellation")
	}
}
