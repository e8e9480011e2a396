package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/service"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

type promotionDeliverer interface {
	DeliverPromotion(ctx context.Context, p dto.Promotion) error
}

// Promotions delivers event.promoted messages to the promoted members.
type Promotions struct {
	logger    *types.Logger
	deliverer promotionDeliverer

	// retryDelay is waited before a failed delivery is put back on the queue.
	retryDelay time.Duration
}

func NewPromotions(logger *types.Logger, deliverer promotionDeliverer) *Promotions {
	return &Promotions{
		logger:     logger,
		deliverer:  deliverer,
		retryDelay: time.Second,
	}
}

// Run handles deliveries until ctx is done or the channel is closed.
func (w *Promotions) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	w.logger.Info("promotion worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("promotion worker stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				w.logger.Warn("promotion deliveries channel closed")
				return
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Promotions) handle(ctx context.Context, d amqp.Delivery) {
	var p dto.Promotion
	if err := json.Unmarshal(d.Body, &p); err != nil || p.UserID == "" || p.EventID == "" {
		w.logger.Errorf("dropping malformed promotion message (key=%s): %s", d.RoutingKey, d.Body)
		if err = d.Nack(false, false); err != nil {
			w.logger.Errorf("failed to nack promotion message: %v", err)
		}
		return
	}

	err := w.deliverer.DeliverPromotion(ctx, p)
	switch {
	case errors.Is(err, service.ErrDeliveryRetry):
		w.logger.Errorf("(user: %s) promotion delivery failed, requeueing (event_id=%s): %v", p.UserID, p.EventID, err)
		select {
		case <-ctx.Done():
		case <-time.After(w.retryDelay):
		}
		err = d.Nack(false, true)
	case err != nil:
		w.logger.Warnf("(user: %s) promotion dropped (event_id=%s): %v", p.UserID, p.EventID, err)
		err = d.Ack(false)
	default:
		err = d.Ack(false)
	}
	if err != nil {
		w.logger.Errorf("(user: %s) failed to acknowledge promotion message: %v", p.UserID, err)
	}
}
