package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventPlaceCreated, n.handlePlaceCreated)
	n.dispatcher.Subscribe(events.EventPlaceStatusChanged, n.handlePlaceStatusChanged)
}

func (n *NotificationService) handlePlaceCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("PlaceCreated", zap.String("place_id", event.PlaceID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePlaceStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("PlaceStatusChanged", zap.String("place_id", event.PlaceID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if n.cfg.WebhookURL == "" {
		return
	}
	n.logger.Info("webhook notification stub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event", string(event.Type)),
	)
}
