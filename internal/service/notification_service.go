package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/cafe-feedback/internal/config"
	"github.com/spec-kit/cafe-feedback/internal/events"
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
	n.dispatcher.Subscribe(events.EventFeedbackSubmitted, n.handleFeedbackSubmitted)
	n.dispatcher.Subscribe(events.EventRelayDelivered, n.handleRelayDelivered)
	n.dispatcher.Subscribe(events.EventRelayFailed, n.handleRelayFailed)
	n.dispatcher.Subscribe(events.EventRosterImported, n.handleRosterImported)
}

func (n *NotificationService) handleFeedbackSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("FeedbackSubmitted", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRelayDelivered(ctx context.Context, event events.Event) error {
	n.logger.Info("RelayDelivered", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRelayFailed(ctx context.Context, event events.Event) error {
	n.logger.Warn("RelayFailed", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRosterImported(ctx context.Context, event events.Event) error {
	n.logger.Info("RosterImported", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
