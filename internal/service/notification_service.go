package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/campus-kit/registrar-service/internal/config"
	"github.com/campus-kit/registrar-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
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
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketReleased, n.handleTicketReleased)
	n.dispatcher.Subscribe(events.EventMaintenanceStatusChanged, n.handleMaintenanceStatusChanged)
	n.dispatcher.Subscribe(events.EventLibrarySignIn, n.handleLibrarySignIn)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketReleased(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketReleased", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMaintenanceStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("MaintenanceStatusChanged", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleLibrarySignIn(ctx context.Context, event events.Event) error {
	n.logger.Debug("LibrarySignIn", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("record_id", event.RecordID),
		zap.String("event_type", string(event.Type)))
}
