package worker

import (
	"go.uber.org/zap"

	"github.com/campus-kit/registrar-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to the event
// stream. Delivery is synchronous and in-process; there is no queue to
// drain on shutdown.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("notification worker subscribed to record events")
}
