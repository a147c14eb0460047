package worker

import (
	"github.com/spec-kit/places-service/internal/service"
)

// StartModerationWorker registers moderation notification handlers.
func StartModerationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
