package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/home/notifications/model"
)

type NotificationResponse struct {
	NotificationID        uuid.UUID      `json:"notification_id"`
	NotificationKind      string         `json:"notification_kind"`
	NotificationPayload   map[string]any `json:"notification_payload,omitempty"`
	NotificationReadAt    *time.Time     `json:"notification_read_at,omitempty"`
	NotificationCreatedAt time.Time      `json:"notification_created_at"`
}

func ToNotificationResponse(m *model.NotificationModel) NotificationResponse {
	return NotificationResponse{
		NotificationID:        m.NotificationID,
		NotificationKind:      m.NotificationKind,
		NotificationPayload:   m.NotificationPayload,
		NotificationReadAt:    m.NotificationReadAt,
		NotificationCreatedAt: m.NotificationCreatedAt,
	}
}

func ToNotificationResponseList(models []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(models))
	for i := range models {
		out = append(out, ToNotificationResponse(&models[i]))
	}
	return out
}
