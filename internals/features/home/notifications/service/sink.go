// file: internals/features/home/notifications/service/sink.go
package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/notifications/model"
)

// GormNotificationSink menulis notifikasi ke tabel notifications.
// Fire-and-forget dari sudut pandang pemanggil: kegagalan tulis cukup di-log,
// tidak boleh menggagalkan commit yang memicunya.
type GormNotificationSink struct {
	DB *gorm.DB
}

func NewGormNotificationSink(db *gorm.DB) *GormNotificationSink {
	return &GormNotificationSink{DB: db}
}

func (s *GormNotificationSink) Notify(ctx context.Context, schoolID uuid.UUID, userID string, kind string, payload map[string]any) {
	row := model.NotificationModel{
		NotificationSchoolID: &schoolID,
		NotificationUserID:   userID,
		NotificationKind:     kind,
		NotificationPayload:  datatypes.JSONMap(payload),
		NotificationTags:     pq.StringArray{kind},
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("[NOTIF] gagal menulis notifikasi user=%s kind=%s: %v", userID, kind, err)
	}
}

// LogNotificationSink: sink no-op untuk dev/test, hanya mencatat.
type LogNotificationSink struct{}

func (LogNotificationSink) Notify(_ context.Context, schoolID uuid.UUID, userID string, kind string, payload map[string]any) {
	log.Printf("[NOTIF] school=%s user=%s kind=%s payload=%v", schoolID, userID, kind, payload)
}
