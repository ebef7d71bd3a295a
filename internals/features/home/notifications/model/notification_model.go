package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// NotificationModel: satu notifikasi tertuju ke satu user (siswa/wali).
// Ditulis oleh sink internal (mis. perubahan absensi); pengiriman push/email
// adalah urusan worker eksternal yang membaca tabel ini.
type NotificationModel struct {
	NotificationID        uuid.UUID         `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationSchoolID  *uuid.UUID        `gorm:"column:notification_school_id;type:uuid" json:"notification_school_id"` // nullable (notifikasi global)
	NotificationUserID    string            `gorm:"column:notification_user_id;type:varchar(120);not null;index" json:"notification_user_id"`
	NotificationKind      string            `gorm:"column:notification_kind;type:varchar(60);not null" json:"notification_kind"` // mis. "attendance_changed"
	NotificationPayload   datatypes.JSONMap `gorm:"column:notification_payload;type:jsonb" json:"notification_payload,omitempty"`
	NotificationTags      pq.StringArray    `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationReadAt    *time.Time        `gorm:"column:notification_read_at;type:timestamptz" json:"notification_read_at,omitempty"`
	NotificationCreatedAt time.Time         `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt time.Time         `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
