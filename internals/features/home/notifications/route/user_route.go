package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifCtrl "sekolahku_backend/internals/features/home/notifications/controller"
)

// Rute user: inbox notifikasi milik user login.
func NotificationUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := notifCtrl.NewNotificationController(db)

	grp := r.Group("/notifications")
	grp.Get("/", ctl.GetMyNotifications)
	grp.Post("/:id/read", ctl.MarkRead)
}
