package controller

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/notifications/dto"
	"sekolahku_backend/internals/features/home/notifications/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// 🟢 GET /api/u/notifications?unread=true, notifikasi milik user login + pagination
func (ctrl *NotificationController) GetMyNotifications(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	q := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_user_id = ?", userID)
	if c.Query("unread") == "true" {
		q = q.Where("notification_read_at IS NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] Count notifs: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var notifs []model.NotificationModel
	if err := q.
		Order("notification_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifs).Error; err != nil {
		log.Printf("[ERROR] List notifs: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"items": dto.ToNotificationResponseList(notifs),
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// 🟢 POST /api/u/notifications/:id/read, tandai terbaca (idempoten)
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID notifikasi tidak valid")
	}

	now := time.Now()
	res := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", id, userID).
		Where("notification_read_at IS NULL").
		Update("notification_read_at", now)
	if res.Error != nil {
		log.Printf("[ERROR] MarkRead: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}

	return helper.JsonUpdated(c, "Notifikasi ditandai terbaca", fiber.Map{
		"notification_id": id,
		"already_read":    res.RowsAffected == 0,
	})
}
