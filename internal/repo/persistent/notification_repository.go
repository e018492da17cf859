package persistent

import (
	"billtrack/internal/entity"
	"billtrack/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository interface {
	Exists(userID, billID, message string) (bool, error)
	// Insert persists a new notification. The second return value reports
	// whether a row was actually created; false means an identical
	// (user, bill, message) row already existed and the insert was dropped
	// by the unique constraint.
	Insert(userID, billID, message string) (*entity.Notification, bool, error)
	ListByUser(userID string, limit, offset int) ([]entity.Notification, int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Exists(userID, billID, message string) (bool, error) {
	var count int64
	err := r.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND bill_id = ? AND message = ?", userID, billID, message).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *notificationRepository) Insert(userID, billID, message string) (*entity.Notification, bool, error) {
	notificationModel := &model.NotificationModel{
		UserID:  userID,
		BillID:  &billID,
		Message: message,
	}

	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(notificationModel)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return ToNotificationEntity(notificationModel), true, nil
}

func (r *notificationRepository) ListByUser(userID string, limit, offset int) ([]entity.Notification, int64, error) {
	var totalCount int64
	if err := r.db.Model(&model.NotificationModel{}).Where("user_id = ?", userID).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var notificationModels []model.NotificationModel
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notificationModels).Error
	if err != nil {
		return nil, 0, err
	}

	notifications := make([]entity.Notification, len(notificationModels))
	for i := range notificationModels {
		notifications[i] = *ToNotificationEntity(&notificationModels[i])
	}
	return notifications, totalCount, nil
}
