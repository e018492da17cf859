package persistent

import (
	"billtrack/internal/entity"
	"billtrack/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Fullname:  m.Fullname,
		Phone:     m.Phone,
		Email:     m.Email,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Fullname:  e.Fullname,
		Phone:     e.Phone,
		Email:     e.Email,
		Password:  e.Password,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToBillEntity(m *model.BillModel) *entity.Bill {
	if m == nil {
		return nil
	}

	return &entity.Bill{
		ID:             m.ID,
		UserID:         m.UserID,
		Title:          m.Title,
		Description:    m.Description,
		Amount:         m.Amount,
		DueDate:        m.DueDate,
		ReminderPolicy: entity.ReminderPolicy(m.ReminderTime),
		Status:         entity.BillStatus(m.Status),
		ReceiptURL:     m.ReceiptURL,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToBillModel(e *entity.Bill) *model.BillModel {
	if e == nil {
		return nil
	}

	return &model.BillModel{
		ID:           e.ID,
		UserID:       e.UserID,
		Title:        e.Title,
		Description:  e.Description,
		Amount:       e.Amount,
		DueDate:      e.DueDate,
		ReminderTime: string(e.ReminderPolicy),
		Status:       string(e.Status),
		ReceiptURL:   e.ReceiptURL,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToNotificationEntity(m *model.NotificationModel) *entity.Notification {
	if m == nil {
		return nil
	}

	billID := ""
	if m.BillID != nil {
		billID = *m.BillID
	}

	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		BillID:    billID,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
