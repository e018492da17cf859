package usecase

import (
	"fmt"
	"io"
	"time"

	"billtrack/internal/entity"
	"billtrack/internal/repo/persistent"
	"billtrack/pkg/logger"
	"billtrack/pkg/s3"

	"github.com/google/uuid"
)

type BillUseCase interface {
	Create(userID, title, description string, amount float64, dueDate time.Time, policy entity.ReminderPolicy) (*entity.Bill, error)
	List(userID string, month, year int) ([]entity.Bill, error)
	Update(userID, billID string, update BillUpdate) (*entity.Bill, error)
	Delete(userID, billID string) error
	AttachReceipt(userID, billID string, file io.Reader, ext, contentType string) (*entity.Bill, error)
}

// BillUpdate carries a partial update; nil fields are left untouched.
type BillUpdate struct {
	Title          *string
	Description    *string
	Amount         *float64
	DueDate        *time.Time
	ReminderPolicy *entity.ReminderPolicy
	Status         *entity.BillStatus
}

type billUseCase struct {
	billRepo persistent.BillRepository
	s3Client *s3.Client
	loc      *time.Location
	logger   *logger.Logger
}

func NewBillUseCase(billRepo persistent.BillRepository, s3Client *s3.Client, loc *time.Location, logger *logger.Logger) BillUseCase {
	return &billUseCase{
		billRepo: billRepo,
		s3Client: s3Client,
		loc:      loc,
		logger:   logger,
	}
}

func (uc *billUseCase) Create(userID, title, description string, amount float64, dueDate time.Time, policy entity.ReminderPolicy) (*entity.Bill, error) {
	bill := &entity.Bill{
		UserID:         userID,
		Title:          title,
		Description:    description,
		Amount:         amount,
		DueDate:        dueDate,
		ReminderPolicy: policy,
		Status:         entity.StatusUnpaid,
	}

	if err := uc.billRepo.Create(bill); err != nil {
		uc.logger.Error("Failed to create bill for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to create bill")
	}
	return bill, nil
}

func (uc *billUseCase) List(userID string, month, year int) ([]entity.Bill, error) {
	bills, err := uc.billRepo.ListByUser(userID, month, year, uc.loc)
	if err != nil {
		uc.logger.Error("Failed to list bills for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch bills")
	}
	return bills, nil
}

func (uc *billUseCase) Update(userID, billID string, update BillUpdate) (*entity.Bill, error) {
	bill, err := uc.billRepo.GetByID(billID, userID)
	if err != nil {
		return nil, fmt.Errorf("bill not found")
	}

	if update.Status != nil && *update.Status != entity.StatusPaid && *update.Status != entity.StatusUnpaid {
		return nil, fmt.Errorf("invalid status value")
	}

	if update.Title != nil {
		bill.Title = *update.Title
	}
	if update.Description != nil {
		bill.Description = *update.Description
	}
	if update.Amount != nil {
		bill.Amount = *update.Amount
	}
	if update.DueDate != nil {
		bill.DueDate = *update.DueDate
	}
	if update.ReminderPolicy != nil {
		bill.ReminderPolicy = *update.ReminderPolicy
	}
	if update.Status != nil {
		bill.Status = *update.Status
	}

	if err := uc.billRepo.Update(bill); err != nil {
		uc.logger.Error("Failed to update bill %s: %v", billID, err)
		return nil, fmt.Errorf("failed to update bill")
	}
	return bill, nil
}

func (uc *billUseCase) Delete(userID, billID string) error {
	if err := uc.billRepo.Delete(billID, userID); err != nil {
		return fmt.Errorf("bill not found")
	}
	return nil
}

func (uc *billUseCase) AttachReceipt(userID, billID string, file io.Reader, ext, contentType string) (*entity.Bill, error) {
	bill, err := uc.billRepo.GetByID(billID, userID)
	if err != nil {
		return nil, fmt.Errorf("bill not found")
	}

	fileKey := fmt.Sprintf("receipts/%s/%s%s", userID, uuid.New().String(), ext)
	receiptURL, err := uc.s3Client.UploadFile(fileKey, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload receipt for bill %s: %v", billID, err)
		return nil, fmt.Errorf("failed to upload receipt")
	}

	bill.ReceiptURL = receiptURL
	if err := uc.billRepo.Update(bill); err != nil {
		uc.logger.Error("Failed to update bill %s: %v", billID, err)
		return nil, fmt.Errorf("failed to update bill")
	}
	return bill, nil
}
