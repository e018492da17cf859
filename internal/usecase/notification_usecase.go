package usecase

import (
	"fmt"
	"strconv"
	"time"

	"billtrack/internal/entity"
	"billtrack/internal/hub"
	"billtrack/internal/repo/persistent"
	"billtrack/pkg/logger"
)

// reminderOffsets maps a reminder policy to the number of days before the
// due date that its notification fires. Policies missing from this table are
// skipped by the evaluator, never treated as errors.
var reminderOffsets = map[entity.ReminderPolicy]int{
	entity.PolicySevenDaysBefore: 7,
	entity.PolicyThreeDaysBefore: 3,
	entity.PolicyOnDueDate:       0,
}

type NotificationUseCase interface {
	// EvaluateReminders runs one evaluation pass against the current bill
	// state and returns how many new notifications were issued. Running it
	// again with the same date and bill state issues nothing.
	EvaluateReminders(now time.Time) (int, error)
	GetNotifications(userID string, limit, offset int) ([]entity.Notification, int64, error)
}

type notificationUseCase struct {
	billRepo         persistent.BillRepository
	notificationRepo persistent.NotificationRepository
	hub              *hub.Hub
	loc              *time.Location
	logger           *logger.Logger
}

func NewNotificationUseCase(
	billRepo persistent.BillRepository,
	notificationRepo persistent.NotificationRepository,
	connectionHub *hub.Hub,
	loc *time.Location,
	logger *logger.Logger,
) NotificationUseCase {
	return &notificationUseCase{
		billRepo:         billRepo,
		notificationRepo: notificationRepo,
		hub:              connectionHub,
		loc:              loc,
		logger:           logger,
	}
}

func (uc *notificationUseCase) EvaluateReminders(now time.Time) (int, error) {
	today := dateOnly(now.In(uc.loc))

	bills, err := uc.billRepo.ListUnpaid()
	if err != nil {
		return 0, fmt.Errorf("failed to list unpaid bills: %w", err)
	}

	emitted := 0
	for i := range bills {
		bill := &bills[i]

		offset, ok := reminderOffsets[bill.ReminderPolicy]
		if !ok {
			uc.logger.Warn("Skipping bill %s: unknown reminder policy %q", bill.ID, bill.ReminderPolicy)
			continue
		}

		dueDate := dateOnly(bill.DueDate.In(uc.loc))
		reminderDate := dueDate.AddDate(0, 0, -offset)
		if !reminderDate.Equal(today) {
			continue
		}

		message := RenderReminder(bill.Title, bill.Amount, dueDate)

		exists, err := uc.notificationRepo.Exists(bill.UserID, bill.ID, message)
		if err != nil {
			uc.logger.Error("Failed to check notification for bill %s: %v", bill.ID, err)
			continue
		}
		if exists {
			continue
		}

		_, created, err := uc.notificationRepo.Insert(bill.UserID, bill.ID, message)
		if err != nil {
			uc.logger.Error("Failed to persist notification for bill %s: %v", bill.ID, err)
			continue
		}
		if !created {
			// A concurrent evaluation pass won the insert race.
			continue
		}

		emitted++
		uc.hub.SendToUser(bill.UserID, message)
	}

	return emitted, nil
}

func (uc *notificationUseCase) GetNotifications(userID string, limit, offset int) ([]entity.Notification, int64, error) {
	notifications, totalCount, err := uc.notificationRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, totalCount, nil
}

// RenderReminder produces the notification text for a bill. The output doubles
// as the deduplication key, so identical inputs must render byte-identical
// strings: the amount uses minimal decimal form and the date the fixed
// YYYY-MM-DD layout.
func RenderReminder(title string, amount float64, dueDate time.Time) string {
	return fmt.Sprintf("Reminder: Your bill '%s' of amount %s is due on %s.",
		title,
		strconv.FormatFloat(amount, 'f', -1, 64),
		dueDate.Format("2006-01-02"),
	)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
