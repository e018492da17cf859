package persistent

import (
	"time"

	"billtrack/internal/entity"
	"billtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillRepository interface {
	Create(bill *entity.Bill) error
	GetByID(id, userID string) (*entity.Bill, error)
	ListByUser(userID string, month, year int, loc *time.Location) ([]entity.Bill, error)
	ListUnpaid() ([]entity.Bill, error)
	Update(bill *entity.Bill) error
	Delete(id, userID string) error
}

type billRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(bill *entity.Bill) error {
	billModel := ToBillModel(bill)
	if billModel.ID == "" {
		billModel.ID = uuid.New().String()
	}
	if err := r.db.Create(billModel).Error; err != nil {
		return err
	}
	*bill = *ToBillEntity(billModel)
	return nil
}

func (r *billRepository) GetByID(id, userID string) (*entity.Bill, error) {
	var billModel model.BillModel
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&billModel).Error; err != nil {
		return nil, err
	}
	return ToBillEntity(&billModel), nil
}

func (r *billRepository) ListByUser(userID string, month, year int, loc *time.Location) ([]entity.Bill, error) {
	query := r.db.Where("user_id = ?", userID)

	if month >= 1 && month <= 12 && year > 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0)
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}

	var billModels []model.BillModel
	if err := query.Order("created_at DESC").Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]entity.Bill, len(billModels))
	for i := range billModels {
		bills[i] = *ToBillEntity(&billModels[i])
	}
	return bills, nil
}

func (r *billRepository) ListUnpaid() ([]entity.Bill, error) {
	var billModels []model.BillModel
	if err := r.db.Where("status = ?", string(entity.StatusUnpaid)).Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]entity.Bill, len(billModels))
	for i := range billModels {
		bills[i] = *ToBillEntity(&billModels[i])
	}
	return bills, nil
}

func (r *billRepository) Update(bill *entity.Bill) error {
	billModel := ToBillModel(bill)
	return r.db.Save(billModel).Error
}

func (r *billRepository) Delete(id, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.BillModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
