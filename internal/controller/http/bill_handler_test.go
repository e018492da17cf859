package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"billtrack/internal/entity"
	"billtrack/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeBillUseCase struct {
	bills     []entity.Bill
	createErr error
}

func (f *fakeBillUseCase) Create(userID, title, description string, amount float64, dueDate time.Time, policy entity.ReminderPolicy) (*entity.Bill, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	bill := entity.Bill{
		ID:             "bill-1",
		UserID:         userID,
		Title:          title,
		Description:    description,
		Amount:         amount,
		DueDate:        dueDate,
		ReminderPolicy: policy,
		Status:         entity.StatusUnpaid,
	}
	f.bills = append(f.bills, bill)
	return &bill, nil
}

func (f *fakeBillUseCase) List(userID string, month, year int) ([]entity.Bill, error) {
	return f.bills, nil
}

func (f *fakeBillUseCase) Update(userID, billID string, update usecase.BillUpdate) (*entity.Bill, error) {
	for i := range f.bills {
		if f.bills[i].ID == billID && f.bills[i].UserID == userID {
			if update.Status != nil {
				if *update.Status != entity.StatusPaid && *update.Status != entity.StatusUnpaid {
					return nil, fmt.Errorf("invalid status value")
				}
				f.bills[i].Status = *update.Status
			}
			if update.Title != nil {
				f.bills[i].Title = *update.Title
			}
			return &f.bills[i], nil
		}
	}
	return nil, fmt.Errorf("bill not found")
}

func (f *fakeBillUseCase) Delete(userID, billID string) error {
	for i := range f.bills {
		if f.bills[i].ID == billID && f.bills[i].UserID == userID {
			f.bills = append(f.bills[:i], f.bills[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("bill not found")
}

func (f *fakeBillUseCase) AttachReceipt(userID, billID string, file io.Reader, ext, contentType string) (*entity.Bill, error) {
	return nil, fmt.Errorf("bill not found")
}

func setupBillTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestCreateBill_Unauthorized(t *testing.T) {
	handler := NewBillHandler(&fakeBillUseCase{}, time.UTC)

	router := setupBillTestRouter()
	router.POST("/bills", handler.CreateBill)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/bills", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBill_Success(t *testing.T) {
	handler := NewBillHandler(&fakeBillUseCase{}, time.UTC)

	router := setupBillTestRouter()
	router.POST("/bills", withUserID("user-1"), handler.CreateBill)

	body, _ := json.Marshal(map[string]interface{}{
		"title":         "Electric",
		"amount":        42.50,
		"due_date":      "2024-03-10",
		"reminder_time": "3_days_ago",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/bills", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var bill entity.Bill
	json.Unmarshal(w.Body.Bytes(), &bill)
	assert.Equal(t, "Electric", bill.Title)
	assert.Equal(t, entity.StatusUnpaid, bill.Status)
}

func TestCreateBill_DueDateInOperationalTimezone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	uc := &fakeBillUseCase{}
	handler := NewBillHandler(uc, loc)

	router := setupBillTestRouter()
	router.POST("/bills", withUserID("user-1"), handler.CreateBill)

	body, _ := json.Marshal(map[string]interface{}{
		"title":         "Electric",
		"amount":        42.50,
		"due_date":      "2024-03-10",
		"reminder_time": "3_days_ago",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/bills", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	// Midnight in the operational timezone, so the calendar date holds for
	// reminder matching in any configured zone
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, loc), uc.bills[0].DueDate)
}

func TestCreateBill_InvalidDueDate(t *testing.T) {
	handler := NewBillHandler(&fakeBillUseCase{}, time.UTC)

	router := setupBillTestRouter()
	router.POST("/bills", withUserID("user-1"), handler.CreateBill)

	body, _ := json.Marshal(map[string]interface{}{
		"title":         "Electric",
		"amount":        42.50,
		"due_date":      "10/03/2024",
		"reminder_time": "3_days_ago",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/bills", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBills_Unauthorized(t *testing.T) {
	handler := NewBillHandler(&fakeBillUseCase{}, time.UTC)

	router := setupBillTestRouter()
	router.GET("/bills", handler.GetBills)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/bills", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetBills_Success(t *testing.T) {
	uc := &fakeBillUseCase{bills: []entity.Bill{
		{ID: "bill-1", UserID: "user-1", Title: "Electric"},
		{ID: "bill-2", UserID: "user-1", Title: "Water"},
	}}
	handler := NewBillHandler(uc, time.UTC)

	router := setupBillTestRouter()
	router.GET("/bills", withUserID("user-1"), handler.GetBills)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/bills", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])
}

func TestUpdateBill_NotFound(t *testing.T) {
	handler := NewBillHandler(&fakeBillUseCase{}, time.UTC)

	router := setupBillTestRouter()
	router.PATCH("/bills/:id", withUserID("user-1"), handler.UpdateBill)

	body, _ := json.Marshal(map[string]interface{}{"status": "paid"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/bills/missing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBill_MarkPaid(t *testing.T) {
	uc := &fakeBillUseCase{bills: []entity.Bill{
		{ID: "bill-1", UserID: "user-1", Title: "Electric", Status: entity.StatusUnpaid},
	}}
	handler := NewBillHandler(uc, time.UTC)

	router := setupBillTestRouter()
	router.PATCH("/bills/:id", withUserID("user-1"), handler.UpdateBill)

	body, _ := json.Marshal(map[string]interface{}{"status": "paid"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/bills/bill-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var bill entity.Bill
	json.Unmarshal(w.Body.Bytes(), &bill)
	assert.Equal(t, entity.StatusPaid, bill.Status)
}

func TestUpdateBill_InvalidStatus(t *testing.T) {
	uc := &fakeBillUseCase{bills: []entity.Bill{
		{ID: "bill-1", UserID: "user-1", Status: entity.StatusUnpaid},
	}}
	handler := NewBillHandler(uc, time.UTC)

	router := setupBillTestRouter()
	router.PATCH("/bills/:id", withUserID("user-1"), handler.UpdateBill)

	body, _ := json.Marshal(map[string]interface{}{"status": "overdue"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/bills/bill-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBill_Success(t *testing.T) {
	uc := &fakeBillUseCase{bills: []entity.Bill{
		{ID: "bill-1", UserID: "user-1"},
	}}
	handler := NewBillHandler(uc, time.UTC)

	router := setupBillTestRouter()
	router.DELETE("/bills/:id", withUserID("user-1"), handler.DeleteBill)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/bills/bill-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, uc.bills)
}

func TestDeleteBill_NotFound(t *testing.T) {
	handler := NewBillHandler(&fakeBillUseCase{}, time.UTC)

	router := setupBillTestRouter()
	router.DELETE("/bills/:id", withUserID("user-1"), handler.DeleteBill)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/bills/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadReceipt_MissingFile(t *testing.T) {
	handler := NewBillHandler(&fakeBillUseCase{}, time.UTC)

	router := setupBillTestRouter()
	router.POST("/bills/:id/receipt", withUserID("user-1"), handler.UploadReceipt)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/bills/bill-1/receipt", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
