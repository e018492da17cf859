package http

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"billtrack/internal/entity"
	"billtrack/internal/usecase"

	"github.com/gin-gonic/gin"
)

const dueDateLayout = "2006-01-02"

type BillHandler struct {
	billUseCase usecase.BillUseCase
	loc         *time.Location
}

func NewBillHandler(billUseCase usecase.BillUseCase, loc *time.Location) *BillHandler {
	return &BillHandler{
		billUseCase: billUseCase,
		loc:         loc,
	}
}

type CreateBillRequest struct {
	Title        string  `json:"title" binding:"required,max=100"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	DueDate      string  `json:"due_date" binding:"required"`
	ReminderTime string  `json:"reminder_time" binding:"required"`
}

type UpdateBillRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Amount       *float64 `json:"amount"`
	DueDate      *string  `json:"due_date"`
	ReminderTime *string  `json:"reminder_time"`
	Status       *string  `json:"status"`
}

// CreateBill godoc
// @Summary      Add a bill
// @Description  Create a new bill for the authenticated user
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateBillRequest true "Bill data"
// @Success      201  {object}  entity.Bill
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Parsed in the operational timezone so the date written here is the
	// calendar date the reminder evaluator sees.
	dueDate, err := time.ParseInLocation(dueDateLayout, req.DueDate, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be formatted as YYYY-MM-DD"})
		return
	}

	bill, err := h.billUseCase.Create(userID, req.Title, req.Description, req.Amount,
		dueDate, entity.ReminderPolicy(req.ReminderTime))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// GetBills godoc
// @Summary      List bills
// @Description  Get the authenticated user's bills, optionally filtered by creation month
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        month query int false "Month (1-12), requires year"
// @Param        year query int false "Year, requires month"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /bills [get]
func (h *BillHandler) GetBills(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	bills, err := h.billUseCase.List(userID, month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bills": bills,
		"count": len(bills),
	})
}

// UpdateBill godoc
// @Summary      Update a bill
// @Description  Partially update a bill; only provided fields change
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill ID"
// @Param        request body UpdateBillRequest true "Fields to update"
// @Success      200  {object}  entity.Bill
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bills/{id} [patch]
func (h *BillHandler) UpdateBill(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := usecase.BillUpdate{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.DueDate != nil {
		dueDate, err := time.ParseInLocation(dueDateLayout, *req.DueDate, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be formatted as YYYY-MM-DD"})
			return
		}
		update.DueDate = &dueDate
	}
	if req.ReminderTime != nil {
		policy := entity.ReminderPolicy(*req.ReminderTime)
		update.ReminderPolicy = &policy
	}
	if req.Status != nil {
		status := entity.BillStatus(*req.Status)
		update.Status = &status
	}

	bill, err := h.billUseCase.Update(userID, c.Param("id"), update)
	if err != nil {
		switch err.Error() {
		case "bill not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "invalid status value":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, bill)
}

// DeleteBill godoc
// @Summary      Delete a bill
// @Description  Delete a bill; previously issued notifications are kept
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	billID := c.Param("id")
	if err := h.billUseCase.Delete(userID, billID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully", "bill_id": billID})
}

// UploadReceipt godoc
// @Summary      Attach a receipt
// @Description  Upload a receipt image for a bill
// @Tags         bills
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill ID"
// @Param        receipt formData file true "Receipt image file"
// @Success      200  {object}  entity.Bill
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /bills/{id}/receipt [post]
func (h *BillHandler) UploadReceipt(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt file is required"})
		return
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file format. Only jpg, jpeg, png, pdf are allowed"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	bill, err := h.billUseCase.AttachReceipt(userID, c.Param("id"), src, ext, contentType)
	if err != nil {
		if err.Error() == "bill not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, bill)
}
