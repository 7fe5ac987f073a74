package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"health-bridge-server/internal/models"
	"health-bridge-server/internal/utils"
)

// WorkerHandler handles worker registry requests made by doctor and
// government accounts.
type WorkerHandler struct {
	DB *gorm.DB
}

// NewWorkerHandler creates a new WorkerHandler.
func NewWorkerHandler(db *gorm.DB) *WorkerHandler {
	return &WorkerHandler{DB: db}
}

// CreateWorkerRequest represents the request body for registering a worker.
type CreateWorkerRequest struct {
	UniqueID        string   `json:"uniqueId" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	Age             *int     `json:"age"`
	Gender          string   `json:"gender"`
	OriginState     string   `json:"originState"`
	Phone           string   `json:"phone"`
	CurrentDistrict string   `json:"currentDistrict"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// CreateWorker handles registering a new worker. Only accessible by doctors.
func (h *WorkerHandler) CreateWorker(c *gin.Context) {
	var req CreateWorkerRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	worker := models.Worker{
		UniqueID:        req.UniqueID,
		Name:            req.Name,
		Age:             req.Age,
		Gender:          req.Gender,
		OriginState:     req.OriginState,
		Phone:           req.Phone,
		CurrentDistrict: req.CurrentDistrict,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}

	if err := h.DB.Create(&worker).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			utils.Conflict(c, "Worker with this ID already exists")
			return
		}
		utils.InternalServerError(c, "Failed to create worker: "+err.Error())
		return
	}

	utils.Created(c, "Worker registered successfully", worker.Sanitize())
}

// GetWorkerByUniqueID handles fetching a worker by their external unique ID.
func (h *WorkerHandler) GetWorkerByUniqueID(c *gin.Context) {
	uniqueID := c.Param("uniqueId")

	var worker models.Worker
	if err := h.DB.Where("unique_id = ?", uniqueID).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Worker not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Worker fetched successfully", worker.Sanitize())
}

// PrescriptionWithDoctor augments a prescription row with the author's name.
type PrescriptionWithDoctor struct {
	models.Prescription
	DoctorName string `json:"doctorName,omitempty"`
}

// WorkerHistoryResponse represents a worker's medical history.
type WorkerHistoryResponse struct {
	Worker  models.WorkerSanitized   `json:"worker"`
	History []PrescriptionWithDoctor `json:"history"`
}

// GetWorkerHistory handles fetching a worker's prescription history.
func (h *WorkerHandler) GetWorkerHistory(c *gin.Context) {
	uniqueID := c.Param("uniqueId")

	var worker models.Worker
	if err := h.DB.Where("unique_id = ?", uniqueID).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Worker not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var history []PrescriptionWithDoctor
	err := h.DB.Model(&models.Prescription{}).
		Select("prescriptions.*, users.name AS doctor_name").
		Joins("LEFT JOIN users ON users.id = prescriptions.doctor_id").
		Where("prescriptions.worker_id = ?", worker.ID).
		Order("prescriptions.created_at DESC").
		Scan(&history).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch history: "+err.Error())
		return
	}

	utils.Success(c, "Worker history fetched successfully", WorkerHistoryResponse{
		Worker:  worker.Sanitize(),
		History: history,
	})
}

// ListWorkers handles listing workers with optional district filter and
// pagination. Intended for the government dashboard.
func (h *WorkerHandler) ListWorkers(c *gin.Context) {
	limit, offset := parsePagination(c)

	query := h.DB.Model(&models.Worker{})
	if district := c.Query("district"); district != "" {
		query = query.Where("current_district = ?", district)
	}

	var workers []models.Worker
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&workers).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch workers: "+err.Error())
		return
	}

	sanitized := make([]models.WorkerSanitized, 0, len(workers))
	for i := range workers {
		sanitized = append(sanitized, workers[i].Sanitize())
	}

	utils.Success(c, "Workers fetched successfully", gin.H{"workers": sanitized})
}

// parsePagination reads limit/offset query params with the defaults the
// dashboards expect (50/0). Bad values fall back to the defaults.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
