package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"health-bridge-server/internal/middleware"
	"health-bridge-server/internal/models"
	"health-bridge-server/internal/utils"
)

// WorkerProfileHandler handles a worker's self-service profile endpoints.
type WorkerProfileHandler struct {
	DB *gorm.DB
}

// NewWorkerProfileHandler creates a new WorkerProfileHandler.
func NewWorkerProfileHandler(db *gorm.DB) *WorkerProfileHandler {
	return &WorkerProfileHandler{DB: db}
}

// GetProfile handles fetching the authenticated worker's profile.
func (h *WorkerProfileHandler) GetProfile(c *gin.Context) {
	workerID, exists := middleware.GetWorkerIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Worker not authenticated")
		return
	}

	var worker models.Worker
	if err := h.DB.First(&worker, "id = ?", workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Worker not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", worker.Sanitize())
}

// UpdateProfileRequest represents the request body for a worker updating
// their own contact and location fields.
type UpdateProfileRequest struct {
	Phone           string   `json:"phone"`
	CurrentDistrict string   `json:"currentDistrict"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// UpdateProfile handles a worker updating their own profile.
func (h *WorkerProfileHandler) UpdateProfile(c *gin.Context) {
	workerID, exists := middleware.GetWorkerIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Worker not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.CurrentDistrict != "" {
		updates["current_district"] = req.CurrentDistrict
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	var worker models.Worker
	if err := h.DB.First(&worker, "id = ?", workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Worker not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Model(&worker).Updates(updates).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, "Profile updated successfully", worker.Sanitize())
}

// GetPrescriptions handles a worker listing their own prescription history.
func (h *WorkerProfileHandler) GetPrescriptions(c *gin.Context) {
	workerID, exists := middleware.GetWorkerIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Worker not authenticated")
		return
	}

	var prescriptions []PrescriptionWithDoctor
	err := h.DB.Model(&models.Prescription{}).
		Select("prescriptions.*, users.name AS doctor_name").
		Joins("LEFT JOIN users ON users.id = prescriptions.doctor_id").
		Where("prescriptions.worker_id = ?", workerID).
		Order("prescriptions.created_at DESC").
		Scan(&prescriptions).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", gin.H{"prescriptions": prescriptions})
}
