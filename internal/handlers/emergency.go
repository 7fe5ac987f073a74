package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"health-bridge-server/internal/middleware"
	"health-bridge-server/internal/models"
	"health-bridge-server/internal/realtime"
	"health-bridge-server/internal/utils"
)

// EmergencyHandler handles worker emergency requests and their lifecycle.
type EmergencyHandler struct {
	DB  *gorm.DB
	Hub realtime.Broadcaster
}

// NewEmergencyHandler creates a new EmergencyHandler.
func NewEmergencyHandler(db *gorm.DB, hub realtime.Broadcaster) *EmergencyHandler {
	return &EmergencyHandler{DB: db, Hub: hub}
}

// CreateEmergencyRequest represents the request body for an emergency call.
type CreateEmergencyRequest struct {
	Type        string   `json:"type" binding:"required"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// CreateEmergency handles a worker raising an emergency request. The event
// is addressed to the government and doctor rooms, not broadcast globally.
func (h *EmergencyHandler) CreateEmergency(c *gin.Context) {
	var req CreateEmergencyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	workerID, exists := middleware.GetWorkerIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Worker ID not found in token")
		return
	}

	emergency := models.EmergencyRequest{
		WorkerID:    workerID,
		Type:        req.Type,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      models.EmergencyStatusPending,
	}

	if err := h.DB.Create(&emergency).Error; err != nil {
		utils.InternalServerError(c, "Failed to create emergency request: "+err.Error())
		return
	}

	h.Hub.EmitTo("government", "newEmergency", emergency)
	h.Hub.EmitTo("doctor", "newEmergency", emergency)

	utils.Created(c, "Emergency request created", emergency)
}

// GetMyEmergencies handles a worker listing their own emergency requests.
func (h *EmergencyHandler) GetMyEmergencies(c *gin.Context) {
	workerID, exists := middleware.GetWorkerIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Worker ID not found in token")
		return
	}

	var emergencies []models.EmergencyRequest
	if err := h.DB.Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&emergencies).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch emergency requests: "+err.Error())
		return
	}

	utils.Success(c, "Emergency requests fetched successfully", gin.H{"emergencies": emergencies})
}

// EmergencyWithWorker augments an emergency row with worker contact details.
type EmergencyWithWorker struct {
	models.EmergencyRequest
	WorkerName     string `json:"workerName,omitempty"`
	WorkerPhone    string `json:"workerPhone,omitempty"`
	WorkerUniqueID string `json:"workerUniqueId,omitempty"`
}

// ListEmergencies handles listing all emergency requests for operators, with
// optional status filter and pagination.
func (h *EmergencyHandler) ListEmergencies(c *gin.Context) {
	limit, offset := parsePagination(c)

	query := h.DB.Model(&models.EmergencyRequest{}).
		Select("emergency_requests.*, workers.name AS worker_name, workers.phone AS worker_phone, workers.unique_id AS worker_unique_id").
		Joins("LEFT JOIN workers ON workers.id = emergency_requests.worker_id")

	if status := c.Query("status"); status != "" {
		query = query.Where("emergency_requests.status = ?", status)
	}

	var emergencies []EmergencyWithWorker
	if err := query.Order("emergency_requests.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&emergencies).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch emergency requests: "+err.Error())
		return
	}

	utils.Success(c, "Emergency requests fetched successfully", gin.H{"emergencies": emergencies})
}

// UpdateEmergencyStatus handles an operator moving an emergency through its
// status enum. The update is last-write-wins; concurrent operators are
// serialized only by the row lock.
func (h *EmergencyHandler) UpdateEmergencyStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !models.ValidEmergencyStatus(req.Status) {
		utils.BadRequest(c, "Valid status required: pending, in_progress, resolved, cancelled")
		return
	}

	id := c.Param("id")
	var emergency models.EmergencyRequest
	if err := h.DB.First(&emergency, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Emergency request not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	emergency.Status = models.EmergencyStatus(req.Status)
	if err := h.DB.Save(&emergency).Error; err != nil {
		utils.InternalServerError(c, "Failed to update emergency request: "+err.Error())
		return
	}

	h.Hub.Emit("emergencyUpdated", emergency)

	utils.Success(c, "Emergency request updated successfully", emergency)
}
