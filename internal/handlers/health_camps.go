package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"health-bridge-server/internal/middleware"
	"health-bridge-server/internal/models"
	"health-bridge-server/internal/realtime"
	"health-bridge-server/internal/utils"
)

// HealthCampHandler handles health camp creation and listing.
type HealthCampHandler struct {
	DB  *gorm.DB
	Hub realtime.Broadcaster
}

// NewHealthCampHandler creates a new HealthCampHandler.
func NewHealthCampHandler(db *gorm.DB, hub realtime.Broadcaster) *HealthCampHandler {
	return &HealthCampHandler{DB: db, Hub: hub}
}

// CreateCampRequest represents the request body for scheduling a camp.
type CreateCampRequest struct {
	CampName      string   `json:"campName" binding:"required"`
	CampType      string   `json:"campType" binding:"required"`
	LocationName  string   `json:"locationName" binding:"required"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	MapsLink      string   `json:"mapsLink"`
	ScheduledDate string   `json:"scheduledDate" binding:"required"`
	Description   string   `json:"description"`
}

// campMapsLink returns the explicit maps link, or one built from the camp's
// coordinates when both are present. Empty when the camp is unlocatable;
// unlocatable camps are accepted and simply announced without a link.
func campMapsLink(explicit string, lat, lng *float64) string {
	if explicit != "" {
		return explicit
	}
	if lat != nil && lng != nil {
		return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%v,%v", *lat, *lng)
	}
	return ""
}

// campNotification derives the broadcast notification title and message for
// a newly scheduled camp.
func campNotification(camp *models.HealthCamp, mapsLink string) (title, message string) {
	title = "New Health Camp: " + camp.CampName
	formattedDate := camp.ScheduledDate.Format("Monday, 2 January 2006, 03:04 PM")
	message = fmt.Sprintf("%s at %s on %s.", camp.CampType, camp.LocationName, formattedDate)
	if camp.Description != "" {
		message += " " + camp.Description
	}
	if mapsLink != "" {
		message += "\n\nNavigate to location: " + mapsLink
	}
	return title, message
}

// CreateCamp handles scheduling a new health camp. Government-only. The camp
// row and its broadcast notification row are written in one transaction so a
// camp never exists without its announcement.
func (h *HealthCampHandler) CreateCamp(c *gin.Context) {
	var req CreateCampRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !models.ValidCampType(req.CampType) {
		utils.BadRequest(c, "Invalid campType. Must be one of: "+strings.Join(models.CampTypes, ", "))
		return
	}

	scheduledDate, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		utils.BadRequest(c, "Invalid scheduledDate. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)")
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User ID not found in token")
		return
	}

	camp := models.HealthCamp{
		CampName:      req.CampName,
		CampType:      req.CampType,
		LocationName:  req.LocationName,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		MapsLink:      req.MapsLink,
		ScheduledDate: scheduledDate,
		Description:   req.Description,
		CreatedBy:     userID,
		Status:        models.CampStatusScheduled,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&camp).Error; err != nil {
			return err
		}

		mapsLink := campMapsLink(req.MapsLink, req.Latitude, req.Longitude)
		title, message := campNotification(&camp, mapsLink)

		notification := models.Notification{
			Title:       title,
			Message:     message,
			Type:        "health_camp",
			ReferenceID: camp.ID,
			IsBroadcast: true,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create health camp: "+err.Error())
		return
	}

	h.Hub.Emit("newHealthCamp", gin.H{
		"id":            camp.ID,
		"campName":      camp.CampName,
		"campType":      camp.CampType,
		"locationName":  camp.LocationName,
		"latitude":      camp.Latitude,
		"longitude":     camp.Longitude,
		"scheduledDate": camp.ScheduledDate,
	})

	utils.Created(c, "Health camp created successfully", camp)
}

// ListCamps handles listing camps with optional status/type/upcoming filters.
func (h *HealthCampHandler) ListCamps(c *gin.Context) {
	query := h.DB.Model(&models.HealthCamp{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if campType := c.Query("camp_type"); campType != "" {
		query = query.Where("camp_type = ?", campType)
	}
	if c.Query("upcoming") == "true" {
		query = query.Where("scheduled_date >= NOW()")
	}

	var camps []models.HealthCamp
	if err := query.Order("scheduled_date ASC").Find(&camps).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch health camps: "+err.Error())
		return
	}

	utils.Success(c, "Health camps fetched successfully", gin.H{
		"camps":     camps,
		"total":     len(camps),
		"campTypes": models.CampTypes,
	})
}

// GetCamp handles fetching a single camp by ID.
func (h *HealthCampHandler) GetCamp(c *gin.Context) {
	id := c.Param("id")

	var camp models.HealthCamp
	if err := h.DB.First(&camp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Health camp not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Health camp fetched successfully", camp)
}

// GetCampTypes handles listing the allowed camp types.
func (h *HealthCampHandler) GetCampTypes(c *gin.Context) {
	utils.Success(c, "Camp types fetched successfully", gin.H{"campTypes": models.CampTypes})
}
