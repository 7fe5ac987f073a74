package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"health-bridge-server/internal/middleware"
	"health-bridge-server/internal/models"
	"health-bridge-server/internal/realtime"
	"health-bridge-server/internal/utils"
)

// MedicineHandler handles medicine requisition requests and the per-district
// demand summary.
type MedicineHandler struct {
	DB  *gorm.DB
	Hub realtime.Broadcaster
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(db *gorm.DB, hub realtime.Broadcaster) *MedicineHandler {
	return &MedicineHandler{DB: db, Hub: hub}
}

// MedicineRequestBody represents the request body for a requisition.
type MedicineRequestBody struct {
	Medicines []models.MedicationItem `json:"medicines" binding:"required,min=1,dive"`
	District  string                  `json:"district"`
}

// SubmitRequest handles submitting a medicine requisition. Doctor-only.
func (h *MedicineHandler) SubmitRequest(c *gin.Context) {
	var req MedicineRequestBody
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor ID not found in token")
		return
	}
	hospitalName := middleware.GetHospitalNameFromContext(c)
	if hospitalName == "" {
		hospitalName = "Unknown Hospital"
	}
	district := req.District
	if district == "" {
		district = "Unknown"
	}

	medicines, err := models.MedicationList(req.Medicines)
	if err != nil {
		utils.InternalServerError(c, "Failed to encode medicines: "+err.Error())
		return
	}

	request := models.MedicineRequest{
		DoctorID:     doctorID,
		HospitalName: hospitalName,
		District:     district,
		Medicines:    medicines,
		Status:       models.MedicineStatusPending,
	}

	if err := h.DB.Create(&request).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medicine request: "+err.Error())
		return
	}

	h.Hub.Emit("newMedicineRequest", gin.H{
		"id":           request.ID,
		"hospitalName": request.HospitalName,
		"district":     request.District,
		"medicines":    req.Medicines,
		"status":       request.Status,
		"createdAt":    request.CreatedAt,
	})

	utils.Created(c, "Medicine request submitted successfully", request)
}

// MedicineRequestWithDoctor augments a requisition row with doctor details.
type MedicineRequestWithDoctor struct {
	models.MedicineRequest
	DoctorName  string `json:"doctorName,omitempty"`
	DoctorEmail string `json:"doctorEmail,omitempty"`
}

// ListRequests handles listing requisitions with optional status/district
// filters, pagination, and a per-status count summary.
func (h *MedicineHandler) ListRequests(c *gin.Context) {
	limit, offset := parsePagination(c)

	query := h.DB.Model(&models.MedicineRequest{}).
		Select("medicine_requests.*, users.name AS doctor_name, users.email AS doctor_email").
		Joins("LEFT JOIN users ON users.id = medicine_requests.doctor_id")

	if status := c.Query("status"); status != "" {
		query = query.Where("medicine_requests.status = ?", status)
	}
	if district := c.Query("district"); district != "" {
		query = query.Where("medicine_requests.district = ?", district)
	}

	var requests []MedicineRequestWithDoctor
	if err := query.Order("medicine_requests.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&requests).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medicine requests: "+err.Error())
		return
	}

	var statusRows []struct {
		Status string
		Count  int64
	}
	if err := h.DB.Model(&models.MedicineRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch request stats: "+err.Error())
		return
	}
	statusCounts := make(map[string]int64, len(statusRows))
	for _, row := range statusRows {
		statusCounts[row.Status] = row.Count
	}

	utils.Success(c, "Medicine requests fetched successfully", gin.H{
		"requests": requests,
		"stats":    statusCounts,
	})
}

// UpdateStatusRequest represents the request body for a status update.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateRequestStatus handles a government operator moving a requisition
// through its status enum. Any member of the enum can be set from any other;
// setting the current value again is a no-op success.
func (h *MedicineHandler) UpdateRequestStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !models.ValidMedicineStatus(req.Status) {
		utils.BadRequest(c, "Invalid status. Must be one of: pending, approved, fulfilled, rejected")
		return
	}

	id := c.Param("id")
	var request models.MedicineRequest
	if err := h.DB.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Request not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	request.Status = models.MedicineRequestStatus(req.Status)
	if err := h.DB.Save(&request).Error; err != nil {
		utils.InternalServerError(c, "Failed to update request: "+err.Error())
		return
	}

	h.Hub.Emit("medicineRequestUpdate", gin.H{
		"id":        request.ID,
		"status":    request.Status,
		"updatedAt": time.Now(),
	})

	utils.Success(c, "Request updated successfully", request)
}

// demandRow is one requisition row feeding the demand summary.
type demandRow struct {
	District  string
	Medicines datatypes.JSON
}

// DistrictDemand is the aggregated medicine demand for one district.
type DistrictDemand struct {
	District      string         `json:"district"`
	TotalRequests int            `json:"totalRequests"`
	Medicines     map[string]int `json:"medicines"`
}

// mergeDemand groups requisition rows by district, counting requests and
// summing per-medicine quantities. A line item without a quantity counts
// as 1. Rows whose medicine list fails to decode are skipped.
func mergeDemand(rows []demandRow) []DistrictDemand {
	byDistrict := make(map[string]*DistrictDemand)
	order := make([]string, 0)

	for _, row := range rows {
		items, err := models.ParseMedicationList(row.Medicines)
		if err != nil {
			continue
		}

		demand, ok := byDistrict[row.District]
		if !ok {
			demand = &DistrictDemand{
				District:  row.District,
				Medicines: make(map[string]int),
			}
			byDistrict[row.District] = demand
			order = append(order, row.District)
		}
		demand.TotalRequests++

		for _, item := range items {
			quantity := 1
			if item.Quantity != nil {
				quantity = *item.Quantity
			}
			demand.Medicines[item.Name] += quantity
		}
	}

	result := make([]DistrictDemand, 0, len(order))
	for _, district := range order {
		result = append(result, *byDistrict[district])
	}
	return result
}

// GetDemand handles the per-district medicine demand summary, restricted to
// requisitions still in flight (pending or approved). Government-only.
func (h *MedicineHandler) GetDemand(c *gin.Context) {
	var rows []demandRow
	err := h.DB.Model(&models.MedicineRequest{}).
		Select("district, medicines").
		Where("status IN ?", []models.MedicineRequestStatus{
			models.MedicineStatusPending,
			models.MedicineStatusApproved,
		}).
		Scan(&rows).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch demand data: "+err.Error())
		return
	}

	utils.Success(c, "Demand summary fetched successfully", gin.H{"demand": mergeDemand(rows)})
}
