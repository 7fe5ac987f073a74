package handlers

import (
	"errors"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"health-bridge-server/internal/middleware"
	"health-bridge-server/internal/models"
	"health-bridge-server/internal/realtime"
	"health-bridge-server/internal/utils"
)

// CaseHandler handles case (prescription) submission and the aggregation
// queries backing the dashboards.
type CaseHandler struct {
	DB  *gorm.DB
	Hub realtime.Broadcaster
}

// NewCaseHandler creates a new CaseHandler.
func NewCaseHandler(db *gorm.DB, hub realtime.Broadcaster) *CaseHandler {
	return &CaseHandler{DB: db, Hub: hub}
}

// SubmitCaseRequest represents the request body for reporting a case.
// Either workerId or workerUniqueId may identify the worker; both optional.
type SubmitCaseRequest struct {
	WorkerID       string                  `json:"workerId"`
	WorkerUniqueID string                  `json:"workerUniqueId"`
	Diagnosis      string                  `json:"diagnosis" binding:"required"`
	Medications    []models.MedicationItem `json:"medications" binding:"required,min=1,dive"`
	VoiceNoteURL   string                  `json:"voiceNoteUrl"`
	District       string                  `json:"district"`
	Latitude       *float64                `json:"latitude"`
	Longitude      *float64                `json:"longitude"`
}

// NewCaseEvent carries the minimal public fields of a freshly reported case.
type NewCaseEvent struct {
	ID           string    `json:"id"`
	Diagnosis    string    `json:"diagnosis"`
	District     string    `json:"district,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	HospitalName string    `json:"hospitalName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SubmitCase handles reporting a new case. Only accessible by doctors.
// The newCase event is emitted after the row is committed, so a subscriber
// reacting to the event can already query the record.
func (h *CaseHandler) SubmitCase(c *gin.Context) {
	var req SubmitCaseRequest
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

	// Resolve the worker's external unique ID when no direct reference is given
	var workerID *string
	if req.WorkerID != "" {
		workerID = &req.WorkerID
	} else if req.WorkerUniqueID != "" {
		var worker models.Worker
		if err := h.DB.Select("id").Where("unique_id = ?", req.WorkerUniqueID).First(&worker).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.NotFound(c, "Worker not found")
			} else {
				utils.InternalServerError(c, "Database error resolving worker: "+err.Error())
			}
			return
		}
		workerID = &worker.ID
	}

	medications, err := models.MedicationList(req.Medications)
	if err != nil {
		utils.InternalServerError(c, "Failed to encode medications: "+err.Error())
		return
	}

	prescription := models.Prescription{
		WorkerID:     workerID,
		DoctorID:     doctorID,
		Diagnosis:    req.Diagnosis,
		Medications:  medications,
		VoiceNoteURL: req.VoiceNoteURL,
		HospitalName: hospitalName,
		District:     req.District,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}

	if err := h.DB.Create(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to create case: "+err.Error())
		return
	}

	h.Hub.Emit("newCase", NewCaseEvent{
		ID:           prescription.ID,
		Diagnosis:    prescription.Diagnosis,
		District:     prescription.District,
		Latitude:     prescription.Latitude,
		Longitude:    prescription.Longitude,
		HospitalName: hospitalName,
		CreatedAt:    prescription.CreatedAt,
	})

	utils.Created(c, "Case reported successfully", prescription)
}

// lookbackWindow maps a time-range token to its lookback duration. Unknown
// tokens report ok=false, which callers treat as "no window" (all time).
func lookbackWindow(token string) (time.Duration, bool) {
	switch token {
	case "24h":
		return 24 * time.Hour, true
	case "7d":
		return 7 * 24 * time.Hour, true
	case "30d":
		return 30 * 24 * time.Hour, true
	}
	return 0, false
}

// windowed applies the requested time window to a prescriptions query.
func windowed(query *gorm.DB, token string) *gorm.DB {
	if d, ok := lookbackWindow(token); ok {
		return query.Where("created_at > ?", time.Now().Add(-d))
	}
	return query
}

// DistrictCount is one row of the per-district case aggregation.
type DistrictCount struct {
	District string `json:"district"`
	Count    int64  `json:"count"`
}

// DiagnosisCount is one row of the per-diagnosis case aggregation.
type DiagnosisCount struct {
	Diagnosis string `json:"diagnosis"`
	Count     int64  `json:"count"`
}

// StatsResponse is the dashboard statistics summary.
type StatsResponse struct {
	TotalCases    int64            `json:"totalCases"`
	TodayCases    int64            `json:"todayCases"`
	ActiveWorkers int64            `json:"activeWorkers"`
	ByDistrict    []DistrictCount  `json:"byDistrict"`
	ByDiagnosis   []DiagnosisCount `json:"byDiagnosis"`
}

// GetStats handles the case statistics summary for a time window.
func (h *CaseHandler) GetStats(c *gin.Context) {
	timeRange := c.DefaultQuery("timeRange", "7d")

	var stats StatsResponse

	if err := windowed(h.DB.Model(&models.Prescription{}), timeRange).
		Count(&stats.TotalCases).Error; err != nil {
		utils.InternalServerError(c, "Failed to count cases: "+err.Error())
		return
	}

	// Today's cases are counted against the calendar date, irrespective of
	// the requested window.
	if err := h.DB.Model(&models.Prescription{}).
		Where("DATE(created_at) = CURRENT_DATE").
		Count(&stats.TodayCases).Error; err != nil {
		utils.InternalServerError(c, "Failed to count today's cases: "+err.Error())
		return
	}

	if err := windowed(h.DB.Model(&models.Prescription{}), timeRange).
		Where("worker_id IS NOT NULL").
		Distinct("worker_id").
		Count(&stats.ActiveWorkers).Error; err != nil {
		utils.InternalServerError(c, "Failed to count active workers: "+err.Error())
		return
	}

	if err := windowed(h.DB.Model(&models.Prescription{}), timeRange).
		Select("district, COUNT(*) AS count").
		Where("district IS NOT NULL AND district <> ''").
		Group("district").
		Order("count DESC").
		Scan(&stats.ByDistrict).Error; err != nil {
		utils.InternalServerError(c, "Failed to group by district: "+err.Error())
		return
	}

	if err := windowed(h.DB.Model(&models.Prescription{}), timeRange).
		Select("diagnosis, COUNT(*) AS count").
		Group("diagnosis").
		Order("count DESC").
		Limit(10).
		Scan(&stats.ByDiagnosis).Error; err != nil {
		utils.InternalServerError(c, "Failed to group by diagnosis: "+err.Error())
		return
	}

	utils.Success(c, "Statistics fetched successfully", stats)
}

// heatmapRow is one plottable case row feeding the heatmap projection.
type heatmapRow struct {
	Latitude  float64
	Longitude float64
	Diagnosis string
	District  string
}

// HeatmapPoint is one merged location on the heatmap. Weight is the number
// of contributing cases; Diagnoses lists the distinct diagnoses observed.
type HeatmapPoint struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Weight    int      `json:"weight"`
	District  string   `json:"district,omitempty"`
	Diagnoses []string `json:"diagnoses"`
}

// buildHeatmap merges rows sharing an identical coordinate pair into one
// weighted point. Output order across points is unspecified.
func buildHeatmap(rows []heatmapRow) []HeatmapPoint {
	type coord struct{ lat, lng float64 }
	merged := make(map[coord]*HeatmapPoint)
	order := make([]coord, 0)

	for _, row := range rows {
		key := coord{row.Latitude, row.Longitude}
		point, ok := merged[key]
		if !ok {
			point = &HeatmapPoint{
				Lat:       row.Latitude,
				Lng:       row.Longitude,
				District:  row.District,
				Diagnoses: []string{},
			}
			merged[key] = point
			order = append(order, key)
		}
		point.Weight++

		seen := false
		for _, d := range point.Diagnoses {
			if d == row.Diagnosis {
				seen = true
				break
			}
		}
		if !seen {
			point.Diagnoses = append(point.Diagnoses, row.Diagnosis)
		}
	}

	points := make([]HeatmapPoint, 0, len(order))
	for _, key := range order {
		points = append(points, *merged[key])
	}
	return points
}

// GetHeatmap handles the heatmap projection for a time window. Cases with a
// missing coordinate are not plottable and are excluded, never defaulted.
func (h *CaseHandler) GetHeatmap(c *gin.Context) {
	timeRange := c.DefaultQuery("timeRange", "7d")

	var rows []heatmapRow
	err := windowed(h.DB.Model(&models.Prescription{}), timeRange).
		Select("latitude, longitude, diagnosis, district").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("created_at DESC").
		Scan(&rows).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch heatmap data: "+err.Error())
		return
	}

	utils.Success(c, "Heatmap data fetched successfully", gin.H{
		"heatmapData": buildHeatmap(rows),
		"rawCases":    len(rows),
	})
}

// trendRow is one (date, diagnosis, count) aggregation row.
type trendRow struct {
	Date      time.Time
	Diagnosis string
	Count     int64
}

// pivotTrends turns grouped rows into one entry per calendar date carrying a
// count per diagnosis observed that date. Diagnoses absent on a date are
// omitted rather than reported as zero. Output is ordered by date ascending.
func pivotTrends(rows []trendRow) []map[string]interface{} {
	byDate := make(map[string]map[string]interface{})
	for _, row := range rows {
		dateStr := row.Date.Format("2006-01-02")
		entry, ok := byDate[dateStr]
		if !ok {
			entry = map[string]interface{}{"date": dateStr}
			byDate[dateStr] = entry
		}
		entry[row.Diagnosis] = row.Count
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	trends := make([]map[string]interface{}, 0, len(dates))
	for _, d := range dates {
		trends = append(trends, byDate[d])
	}
	return trends
}

// GetTrends handles the 30-day disease trend series.
func (h *CaseHandler) GetTrends(c *gin.Context) {
	var rows []trendRow
	err := h.DB.Model(&models.Prescription{}).
		Select("DATE(created_at) AS date, diagnosis, COUNT(*) AS count").
		Where("created_at > ?", time.Now().Add(-30*24*time.Hour)).
		Group("DATE(created_at), diagnosis").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch trends: "+err.Error())
		return
	}

	utils.Success(c, "Trends fetched successfully", gin.H{"trends": pivotTrends(rows)})
}
