package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// MedicationItem is one line of a prescription's medication list or a
// medicine request's requisition list. Quantity is only used on requisitions
// and defaults to 1 when unset.
type MedicationItem struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Quantity  *int   `json:"quantity,omitempty"`
}

// MedicationList marshals a slice of items into a JSONB column value.
func MedicationList(items []MedicationItem) (datatypes.JSON, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// ParseMedicationList decodes a JSONB column back into items.
func ParseMedicationList(raw datatypes.JSON) ([]MedicationItem, error) {
	var items []MedicationItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Prescription represents a single doctor-authored diagnosis-and-treatment
// record (a "case"). Append-only: never updated or deleted.
type Prescription struct {
	BaseModel
	WorkerID     *string        `gorm:"size:36;index" json:"workerId,omitempty"`
	DoctorID     string         `gorm:"size:36;index" json:"doctorId"`
	Diagnosis    string         `gorm:"size:500;not null" json:"diagnosis"`
	Medications  datatypes.JSON `gorm:"type:jsonb;not null" json:"medications"`
	VoiceNoteURL string         `gorm:"size:500" json:"voiceNoteUrl,omitempty"`
	HospitalName string         `gorm:"size:255" json:"hospitalName,omitempty"`
	District     string         `gorm:"size:100;index" json:"district,omitempty"`
	Latitude     *float64       `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude    *float64       `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`

	// Relations
	Worker *Worker `gorm:"foreignKey:WorkerID" json:"-"`
	Doctor User    `gorm:"foreignKey:DoctorID" json:"-"`
}
