package models

import (
	"gorm.io/datatypes"
)

// MedicineRequestStatus represents the status of a medicine requisition
type MedicineRequestStatus string

const (
	MedicineStatusPending   MedicineRequestStatus = "pending"
	MedicineStatusApproved  MedicineRequestStatus = "approved"
	MedicineStatusFulfilled MedicineRequestStatus = "fulfilled"
	MedicineStatusRejected  MedicineRequestStatus = "rejected"
)

// ValidMedicineStatus reports whether s is a member of the status enum.
// Transitions are a permissive allow-list: any reachable state can be set
// from any other.
func ValidMedicineStatus(s string) bool {
	switch MedicineRequestStatus(s) {
	case MedicineStatusPending, MedicineStatusApproved, MedicineStatusFulfilled, MedicineStatusRejected:
		return true
	}
	return false
}

// MedicineRequest represents a hospital's medicine requisition. Status is
// the only mutable field; transitions are government-operator-driven.
type MedicineRequest struct {
	BaseModel
	DoctorID     string                `gorm:"size:36;index" json:"doctorId"`
	HospitalName string                `gorm:"size:255" json:"hospitalName,omitempty"`
	District     string                `gorm:"size:100;index" json:"district,omitempty"`
	Medicines    datatypes.JSON        `gorm:"type:jsonb;not null" json:"medicines"`
	Status       MedicineRequestStatus `gorm:"size:20;default:'pending'" json:"status"`

	// Relations
	Doctor User `gorm:"foreignKey:DoctorID" json:"-"`
}
