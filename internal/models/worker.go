package models

import (
	"time"
)

// Worker represents a migrant worker registered in the system. The OTP
// columns are transient authentication state, not durable attributes: a
// successful verification clears both.
type Worker struct {
	BaseModel
	UniqueID        string     `gorm:"uniqueIndex;size:50;not null" json:"uniqueId"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Age             *int       `json:"age,omitempty"`
	Gender          string     `gorm:"size:20" json:"gender,omitempty"`
	OriginState     string     `gorm:"size:100" json:"originState,omitempty"`
	Phone           string     `gorm:"size:20;index" json:"phone,omitempty"`
	CurrentDistrict string     `gorm:"size:100" json:"currentDistrict,omitempty"`
	Latitude        *float64   `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude       *float64   `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	OTP             string     `gorm:"size:6" json:"-"`
	OTPExpiresAt    *time.Time `json:"-"`

	// Relations
	Prescriptions     []Prescription     `gorm:"foreignKey:WorkerID" json:"-"`
	EmergencyRequests []EmergencyRequest `gorm:"foreignKey:WorkerID" json:"-"`
}

// WorkerSanitized represents worker data safe to return to authenticated
// clients (no OTP state).
type WorkerSanitized struct {
	ID              string    `json:"id"`
	UniqueID        string    `json:"uniqueId"`
	Name            string    `json:"name"`
	Age             *int      `json:"age,omitempty"`
	Gender          string    `json:"gender,omitempty"`
	OriginState     string    `json:"originState,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	CurrentDistrict string    `json:"currentDistrict,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Sanitize creates a WorkerSanitized struct from a Worker model.
func (w *Worker) Sanitize() WorkerSanitized {
	return WorkerSanitized{
		ID:              w.ID,
		UniqueID:        w.UniqueID,
		Name:            w.Name,
		Age:             w.Age,
		Gender:          w.Gender,
		OriginState:     w.OriginState,
		Phone:           w.Phone,
		CurrentDistrict: w.CurrentDistrict,
		Latitude:        w.Latitude,
		Longitude:       w.Longitude,
		CreatedAt:       w.CreatedAt,
	}
}
