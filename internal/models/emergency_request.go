package models

// EmergencyStatus represents the status of an emergency request
type EmergencyStatus string

const (
	EmergencyStatusPending    EmergencyStatus = "pending"
	EmergencyStatusInProgress EmergencyStatus = "in_progress"
	EmergencyStatusResolved   EmergencyStatus = "resolved"
	EmergencyStatusCancelled  EmergencyStatus = "cancelled"
)

// ValidEmergencyStatus reports whether s is a member of the status enum.
func ValidEmergencyStatus(s string) bool {
	switch EmergencyStatus(s) {
	case EmergencyStatusPending, EmergencyStatusInProgress, EmergencyStatusResolved, EmergencyStatusCancelled:
		return true
	}
	return false
}

// EmergencyRequest represents a worker's call for assistance. There is no
// assignment or ownership field; any operator can move the status.
type EmergencyRequest struct {
	BaseModel
	WorkerID    string          `gorm:"size:36;index" json:"workerId"`
	Type        string          `gorm:"size:50;not null" json:"type"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Latitude    *float64        `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude   *float64        `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	Status      EmergencyStatus `gorm:"size:20;default:'pending'" json:"status"`

	// Relations
	Worker Worker `gorm:"foreignKey:WorkerID" json:"-"`
}
