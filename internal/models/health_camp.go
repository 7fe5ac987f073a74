package models

import (
	"time"
)

// CampStatus represents the lifecycle status of a health camp
type CampStatus string

const (
	CampStatusScheduled CampStatus = "scheduled"
	CampStatusOngoing   CampStatus = "ongoing"
	CampStatusCompleted CampStatus = "completed"
	CampStatusCancelled CampStatus = "cancelled"
)

// CampTypes is the fixed list of allowed camp types.
var CampTypes = []string{
	"General Checkup",
	"Dengue Checkup",
	"COVID-19",
	"Malaria Screening",
	"Eye Camp",
	"Dental Camp",
	"Vaccination Drive",
	"Blood Donation",
}

// ValidCampType reports whether t is one of the allowed camp types.
func ValidCampType(t string) bool {
	for _, ct := range CampTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// HealthCamp represents a scheduled public-health event. Creation also
// writes a broadcast Notification row.
type HealthCamp struct {
	BaseModel
	CampName      string     `gorm:"size:255;not null" json:"campName"`
	CampType      string     `gorm:"size:50;not null" json:"campType"`
	LocationName  string     `gorm:"size:255;not null" json:"locationName"`
	Latitude      *float64   `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude     *float64   `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	MapsLink      string     `gorm:"size:500" json:"mapsLink,omitempty"`
	ScheduledDate time.Time  `gorm:"not null" json:"scheduledDate"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	CreatedBy     string     `gorm:"size:36;index" json:"createdBy"`
	Status        CampStatus `gorm:"size:20;default:'scheduled'" json:"status"`

	// Relations
	Creator User `gorm:"foreignKey:CreatedBy" json:"-"`
}
