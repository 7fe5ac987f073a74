package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleDoctor     Role = "doctor"
	RoleGovernment Role = "government"
)

// User represents a doctor or government account. Roles are fixed at
// creation; there are no role transitions.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password     string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Name         string `gorm:"size:255;not null" json:"name"`
	Role         Role   `gorm:"size:20;not null" json:"role"`
	HospitalName string `gorm:"size:255" json:"hospitalName,omitempty"`
	HospitalID   string `gorm:"size:50" json:"hospitalId,omitempty"`

	// Relations (not always preloaded)
	Prescriptions    []Prescription    `gorm:"foreignKey:DoctorID" json:"-"`
	MedicineRequests []MedicineRequest `gorm:"foreignKey:DoctorID" json:"-"`
	HealthCamps      []HealthCamp      `gorm:"foreignKey:CreatedBy" json:"-"`
}

// UserSanitized represents the account data that is safe to send in API responses.
type UserSanitized struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	HospitalName string    `json:"hospitalName,omitempty"`
	HospitalID   string    `json:"hospitalId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		HospitalName: u.HospitalName,
		HospitalID:   u.HospitalID,
		CreatedAt:    u.CreatedAt,
	}
}
