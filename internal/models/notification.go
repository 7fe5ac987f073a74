package models

// Notification represents a write-once broadcast notification row. Clients
// read these by polling; real-time push happens over the websocket hub, not
// through this table.
type Notification struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Message     string `gorm:"type:text;not null" json:"message"`
	Type        string `gorm:"size:50;not null" json:"type"`
	ReferenceID string `gorm:"size:36" json:"referenceId,omitempty"`
	IsBroadcast bool   `gorm:"default:true" json:"isBroadcast"`
}
