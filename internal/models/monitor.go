package models

import "time"

// Monitor represents a monitored API endpoint configuration
type Monitor struct {
	ID                 int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name               string    `json:"name" gorm:"not null;index"`
	URL                string    `json:"url" gorm:"not null"`
	ExpectedStatusCode int       `json:"expected_status_code"`
	CheckInterval      int       `json:"check_interval"` // seconds
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`

	// Relationship (optional, for eager loading)
	Incidents []Incident `json:"-" gorm:"foreignKey:MonitorID"`
}

// TableName specifies the table name for Monitor
func (Monitor) TableName() string {
	return "monitors"
}
