package models

import "time"

// Incident status values
const (
	IncidentStatusOpen     = "open"
	IncidentStatusResolved = "resolved"
)

// Incident represents a detected failure against a monitor
type Incident struct {
	ID         int        `json:"id" gorm:"primaryKey;autoIncrement"`
	MonitorID  int        `json:"monitor_id" gorm:"not null;index"`
	Status     string     `json:"status" gorm:"not null;index"` // open, resolved
	ErrorType  string     `json:"error_type" gorm:"not null"`       // timeout, 500, latency, ...
	StartedAt  time.Time  `json:"started_at"`
	ResolvedAt *time.Time `json:"resolved_at"`

	// Relationships (optional, for eager loading)
	Monitor Monitor `json:"-" gorm:"foreignKey:MonitorID"`
	Alerts  []Alert `json:"-" gorm:"foreignKey:IncidentID"`
}

// TableName specifies the table name for Incident
func (Incident) TableName() string {
	return "incidents"
}
