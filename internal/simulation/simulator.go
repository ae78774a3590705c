package simulation

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/apipulse/api-pulse/internal/models"
)

// Outcome is the result of a failure simulation
type Outcome struct {
	Success        bool                   `json:"success"`
	Error          string                 `json:"error,omitempty"`
	MonitorID      int                    `json:"monitor_id"`
	MonitorName    string                 `json:"monitor_name,omitempty"`
	IncidentID     int                    `json:"incident_id,omitempty"`
	IncidentStatus string                 `json:"incident_status,omitempty"`
	AlertID        int                    `json:"alert_id,omitempty"`
	Payload        map[string]interface{} `json:"payload,omitempty"`
}

// Simulate deterministically records a failure against a monitor: one open
// incident plus one alert carrying the failure payload. The two inserts are
// not wrapped in a transaction; a failed alert insert leaves the incident
// behind without one.
func Simulate(db *gorm.DB, monitorID int, failureType string, latencyMS *int) (*Outcome, error) {
	// Validate monitor exists before writing anything
	var monitor models.Monitor
	err := db.First(&monitor, monitorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Outcome{
			Success:   false,
			Error:     "Monitor not found",
			MonitorID: monitorID,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load monitor %d: %w", monitorID, err)
	}

	incident := models.Incident{
		MonitorID: monitorID,
		ErrorType: failureType,
		Status:    models.IncidentStatusOpen,
		StartedAt: time.Now().UTC(),
	}
	if err := db.Create(&incident).Error; err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}

	payload := map[string]interface{}{
		"incident_id":  incident.ID,
		"monitor_id":   monitorID,
		"monitor_name": monitor.Name,
		"monitor_url":  monitor.URL,
		"failure_type": failureType,
		"latency_ms":   latencyMS,
		"message":      fmt.Sprintf("Monitor '%s' encountered a %s failure", monitor.Name, failureType),
	}

	alert := models.Alert{
		IncidentID: incident.ID,
		Payload:    payload,
	}
	if err := db.Create(&alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	return &Outcome{
		Success:        true,
		MonitorID:      monitorID,
		MonitorName:    monitor.Name,
		IncidentID:     incident.ID,
		IncidentStatus: incident.Status,
		AlertID:        alert.ID,
		Payload:        payload,
	}, nil
}
