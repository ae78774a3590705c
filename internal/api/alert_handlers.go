package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/apipulse/api-pulse/internal/models"
)

// TestAlertResponse represents the result of creating a throwaway alert
type TestAlertResponse struct {
	Message      string                 `json:"message"`
	AlertID      int                    `json:"alert_id"`
	AlertPayload map[string]interface{} `json:"alert_payload"`
}

// HandleGetAlerts returns all alerts
func HandleGetAlerts(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var alerts []models.Alert
		if err := db.Order("id").Find(&alerts).Error; err != nil {
			http.Error(w, "Failed to fetch alerts", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(alerts)
	}
}

// HandleGetAlert returns a single alert by ID
func HandleGetAlert(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid alert ID", http.StatusBadRequest)
			return
		}

		var alert models.Alert
		err = db.First(&alert, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "Alert not found", http.StatusNotFound)
			} else {
				http.Error(w, "Failed to fetch alert", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(alert)
	}
}

// HandleTestAlert creates a throwaway incident/alert pair against the first
// existing monitor
func HandleTestAlert(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var monitor models.Monitor
		err := db.Order("id").First(&monitor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "No monitors available for test alert. Create a monitor first.", http.StatusBadRequest)
			} else {
				http.Error(w, "Failed to fetch monitors", http.StatusInternalServerError)
			}
			return
		}

		incident := models.Incident{
			MonitorID: monitor.ID,
			ErrorType: "test",
			Status:    models.IncidentStatusOpen,
			StartedAt: time.Now().UTC(),
		}
		if err := db.Create(&incident).Error; err != nil {
			http.Error(w, "Failed to create test incident", http.StatusInternalServerError)
			return
		}

		payload := map[string]interface{}{
			"type":         "test",
			"message":      "This is a test alert",
			"monitor_id":   monitor.ID,
			"monitor_name": monitor.Name,
		}

		alert := models.Alert{
			IncidentID: incident.ID,
			Payload:    payload,
			CreatedAt:  time.Now().UTC(),
		}
		if err := db.Create(&alert).Error; err != nil {
			http.Error(w, "Failed to create test alert", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TestAlertResponse{
			Message:      "Test alert created successfully",
			AlertID:      alert.ID,
			AlertPayload: payload,
		})
	}
}
