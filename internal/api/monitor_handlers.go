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
	"github.com/apipulse/api-pulse/internal/simulation"
)

// CreateMonitorRequest represents a monitor creation payload
type CreateMonitorRequest struct {
	Name               string `json:"name"`
	URL                string `json:"url"`
	ExpectedStatusCode *int   `json:"expected_status_code"`
	CheckInterval      *int   `json:"check_interval"`
	IsActive           *bool  `json:"is_active"`
}

// UpdateMonitorRequest represents a partial monitor update; only supplied
// fields overwrite existing values
type UpdateMonitorRequest struct {
	Name               *string `json:"name"`
	URL                *string `json:"url"`
	ExpectedStatusCode *int    `json:"expected_status_code"`
	CheckInterval      *int    `json:"check_interval"`
	IsActive           *bool   `json:"is_active"`
}

// SimulateFailureRequest represents a failure simulation payload
type SimulateFailureRequest struct {
	FailureType string `json:"failure_type"`
	LatencyMS   *int   `json:"latency_ms"`
}

// HandleCreateMonitor creates a new monitor
func HandleCreateMonitor(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateMonitorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Name == "" || req.URL == "" {
			http.Error(w, "Name and URL are required", http.StatusBadRequest)
			return
		}

		mon := models.Monitor{
			Name:               req.Name,
			URL:                req.URL,
			ExpectedStatusCode: 200,
			CheckInterval:      60,
			IsActive:           true,
			CreatedAt:          time.Now().UTC(),
		}
		if req.ExpectedStatusCode != nil {
			mon.ExpectedStatusCode = *req.ExpectedStatusCode
		}
		if req.CheckInterval != nil {
			mon.CheckInterval = *req.CheckInterval
		}
		if req.IsActive != nil {
			mon.IsActive = *req.IsActive
		}

		if err := db.Create(&mon).Error; err != nil {
			http.Error(w, "Failed to create monitor", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(mon)
	}
}

// HandleGetMonitors returns all monitors
func HandleGetMonitors(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var monitors []models.Monitor
		if err := db.Order("id").Find(&monitors).Error; err != nil {
			http.Error(w, "Failed to fetch monitors", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(monitors)
	}
}

// HandleGetMonitor returns a single monitor by ID
func HandleGetMonitor(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid monitor ID", http.StatusBadRequest)
			return
		}

		var mon models.Monitor
		err = db.First(&mon, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "Monitor not found", http.StatusNotFound)
			} else {
				http.Error(w, "Failed to fetch monitor", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mon)
	}
}

// HandleUpdateMonitor applies a partial update to a monitor
func HandleUpdateMonitor(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid monitor ID", http.StatusBadRequest)
			return
		}

		var req UpdateMonitorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var mon models.Monitor
		err = db.First(&mon, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "Monitor not found", http.StatusNotFound)
			} else {
				http.Error(w, "Failed to fetch monitor", http.StatusInternalServerError)
			}
			return
		}

		if req.Name != nil {
			mon.Name = *req.Name
		}
		if req.URL != nil {
			mon.URL = *req.URL
		}
		if req.ExpectedStatusCode != nil {
			mon.ExpectedStatusCode = *req.ExpectedStatusCode
		}
		if req.CheckInterval != nil {
			mon.CheckInterval = *req.CheckInterval
		}
		if req.IsActive != nil {
			mon.IsActive = *req.IsActive
		}

		if err := db.Save(&mon).Error; err != nil {
			http.Error(w, "Failed to update monitor", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mon)
	}
}

// HandleDeleteMonitor removes a monitor. Incidents and alerts that reference
// it are left behind; there is no cascade.
func HandleDeleteMonitor(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid monitor ID", http.StatusBadRequest)
			return
		}

		result := db.Delete(&models.Monitor{}, id)
		if result.Error != nil {
			http.Error(w, "Failed to delete monitor", http.StatusInternalServerError)
			return
		}
		if result.RowsAffected == 0 {
			http.Error(w, "Monitor not found", http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleSimulateFailure records a simulated failure for a monitor
func HandleSimulateFailure(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid monitor ID", http.StatusBadRequest)
			return
		}

		var req SimulateFailureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.FailureType == "" {
			http.Error(w, "failure_type is required", http.StatusBadRequest)
			return
		}

		outcome, err := simulation.Simulate(db, id, req.FailureType, req.LatencyMS)
		if err != nil {
			http.Error(w, "Failed to simulate failure", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if !outcome.Success {
			w.WriteHeader(http.StatusNotFound)
		} else {
			w.WriteHeader(http.StatusCreated)
		}
		json.NewEncoder(w).Encode(outcome)
	}
}
