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

// HandleGetIncidents returns all incidents
func HandleGetIncidents(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var incidents []models.Incident
		if err := db.Order("id").Find(&incidents).Error; err != nil {
			http.Error(w, "Failed to fetch incidents", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(incidents)
	}
}

// HandleGetIncident returns a single incident by ID
func HandleGetIncident(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid incident ID", http.StatusBadRequest)
			return
		}

		var incident models.Incident
		err = db.First(&incident, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "Incident not found", http.StatusNotFound)
			} else {
				http.Error(w, "Failed to fetch incident", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(incident)
	}
}

// HandleResolveIncident marks an incident as resolved. Resolving an
// already-resolved incident re-stamps resolved_at.
func HandleResolveIncident(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid incident ID", http.StatusBadRequest)
			return
		}

		var incident models.Incident
		err = db.First(&incident, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "Incident not found", http.StatusNotFound)
			} else {
				http.Error(w, "Failed to fetch incident", http.StatusInternalServerError)
			}
			return
		}

		now := time.Now().UTC()
		incident.Status = models.IncidentStatusResolved
		incident.ResolvedAt = &now

		if err := db.Save(&incident).Error; err != nil {
			http.Error(w, "Failed to resolve incident", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(incident)
	}
}
