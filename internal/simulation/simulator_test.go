package simulation

import (
	"fmt"
	"testing"
	"time"

	"github.com/matryer/is"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/apipulse/api-pulse/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Monitor{}, &models.Incident{}, &models.Alert{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createMonitor(t *testing.T, db *gorm.DB, name, url string) *models.Monitor {
	t.Helper()

	monitor := models.Monitor{
		Name:               name,
		URL:                url,
		ExpectedStatusCode: 200,
		CheckInterval:      60,
		IsActive:           true,
		CreatedAt:          time.Now().UTC(),
	}
	if err := db.Create(&monitor).Error; err != nil {
		t.Fatalf("failed to create monitor: %v", err)
	}
	return &monitor
}

func TestSimulateCreatesIncidentAndAlert(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	monitor := createMonitor(t, db, "Test Monitor", "https://example.com")

	outcome, err := Simulate(db, monitor.ID, "timeout", nil)
	is.NoErr(err)
	is.True(outcome.Success)
	is.Equal(outcome.MonitorID, monitor.ID)
	is.Equal(outcome.MonitorName, "Test Monitor")
	is.Equal(outcome.IncidentStatus, models.IncidentStatusOpen)

	var incident models.Incident
	is.NoErr(db.First(&incident, outcome.IncidentID).Error)
	is.Equal(incident.MonitorID, monitor.ID)
	is.Equal(incident.ErrorType, "timeout")
	is.Equal(incident.Status, "open")
	is.True(incident.ResolvedAt == nil)

	var alert models.Alert
	is.NoErr(db.First(&alert, outcome.AlertID).Error)
	is.Equal(alert.IncidentID, incident.ID)
	is.Equal(alert.Payload["failure_type"], "timeout")
	is.Equal(alert.Payload["incident_id"], float64(incident.ID))
	is.Equal(alert.Payload["monitor_url"], "https://example.com")
	is.Equal(alert.Payload["message"], "Monitor 'Test Monitor' encountered a timeout failure")
}

func TestSimulateWithLatency(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	monitor := createMonitor(t, db, "Slow API", "https://slow.example.com")

	latency := 5000
	outcome, err := Simulate(db, monitor.ID, "latency", &latency)
	is.NoErr(err)
	is.True(outcome.Success)

	var alert models.Alert
	is.NoErr(db.First(&alert, outcome.AlertID).Error)
	is.Equal(alert.Payload["latency_ms"], float64(5000))
}

func TestSimulateUnknownMonitorWritesNothing(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)

	outcome, err := Simulate(db, 42, "timeout", nil)
	is.NoErr(err)
	is.True(!outcome.Success)
	is.Equal(outcome.Error, "Monitor not found")
	is.Equal(outcome.MonitorID, 42)

	var incidents int64
	db.Model(&models.Incident{}).Count(&incidents)
	is.Equal(incidents, int64(0))

	var alerts int64
	db.Model(&models.Alert{}).Count(&alerts)
	is.Equal(alerts, int64(0))
}

func TestSimulateRepeatedFailuresAccumulate(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	monitor := createMonitor(t, db, "Flaky API", "https://flaky.example.com")

	for _, failureType := range []string{"timeout", "500", "latency"} {
		outcome, err := Simulate(db, monitor.ID, failureType, nil)
		is.NoErr(err)
		is.True(outcome.Success)
	}

	var incidents int64
	db.Model(&models.Incident{}).Count(&incidents)
	is.Equal(incidents, int64(3))

	var alerts int64
	db.Model(&models.Alert{}).Count(&alerts)
	is.Equal(alerts, int64(3))
}
