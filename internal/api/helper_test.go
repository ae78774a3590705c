package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/apipulse/api-pulse/internal/config"
	"github.com/apipulse/api-pulse/internal/models"
)

const testJWTSecret = "test-secret-0123456789abcdef"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Monitor{}, &models.Incident{}, &models.Alert{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{
		Port:        8080,
		Environment: "development",
		JWTSecret:   testJWTSecret,
		TokenExpiry: 30 * time.Minute,
		CORSOrigins: []string{"http://localhost:3000"},
	}

	return NewRouter(cfg, db), db
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func itoa(id int) string {
	return strconv.Itoa(id)
}

func createMonitor(t *testing.T, handler http.Handler, name, url string) models.Monitor {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/monitors", map[string]interface{}{
		"name": name,
		"url":  url,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to create monitor: status %d, body %s", rec.Code, rec.Body.String())
	}

	var mon models.Monitor
	decodeJSON(t, rec, &mon)
	return mon
}
