package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Alert represents an inert notification document attached to an incident
type Alert struct {
	ID         int                    `json:"id" gorm:"primaryKey;autoIncrement"`
	IncidentID int                    `json:"incident_id" gorm:"not null;index"`
	Payload    map[string]interface{} `json:"payload" gorm:"-"`
	PayloadRaw string                 `json:"-" gorm:"column:payload;type:text"`
	CreatedAt  time.Time              `json:"created_at"`

	// Relationship (optional, for eager loading)
	Incident Incident `json:"-" gorm:"foreignKey:IncidentID"`
}

// TableName specifies the table name for Alert
func (Alert) TableName() string {
	return "alerts"
}

// BeforeSave marshals the Payload map to JSON before saving (GORM hook)
func (a *Alert) BeforeSave(tx *gorm.DB) error {
	if a.Payload != nil {
		payloadJSON, err := json.Marshal(a.Payload)
		if err != nil {
			return err
		}
		a.PayloadRaw = string(payloadJSON)
	}
	return nil
}

// AfterFind unmarshals the Payload JSON after loading (GORM hook)
func (a *Alert) AfterFind(tx *gorm.DB) error {
	if a.PayloadRaw != "" {
		return json.Unmarshal([]byte(a.PayloadRaw), &a.Payload)
	}
	return nil
}
