package models

import "time"

// User represents a registered account
type User struct {
	ID             int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword string    `json:"-" gorm:"not null"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
