package models

import "time"

// User is created automatically on first successful phone login.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Phone     string    `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	CreatedAt time.Time `json:"createdAt"`

	Orders []Order `json:"orders,omitempty"`
}

// Admin accounts are seeded out-of-band (see cmd/admincli).
// Password holds a bcrypt hash, never plaintext.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password  string    `gorm:"size:128;not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
