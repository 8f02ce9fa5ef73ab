package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(254)" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	IsProvider   bool      `gorm:"default:false" json:"is_provider"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Profile struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	UserID         uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	Phone          string  `gorm:"type:varchar(15)" json:"phone"`
	Address        string  `gorm:"type:text" json:"address"`
	ProfilePicture *string `gorm:"type:varchar(255)" json:"profile_picture,omitempty"`

	// One-to-one, created together with the user at registration
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
