package models

import (
	"time"
)

// Known categories. The write path stays permissive (free-text categories are
// accepted and provider search falls back to treating the query itself as a
// category), so these are not enforced on insert.
const (
	CategoryPlumbing   = "plumbing"
	CategoryElectrical = "electrical"
	CategoryCleaning   = "cleaning"
	CategoryCarpentry  = "carpentry"
	CategoryPainting   = "painting"
	CategoryGardening  = "gardening"
	CategoryAppliance  = "appliance"
	CategoryOther      = "other"
)

type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(100);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(50);index" json:"category"`
	// Price is a fixed-point decimal carried as a string end to end,
	// so "49.90" survives without float rounding.
	Price      string  `gorm:"type:decimal(10,2)" json:"price"`
	ProviderID uint    `gorm:"not null;index" json:"provider_id"`
	Image      *string `gorm:"type:varchar(255)" json:"image,omitempty"`
	Rating     float64 `gorm:"default:0" json:"rating"`
	IsActive   bool    `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Provider User `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"-"`
}
