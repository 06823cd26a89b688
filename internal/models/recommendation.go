package models

import "time"

// Recommendation is one generated organisation-wide retention narrative.
type Recommendation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
