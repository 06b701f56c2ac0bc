package model

import "time"

type Page struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"size:128;not null;uniqueIndex" json:"slug"`
	Title     string    `gorm:"size:256;not null" json:"title"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
