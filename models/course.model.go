package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string  `json:"title"`
	Slug        string  `json:"slug" gorm:"uniqueIndex;not null"` // campaign identifier used in referral links
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null;default:0"`
	Status      string  `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, INACTIVE
	IsDeleted   bool    `gorm:"default:false"`
}
