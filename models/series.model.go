package models

import "gorm.io/gorm"

type Series struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	Category    string `json:"category" gorm:"default:'GENERAL'"` // GENERAL, SLEEP, FOCUS, ANXIETY
	IsActive    bool   `json:"is_active" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
