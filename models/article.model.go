package models

import "gorm.io/gorm"

type Article struct {
	gorm.Model
	Title      string `json:"title"`
	Body       string `json:"body"`
	CoverImage string `json:"cover_image"`
	Author     string `json:"author"`
	IsActive   bool   `json:"is_active" gorm:"default:false"`
	IsDeleted  bool   `gorm:"default:false"`
}
