package models

import "gorm.io/gorm"

type Note struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	EpisodeID *uint  `json:"episode_id" gorm:"index"`
	ArticleID *uint  `json:"article_id" gorm:"index"`
	Body      string `json:"body"`
	IsDeleted bool   `gorm:"default:false"`
	User      User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
