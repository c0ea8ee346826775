package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DailyContent is the affirmation/aphorism of a single calendar day. Body is a
// JSON document {title, text, author, image_url} assembled by the admin panel
// or by the daily generator.
type DailyContent struct {
	gorm.Model
	Date        time.Time      `json:"date" gorm:"uniqueIndex;not null"`
	Body        datatypes.JSON `json:"body"`
	IsPublished bool           `json:"is_published" gorm:"default:false"`
	IsDeleted   bool           `gorm:"default:false"`
}

// WeeklyContent bundles a week's worth of recommended episodes and articles.
// EpisodeIDs and ArticleIDs are JSON arrays of catalog ids.
type WeeklyContent struct {
	gorm.Model
	WeekStart   time.Time      `json:"week_start" gorm:"uniqueIndex;not null"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	EpisodeIDs  datatypes.JSON `json:"episode_ids"`
	ArticleIDs  datatypes.JSON `json:"article_ids"`
	IsPublished bool           `json:"is_published" gorm:"default:false"`
	IsDeleted   bool           `gorm:"default:false"`
}
